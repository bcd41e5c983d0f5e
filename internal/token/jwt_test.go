package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestHSProvider_SignAndParse(t *testing.T) {
	p := NewHSProvider("test-secret", "distributor-service", "distributor-api")

	uid := uuid.New()
	signed, exp, err := p.SignAccess(uid, "shopkeeper", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Errorf("expiry must be in the future")
	}

	claims, err := p.ParseAndValidateAccess(signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != uid {
		t.Errorf("expected subject %s, got %s", uid, claims.UserID)
	}
	if claims.Role != "shopkeeper" {
		t.Errorf("expected role shopkeeper, got %s", claims.Role)
	}
}

func TestHSProvider_WrongSecret(t *testing.T) {
	p1 := NewHSProvider("secret-one", "distributor-service", "distributor-api")
	p2 := NewHSProvider("secret-two", "distributor-service", "distributor-api")

	signed, _, err := p1.SignAccess(uuid.New(), "salesman", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := p2.ParseAndValidateAccess(signed); err == nil {
		t.Fatalf("token signed with another secret must not validate")
	}
}

func TestHSProvider_WrongAudience(t *testing.T) {
	signer := NewHSProvider("secret", "distributor-service", "other-api")
	verifier := NewHSProvider("secret", "distributor-service", "distributor-api")

	signed, _, err := signer.SignAccess(uuid.New(), "salesman", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := verifier.ParseAndValidateAccess(signed); err == nil {
		t.Fatalf("token for another audience must not validate")
	}
}

func TestHSProvider_Expired(t *testing.T) {
	p := NewHSProvider("secret", "distributor-service", "distributor-api")
	p.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	signed, _, err := p.SignAccess(uuid.New(), "salesman", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	verifier := NewHSProvider("secret", "distributor-service", "distributor-api")
	if _, err := verifier.ParseAndValidateAccess(signed); err == nil {
		t.Fatalf("expired token must not validate")
	}
}
