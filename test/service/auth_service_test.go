package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"distributor-service/internal/models"
	"distributor-service/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MockPasswordHasher
type MockPasswordHasher struct {
	HashFunc    func(password string) (string, error)
	CompareFunc func(hash, password string) bool
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *MockPasswordHasher) Compare(hash, password string) bool {
	if m.CompareFunc != nil {
		return m.CompareFunc(hash, password)
	}
	return hash == "hashed_"+password
}

// MockTokenProvider
type MockTokenProvider struct {
	SignAccessFunc func(sub uuid.UUID, role string, ttl time.Duration) (string, time.Time, error)
}

func (m *MockTokenProvider) SignAccess(sub uuid.UUID, role string, ttl time.Duration) (string, time.Time, error) {
	if m.SignAccessFunc != nil {
		return m.SignAccessFunc(sub, role, ttl)
	}
	return "access_token", time.Now().Add(ttl), nil
}

func createTestAuthService(users *MockUserRepo, hasher *MockPasswordHasher, tokens *MockTokenProvider) *service.AuthService {
	return service.NewAuthService(users, hasher, tokens, time.Hour, zap.NewNop())
}

func TestAuthService_Register_Success(t *testing.T) {
	users := &MockUserRepo{}
	hasher := &MockPasswordHasher{}

	users.ExistsByUsernameOrEmailFunc = func(ctx context.Context, username, email string) (bool, error) {
		return false, nil
	}
	users.CreateFunc = func(ctx context.Context, u *models.User) error {
		if u.Password != "hashed_password123" {
			t.Errorf("expected hashed password, got %s", u.Password)
		}
		u.ID = uuid.New()
		return nil
	}

	svc := createTestAuthService(users, hasher, &MockTokenProvider{})

	u, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "shop1",
		Email:    "shop1@example.com",
		Password: "password123",
		Role:     models.RoleShopkeeper,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Role != models.RoleShopkeeper {
		t.Errorf("expected shopkeeper role, got %s", u.Role)
	}
}

func TestAuthService_Register_UserExists(t *testing.T) {
	users := &MockUserRepo{}
	users.ExistsByUsernameOrEmailFunc = func(ctx context.Context, username, email string) (bool, error) {
		return true, nil
	}

	svc := createTestAuthService(users, &MockPasswordHasher{}, &MockTokenProvider{})

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "shop1",
		Email:    "shop1@example.com",
		Password: "password123",
		Role:     models.RoleShopkeeper,
	})
	if !errors.Is(err, service.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	svc := createTestAuthService(&MockUserRepo{}, &MockPasswordHasher{}, &MockTokenProvider{})

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Username: "x",
		Email:    "x@example.com",
		Password: "password123",
		Role:     models.Role("admin"),
	})
	if !errors.Is(err, service.ErrRoleInvalid) {
		t.Fatalf("expected ErrRoleInvalid, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	uid := uuid.New()
	users := &MockUserRepo{}
	users.GetByUsernameFunc = func(ctx context.Context, username string) (*models.User, error) {
		return &models.User{
			ID:       uid,
			Username: username,
			Password: "hashed_password123",
			Role:     models.RoleSalesman,
		}, nil
	}

	tokens := &MockTokenProvider{}
	tokens.SignAccessFunc = func(sub uuid.UUID, role string, ttl time.Duration) (string, time.Time, error) {
		if sub != uid {
			t.Errorf("expected subject %s, got %s", uid, sub)
		}
		if role != string(models.RoleSalesman) {
			t.Errorf("expected salesman role in token, got %s", role)
		}
		return "signed", time.Now().Add(ttl), nil
	}

	svc := createTestAuthService(users, &MockPasswordHasher{}, tokens)

	tok, _, u, err := svc.Login(context.Background(), "sales1", "password123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok != "signed" {
		t.Errorf("expected signed token, got %s", tok)
	}
	if u.ID != uid {
		t.Errorf("expected user %s, got %s", uid, u.ID)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	users := &MockUserRepo{}
	users.GetByUsernameFunc = func(ctx context.Context, username string) (*models.User, error) {
		return &models.User{Username: username, Password: "hashed_other"}, nil
	}

	svc := createTestAuthService(users, &MockPasswordHasher{}, &MockTokenProvider{})

	_, _, _, err := svc.Login(context.Background(), "sales1", "wrong")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := createTestAuthService(&MockUserRepo{}, &MockPasswordHasher{}, &MockTokenProvider{})

	_, _, _, err := svc.Login(context.Background(), "ghost", "password123")
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
