package service

import (
	"context"
	"strings"
	"time"

	"distributor-service/internal/models"
	"distributor-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

type TokenProvider interface {
	SignAccess(sub uuid.UUID, role string, ttl time.Duration) (string, time.Time, error)
}

// AuthService — тонкая регистрация/вход: хэш, запись, подпись токена.
// Проверкой ролей на командах занимается Dispatcher, не она.
type AuthService struct {
	users  repository.UserRepo
	hasher PasswordHasher
	tokens TokenProvider

	accessTTL time.Duration
	now       func() time.Time
	log       *zap.Logger
}

func NewAuthService(users repository.UserRepo, hasher PasswordHasher, tokens TokenProvider, accessTTL time.Duration, log *zap.Logger) *AuthService {
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		accessTTL: accessTTL,
		now:       time.Now,
		log:       log,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     models.Role
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if !in.Role.Valid() {
		return nil, ErrRoleInvalid
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	u := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  hash,
		Role:      in.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info("user registered",
		zap.String("username", u.Username),
		zap.String("role", string(u.Role)))
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, *models.User, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", time.Time{}, nil, err
	}
	if u == nil || !s.hasher.Compare(u.Password, password) {
		return "", time.Time{}, nil, ErrInvalidCredentials
	}

	token, exp, err := s.tokens.SignAccess(u.ID, string(u.Role), s.accessTTL)
	if err != nil {
		return "", time.Time{}, nil, err
	}
	return token, exp, u, nil
}
