package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/config"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/repository"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// AuthService coordinates registration, login and profile flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service. The token manager receives the signing
// secret explicitly from config; nothing reads it from process globals.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTLHours),
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new account. Duplicate emails and ADMIN self-assignment
// are rejected with client errors; the stored role is fixed from here on.
func (s *AuthService) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, string, time.Time, error) {
	if role == "" {
		role = domain.RoleUser
	}
	if role == domain.RoleAdmin || !role.Valid() {
		return nil, "", time.Time{}, apperrors.NewValidationError("role must be USER or AGENT", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, emailTaken()
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Avatar:       defaultAvatar(name),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// two concurrent registrations can both pass the lookup above; the
		// loser hits the unique index and gets the same answer
		if apperrors.IsUniqueViolation(err) {
			return nil, "", time.Time{}, emailTaken()
		}
		return nil, "", time.Time{}, err
	}

	return s.withToken(user)
}

// Login authenticates a user by email and password. A missing account and a
// password mismatch produce the same client error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, invalidCredentials()
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, invalidCredentials()
	}
	return s.withToken(user)
}

// Profile loads the account behind an authenticated identity.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) withToken(user *domain.User) (*domain.User, string, time.Time, error) {
	identity := domain.Identity{ID: user.ID, Email: user.Email, Role: user.Role}
	token, exp, err := s.tokenMgr.Generate(identity)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

func emailTaken() error {
	return apperrors.NewDomainError("EMAIL_TAKEN", "email already registered", http.StatusBadRequest, nil)
}

func invalidCredentials() error {
	return apperrors.NewDomainError("INVALID_CREDENTIALS", "invalid email or password", http.StatusBadRequest, nil)
}

func defaultAvatar(name string) string {
	return fmt.Sprintf("https://api.dicebear.com/7.x/initials/svg?seed=%s", name)
}
