// Package auth registers users, issues opaque session tokens and resolves
// them back to users.
package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"hospital-queue/internal/apperr"
	"hospital-queue/internal/models"
	"hospital-queue/internal/repository"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long a login stays valid.
const DefaultSessionTTL = 24 * time.Hour

// RegisterInput is the body of a registration request.
type RegisterInput struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Phone    string          `json:"phone"`
	Role     models.UserRole `json:"role"`
}

type Service struct {
	users     *repository.Users
	store     SessionStore
	ttl       time.Duration
	now       func() time.Time
	passwords Passwords
}

// Option adjusts a Service.
type Option func(*Service)

// WithPasswordCost sets the bcrypt cost of new password digests.
func WithPasswordCost(cost int) Option {
	return func(s *Service) { s.passwords = NewPasswords(cost) }
}

func NewService(users *repository.Users, store SessionStore, ttl time.Duration, now func() time.Time, opts ...Option) *Service {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if now == nil {
		now = time.Now
	}
	s := &Service{users: users, store: store, ttl: ttl, now: now, passwords: NewPasswords(0)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a user account with a hashed password.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if strings.TrimSpace(in.Password) == "" {
		return nil, apperr.Validation("password is required")
	}
	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	return s.users.Create(ctx, repository.NewUser{
		Name:         in.Name,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:        in.Phone,
		Role:         in.Role,
		PasswordHash: hash,
	})
}

// Login checks the credentials and opens a session.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, nil, apperr.Unauthorized("invalid email or password")
		}
		return nil, nil, err
	}
	if !s.passwords.Matches(user.PasswordHash, password) {
		return nil, nil, apperr.Unauthorized("invalid email or password")
	}

	session := Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, nil, err
	}
	return &session, user, nil
}

// Verify resolves a token to its user. Unknown or expired tokens, and tokens
// whose user has since been deleted, are unauthorized.
func (s *Service) Verify(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperr.Unauthorized("missing session token")
	}
	session, err := s.store.Get(ctx, token)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, apperr.Unauthorized("invalid or expired session")
		}
		return nil, err
	}
	user, err := s.users.Get(ctx, session.UserID)
	if err != nil {
		if apperr.IsNotFound(err) {
			_ = s.store.Delete(ctx, token)
			return nil, apperr.Unauthorized("invalid or expired session")
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.store.Delete(ctx, token)
}
