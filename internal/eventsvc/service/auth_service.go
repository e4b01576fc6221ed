package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/avvvet/sportshub-services/internal/eventsvc/auth"
	"github.com/avvvet/sportshub-services/internal/eventsvc/models"
	"github.com/avvvet/sportshub-services/internal/eventsvc/store"
)

// AuthService registers and logs in users and resolves bearer tokens to users.
type AuthService struct {
	users            UserStore
	tokens           *auth.Tokens
	allowAdminSignup bool
	now              func() time.Time
}

func NewAuthService(users UserStore, tokens *auth.Tokens, allowAdminSignup bool) *AuthService {
	return &AuthService{
		users:            users,
		tokens:           tokens,
		allowAdminSignup: allowAdminSignup,
		now:              time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a player or organizer account and returns a session token.
func (s *AuthService) Register(ctx context.Context, in models.UserCreate) (*models.Token, error) {
	role := in.Role
	if role == "" {
		role = models.RolePlayer
	}
	switch role {
	case models.RolePlayer, models.RoleOrganizer:
	case models.RoleAdmin:
		if !s.allowAdminSignup {
			return nil, newError(ErrForbidden, "Admin accounts cannot be self-registered")
		}
	default:
		return nil, newError(ErrValidation, fmt.Sprintf("Unknown role %q", role))
	}

	email := normalizeEmail(in.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, newError(ErrConflict, "Email already registered")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:             uuid.NewString(),
		Email:          email,
		FullName:       strings.TrimSpace(in.FullName),
		Phone:          in.Phone,
		Role:           role,
		Location:       in.Location,
		HashedPassword: hash,
		CreatedAt:      s.now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		// lost a race with another signup for the same email
		if errors.Is(err, store.ErrDuplicate) {
			return nil, newError(ErrConflict, "Email already registered")
		}
		return nil, err
	}

	return s.issue(user)
}

// Login checks the password and returns a fresh token. Unknown email and
// wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, in models.UserLogin) (*models.Token, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	if user == nil || !auth.CheckPassword(user.HashedPassword, in.Password) {
		return nil, newError(ErrUnauthorized, "Invalid email or password")
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *models.User) (*models.Token, error) {
	tokenString, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &models.Token{AccessToken: tokenString, TokenType: "bearer", User: user}, nil
}

// ResolveIdentity maps a raw bearer token to its user.
func (s *AuthService) ResolveIdentity(ctx context.Context, token string) (*models.User, error) {
	sub, err := s.tokens.Subject(token)
	if err != nil {
		return nil, newError(ErrUnauthorized, "Invalid authentication credentials")
	}
	return s.UserByID(ctx, sub)
}

// UserByID loads the user named by an already verified token subject.
func (s *AuthService) UserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, newError(ErrUnauthorized, "User not found")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
