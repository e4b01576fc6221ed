package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avvvet/sportshub-services/internal/eventsvc/auth"
	"github.com/avvvet/sportshub-services/internal/eventsvc/models"
	"github.com/avvvet/sportshub-services/internal/eventsvc/storetest"
)

func signup(email string, role models.Role) models.UserCreate {
	return models.UserCreate{Email: email, Password: "s3cret-pass", FullName: "Asha Gurung", Role: role}
}

func TestRegister_DefaultsToPlayer(t *testing.T) {
	f := newFixture(t)
	tok, err := f.auth.Register(context.Background(), signup("Asha@Example.com ", ""))
	require.NoError(t, err)
	require.Equal(t, "bearer", tok.TokenType)
	require.NotEmpty(t, tok.AccessToken)
	require.Equal(t, models.RolePlayer, tok.User.Role)
	require.Equal(t, "asha@example.com", tok.User.Email)
	require.Zero(t, tok.User.Points)
	require.NotEqual(t, "s3cret-pass", tok.User.HashedPassword)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.auth.Register(ctx, signup("asha@example.com", models.RoleOrganizer))
	require.NoError(t, err)

	_, err = f.auth.Register(ctx, signup("ASHA@example.com", models.RolePlayer))
	require.ErrorIs(t, err, ErrConflict)
	require.EqualError(t, err, "Email already registered")
}

func TestRegister_AdminSignup(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth.Register(context.Background(), signup("root@example.com", models.RoleAdmin))
	require.ErrorIs(t, err, ErrForbidden)

	open := NewAuthService(storetest.New().Users, auth.NewTokens("k", auth.TokenTTL), true)
	tok, err := open.Register(context.Background(), signup("root@example.com", models.RoleAdmin))
	require.NoError(t, err)
	require.Equal(t, models.RoleAdmin, tok.User.Role)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.auth.Register(ctx, signup("asha@example.com", models.RolePlayer))
	require.NoError(t, err)

	tok, err := f.auth.Login(ctx, models.UserLogin{Email: "asha@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.Equal(t, "asha@example.com", tok.User.Email)

	_, err = f.auth.Login(ctx, models.UserLogin{Email: "asha@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrUnauthorized)
	require.EqualError(t, err, "Invalid email or password")

	_, err = f.auth.Login(ctx, models.UserLogin{Email: "nobody@example.com", Password: "s3cret-pass"})
	require.EqualError(t, err, "Invalid email or password")
}

func TestResolveIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tok, err := f.auth.Register(ctx, signup("asha@example.com", models.RolePlayer))
	require.NoError(t, err)

	u, err := f.auth.ResolveIdentity(ctx, tok.AccessToken)
	require.NoError(t, err)
	require.Equal(t, tok.User.ID, u.ID)

	_, err = f.auth.ResolveIdentity(ctx, "garbage")
	require.ErrorIs(t, err, ErrUnauthorized)

	orphan, err := auth.NewTokens("test-secret", auth.TokenTTL).Issue("deleted-user")
	require.NoError(t, err)
	_, err = f.auth.ResolveIdentity(ctx, orphan)
	require.ErrorIs(t, err, ErrUnauthorized)
	require.EqualError(t, err, "User not found")
}
