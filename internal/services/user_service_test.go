package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	"fintrack/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(t *testing.T) (*UserService, *auth.TokenIssuer) {
	t.Helper()

	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	issuer := auth.NewTokenIssuer("0123456789abcdef", time.Hour)
	return NewUserService(repo, issuer), issuer
}

func TestRegister(t *testing.T) {
	svc, _ := newTestUserService(t)

	user, err := svc.Register(context.Background(), "Alice@Example.com", "s3cret1", "Alice")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "s3cret1", user.PasswordHash)
}

func TestRegisterRejections(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.Register(context.Background(), "alice@example.com", "short", "Alice")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.Register(context.Background(), "", "longenough", "Alice")
	assert.ErrorIs(t, err, core.ErrEmptyEmail)

	_, err = svc.Register(context.Background(), "alice@example.com", "longenough", " ")
	assert.ErrorIs(t, err, core.ErrEmptyName)

	_, err = svc.Register(context.Background(), "alice@example.com", "longenough", "Alice")
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), "ALICE@example.com", "longenough", "Alice2")
	assert.ErrorIs(t, err, storage.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, issuer := newTestUserService(t)

	registered, err := svc.Register(context.Background(), "alice@example.com", "s3cret1", "Alice")
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "ALICE@example.com", "s3cret1")
	require.NoError(t, err)

	userID, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID, "token must be bound to the user at issuance")
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.Register(context.Background(), "alice@example.com", "s3cret1", "Alice")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "s3cret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
