package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-chi/jwtauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexcard/ecard-services/internal/cardsvc/store"
)

func newAuthService(t *testing.T) (*AuthService, *store.UserStore) {
	t.Helper()
	s, err := store.NewUserStore(t.TempDir())
	require.NoError(t, err)
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	return NewAuthService(s, tokenAuth), s
}

func TestSignup(t *testing.T) {
	svc, userStore := newAuthService(t)
	ctx := context.Background()

	cred, err := svc.Signup(ctx, "jane@example.com", "s3cret", "Jane")
	require.NoError(t, err)

	assert.NotEmpty(t, cred.ID)
	assert.NotEmpty(t, cred.Token)
	assert.Equal(t, "jane@example.com", cred.Email)
	assert.Equal(t, "Jane", cred.Name)

	users, err := userStore.Load(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	// persisted credential is a bcrypt hash, never the raw password
	assert.NotEqual(t, "s3cret", users[0].PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].PasswordHash), []byte("s3cret")))
}

func TestSignupValidation(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	var verr ValidationError

	_, err := svc.Signup(ctx, "", "s3cret", "")
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "email", verr.Field)

	_, err = svc.Signup(ctx, "jane@example.com", "", "")
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "password", verr.Field)
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "jane@example.com", "s3cret", "Jane")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "jane@example.com", "other", "Janet")
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "jane@example.com", "s3cret", "Jane")
	require.NoError(t, err)

	cred, err := svc.Login(ctx, "jane@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, cred.Token)
	assert.Equal(t, "Jane", cred.Name)
}

func TestLoginMismatch(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "jane@example.com", "s3cret", "Jane")
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "jane@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email gives the same error", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
