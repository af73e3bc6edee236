package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"todoapi/internal/model"
)

type stubUserFinder struct {
	user *model.User
	err  error
}

func (s *stubUserFinder) FindByEmail(_ context.Context, _ string) (*model.User, error) {
	return s.user, s.err
}

func hashed(t *testing.T, plain string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAttemptSuccess(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	finder := &stubUserFinder{user: &model.User{ID: 9, Email: "a@b.c", Password: hashed(t, "Passw0rd")}}
	a := NewAuthenticator(finder, tokens)

	token, _, err := a.Attempt(context.Background(), "a@b.c", "Passw0rd")
	require.NoError(t, err)

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.UserID)
}

func TestAttemptWrongPassword(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	finder := &stubUserFinder{user: &model.User{ID: 9, Email: "a@b.c", Password: hashed(t, "Passw0rd")}}
	a := NewAuthenticator(finder, tokens)

	_, _, err := a.Attempt(context.Background(), "a@b.c", "wrong")
	assert.ErrorIs(t, err, ErrAuthFailed)
}

func TestAttemptUnknownEmail(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	finder := &stubUserFinder{err: errors.New("record not found")}
	a := NewAuthenticator(finder, tokens)

	_, _, err := a.Attempt(context.Background(), "nobody@b.c", "Passw0rd")
	assert.ErrorIs(t, err, ErrAuthFailed)
}
