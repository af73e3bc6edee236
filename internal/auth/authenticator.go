package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"todoapi/internal/model"
)

// ErrAuthFailed is returned on any credential failure. Callers must not
// learn whether the email or the password was wrong.
var ErrAuthFailed = errors.New("authentication failed")

// UserFinder is the slice of the user store the authenticator needs.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// Authenticator verifies credentials and issues session tokens.
type Authenticator struct {
	users  UserFinder
	tokens *TokenManager
}

func NewAuthenticator(users UserFinder, tokens *TokenManager) *Authenticator {
	return &Authenticator{users: users, tokens: tokens}
}

// Attempt checks the email/password pair and issues a token on success.
func (a *Authenticator) Attempt(ctx context.Context, email, password string) (string, time.Time, error) {
	user, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		return "", time.Time{}, ErrAuthFailed
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", time.Time{}, ErrAuthFailed
	}
	return a.tokens.Issue(user.ID)
}
