package service

import (
	"context"
	"errors"
	"time"

	"todoapi/internal/auth"
	"todoapi/internal/model"
	"todoapi/internal/repository"
)

// RegisterInput represents data required to open an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateProfileInput carries a partial profile update.
type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Password *string
}

// TokenView is the session token projection handed to the client.
type TokenView struct {
	Type      string    `json:"type"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthResult is returned from Register and Login.
type AuthResult struct {
	Message string    `json:"message"`
	User    UserView  `json:"user"`
	Token   TokenView `json:"token"`
}

// ProfileResult is returned from Profile.
type ProfileResult struct {
	User UserView `json:"user"`
}

// ProfileWithTodosResult is returned from ProfileWithTodos.
type ProfileWithTodosResult struct {
	User UserWithTodosView `json:"user"`
}

// UpdateProfileResult is returned from UpdateProfile.
type UpdateProfileResult struct {
	Message string   `json:"message"`
	User    UserView `json:"user"`
}

// ListUsersResult is returned from ListUsers.
type ListUsersResult struct {
	Users []UserView `json:"users"`
}

// MessageResult carries a bare confirmation.
type MessageResult struct {
	Message string `json:"message"`
}

// AccountService owns registration, login delegation and profile rules.
type AccountService struct {
	users   *repository.UserRepository
	revoked *repository.TokenRepository
	authn   *auth.Authenticator
	tokens  *auth.TokenManager
}

func NewAccountService(users *repository.UserRepository, revoked *repository.TokenRepository, authn *auth.Authenticator, tokens *auth.TokenManager) *AccountService {
	return &AccountService{users: users, revoked: revoked, authn: authn, tokens: tokens}
}

// Register creates an account and issues a session token. The email
// existence check duplicates the unique index on purpose: it catches
// the common case early, the index catches the race.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	exists, err := s.users.EmailExists(ctx, input.Email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEmail
	}

	user := model.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Message: "User registered successfully",
		User:    projectUser(&user),
		Token:   TokenView{Type: "bearer", Token: token, ExpiresAt: expiresAt},
	}, nil
}

// Login delegates credential verification to the authenticator. Every
// failure collapses into ErrInvalidCredentials so callers cannot probe
// which part was wrong.
func (s *AccountService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	token, expiresAt, err := s.authn.Attempt(ctx, email, password)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return &AuthResult{
		Message: "Login successful",
		User:    projectUser(user),
		Token:   TokenView{Type: "bearer", Token: token, ExpiresAt: expiresAt},
	}, nil
}

// Profile returns the caller's public projection.
func (s *AccountService) Profile(ctx context.Context, userID uint) (*ProfileResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &ProfileResult{User: projectUser(user)}, nil
}

// ProfileWithTodos returns the profile together with all owned todos.
func (s *AccountService) ProfileWithTodos(ctx context.Context, userID uint) (*ProfileWithTodosResult, error) {
	user, err := s.users.FindByIDWithTodos(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &ProfileWithTodosResult{
		User: UserWithTodosView{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
			Todos:     projectTodoItems(user.Todos),
		},
	}, nil
}

// UpdateProfile applies a partial update, re-checking email uniqueness
// against everyone but the caller when the email changes.
func (s *AccountService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*UpdateProfileResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Email != nil && *input.Email != user.Email {
		taken, err := s.users.EmailExists(ctx, *input.Email, userID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrDuplicateEmail
		}
		fields["email"] = *input.Email
	}
	if input.Password != nil {
		fields["password"] = *input.Password
	}

	updated, err := s.users.Update(ctx, userID, fields)
	if err != nil {
		return nil, err
	}

	return &UpdateProfileResult{
		Message: "Profile updated successfully",
		User:    projectUser(updated),
	}, nil
}

// ListUsers returns every account. Intended as an admin view but, like
// the unscoped todo listing, carries no role check.
func (s *AccountService) ListUsers(ctx context.Context) (*ListUsersResult, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, projectUser(&users[i]))
	}
	return &ListUsersResult{Users: views}, nil
}

// DeleteAccount removes the caller's account and all owned todos.
func (s *AccountService) DeleteAccount(ctx context.Context, userID uint) (*MessageResult, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return nil, err
	}
	return &MessageResult{Message: "Account deleted successfully"}, nil
}

// Logout revokes the presented token by denylisting its id until the
// token would have expired anyway.
func (s *AccountService) Logout(ctx context.Context, jti string, expiresAt time.Time) (*MessageResult, error) {
	if err := s.revoked.Revoke(ctx, jti, expiresAt); err != nil {
		return nil, err
	}
	return &MessageResult{Message: "Logged out successfully"}, nil
}
