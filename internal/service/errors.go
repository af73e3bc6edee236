package service

import "errors"

// Failure kinds produced by the services. The HTTP layer maps these to
// status codes with errors.Is; no other error classification exists.
var (
	ErrTodoNotFound = errors.New("todo not found")
	ErrUserNotFound = errors.New("user not found")

	ErrAccessDenied = errors.New("access denied: this todo belongs to another user")

	ErrEmptyTitle       = errors.New("todo title cannot be empty")
	ErrEmptyDescription = errors.New("todo description cannot be empty")
	ErrEmptySearchTerm  = errors.New("search term cannot be empty")

	ErrDuplicateEmail     = errors.New("email address is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
