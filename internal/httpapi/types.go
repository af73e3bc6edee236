package httpapi

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
)

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest is a partial profile update; absent fields stay
// untouched.
type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// CreateTodoRequest is the todo creation payload.
type CreateTodoRequest struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
	Done  bool   `json:"done"`
}

// UpdateTodoRequest is a partial todo update.
type UpdateTodoRequest struct {
	Title *string `json:"title"`
	Desc  *string `json:"desc"`
	Done  *bool   `json:"done"`
}

// ErrorResponse is the uniform failure body.
type ErrorResponse struct {
	Message string `json:"message"`
}

func (r *RegisterRequest) validate() error {
	name := strings.TrimSpace(r.Name)
	if len(name) < 2 || len(name) > 100 {
		return fmt.Errorf("name must be between 2 and 100 characters")
	}
	r.Name = name

	if err := validateEmail(r.Email); err != nil {
		return err
	}
	r.Email = strings.TrimSpace(r.Email)

	return validatePassword(r.Password)
}

func (r *LoginRequest) validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return fmt.Errorf("email and password are required")
	}
	return nil
}

func (r *UpdateProfileRequest) validate() error {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if len(name) < 2 || len(name) > 100 {
			return fmt.Errorf("name must be between 2 and 100 characters")
		}
		*r.Name = name
	}
	if r.Email != nil {
		if err := validateEmail(*r.Email); err != nil {
			return err
		}
		*r.Email = strings.TrimSpace(*r.Email)
	}
	if r.Password != nil {
		if err := validatePassword(*r.Password); err != nil {
			return err
		}
	}
	return nil
}

func (r *CreateTodoRequest) validate() error {
	if len(r.Title) > 255 {
		return fmt.Errorf("title must not exceed 255 characters")
	}
	if len(r.Desc) > 1000 {
		return fmt.Errorf("description must not exceed 1000 characters")
	}
	return nil
}

func (r *UpdateTodoRequest) validate() error {
	if r.Title != nil && len(*r.Title) > 255 {
		return fmt.Errorf("title must not exceed 255 characters")
	}
	if r.Desc != nil && len(*r.Desc) > 1000 {
		return fmt.Errorf("description must not exceed 1000 characters")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if len(email) > 255 {
		return fmt.Errorf("email must not exceed 255 characters")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("email must be a valid email address")
	}
	return nil
}

// validatePassword enforces the registration password policy: 6-128
// characters with at least one lowercase letter, one uppercase letter
// and one digit.
func validatePassword(password string) error {
	if len(password) < 6 || len(password) > 128 {
		return fmt.Errorf("password must be between 6 and 128 characters")
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLower || !hasUpper || !hasDigit {
		return fmt.Errorf("password must contain at least one lowercase letter, one uppercase letter and one digit")
	}
	return nil
}

func validStatus(status string) bool {
	switch status {
	case "", "all", "completed", "pending":
		return true
	}
	return false
}
