package service

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthentication covers bad credentials and unknown, used or expired
	// refresh tokens alike.
	ErrAuthentication = errors.New("authentication failed")

	ErrUsernameTaken = errors.New("username taken")

	// ErrNotFound is returned both for absent rows and rows owned by
	// another user.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports malformed input on a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
