package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Sentinel errors the HTTP layer maps onto status codes. Cross-user
// access surfaces as ErrNotFound so existence never leaks.
var (
	ErrNotFound           = errors.New("not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("incorrect username or password")
)

// ValidationError marks malformed or conflicting input.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// notFound translates a missing-record lookup into ErrNotFound, naming
// the resource. Other errors pass through unchanged.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return err
}
