package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries a client-facing message and matches ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NewValidationError formats a ValidationError.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
