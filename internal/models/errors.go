package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a group or member does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is the base error for rejected user input.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError describes why an input was rejected.
// errors.Is(err, ErrInvalidInput) holds for every ValidationError.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError builds a ValidationError with a formatted reason.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}
