package services

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped to HTTP statuses at the handler layer.
var (
	// ErrNotFound means the requested entity does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict means the operation conflicts with the entity's current state
	ErrConflict = errors.New("conflict")
	// ErrPreconditionFailed means a required prior state is missing
	ErrPreconditionFailed = errors.New("precondition failed")
)

// ValidationError reports a rejected input field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
