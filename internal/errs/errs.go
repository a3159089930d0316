// Package errs defines the error kinds returned by the service layer.
//
// Callers match them with errors.Is / errors.As:
//   - ErrNotFound: the requested identity does not exist.
//   - *ValidationError: the supplied entity breaks a required/length constraint.
//   - *PersistenceError: the store rejected or failed an operation.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned (wrapped) when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// NotFound wraps ErrNotFound with the entity name and id.
func NotFound(entity string, id uint) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError carries every failed field of one entity.
type ValidationError struct {
	Errors []FieldError `json:"errors"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Error)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the message for field, or "" if it passed.
func (e *ValidationError) Field(field string) string {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return fe.Error
		}
	}
	return ""
}

// PersistenceError wraps a store failure with the operation that hit it.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err as a *PersistenceError, passing nil through.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
