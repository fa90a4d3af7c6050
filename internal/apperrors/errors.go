package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrStorage indicates that reading or writing a collection failed.
var ErrStorage = errors.New("storage error")

// ErrInternal indicates an unexpected failure inside the service.
var ErrInternal = errors.New("internal error")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrLocked indicates that another posting currently holds the obligation.
var ErrLocked = errors.New("resource is locked by another operation")

// ValidationError describes a single rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// PostingError is returned when a payment posting fails part way. Committed
// lists the steps that were written before Step failed; they are not undone.
type PostingError struct {
	Step      string
	Committed []string
	Err       error
}

func (e *PostingError) Error() string {
	committed := "none"
	if len(e.Committed) > 0 {
		committed = strings.Join(e.Committed, ",")
	}
	return fmt.Sprintf("posting failed at step %q (committed: %s): %v", e.Step, committed, e.Err)
}

// Unwrap exposes both ErrStorage and the underlying cause.
func (e *PostingError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}

// AppError carries an HTTP-ish status code alongside a wrapped error.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
