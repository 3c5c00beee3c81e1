// Package apperror defines the error taxonomy shared by every layer.
//
// Repositories and services return *AppError values; only the handler layer
// decides which HTTP status each one becomes. Message is what the client sees,
// so it must never contain SQL, file paths or other internals.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)

// AppError pairs a sentinel (matched with errors.Is) with the message sent to
// the client. Field names the offending input for validation errors.
type AppError struct {
	Err     error
	Message string
	Field   string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that an entity is absent, e.g. "planet does not exist".
func NotFound(resource string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s does not exist", resource),
	}
}

// NotInFavorites reports that a favorite cannot be removed because either the
// entity or the user's like row for it is missing.
func NotInFavorites(resource string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s does not exist in favorites", resource),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// AlreadyAdded reports a favorite that the user already has.
func AlreadyAdded(resource string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s already added", resource),
	}
}

// Conflict reports a write that would break a uniqueness rule,
// e.g. a second user with the same email.
func Conflict(resource string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s already exists", resource),
	}
}
