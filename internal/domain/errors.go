package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by services and repositories.
var (
	// ErrNotFound is returned when an event (or any other record) does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateParticipation is returned when a user already submitted a participation for an event.
	ErrDuplicateParticipation = errors.New("participation already submitted for this event")
)

// ValidationError reports a missing or invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Required returns a ValidationError for a missing required field.
func Required(field string) *ValidationError {
	return &ValidationError{Field: field}
}

// Invalid returns a ValidationError for a field that is present but unacceptable.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
