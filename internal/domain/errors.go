package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidStatus is returned when a task status is not one of the known values.
	ErrInvalidStatus = errors.New("invalid task status")

	// ErrInvalidPriority is returned when a task priority is not one of the known values.
	ErrInvalidPriority = errors.New("invalid task priority")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// FieldError describes a single validation failure on a named input field.
// The Field is the wire name of the field (the JSON key or query parameter),
// not the Go struct field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is an accumulating list of field-level validation failures.
// It wraps ErrValidation so callers can detect it with errors.Is.
type ValidationErrors struct {
	Fields []FieldError
}

// NewValidationErrors creates an empty ValidationErrors accumulator.
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{}
}

// Add records a validation failure for the given field.
func (v *ValidationErrors) Add(field, message string) {
	v.Fields = append(v.Fields, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any failures have been recorded.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Fields) > 0
}

// ByField groups the recorded messages by field name, preserving insertion
// order within each field. This is the shape the API error body uses.
func (v *ValidationErrors) ByField() map[string][]string {
	out := make(map[string][]string, len(v.Fields))
	for _, fe := range v.Fields {
		out[fe.Field] = append(out[fe.Field], fe.Message)
	}
	return out
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(v.Fields))
	for _, fe := range v.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return fmt.Sprintf("%v: %s", ErrValidation, strings.Join(parts, "; "))
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (v *ValidationErrors) Unwrap() error {
	return ErrValidation
}
