package model

import (
	"errors"
	"fmt"
)

// ErrSourceDisabled marks a request against a source that is disabled or
// not configured. It is surfaced quietly, never retried.
var ErrSourceDisabled = errors.New("source disabled")

// UpstreamError represents a failed or malformed backend call.
type UpstreamError struct {
	Source  string
	Message string
	Err     error
}

func (e UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %s", e.Source, e.Message)
}

func (e UpstreamError) Unwrap() error { return e.Err }

// NewUpstreamError constructs UpstreamError.
func NewUpstreamError(source, message string, err error) UpstreamError {
	return UpstreamError{Source: source, Message: message, Err: err}
}

// IsUpstreamError checks if an error is an UpstreamError (including wrapped errors)
func IsUpstreamError(err error) bool {
	var ue UpstreamError
	return errors.As(err, &ue)
}

// NotFoundError represents a missing upstream resource (container, folder,
// media-server instance).
type NotFoundError struct {
	Field   string
	Message string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("not found %s: %s", e.Field, e.Message)
}

// NewNotFoundError constructs NotFoundError
func NewNotFoundError(field, message string) NotFoundError {
	return NotFoundError{Field: field, Message: message}
}

// IsNotFoundError checks if error is NotFoundError
func IsNotFoundError(err error) bool {
	var ne NotFoundError
	return errors.As(err, &ne)
}

// ValidationError represents a malformed listing request.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) ValidationError {
	return ValidationError{Field: field, Message: message}
}

// IsValidationError checks if an error is a validation error (including wrapped errors)
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
