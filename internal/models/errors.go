package models

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when the backend rejects the bearer credential.
// The caller surfaces it; there is no automatic retry or token refresh.
var ErrUnauthorized = errors.New("backend rejected credentials")

// ValidationError reports input that is rejected before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// FetchError wraps a transport failure, timeout or 5xx from the backend.
type FetchError struct {
	Op         string // e.g. "GET /days/"
	StatusCode int    // 0 when the request never got a response
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ConflictError reports a state conflict the server resolved or refused,
// e.g. assigning a schedule to a room that already has an active one.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }
