package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrRateLimited indicates the source exceeded the submission window.
	ErrRateLimited = errors.New("rate limited")
	// ErrForbidden indicates a missing/wrong secret or a disallowed origin.
	// It is deliberately detail-free.
	ErrForbidden = errors.New("forbidden")
	// ErrStorageFailure indicates the persistence write failed. The
	// submission produced no partial state and is safe to retry whole.
	ErrStorageFailure = errors.New("storage failure")
)

// ValidationError carries every field-level rejection of a submission so a
// client can highlight all bad fields at once. Cart-shape and per-item
// problems use the "items" key.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field(s)", len(e.Fields))
}

// NewValidationError builds a single-field ValidationError.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// AsValidation unwraps err into a ValidationError, if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
