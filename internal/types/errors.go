package types

import (
	"errors"
	"fmt"
)

// Stable machine-readable error codes carried on every error response.
const (
	CodeValidation = "validation_error"
	CodeNotFound   = "not_found"
	CodeInternal   = "internal_error"
)

var (
	// ErrPlanNotFound means the id does not resolve to an active plan.
	ErrPlanNotFound = errors.New("diet plan not found")

	// ErrWrongOwner means the plan exists but belongs to someone else.
	// Responses report it with the same shape as ErrPlanNotFound so
	// callers cannot probe for foreign plan ids.
	ErrWrongOwner = errors.New("diet plan belongs to a different owner")

	// ErrUpsertConflict marks a lost upsert race. The store retries it
	// internally; it surfaces only after the retry budget is spent.
	ErrUpsertConflict = errors.New("concurrent upsert conflict")
)

// ValidationError reports malformed input, naming the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
