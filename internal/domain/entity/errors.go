package entity

import (
	"errors"
	"fmt"
)

// ErrValidationFailed indicates that a decoded payload did not match the expected schema.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// fieldError wraps a ValidationError so that both errors.Is(err, ErrValidationFailed)
// and errors.As(err, **ValidationError) hold for the result.
func fieldError(field, message string) error {
	return fmt.Errorf("%w: %w", ErrValidationFailed, &ValidationError{Field: field, Message: message})
}

// prefixField rewrites a nested field error so the reported field is a dotted path.
func prefixField(prefix string, err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return fieldError(prefix+"."+ve.Field, ve.Message)
	}
	return fmt.Errorf("%s: %w", prefix, err)
}
