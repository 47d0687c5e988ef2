// Package errors defines the error values shared across the orlando packages.
package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the orlando library

var (
	// ErrInvalidConfiguration indicates that a transformation or pipeline was
	// built with arguments that violate its contract (negative counts,
	// non-positive window sizes, nil functions).
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrEmptySource indicates that a collector needing at least one element
	// was run over a source that produced none.
	ErrEmptySource = errors.New("empty source")
)

// ValidationError describes a rejected construction argument.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError without a hint.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a remediation hint and returns the same error for chaining.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap lets callers match any ValidationError with errors.Is(err, ErrInvalidConfiguration).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// IsValidationError reports whether err is, or wraps, a *ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// IsEmptySource reports whether err signals a collector ran over an empty source.
func IsEmptySource(err error) bool {
	return errors.Is(err, ErrEmptySource)
}
