package types

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("invalid input")
	ErrMissingField     = errors.New("missing field")
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
)

// ValidationError reports a malformed or out-of-range input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// MissingFieldError reports a field an algorithm requires but the input lacks.
type MissingFieldError struct {
	Field     string
	Algorithm Algorithm
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%v: %s is required by %s", ErrMissingField, e.Field, e.Algorithm.Title())
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// FieldOf extracts the offending field name from a validation or
// missing-field error, or "" for anything else.
func FieldOf(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Field
	}
	var me *MissingFieldError
	if errors.As(err, &me) {
		return me.Field
	}
	return ""
}
