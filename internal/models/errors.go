// ABOUTME: Error taxonomy shared across storage and tracker engines.
// ABOUTME: Sentinels for expected conditions plus a typed validation error.
package models

import (
	"errors"
	"fmt"
)

// Expected conditions callers branch on with errors.Is.
var (
	ErrNotFound    = errors.New("record not found")
	ErrNotLoggedIn = errors.New("no user is signed in")
)

// ValidationError reports an invalid field or kind combination. It is
// returned before any write happens, so the store is untouched when a
// caller sees one.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validationf builds a ValidationError for a field.
func Validationf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
