package service

import (
	"errors"
	"fmt"
)

var (
	// ErrDigestNotFound is returned when no digest row exists for the requested day.
	ErrDigestNotFound = errors.New("digest not found")
	// ErrDigestEmpty is returned when an operation needs a digest with items.
	ErrDigestEmpty = errors.New("digest has no items")
	// ErrItemNotFound is returned when an analysis targets an unknown item.
	ErrItemNotFound = errors.New("item not found")
	// ErrRunInProgress is returned when another automation run holds the lock.
	ErrRunInProgress = errors.New("another automation run is in progress")
	// ErrRunNotFound is returned for unknown automation run ids.
	ErrRunNotFound = errors.New("automation run not found")
)

// ValidationError reports a malformed request. It is detected before any query runs.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
