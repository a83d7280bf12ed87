package repository

import (
	"errors"
	"fmt"
)

// Typed failures every repository profile maps onto. Anything else reaching
// a caller is a bug in the profile, not in the caller.
var (
	// ErrNotFound: the referenced resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized: the backing service rejected the caller's credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable: the backing service could not be reached. Timeouts
	// are reported as this.
	ErrUnavailable = errors.New("service unavailable")
)

// ConflictError is a dependency-blocked mutation, e.g. deleting a course
// that still has enrollments. Reason carries the server's explanation and
// must be surfaced to the end user verbatim.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Reason)
}

// ValidationError is a payload the backing service rejected, keyed by field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation rejected: %d invalid field(s)", len(e.Fields))
}

// IsConflict reports whether err is a ConflictError and returns its reason.
func IsConflict(err error) (string, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce.Reason, true
	}
	return "", false
}
