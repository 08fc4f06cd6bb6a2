// Package gameerr defines the typed failure kinds every engine operation
// returns. Nothing leaves the engine as an unstructured error: repositories
// and app layers wrap failures into one of the four kinds so callers (and
// the HTTP gateway) can branch on them.
package gameerr

import (
	"errors"
	"fmt"
)

// Kind is the machine-readable failure class.
type Kind string

const (
	// KindValidation marks malformed or insufficient input, surfaced
	// before any write happens.
	KindValidation Kind = "VALIDATION"
	// KindStateConflict marks an operation against a session or call in
	// an incompatible status. Callers re-fetch and retry.
	KindStateConflict Kind = "STATE_CONFLICT"
	// KindNotFound marks a missing session, call, or team reference.
	KindNotFound Kind = "NOT_FOUND"
	// KindPersistence marks a store failure after validation passed.
	// Safe to retry with backoff.
	KindPersistence Kind = "PERSISTENCE"
)

// Error is the engine's structured error type.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Validationf builds a validation error.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// StateConflictf builds a state-conflict error.
func StateConflictf(format string, args ...any) *Error {
	return &Error{Kind: KindStateConflict, Message: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a not-found error.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Persistence wraps a store failure.
func Persistence(message string, cause error) *Error {
	return &Error{Kind: KindPersistence, Message: message, Cause: cause}
}

// KindOf extracts the Kind from err, walking the wrap chain. Unclassified
// errors report KindPersistence, the only kind safe to blame on the store.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindPersistence
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
