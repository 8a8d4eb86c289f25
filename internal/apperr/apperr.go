// Package apperr carries the error taxonomy surfaced to clients. Every
// mutating operation converts its failures into one of these kinds; nothing
// past the handler boundary sees a raw error.
package apperr

import "errors"

// Kind classifies a failure.
type Kind int

const (
	// Internal is the fallback for upstream failures (store, generator).
	Internal Kind = iota
	// Invalid marks malformed input: short username, bad color, missing field.
	Invalid
	// Unauthenticated marks calls that require a session and have none.
	Unauthenticated
	// NotOwner marks calls by an authenticated user who lacks the required
	// ownership or write grant.
	NotOwner
	// NotFound marks a missing category, user, share, assignee or todo.
	NotFound
	// Conflict marks duplicates: username taken, grant already exists.
	Conflict
)

// Error pairs a kind with a short human-readable reason.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a cause to an Error of the given kind.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err, defaulting to Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
