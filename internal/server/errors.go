package server

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// opError carries the client-facing message for one of the sentinel
// classes above, so handlers can match with errors.Is and still surface
// a useful body.
type opError struct {
	kind error
	msg  string
}

func (e *opError) Error() string { return e.msg }
func (e *opError) Unwrap() error { return e.kind }

func notFound(format string, args ...any) error {
	return &opError{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

func forbidden(msg string) error {
	return &opError{kind: ErrForbidden, msg: msg}
}

func conflict(msg string) error {
	return &opError{kind: ErrConflict, msg: msg}
}

func badTransition(from, to Status) error {
	if from == StatusNone {
		return &opError{kind: ErrInvalidTransition, msg: fmt.Sprintf("cannot create checkout with status %q", to)}
	}
	return &opError{kind: ErrInvalidTransition, msg: fmt.Sprintf("cannot move checkout from %q to %q", from, to)}
}

// ValidationError is a field-level input failure detected before the
// core ever sees the data.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Reason }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
