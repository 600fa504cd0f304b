// Package apperr defines the error categories exposed by the API contract.
// Every business failure falls into one of three kinds; handlers map them
// to HTTP statuses. Authorization failures are reported as NotFound so the
// API never confirms the existence of objects the caller does not own.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the contract-level category of an error.
type Kind int

const (
	// KindNotFound: the referenced object does not exist or does not
	// belong to the caller.
	KindNotFound Kind = iota + 1
	// KindBadRequest: structurally invalid input.
	KindBadRequest
	// KindConflict: valid input that violates a business rule in the
	// current state.
	KindConflict
)

// Error is a categorized domain error with a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// NotFound builds a KindNotFound error.
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// BadRequest builds a KindBadRequest error.
func BadRequest(format string, args ...any) error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Conflict builds a KindConflict error.
func Conflict(format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the category of err, or 0 when err is not a domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsNotFound reports whether err is a KindNotFound domain error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsConflict reports whether err is a KindConflict domain error.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// IsBadRequest reports whether err is a KindBadRequest domain error.
func IsBadRequest(err error) bool { return KindOf(err) == KindBadRequest }
