package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an application error so callers (and the HTTP layer)
// can react without string matching.
type ErrorKind string

const (
	KindNotFound         ErrorKind = "not_found"
	KindForbidden        ErrorKind = "forbidden"
	KindConflict         ErrorKind = "conflict"
	KindInvalidInput     ErrorKind = "invalid_input"
	KindInvalidDateRange ErrorKind = "invalid_date_range"
	KindInvalidState     ErrorKind = "invalid_state"
	KindInternal         ErrorKind = "internal"
)

// Error is the typed error carried across service boundaries. None of these
// represent transient failures; they are never retried internally.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewNotFoundError reports that a referenced entity does not exist.
func NewNotFoundError(resource, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", resource, id)}
}

// NewForbiddenError reports that the requester lacks the required relationship.
func NewForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NewConflictError reports an operation attempted against stale or terminal state.
func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewInvalidInputError reports a malformed or missing input value.
func NewInvalidInputError(message string) *Error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

// NewInvalidDateRangeError reports a booking window whose start falls after its end.
func NewInvalidDateRangeError(message string) *Error {
	return &Error{Kind: KindInvalidDateRange, Message: message}
}

// NewInvalidStateError reports an entity whose state disallows the operation.
func NewInvalidStateError(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

// KindOf extracts the ErrorKind from err, or KindInternal for untyped errors.
func KindOf(err error) ErrorKind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
