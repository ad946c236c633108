package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure for the partial-failure policy. The
// history layer dispatches on kind, never on concrete status codes.
type ErrorKind string

const (
	// ErrorKindValidation means the caller passed bad input; raised before
	// any network call.
	ErrorKindValidation ErrorKind = "validation"
	// ErrorKindNotFound means the resource vanished between the metadata
	// fetch and the detail fetch. A benign race.
	ErrorKindNotFound ErrorKind = "not-found"
	// ErrorKindAuth means the credentials were rejected.
	ErrorKindAuth ErrorKind = "auth"
	// ErrorKindNetwork means connectivity failed or the request timed out.
	ErrorKindNetwork ErrorKind = "network"
	// ErrorKindServer means the backend failed on its side.
	ErrorKindServer ErrorKind = "server"
	// ErrorKindCanceled means the caller aborted the operation.
	ErrorKindCanceled ErrorKind = "canceled"
)

// Error is a classified failure from the thread backend or the transport.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewError builds a classified error without an underlying cause.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError builds a classified error around an underlying cause.
func WrapError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// StatusError builds a classified error from an HTTP status code.
func StatusError(kind ErrorKind, status int, message string) *Error {
	return &Error{Kind: kind, Status: status, Message: message}
}

// KindOf returns the kind of a classified error, or an empty kind when err
// does not carry one.
func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// IsKind reports whether err is a classified error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
