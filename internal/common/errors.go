// Package common defines shared constants and errors used across the
// authentication service layers. Callers should use errors.Is to match
// these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Token codec outcomes. They never leave the service layer as is:
	// callers translate them into a Kind.
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)

// Kind classifies a request-scoped failure. The transport maps every kind
// to a response status.
type Kind int

const (
	KindInternal Kind = iota
	KindAuthenticationFailed
	KindAlreadyExists
	KindBadRequest
	KindRefreshExpired
	KindRefreshInvalid
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindAuthenticationFailed:
		return "authentication_failed"
	case KindAlreadyExists:
		return "already_exists"
	case KindBadRequest:
		return "bad_request"
	case KindRefreshExpired:
		return "refresh_expired"
	case KindRefreshInvalid:
		return "refresh_invalid"
	case KindValidation:
		return "validation"
	default:
		return "internal"
	}
}

// Error is a kinded failure with a client-facing message. Err keeps the
// underlying cause for logs and is never rendered to clients.
type Error struct {
	Kind    Kind
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a match when target is an *Error of the same kind, so the
// sentinels below match errors carrying any message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Kind sentinels for errors.Is.
var (
	ErrAuthenticationFailed = &Error{Kind: KindAuthenticationFailed, Message: "Unauthenticated"}
	ErrAlreadyExists        = &Error{Kind: KindAlreadyExists, Message: "Already Exist"}
	ErrBadRequest           = &Error{Kind: KindBadRequest, Message: "Bad request"}
	ErrRefreshExpired       = &Error{Kind: KindRefreshExpired, Message: "Refresh token has been expired."}
	ErrRefreshInvalid       = &Error{Kind: KindRefreshInvalid, Message: "Refresh token is invalid."}
	ErrValidation           = &Error{Kind: KindValidation, Message: "Validation error"}
	ErrInternal             = &Error{Kind: KindInternal, Message: "Internal error"}
)

// NewError builds a kinded error with a custom message.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError builds a kinded error that keeps err as its cause.
func WrapError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// AuthenticationFailed hides the cause from clients; bad credentials and
// unusable tokens look the same.
func AuthenticationFailed(cause error) *Error {
	return WrapError(KindAuthenticationFailed, ErrAuthenticationFailed.Message, cause)
}

func BadRequest(message string) *Error {
	return NewError(KindBadRequest, message)
}

func Internal(cause error) *Error {
	return WrapError(KindInternal, ErrInternal.Message, cause)
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal for anything else.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
