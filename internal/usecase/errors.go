package usecase

import (
	"errors"
	"fmt"
)

// Kind is the stable category of a service failure. The HTTP layer maps
// each kind to one status code.
type Kind int

const (
	KindInternal Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindInvalidRequest
	KindSeatConflict
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindInvalidRequest:
		return "invalid_request"
	case KindSeatConflict:
		return "seat_conflict"
	default:
		return "internal"
	}
}

// Error is returned by every service operation that fails for a reason the
// caller should see. Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
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

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// works regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

var (
	ErrUnauthorized   = &Error{Kind: KindUnauthorized}
	ErrForbidden      = &Error{Kind: KindForbidden}
	ErrNotFound       = &Error{Kind: KindNotFound}
	ErrInvalidRequest = &Error{Kind: KindInvalidRequest}
	ErrSeatConflict   = &Error{Kind: KindSeatConflict}
)

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func unauthorized(message string) error { return newError(KindUnauthorized, message) }

func forbidden(message string) error { return newError(KindForbidden, message) }

func notFound(message string) error { return newError(KindNotFound, message) }

func invalidRequest(message string) error { return newError(KindInvalidRequest, message) }

func seatConflict(message string, err error) error {
	return &Error{Kind: KindSeatConflict, Message: message, Err: err}
}

// internal wraps an unexpected failure. The message is generic and err is
// kept for logs only.
func internal(message string, err error) error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err, KindInternal for foreign errors
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the client facing message of err
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindInternal && e.Message != "" {
		return e.Message
	}
	return "Internal server error"
}
