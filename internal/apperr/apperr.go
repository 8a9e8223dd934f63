// Package apperr defines the error kinds surfaced by the jobready engine.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error so callers can branch without matching messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidFormat
	KindInvalidOperation
	KindValidationWarning
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalidFormat:
		return "invalid format"
	case KindInvalidOperation:
		return "invalid operation"
	case KindValidationWarning:
		return "validation warning"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. An *Error matches the sentinel of its kind.
var (
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrInvalidFormat    = &Error{Kind: KindInvalidFormat}
	ErrInvalidOperation = &Error{Kind: KindInvalidOperation}
)

// Error carries a Kind, the failing operation and an optional cause.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches sentinels by kind, and other *Error values by kind and message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Message == "" && t.Op == "" {
		return e.Kind == t.Kind
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// NotFound builds a KindNotFound error.
func NotFound(op, message string, cause error) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: message, Cause: cause}
}

// InvalidFormat builds a KindInvalidFormat error.
func InvalidFormat(op, message string, cause error) *Error {
	return &Error{Kind: KindInvalidFormat, Op: op, Message: message, Cause: cause}
}

// InvalidOperation builds a KindInvalidOperation error.
func InvalidOperation(op, message string) *Error {
	return &Error{Kind: KindInvalidOperation, Op: op, Message: message}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
