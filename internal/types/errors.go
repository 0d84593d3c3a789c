package types

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the registry or a storage backend
// matches exactly one of these with errors.Is.
var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrState       = errors.New("invalid state")
	ErrPersistence = errors.New("persistence error")
	ErrFormat      = errors.New("format error")
)

// Error is a categorised failure with a human-readable reason.
// Kind is one of the Err* sentinels above; Err is the optional cause
// (an I/O error, a JSON syntax error, validator.ValidationErrors...).
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Errorf builds an *Error of the given kind with a formatted reason.
func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind around cause.
func Wrap(kind error, cause error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: cause}
}

// KindOf returns the sentinel kind of err, or nil when err is not one of ours.
func KindOf(err error) error {
	for _, kind := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrState, ErrPersistence, ErrFormat} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
