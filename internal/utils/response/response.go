// Package response provides helpers for writing consistent outcome lines
// to the console.
//
// Every shell handler reports either success or failure. Rather than
// repeating the same formatting in every handler we centralise it here, so
// a failure always looks like:
//
//	Error: student with ID S1 already exists.
package response

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aanand-mishra/student-management/internal/types"
	"github.com/go-playground/validator/v10"
)

// Response is the outcome of one shell operation.
type Response struct {
	Status  string // "ok", "notice" or "error"
	Message string // success text, empty on error
	Error   string // human-readable failure reason
}

// Status string constants. Use these instead of raw string literals so
// a typo is caught by the compiler.
const (
	StatusOK     = "ok"
	StatusNotice = "notice"
	StatusError  = "error"
)

// Write prints r as a single line.
func Write(w io.Writer, r Response) error {
	var line string
	if r.Status == StatusError {
		line = "Error: " + sentence(r.Error)
	} else {
		line = r.Message
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

// OK builds a success outcome.
func OK(format string, args ...any) Response {
	return Response{Status: StatusOK, Message: fmt.Sprintf(format, args...)}
}

// Notice builds an outcome that changed nothing but is not a failure,
// printed without the "Error:" prefix.
func Notice(format string, args ...any) Response {
	return Response{Status: StatusNotice, Message: fmt.Sprintf(format, args...)}
}

// GeneralError wraps any Go error into the standard Response shape.
//
// Validation failures carrying validator errors are rendered per field
// with ValidationError. Other *types.Error values keep their own reason
// without the "pkg.Func:" prefixes added by wrapping on the way up.
func GeneralError(err error) Response {
	var verrs validator.ValidationErrors
	var typed *types.Error

	switch {
	case errors.As(err, &typed) && typed.Kind != types.ErrValidation:
		return Response{Status: StatusError, Error: typed.Error()}
	case errors.As(err, &verrs):
		return ValidationError(verrs)
	case typed != nil:
		return Response{Status: StatusError, Error: typed.Error()}
	default:
		return Response{Status: StatusError, Error: err.Error()}
	}
}

// ValidationError converts a slice of validator.FieldError values into
// a single human-readable Response.
//
// Example output:
//
//	Error: name cannot be empty, age must be a positive number.
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages,
				fmt.Sprintf("%s cannot be empty", e.Field()))
		case "gt":
			errMessages = append(errMessages,
				fmt.Sprintf("%s must be a positive number", e.Field()))
		default:
			errMessages = append(errMessages,
				fmt.Sprintf("%s is invalid", e.Field()))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
	}
}

func sentence(s string) string {
	if s == "" || strings.HasSuffix(s, ".") {
		return s
	}
	return s + "."
}
