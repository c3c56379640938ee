// Package errors provides structured error types for signaltower.
//
// Every error raised by the planner carries a [Code] so callers can branch on
// the kind of failure without matching message text. The CLI prints
// [UserMessage]; the HTTP server turns the code into a status.
//
// # Error Codes
//
// The planning core raises two codes:
//   - [ErrCodeInvalidConfiguration]: grid dimensions, blocked fraction or
//     radius out of range
//   - [ErrCodeInvalidArgument]: a path endpoint that is not a tower, or a
//     coordinate outside the grid
//
// Scenario files, plan documents and output paths add the remaining INVALID_*
// codes. [IsInvalid] groups them. NOT_FOUND and UNSUPPORTED come from the
// history store and the server, INTERNAL_ERROR from everything else.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidConfiguration, "radius must be >= 0, got %d", r)
//	if errors.Is(err, errors.ErrCodeInvalidConfiguration) {
//	    ...
//	}
//
//	err = errors.Wrap(errors.ErrCodeInternal, err, "open history %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Planning core
	ErrCodeInvalidConfiguration Code = "INVALID_CONFIGURATION"
	ErrCodeInvalidArgument      Code = "INVALID_ARGUMENT"

	// Scenario files, plan documents and output paths
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// History lookups
	ErrCodeNotFound Code = "NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error renders "CODE: message" followed by ": cause" when there is one.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Is reports whether the outermost *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	e, ok := as(err)
	return ok && e.Code == code
}

// IsInvalid reports whether err carries any INVALID_* code.
func IsInvalid(err error) bool {
	e, ok := as(err)
	return ok && strings.HasPrefix(string(e.Code), "INVALID_")
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := as(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix and cause for
// an *Error, and err.Error() for anything else.
func UserMessage(err error) string {
	if e, ok := as(err); ok {
		return e.Message
	}
	return err.Error()
}

func as(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
