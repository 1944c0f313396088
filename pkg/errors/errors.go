// Package errors provides structured error types for svgring.
//
// Every failure that can reach the operator carries a machine-readable [Code],
// so the CLI can pick an exit status and print a message without string matching.
//
// # Error Codes
//
// Codes follow the same naming convention throughout:
//   - INVALID_*: malformed input (arguments, transforms, config, documents)
//   - *_NOT_FOUND: a required resource is absent
//   - UNSUPPORTED_*: input that is well-formed but deliberately refused
//   - NON_INVERTIBLE: a degenerate coordinate system
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnsupportedCommand, "unsupported transform command %q", name)
//	if errors.Is(err, errors.ErrCodeUnsupportedCommand) {
//	    // ...
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Invocation errors
	ErrCodeUsage Code = "INVALID_USAGE"

	// Input validation errors
	ErrCodeInvalidArguments  Code = "INVALID_ARGUMENTS"
	ErrCodeInvalidTransform  Code = "INVALID_TRANSFORM"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"
	ErrCodeInvalidDocument   Code = "INVALID_DOCUMENT"
	ErrCodeInvalidIdentifier Code = "INVALID_IDENTIFIER"
	ErrCodeInvalidPath       Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeTemplateNotFound Code = "TEMPLATE_NOT_FOUND"
	ErrCodeElementNotFound  Code = "ELEMENT_NOT_FOUND"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"

	// Geometry errors
	ErrCodeUnsupportedCommand Code = "UNSUPPORTED_COMMAND"
	ErrCodeNonInvertible      Code = "NON_INVERTIBLE"

	// Internal errors
	ErrCodeIO       Code = "IO_ERROR"
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Process exit statuses.
const (
	ExitOK    = 0
	ExitFatal = 1
	ExitUsage = 2
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It checks the outermost *Error in the chain.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}

// ExitCode maps an error to the process exit status.
// Usage errors exit with 2; every other failure is fatal and exits with 1.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case Is(err, ErrCodeUsage):
		return ExitUsage
	default:
		return ExitFatal
	}
}
