// Package errors provides structured error types for scatterspec.
//
// Every failure the tool can hit is fatal, but callers still need to tell them
// apart: the CLI prints usage for [ErrCodeUsage], and tests assert that a bad
// layer value surfaces as [ErrCodeParse] rather than a generic I/O failure.
//
// # Error Codes
//
//   - USAGE_ERROR: wrong number of positional arguments or bad flag values
//   - PARSE_ERROR: a measurement, layer, size or alpha value failed numeric coercion
//   - SCHEMA_ERROR: a specification file is missing a required column
//   - FILE_NOT_FOUND / IO_ERROR: input could not be opened, output could not be written
//   - RENDER_ERROR: a rendering backend failed to produce an artifact
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSchema, "cannot find column %q in %s", col, path)
//	if errors.Is(err, errors.ErrCodeSchema) {
//	    // ...
//	}
//
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeUsage        Code = "USAGE_ERROR"
	ErrCodeParse        Code = "PARSE_ERROR"
	ErrCodeSchema       Code = "SCHEMA_ERROR"
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// File errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeIO           Code = "IO_ERROR"

	// Output errors
	ErrCodeRender Code = "RENDER_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// It unwraps the error chain looking for an *Error with a matching code.
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
// For *Error types, returns the message (and cause) without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
