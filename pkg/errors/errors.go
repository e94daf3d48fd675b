// Package errors carries coded errors shared by the CLI and the server.
//
// Codes are stable strings: INVALID_* for rejected input (HTTP 400),
// NOT_FOUND for unknown routes, NETWORK_ERROR and TIMEOUT for unreachable
// cache backends or expired renders, UNSUPPORTED for outputs a chart or
// host cannot produce, and INTERNAL_ERROR for the rest.
//
//	err := errors.New(errors.ErrCodeInvalidChart, "unknown chart %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidChart) { ... }
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeInvalidChart      Code = "INVALID_CHART"
	ErrCodeInvalidDataset    Code = "INVALID_DATASET"
	ErrCodeInvalidRange      Code = "INVALID_RANGE"
	ErrCodeInvalidMode       Code = "INVALID_MODE"
	ErrCodeInvalidFormat     Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle      Code = "INVALID_STYLE"
	ErrCodeInvalidDimensions Code = "INVALID_DIMENSIONS"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"

	ErrCodeNotFound    Code = "NOT_FOUND"
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
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
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps an error to the status code the server responds with.
// Errors without a code are internal errors.
func HTTPStatus(err error) int {
	switch code := GetCode(err); {
	case code == "":
		return http.StatusInternalServerError
	case code == ErrCodeNotFound:
		return http.StatusNotFound
	case code == ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case code == ErrCodeNetwork:
		return http.StatusBadGateway
	case code == ErrCodeUnsupported:
		return http.StatusNotImplemented
	case strings.HasPrefix(string(code), "INVALID_"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
