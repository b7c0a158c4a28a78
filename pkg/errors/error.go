// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters, configuration, and metadata shape
//   - Series/data errors (200-299): Empty series, failed background computations
//   - Trading errors (500-599): Order submission and position lookup failures
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeEmptySeries, "series has no bars")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeProducerNotFound, "no producer for key %s", key)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeComputeFailed, "bar sequence computation failed", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeEmptySeries) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// TypeMismatchError represents an error when a series specialization requests
// metadata of a shape the series was not constructed with.
type TypeMismatchError struct {
	Key      string // Series key the lookup was made against
	Expected string // Expected metadata shape
	Message  string // Human-readable message
}

// NewTypeMismatchError creates a new TypeMismatchError.
func NewTypeMismatchError(key, expected, message string) *TypeMismatchError {
	return &TypeMismatchError{
		Key:      key,
		Expected: expected,
		Message:  message,
	}
}

// NewTypeMismatchErrorf creates a new TypeMismatchError with a formatted message.
func NewTypeMismatchErrorf(key, expected, format string, args ...any) *TypeMismatchError {
	return &TypeMismatchError{
		Key:      key,
		Expected: expected,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return e.Message
}

// IsTypeMismatchError checks if an error is a TypeMismatchError.
// It uses errors.As to check the error chain.
func IsTypeMismatchError(err error) bool {
	var mismatchErr *TypeMismatchError

	return errors.As(err, &mismatchErr)
}
