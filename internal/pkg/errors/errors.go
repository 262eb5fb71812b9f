// Package errors provides custom error types and error handling utilities.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes.
const (
	// Input errors.
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodePrecondition = "PRECONDITION_FAILED"
	CodeParse        = "PARSE_ERROR"

	// Runtime errors.
	CodeIO       = "IO_ERROR"
	CodeInternal = "INTERNAL_ERROR"
)

// Process exit codes reported by the CLI.
const (
	ExitOK       = 0
	ExitInternal = 1
	ExitUsage    = 2
	ExitInput    = 3
)

// AppError represents an application error with code and details.
type AppError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
	Err     error             `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code for this error.
func (e *AppError) ExitCode() int {
	switch e.Code {
	case CodeValidation:
		return ExitUsage
	case CodeNotFound, CodePrecondition, CodeParse, CodeIO:
		return ExitInput
	default:
		return ExitInternal
	}
}

// New creates a new AppError.
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with an AppError.
func Wrap(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetail adds a single detail to the error.
func (e *AppError) WithDetail(key, value string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// Convenience constructors.

// ValidationError creates a validation error.
func ValidationError(message string) *AppError {
	return New(CodeValidation, message)
}

// NotFoundError creates a not found error.
func NotFoundError(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

// PreconditionError creates a precondition violation error.
func PreconditionError(message string) *AppError {
	return New(CodePrecondition, message)
}

// ParseError creates a parse error for a location in a file.
func ParseError(file string, line int, message string) *AppError {
	return New(CodeParse, message).
		WithDetail("file", file).
		WithDetail("line", fmt.Sprintf("%d", line))
}

// IOError creates a filesystem error.
func IOError(message string, err error) *AppError {
	return Wrap(CodeIO, message, err)
}

// InternalError wraps a failure that carries no code of its own.
func InternalError(message string, err error) *AppError {
	return Wrap(CodeInternal, message, err)
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// ExitCodeOf maps any error to a process exit code.
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitOK
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.ExitCode()
	}
	return ExitInternal
}

// IsNotFound checks if error is a not found error.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

// IsValidation checks if error is a validation error.
func IsValidation(err error) bool {
	return CodeOf(err) == CodeValidation
}

// IsPrecondition checks if error is a precondition violation.
func IsPrecondition(err error) bool {
	return CodeOf(err) == CodePrecondition
}

// IsParse checks if error is a parse error.
func IsParse(err error) bool {
	return CodeOf(err) == CodeParse
}
