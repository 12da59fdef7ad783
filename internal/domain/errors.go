// Package domain defines core types, interfaces, and errors for the exercise harness.
package domain

import "fmt"

// NotFoundError indicates an exercise was not found in the catalog.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError indicates an invalid exercise definition or invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AssertionError indicates the observed database state did not match the
// exercise's expected effect.
type AssertionError struct {
	Message string
}

func (e *AssertionError) Error() string { return e.Message }

// ConstraintError indicates the engine rejected a statement because it
// violates a declared constraint. The engine's message is kept verbatim.
type ConstraintError struct {
	Message string
}

func (e *ConstraintError) Error() string { return e.Message }

// ConnectionError indicates the database engine is unreachable or a sandbox
// could not be provisioned. It is fatal to the whole run.
type ConnectionError struct {
	Message string
	Cause   error
}

func (e *ConnectionError) Error() string { return e.Message }

func (e *ConnectionError) Unwrap() error { return e.Cause }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrAssertion creates an AssertionError with a formatted message.
func ErrAssertion(format string, args ...interface{}) *AssertionError {
	return &AssertionError{Message: fmt.Sprintf(format, args...)}
}

// ErrConstraint wraps a verbatim engine error message in a ConstraintError.
func ErrConstraint(message string) *ConstraintError {
	return &ConstraintError{Message: message}
}

// ErrConnection creates a ConnectionError wrapping the underlying cause.
func ErrConnection(cause error, format string, args ...interface{}) *ConnectionError {
	return &ConnectionError{Message: fmt.Sprintf(format, args...), Cause: cause}
}
