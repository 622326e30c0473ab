// Package errors defines the typed errors and exit codes used across
// aurup commands.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes for scripting integration.
// These codes allow scripts to distinguish between different failure modes.
const (
	// ExitSuccess indicates the upgrade check completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a fetch, lookup, or I/O failure aborted the check.
	ExitFailure = 2

	// ExitConfigError indicates a configuration or validation error.
	// The command could not proceed due to invalid config or bad user input.
	ExitConfigError = 3
)

// ExitError represents a command termination with a specific exit code.
//
// Use this error when a command needs to exit with a non-zero status
// while providing context about what went wrong.
//
// Fields:
//   - Code: Exit code (use constants ExitSuccess, ExitFailure, ExitConfigError)
//   - Message: Human-readable error message
//   - Err: Underlying error that caused this exit, may be nil
type ExitError struct {
	// Code is the exit code for the command.
	// Standard codes: 0=success, 2=failure, 3=config error.
	Code int

	// Message is a human-readable description of why the command failed.
	Message string

	// Err is the underlying error that caused this exit.
	// May be nil if no underlying error exists.
	Err error
}

// Error implements the error interface.
//
// Returns the Message field if set, otherwise returns the underlying error's
// message, or a default message with the exit code.
//
// Returns:
//   - string: The error message
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
//
// Returns:
//   - error: The underlying error, or nil if none exists
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and underlying error.
//
// Parameters:
//   - code: Exit code (use ExitSuccess, ExitFailure, ExitConfigError)
//   - err: Underlying error, may be nil
//
// Returns:
//   - *ExitError: New exit error
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// NewExitErrorf creates an ExitError with the given code and formatted message.
//
// Parameters:
//   - code: Exit code
//   - format: Printf-style format string
//   - args: Format arguments
//
// Returns:
//   - *ExitError: New exit error with formatted message
func NewExitErrorf(code int, format string, args ...interface{}) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// GetExitCode extracts the exit code from an error.
//
// If err is nil, returns ExitSuccess.
// If err is an ExitError, returns its code.
// Otherwise returns ExitFailure.
//
// Parameters:
//   - err: The error to extract code from
//
// Returns:
//   - int: Exit code
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitFailure
}

// ConsistencyError indicates the local package database disagrees with a
// candidate list that was derived from it.
//
// This happens when a package expected to exist locally (because a source
// reported it upgradable) cannot be looked up anymore. It is not
// recoverable at this layer.
//
// Fields:
//   - Package: Name of the package that failed the lookup
//   - Err: Underlying lookup error, may be nil
type ConsistencyError struct {
	// Package is the name of the package that failed the lookup.
	Package string

	// Err is the underlying lookup error. May be nil.
	Err error
}

// Error implements the error interface.
//
// Returns:
//   - string: Formatted error message naming the package
func (e *ConsistencyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: not found in local database: %v", e.Package, e.Err)
	}
	return fmt.Sprintf("%s: not found in local database", e.Package)
}

// Unwrap returns the underlying error for errors.Is/As support.
//
// Returns:
//   - error: The underlying error, or nil if none exists
func (e *ConsistencyError) Unwrap() error {
	return e.Err
}

// IsConsistencyError checks if err is a ConsistencyError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ConsistencyError: The ConsistencyError if err is one, nil otherwise
//   - bool: true if err is a ConsistencyError
func IsConsistencyError(err error) (*ConsistencyError, bool) {
	var ce *ConsistencyError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}
