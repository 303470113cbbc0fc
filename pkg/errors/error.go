// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid configuration, periods, labels and orders
//   - Data errors (200-299): Missing, unreadable or unordered price data
//   - Indicator errors (300-399): Indicator lookup and calculation errors
//   - Strategy errors (400-499): Errors raised by strategies while a backtest runs
//   - Backtest errors (600-699): Engine configuration and run errors
//   - Result errors (700-799): Persisting backtest results
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidPeriod, "period must be positive")
//
//	// Create a formatted error
//	err := errors.Newf(errors.ErrCodeIndicatorNotFound, "no indicator registered for %q", label)
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeQueryFailed, "failed to read price data", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeStrategyRuntimeError) { ... }
package errors

import (
	"errors"
	"fmt"
	"time"
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
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
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

// RowError locates a failure at a single row of a backtest.
// The engine wraps strategy failures with it so callers can tell which record aborted the run.
type RowError struct {
	Index int       // Position of the row inside the series
	Time  time.Time // Timestamp of the row
	Err   error     // The failure raised while processing the row
}

// NewRowError creates a new RowError.
func NewRowError(index int, t time.Time, err error) *RowError {
	return &RowError{
		Index: index,
		Time:  t,
		Err:   err,
	}
}

// Error implements the error interface.
func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (%s): %v", e.Index, e.Time.Format(time.RFC3339), e.Err)
}

// Unwrap returns the failure raised while processing the row.
func (e *RowError) Unwrap() error {
	return e.Err
}

// AsRowError returns the first RowError in err's chain.
func AsRowError(err error) (*RowError, bool) {
	var rowErr *RowError
	if errors.As(err, &rowErr) {
		return rowErr, true
	}

	return nil, false
}
