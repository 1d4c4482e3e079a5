package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrParse indicates the configuration file content could not be understood
	ErrParse = errors.New("parse error")

	// ErrUnexpected indicates an I/O failure or internal invariant violation
	ErrUnexpected = errors.New("unexpected error")
)

// ParseError wraps an error caused by invalid configuration content:
// bad YAML syntax, a non-mapping document root, or a schema violation.
// Parse errors are deterministic functions of the file content and are
// never retried.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "parse error"
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// NewParse creates a new parse error
func NewParse(err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Cause: err}
}

// NewParsef creates a new parse error with formatting
func NewParsef(format string, args ...interface{}) error {
	return &ParseError{Cause: fmt.Errorf(format, args...)}
}

// UnexpectedError wraps an error the configuration layer cannot attribute
// to file content, such as a failed write or an unrecognized schema version.
type UnexpectedError struct {
	Cause error
}

func (e *UnexpectedError) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "unexpected error"
}

func (e *UnexpectedError) Unwrap() error {
	return e.Cause
}

func (e *UnexpectedError) Is(target error) bool {
	return target == ErrUnexpected
}

// NewUnexpected creates a new unexpected error
func NewUnexpected(err error) error {
	if err == nil {
		return nil
	}
	return &UnexpectedError{Cause: err}
}

// NewUnexpectedf creates a new unexpected error with formatting
func NewUnexpectedf(format string, args ...interface{}) error {
	return &UnexpectedError{Cause: fmt.Errorf(format, args...)}
}

// IsParse checks if an error is a parse error using errors.As
func IsParse(err error) bool {
	if err == nil {
		return false
	}

	var parseErr *ParseError
	return errors.As(err, &parseErr)
}

// IsUnexpected checks if an error is an unexpected error
func IsUnexpected(err error) bool {
	if err == nil {
		return false
	}

	var unexpectedErr *UnexpectedError
	return errors.As(err, &unexpectedErr)
}
