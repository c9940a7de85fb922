// Package errors provides the typed error used across the quote pipeline.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeUnknownPlan indicates the requested plan is not in the catalog
	TypeUnknownPlan Type = "UNKNOWN_PLAN"

	// TypeUnknownFeature indicates one or more requested features are not in the catalog
	TypeUnknownFeature Type = "UNKNOWN_FEATURE"

	// TypeInvalidMemberCount indicates a member count below one
	TypeInvalidMemberCount Type = "INVALID_MEMBER_COUNT"

	// TypeNegativeTotal indicates the computed total dropped below zero
	TypeNegativeTotal Type = "NEGATIVE_TOTAL"

	// TypeInput indicates input could not be collected
	TypeInput Type = "INPUT_ERROR"

	// TypeConfig indicates a configuration or catalog file error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface. Only the message is shown so it can be
// printed to users as-is.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// TypeOf returns the type of the first *Error in err's chain, or "" if none.
func TypeOf(err error) Type {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ""
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	return err != nil && TypeOf(err) == t
}

// IsValidation reports whether err is one of the quote validation failures.
func IsValidation(err error) bool {
	switch TypeOf(err) {
	case TypeUnknownPlan, TypeUnknownFeature, TypeInvalidMemberCount, TypeNegativeTotal:
		return true
	}
	return false
}

// Input creates an input error
func Input(message string) *Error {
	return New(TypeInput, message)
}

// Config creates a configuration error
func Config(message string, cause error) *Error {
	return Wrap(TypeConfig, message, cause)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
