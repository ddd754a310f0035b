// Package errors defines the application error taxonomy shared across the
// loading pipeline.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrTypeSourceFormat covers wrong file types and absent workbook sheets.
	ErrTypeSourceFormat ErrorType = "SOURCE_FORMAT"
	// ErrTypeSchema covers column sets that do not match the registry.
	ErrTypeSchema ErrorType = "SCHEMA"
	// ErrTypeConfig covers measurements whose grade scale lacks the
	// configuration it requires.
	ErrTypeConfig ErrorType = "CONFIG"
	// ErrTypeInvalidArgument covers malformed caller input such as unknown
	// table names or query columns.
	ErrTypeInvalidArgument ErrorType = "INVALID_ARGUMENT"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewSourceFormat creates a source-format error
func NewSourceFormat(message string, cause error) *AppError {
	return NewAppError(ErrTypeSourceFormat, message, cause)
}

// NewSchema creates a schema-conformance error
func NewSchema(message string, cause error) *AppError {
	return NewAppError(ErrTypeSchema, message, cause)
}

// NewConfig creates a scale-configuration error
func NewConfig(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewInvalidArgument creates an invalid-argument error
func NewInvalidArgument(message string, cause error) *AppError {
	return NewAppError(ErrTypeInvalidArgument, message, cause)
}

// IsType reports whether err or any error it wraps is an AppError of the
// given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// IsSourceFormat reports whether err is a source-format error.
func IsSourceFormat(err error) bool { return IsType(err, ErrTypeSourceFormat) }

// IsSchema reports whether err is a schema-conformance error.
func IsSchema(err error) bool { return IsType(err, ErrTypeSchema) }

// IsConfig reports whether err is a scale-configuration error.
func IsConfig(err error) bool { return IsType(err, ErrTypeConfig) }

// IsInvalidArgument reports whether err is an invalid-argument error.
func IsInvalidArgument(err error) bool { return IsType(err, ErrTypeInvalidArgument) }
