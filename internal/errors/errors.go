package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrTypeTranslation ErrorType = "translation"
	ErrTypeExtraction  ErrorType = "extraction"
	ErrTypeValidation  ErrorType = "validation"
	ErrTypeExecution   ErrorType = "execution"
	ErrTypeConnection  ErrorType = "connection"
	ErrTypeConfig      ErrorType = "config"
	ErrTypeInternal    ErrorType = "internal"
)

// Error represents a structured error with type and optional suggestions
type Error struct {
	Type        ErrorType
	Message     string
	Cause       error
	Suggestions []string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithSuggestion adds a suggestion for resolving the error
func (e *Error) WithSuggestion(suggestion string) *Error {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// New creates a new structured error
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new structured error with formatted message
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with formatted message
func Wrapf(err error, errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	var structErr *Error
	if errors.As(err, &structErr) {
		return structErr.Type == errType
	}

	return false
}

// GetType returns the error type if it's a structured error
func GetType(err error) ErrorType {
	var structErr *Error
	if errors.As(err, &structErr) {
		return structErr.Type
	}

	return ErrTypeInternal
}

// IsTurnScoped reports whether an error ends only the current turn.
// Connection failures at session start are fatal; everything else in the
// pipeline is reported and the question loop continues.
func IsTurnScoped(err error) bool {
	switch GetType(err) {
	case ErrTypeTranslation, ErrTypeExtraction, ErrTypeValidation, ErrTypeExecution:
		return true
	default:
		return false
	}
}

// NewConnectionError creates a connection error with suggestions
func NewConnectionError(message string, cause error) *Error {
	return Wrap(cause, ErrTypeConnection, message).
		WithSuggestion("Check that the database path exists and is readable").
		WithSuggestion("Verify WARM_AGENT_DB_PATH in your environment or .env file")
}
