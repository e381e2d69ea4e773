package errors

import (
	stderrors "errors"
	"fmt"
)

// Common error types
var (
	// Request errors
	ErrInvalidRequest = New("invalid request")
	ErrNotReady       = New("project not ready")
	ErrNoActiveJob    = New("no active transcription")
	ErrClosed         = New("orchestrator closed")

	// Polling errors
	ErrPollAbandoned = New("polling abandoned after repeated failures")

	// Local state errors
	ErrPersistenceCorrupt  = New("persisted state is corrupt")
	ErrManifestUnavailable = New("no manifest source yielded usable data")

	// Network errors
	ErrResponseInvalid = New("invalid response")
)

// Error represents a standardized error
type Error struct {
	message string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}

// Invalid returns an ErrInvalidRequest describing one bad field.
func Invalid(field string, reason string) error {
	return Wrapf(ErrInvalidRequest, "%s %s", field, reason)
}

// OutOfRange returns an ErrInvalidRequest for values outside acceptable range
func OutOfRange(field string, min, max interface{}) error {
	return Wrapf(ErrInvalidRequest, "%s out of range (must be between %v and %v)", field, min, max)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return stderrors.Is(err, ErrInvalidRequest)
}
