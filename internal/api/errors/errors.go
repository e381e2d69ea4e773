package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"s2x/internal/app/api/remote"
	apperrors "s2x/internal/app/errors"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindNotFound           ErrorKind = "not_found"
	KindConflict           ErrorKind = "conflict"
	KindInternal           ErrorKind = "internal"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindBadRequest         ErrorKind = "bad_request"
	KindBadGateway         ErrorKind = "bad_gateway"
)

// APIError represents a structured API error response
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindBadGateway:
		return http.StatusBadGateway
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
		Details: fields,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewConflictError creates a conflict error
func NewConflictError(message string) *APIError {
	return &APIError{
		Kind:    KindConflict,
		Message: message,
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewServiceUnavailableError creates a service unavailable error
func NewServiceUnavailableError(message string) *APIError {
	return &APIError{
		Kind:    KindServiceUnavailable,
		Message: message,
	}
}

// FromError translates an application error into its API form. Errors it
// does not recognize become a generic internal error.
func FromError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	var remoteErr *remote.RemoteError
	switch {
	case stderrors.As(err, &remoteErr):
		return &APIError{
			Kind:    KindBadGateway,
			Message: "transcription service rejected the request",
			Details: map[string]string{
				"status": fmt.Sprint(remoteErr.Status),
				"path":   remoteErr.Path,
			},
		}
	case apperrors.IsValidationError(err):
		return NewValidationError("Validation failed", map[string]string{"request": err.Error()})
	case stderrors.Is(err, apperrors.ErrNoActiveJob):
		return NewNotFoundError("active transcription")
	case stderrors.Is(err, apperrors.ErrNotReady):
		return NewConflictError("no project bootstrapped; run `s2x bootstrap` first")
	case stderrors.Is(err, apperrors.ErrResponseInvalid):
		return &APIError{Kind: KindBadGateway, Message: err.Error()}
	case stderrors.Is(err, apperrors.ErrClosed):
		return NewServiceUnavailableError("server is shutting down")
	default:
		return NewInternalError("Internal server error")
	}
}
