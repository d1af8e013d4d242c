// Package apperror defines the application error types and their mapping to
// HTTP status codes, so handlers can translate any service error into a
// consistent {"error": "..."} response.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType categorizes an application error.
type ErrorType int

const (
	// InternalError is a generic server fault.
	InternalError ErrorType = iota
	// DatabaseError is a storage-level failure.
	DatabaseError
	// ValidationError is client-correctable bad input.
	ValidationError
	// ConflictError means the resource already exists (duplicate username).
	ConflictError
	// AuthError is a failed login (unknown user or wrong password).
	AuthError
	// MissingTokenError means no bearer token was presented.
	MissingTokenError
	// ForbiddenError means the presented token was invalid or expired.
	ForbiddenError
	// NotFoundError is an unknown resource or route.
	NotFoundError
)

// AppError carries a type, a user-facing message, and an optional wrapped
// cause for logging.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code for the error type. Duplicate
// usernames and failed logins map to 400, and invalid/expired tokens collapse
// to 403, matching the wire contract of the API.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case ValidationError, ConflictError, AuthError:
		return http.StatusBadRequest
	case MissingTokenError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse is the JSON error payload sent to clients.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ToResponse converts the error to its client payload. Only the user-facing
// message is included, never the wrapped cause.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

func New(errType ErrorType, message string, err error) *AppError {
	return &AppError{Type: errType, Message: message, Err: err}
}

func NewInternal(message string, err error) *AppError {
	return New(InternalError, message, err)
}

func NewDatabase(message string, err error) *AppError {
	return New(DatabaseError, message, err)
}

func NewValidation(message string) *AppError {
	return New(ValidationError, message, nil)
}

func NewConflict(message string, err error) *AppError {
	return New(ConflictError, message, err)
}

func NewAuth(message string) *AppError {
	return New(AuthError, message, nil)
}

func NewMissingToken(message string) *AppError {
	return New(MissingTokenError, message, nil)
}

func NewForbidden(message string, err error) *AppError {
	return New(ForbiddenError, message, err)
}

func NewNotFound(message string) *AppError {
	return New(NotFoundError, message, nil)
}

// FromError extracts an *AppError from err's chain, if there is one.
func FromError(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
