// Package apperrors defines the service-wide error taxonomy. Every handler
// boundary converts errors into one of these so the HTTP layer can map them to
// a status code and a stable error code without inspecting error strings.
package apperrors

import (
	"errors"
	"net/http"
)

const (
	CodeInvalidParams     = "INVALID_PARAMS"
	CodeNotFound          = "NOT_FOUND"
	CodeForbidden         = "FORBIDDEN"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeDatabaseError     = "DATABASE_ERROR"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeUnauthorized      = "UNAUTHORIZED"
)

// AppError carries a stable code, a human-readable message and the HTTP status
// the handler should respond with.
type AppError struct {
	Code    string
	Message string
	Status  int
}

func (e *AppError) Error() string {
	return e.Message
}

func NewValidation(message string) *AppError {
	return &AppError{Code: CodeInvalidParams, Message: message, Status: http.StatusBadRequest}
}

func NewNotFound(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message, Status: http.StatusNotFound}
}

func NewForbidden(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message, Status: http.StatusForbidden}
}

func NewInvalidTransition(message string) *AppError {
	return &AppError{Code: CodeInvalidTransition, Message: message, Status: http.StatusBadRequest}
}

func NewUnauthorized(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message, Status: http.StatusUnauthorized}
}

// NewDatabase wraps an infrastructure failure. The underlying message is kept
// for diagnostics; callers never retry.
func NewDatabase(err error) *AppError {
	return &AppError{Code: CodeDatabaseError, Message: err.Error(), Status: http.StatusInternalServerError}
}

// From returns err as an *AppError, wrapping unknown errors as INTERNAL_ERROR.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Code: CodeInternalError, Message: err.Error(), Status: http.StatusInternalServerError}
}
