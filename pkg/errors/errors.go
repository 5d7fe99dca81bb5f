package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels every AppError wraps, so errors.Is works on any message.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternal       = errors.New("internal error")
	ErrServiceUnavail = errors.New("service unavailable")
)

// sentinelStatus maps bare or wrapped sentinels to a response status.
var sentinelStatus = []struct {
	err    error
	status int
}{
	{ErrNotFound, http.StatusNotFound},
	{ErrInvalidInput, http.StatusBadRequest},
	{ErrServiceUnavail, http.StatusServiceUnavailable},
}

// AppError carries a stable error code and the status it is served with.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Code + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// newAppError wraps sentinel, and cause when there is one.
func newAppError(code string, status int, sentinel error, message string, cause error) *AppError {
	err := sentinel
	if cause != nil {
		err = fmt.Errorf("%w: %w", sentinel, cause)
	}
	return &AppError{Code: code, Message: message, Status: status, Err: err}
}

// NotFound reports a missing resource as 404.
func NotFound(resource, id string) *AppError {
	return newAppError("NOT_FOUND", http.StatusNotFound, ErrNotFound,
		fmt.Sprintf("%s with id %s not found", resource, id), nil)
}

// InvalidInput reports a client mistake as 400.
func InvalidInput(message string) *AppError {
	return newAppError("INVALID_INPUT", http.StatusBadRequest, ErrInvalidInput, message, nil)
}

// MalformedBody reports an undecodable request body as 400.
func MalformedBody(cause error) *AppError {
	return newAppError("INVALID_INPUT", http.StatusBadRequest, ErrInvalidInput, "invalid request body", cause)
}

// Unavailable reports an unreachable backing store as 503.
func Unavailable(dependency string, cause error) *AppError {
	return newAppError("SERVICE_UNAVAILABLE", http.StatusServiceUnavailable, ErrServiceUnavail,
		dependency+" is unavailable", cause)
}

// Internal reports an unclassified failure as 500.
func Internal(cause error) *AppError {
	return newAppError("INTERNAL_ERROR", http.StatusInternalServerError, ErrInternal,
		"an internal error occurred", cause)
}

// HTTPStatus picks the status for err: an AppError's own, then a wrapped
// sentinel's, else 500.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	for _, s := range sentinelStatus {
		if errors.Is(err, s.err) {
			return s.status
		}
	}
	return http.StatusInternalServerError
}
