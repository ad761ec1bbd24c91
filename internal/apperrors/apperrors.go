// internal/apperrors/apperrors.go
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a request-terminating failure with a fixed HTTP status and a
// stable machine-readable code. Services return these (possibly wrapped);
// handlers unwrap them into the response envelope.
type AppError struct {
	Status  int         `json:"-"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

func New(status int, code, message string) *AppError {
	return &AppError{Status: status, Code: code, Message: message}
}

func BadRequest(format string, args ...interface{}) *AppError {
	return New(http.StatusBadRequest, "BAD_REQUEST", fmt.Sprintf(format, args...))
}

func NotFound(resource string) *AppError {
	return New(http.StatusNotFound, "NOT_FOUND", resource+" not found")
}

func Unauthorized(message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return New(http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func Forbidden(message string) *AppError {
	if message == "" {
		message = "access denied"
	}
	return New(http.StatusForbidden, "FORBIDDEN", message)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, "CONFLICT", message)
}

func Validation(message string, details interface{}) *AppError {
	e := New(http.StatusBadRequest, "VALIDATION_ERROR", message)
	e.Details = details
	return e
}

// CouponExpired covers both not-yet-started and already-expired windows.
func CouponExpired() *AppError {
	return New(http.StatusBadRequest, "COUPON_EXPIRED", "coupon is expired or not active")
}

func CouponInvalid(message string) *AppError {
	return New(http.StatusBadRequest, "COUPON_INVALID", message)
}

// As extracts an *AppError from an error chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
