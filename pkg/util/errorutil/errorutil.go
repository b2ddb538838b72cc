package errorutil

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewSessionExpired() error {
	return NewDomainError("SESSION_EXPIRED", "session expired, please log in again", http.StatusUnauthorized, nil)
}

func NewSessionLoading() error {
	return NewDomainError("SESSION_LOADING", "session is loading", http.StatusServiceUnavailable, nil)
}

func NewInvalidCredentials(err error) error {
	return &DomainError{
		Code:       "INVALID_CREDENTIALS",
		Message:    "invalid username or password",
		HTTPStatus: http.StatusUnauthorized,
		Err:        err,
	}
}

func NewAuthServiceUnavailable(err error) error {
	return &DomainError{
		Code:       "AUTH_SERVICE_UNAVAILABLE",
		Message:    "login failed, please try again",
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func NewUpstreamError(err error) error {
	return &DomainError{
		Code:       "UPSTREAM_FAILED",
		Message:    "restaurant api request failed",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	return ToDomainError(err)
}
