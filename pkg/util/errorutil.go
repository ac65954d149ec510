package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes rendered in the {"error":{"code":...}} envelope.
const (
	CodeValidation   = "VALIDATION_FAILED"
	CodeNotFound     = "NOT_FOUND"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeUnavailable  = "DEPENDENCY_UNAVAILABLE"
	CodeInternal     = "INTERNAL_ERROR"
)

// DomainError is an error that knows how it should be shown to an HTTP caller.
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
	return NewDomainError(CodeValidation, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	return NewDomainError(CodeNotFound, resource+" not found", http.StatusNotFound, details)
}

func NewUnauthorized(message string) error {
	return NewDomainError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError(CodeForbidden, message, http.StatusForbidden, nil)
}

// NewUnavailable reports a backing dependency that did not answer.
func NewUnavailable(dependency string, err error) error {
	return &DomainError{
		Code:       CodeUnavailable,
		Message:    dependency + " unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Details:    map[string]any{"dependency": dependency},
		Err:        err,
	}
}

// NewInternalError carries err's message to the caller.
func NewInternalError(err error) error {
	if err == nil {
		return NewDomainError(CodeInternal, "internal server error", http.StatusInternalServerError, nil)
	}
	return &DomainError{Code: CodeInternal, Message: err.Error(), HTTPStatus: http.StatusInternalServerError, Err: err}
}

// ToDomainError returns the DomainError in err's chain, or an internal error.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return NewDomainError(CodeInternal, err.Error(), http.StatusInternalServerError, nil)
}
