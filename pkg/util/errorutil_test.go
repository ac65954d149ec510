package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	wrapped := fmt.Errorf("handler: %w", NewValidationError("No ticket ID provided", nil))
	de := ToDomainError(wrapped)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)

	de = ToDomainError(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.Equal(t, "boom", de.Message)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
}

func TestUnavailableUnwraps(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := NewUnavailable("redis", cause)
	assert.ErrorIs(t, err, cause)

	de := ToDomainError(err)
	assert.Equal(t, http.StatusServiceUnavailable, de.HTTPStatus)
	assert.Equal(t, CodeUnavailable, de.Code)
	assert.Equal(t, "redis", de.Details["dependency"])
}

func TestInternalError(t *testing.T) {
	de := ToDomainError(NewInternalError(nil))
	assert.Equal(t, "internal server error", de.Message)

	cause := errors.New("boom")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "boom", ToDomainError(err).Message)
}

func TestNotFound(t *testing.T) {
	de := ToDomainError(NewNotFound("route", nil))
	assert.Equal(t, CodeNotFound, de.Code)
	assert.Equal(t, "route not found", de.Message)
	assert.Equal(t, http.StatusNotFound, de.HTTPStatus)
}
