package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorKeepsDomainErrors(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewSessionExpired())

	de := ToDomainError(wrapped)
	require.NotNil(t, de)
	assert.Equal(t, "SESSION_EXPIRED", de.Code)
	assert.Equal(t, http.StatusUnauthorized, de.HTTPStatus)
}

func TestToDomainErrorFallsBackToInternal(t *testing.T) {
	cause := errors.New("boom")

	de := ToDomainError(cause)
	require.NotNil(t, de)
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
	assert.ErrorIs(t, de, cause)
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestDomainErrorMessageIncludesCause(t *testing.T) {
	err := NewUpstreamError(errors.New("connection refused"))
	assert.Equal(t, "restaurant api request failed: connection refused", err.Error())
}
