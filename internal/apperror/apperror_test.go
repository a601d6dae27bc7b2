package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
	}{
		{NewInvalidCredentials(), http.StatusUnauthorized},
		{NewUnauthenticated("no token", nil), http.StatusUnauthorized},
		{NewTokenExpired(), http.StatusUnauthorized},
		{NewTokenInvalid(nil), http.StatusUnauthorized},
		{NewNotFound("gone", nil), http.StatusNotFound},
		{NewConflict("exists"), http.StatusConflict},
		{NewEmailDeliveryFailed(nil), http.StatusInternalServerError},
		{NewTokenPersistError(nil), http.StatusInternalServerError},
		{NewServerError("boom", nil), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.StatusCode(), "code %s", tc.err.Code)
	}
}

func TestWireCodes_OperatorDistinctionsCollapse(t *testing.T) {
	// The client sees SERVER_ERROR for both; operators see distinct codes in logs
	assert.Equal(t, "SERVER_ERROR", EmailDeliveryFailed.String())
	assert.Equal(t, "SERVER_ERROR", TokenPersistError.String())
	assert.NotEqual(t, TokenExpired.String(), TokenInvalid.String())
}

func TestFrom_WrapsUntypedErrors(t *testing.T) {
	plain := errors.New("pq: connection refused")
	appErr := From(plain)

	assert.Equal(t, ServerError, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode())
	assert.ErrorIs(t, appErr, plain)
}

func TestFrom_PassesThroughAppErrors(t *testing.T) {
	orig := NewNotFound("missing", nil)
	assert.Same(t, orig, From(orig))
	assert.Same(t, orig, From(fmt.Errorf("context: %w", orig)))
}

func TestUnwrapAndMessage(t *testing.T) {
	cause := errors.New("row not written")
	appErr := NewTokenPersistError(cause)

	assert.ErrorIs(t, appErr, cause)
	assert.Contains(t, appErr.Error(), "row not written")

	bare := NewTokenExpired()
	assert.Equal(t, "token expired", bare.Error())
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("handler: %w", NewTokenExpired())
	assert.True(t, Is(err, TokenExpired))
	assert.False(t, Is(err, TokenInvalid))
	assert.False(t, Is(errors.New("plain"), TokenExpired))
}
