package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusAndCode(t *testing.T) {
	assert.Equal(t, http.StatusForbidden, StatusOf(Forbidden("Missing required scopes")))
	assert.Equal(t, CodeForbidden, CodeOf(Forbidden("Missing required scopes")))

	wrapped := fmt.Errorf("invoke: %w", Unauthorized("Missing caller id"))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(wrapped))
	assert.Equal(t, CodeUnauthorized, CodeOf(wrapped))

	plain := errors.New("boom")
	assert.Equal(t, http.StatusInternalServerError, StatusOf(plain))
	assert.Equal(t, CodeInternal, CodeOf(plain))
}

func TestInternalUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("Failed to record check-in", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Failed to record check-in", err.Message)
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "Missing required scopes", PublicMessage(Forbidden("Missing required scopes")))
	assert.Equal(t, "Failed to fetch records: connection reset by peer",
		PublicMessage(Internal("Failed to fetch records", errors.New("connection reset by peer"))))
	assert.Equal(t, "boom", PublicMessage(errors.New("boom")))
}
