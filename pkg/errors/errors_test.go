package errors

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	err := New(ErrorTypeAuthExpired, "session cookie rejected", 401)
	assert.Equal(t, "auth_expired error (code 401): session cookie rejected", err.Error())
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		retryable bool
	}{
		{ErrorTypeNetwork, true},
		{ErrorTypeRateLimit, true},
		{ErrorTypeAuthExpired, false},
		{ErrorTypeNotFound, false},
		{ErrorTypeForbidden, false},
		{ErrorTypeMalformed, false},
		{ErrorTypeAiService, false},
		{ErrorTypeUnknown, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.errorType), func(t *testing.T) {
			assert.Equal(t, tt.retryable, IsRetryable(tt.errorType))
		})
	}
}

func TestIsType(t *testing.T) {
	err := New(ErrorTypeForbidden, "private profile", 403)

	assert.True(t, IsType(err, ErrorTypeForbidden))
	assert.False(t, IsType(err, ErrorTypeNotFound))

	// Works through wrapping
	wrapped := fmt.Errorf("fetch failed: %w", err)
	assert.True(t, IsType(wrapped, ErrorTypeForbidden))

	assert.False(t, IsType(errors.New("plain"), ErrorTypeForbidden))
	assert.False(t, IsType(nil, ErrorTypeForbidden))
}

func TestRetryAfterHint(t *testing.T) {
	err := NewRateLimit("throttled", 2*time.Second)
	assert.Equal(t, 2*time.Second, RetryAfterHint(err))
	assert.Equal(t, 429, err.Code)

	noHint := New(ErrorTypeNetwork, "timeout", 0)
	assert.Equal(t, time.Duration(0), RetryAfterHint(noHint))
	assert.Equal(t, time.Duration(0), RetryAfterHint(errors.New("plain")))
}

func TestAnalysisError(t *testing.T) {
	cause := New(ErrorTypeAuthExpired, "session expired", 401)
	err := NewAnalysisError(StageProfile, cause)

	assert.Contains(t, err.Error(), "profile")
	assert.Contains(t, err.Error(), "session expired")

	// The stage wrapper must not hide the underlying error type
	var apiErr *Error
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, ErrorTypeAuthExpired, apiErr.Type)
}
