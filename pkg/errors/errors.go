package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents different types of errors that can occur
type ErrorType string

const (
	ErrorTypeAuthExpired ErrorType = "auth_expired"
	ErrorTypeRateLimit   ErrorType = "rate_limit"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeForbidden   ErrorType = "forbidden"
	ErrorTypeNetwork     ErrorType = "network"
	ErrorTypeMalformed   ErrorType = "malformed_response"
	ErrorTypeAiService   ErrorType = "ai_service"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// Error represents an API error with type information
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	// RetryAfter carries the server-provided throttle hint, zero when absent.
	// Only meaningful for ErrorTypeRateLimit.
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
}

// New creates a typed error
func New(errorType ErrorType, message string, code int) *Error {
	return &Error{Type: errorType, Message: message, Code: code}
}

// NewRateLimit creates a rate limit error with an optional retry-after hint
func NewRateLimit(message string, retryAfter time.Duration) *Error {
	return &Error{
		Type:       ErrorTypeRateLimit,
		Message:    message,
		Code:       429,
		RetryAfter: retryAfter,
	}
}

// IsRetryable checks if an error type should be retried
func IsRetryable(errorType ErrorType) bool {
	switch errorType {
	case ErrorTypeNetwork, ErrorTypeRateLimit:
		return true
	case ErrorTypeAuthExpired, ErrorTypeNotFound, ErrorTypeForbidden, ErrorTypeMalformed, ErrorTypeAiService:
		return false
	default:
		return false
	}
}

// IsType reports whether err is an *Error of the given type
func IsType(err error, errorType ErrorType) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Type == errorType
	}
	return false
}

// RetryAfterHint extracts the retry-after hint from an error, zero when absent
func RetryAfterHint(err error) time.Duration {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.RetryAfter
	}
	return 0
}

// Stage identifies the pipeline step that produced an analysis error
type Stage string

const (
	StageProfile   Stage = "profile"
	StagePosts     Stage = "posts"
	StageAggregate Stage = "aggregate"
	StageInsight   Stage = "insight"
)

// AnalysisError wraps a failure from one stage of an analysis run
type AnalysisError struct {
	Stage Stage
	Cause error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed at %s stage: %v", e.Stage, e.Cause)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// NewAnalysisError wraps a stage failure
func NewAnalysisError(stage Stage, cause error) *AnalysisError {
	return &AnalysisError{Stage: stage, Cause: cause}
}
