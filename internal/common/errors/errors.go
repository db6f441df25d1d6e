// internal/common/errors/errors.go

// Package errors provides standardized error handling for the matching
// service and the offline extraction pass.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeProfileValidationFailed ErrorCode = "PROFILE_VALIDATION_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"

	ErrCodeEmbeddingUnavailable ErrorCode = "EMBEDDING_UNAVAILABLE"

	ErrCodeExtractionRowFailed        ErrorCode = "EXTRACTION_ROW_FAILED"
	ErrCodeRequirementsReplaceFailed  ErrorCode = "REQUIREMENTS_REPLACE_FAILED"
	ErrCodeReportRenderFailed         ErrorCode = "REPORT_RENDER_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewProfileValidationError creates a non-retryable profile input error.
// Validation failures are surfaced to the caller before any scoring begins.
func NewProfileValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeProfileValidationFailed,
		Message:   "Student profile failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmbeddingUnavailableError creates a retryable embedding provider error.
// Callers inside the scoring path recover from this locally; it is only
// surfaced when the provider cannot be reached during startup checks.
func NewEmbeddingUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmbeddingUnavailable,
		Message:   "Embedding provider error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewExtractionRowFailedError creates a non-retryable per-row extraction
// error. The batch continues; the row is skipped and logged.
func NewExtractionRowFailedError(programID int64, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeExtractionRowFailed,
		Message:   "Requirement extraction failed for program",
		Details:   err.Error(),
		Retryable: false,
		Metadata:  map[string]interface{}{"programId": programID},
		Timestamp: time.Now().UTC(),
	}
}

// NewRequirementsReplaceFailedError creates a retryable error for the
// replace-table write at the end of an extraction pass.
func NewRequirementsReplaceFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequirementsReplaceFailed,
		Message:   "Replacing the requirement table failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewReportRenderFailedError creates a non-retryable report rendering error.
func NewReportRenderFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeReportRenderFailed,
		Message:   "Eligibility report rendering failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// IsRetryable reports whether err is a StandardError marked retryable.
func IsRetryable(err error) bool {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr.Retryable
	}
	return false
}

// Normalize ensures any error is wrapped as a StandardError.
func Normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
