package errors

import (
	"fmt"
)

// SyncError is the structured error type for awsmcp.
// It provides rich context for error handling, logging, and the run summary.
type SyncError struct {
	// Code is the unique error code (e.g., "ERR_210_SOURCE_UNAVAILABLE").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Network, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates if the operation can be retried.
	Retryable bool
}

// Error implements the error interface.
func (e *SyncError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *SyncError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with SyncError.
func (e *SyncError) Is(target error) bool {
	if t, ok := target.(*SyncError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *SyncError) WithDetail(key, value string) *SyncError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// New creates a new SyncError with the given code and message.
// Category, severity, and retryable flag are derived from the code.
func New(code string, message string, cause error) *SyncError {
	return &SyncError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Severity:  severityFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Wrap creates a SyncError from an existing error.
// The error's message becomes the SyncError message.
func Wrap(code string, err error) *SyncError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// SourceUnavailable creates the fatal error for a missing or unreadable
// source directory.
func SourceUnavailable(path string, cause error) *SyncError {
	return New(ErrCodeSourceUnavailable,
		fmt.Sprintf("source directory unavailable: %s", path), cause).
		WithDetail("path", path)
}

// ReadFailure creates the per-file error for a file that could not be read.
func ReadFailure(path string, cause error) *SyncError {
	return New(ErrCodeReadFailure,
		fmt.Sprintf("failed to read file: %s", path), cause).
		WithDetail("path", path)
}

// ExtractionFailed creates the per-file error for unsupported or corrupt content.
func ExtractionFailed(path string, cause error) *SyncError {
	return New(ErrCodeExtractionFailed,
		fmt.Sprintf("text extraction failed: %s", path), cause).
		WithDetail("path", path)
}

// InvalidChunkConfig creates the fatal startup error for a bad
// chunk size / overlap pair.
func InvalidChunkConfig(message string) *SyncError {
	return New(ErrCodeInvalidChunkConfig, message, nil)
}

// VectorStoreError creates the per-file error for a failed store operation.
func VectorStoreError(message string, cause error) *SyncError {
	return New(ErrCodeVectorStore, message, cause)
}

// IsRetryable checks if an error is retryable.
// Returns true if the error is a SyncError with Retryable flag set.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if se, ok := err.(*SyncError); ok {
		return se.Retryable
	}
	return false
}

// IsFatal checks if an error has fatal severity.
// Fatal errors abort the current sync run.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if se, ok := err.(*SyncError); ok {
		return se.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from a SyncError.
// Returns empty string if not a SyncError.
func GetCode(err error) string {
	if se, ok := err.(*SyncError); ok {
		return se.Code
	}
	return ""
}
