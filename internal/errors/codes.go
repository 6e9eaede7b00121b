// Package errors provides structured error handling for awsmcp.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (file, disk, source directory)
//   - 3XX: AWS and network errors
//   - 4XX: Validation errors
//   - 5XX: Internal errors (vector store, embedding)
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and disk I/O errors.
	CategoryIO Category = "IO"
	// CategoryNetwork indicates AWS and network-related errors.
	CategoryNetwork Category = "NETWORK"
	// CategoryValidation indicates input validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound     = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid      = "ERR_102_CONFIG_INVALID"
	ErrCodeInvalidChunkConfig = "ERR_110_INVALID_CHUNK_CONFIG"
	ErrCodeUnknownPreset      = "ERR_111_UNKNOWN_PRESET"

	// IO errors (200-299)
	ErrCodeFileNotFound      = "ERR_201_FILE_NOT_FOUND"
	ErrCodeFilePermission    = "ERR_202_FILE_PERMISSION"
	ErrCodeIndexCorrupt      = "ERR_205_INDEX_CORRUPT"
	ErrCodeSourceUnavailable = "ERR_210_SOURCE_UNAVAILABLE"
	ErrCodeReadFailure       = "ERR_211_READ_FAILURE"
	ErrCodeExtractionFailed  = "ERR_212_EXTRACTION_FAILED"
	ErrCodeIndexLocked       = "ERR_213_INDEX_LOCKED"

	// AWS / network errors (300-399)
	ErrCodeAWSUnavailable = "ERR_301_AWS_UNAVAILABLE"
	ErrCodeAWSCall        = "ERR_302_AWS_CALL_FAILED"

	// Validation errors (400-499)
	ErrCodeInvalidInput = "ERR_401_INVALID_INPUT"
	ErrCodeQueryEmpty   = "ERR_404_QUERY_EMPTY"
	ErrCodeInvalidPath  = "ERR_406_INVALID_PATH"

	// Internal errors (500-599)
	ErrCodeInternal        = "ERR_501_INTERNAL"
	ErrCodeEmbeddingFailed = "ERR_502_EMBEDDING_FAILED"
	ErrCodeSearchFailed    = "ERR_503_SEARCH_FAILED"
	ErrCodeVectorStore     = "ERR_510_VECTOR_STORE"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Extract the leading digit of the numeric portion
	// (e.g., '2' from "ERR_210_SOURCE_UNAVAILABLE").
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '3':
		return CategoryNetwork
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
// Fatal codes abort a whole sync run; per-file codes are warnings
// collected into the run summary.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeSourceUnavailable, ErrCodeIndexCorrupt, ErrCodeInvalidChunkConfig, ErrCodeIndexLocked:
		return SeverityFatal
	case ErrCodeReadFailure, ErrCodeExtractionFailed:
		return SeverityWarning
	}
	return SeverityError
}

// isRetryableCode checks if an error code represents a retryable error.
// Vector-store and AWS failures are retried implicitly: the next sync run
// picks the file up again because its index entry was never updated.
func isRetryableCode(code string) bool {
	switch code {
	case ErrCodeVectorStore, ErrCodeEmbeddingFailed, ErrCodeAWSUnavailable, ErrCodeReadFailure:
		return true
	}
	return false
}
