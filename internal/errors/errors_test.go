package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DerivesFromCode(t *testing.T) {
	tests := []struct {
		code      string
		category  Category
		severity  Severity
		retryable bool
	}{
		{ErrCodeConfigInvalid, CategoryConfig, SeverityError, false},
		{ErrCodeInvalidChunkConfig, CategoryConfig, SeverityFatal, false},
		{ErrCodeSourceUnavailable, CategoryIO, SeverityFatal, false},
		{ErrCodeReadFailure, CategoryIO, SeverityWarning, true},
		{ErrCodeExtractionFailed, CategoryIO, SeverityWarning, false},
		{ErrCodeIndexCorrupt, CategoryIO, SeverityFatal, false},
		{ErrCodeIndexLocked, CategoryIO, SeverityFatal, false},
		{ErrCodeAWSUnavailable, CategoryNetwork, SeverityError, true},
		{ErrCodeQueryEmpty, CategoryValidation, SeverityError, false},
		{ErrCodeVectorStore, CategoryInternal, SeverityError, true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "msg", nil)
			assert.Equal(t, tt.category, err.Category)
			assert.Equal(t, tt.severity, err.Severity)
			assert.Equal(t, tt.retryable, err.Retryable)
		})
	}
}

func TestSyncError_ErrorFormat(t *testing.T) {
	err := New(ErrCodeSourceUnavailable, "source directory unavailable: data_source", nil)
	assert.Equal(t, "[ERR_210_SOURCE_UNAVAILABLE] source directory unavailable: data_source", err.Error())
}

func TestSyncError_UnwrapAndIs(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := Wrap(ErrCodeReadFailure, cause)

	// Unwrap reaches the cause
	assert.True(t, stderrors.Is(err, cause))

	// Is matches by code
	assert.True(t, stderrors.Is(err, &SyncError{Code: ErrCodeReadFailure}))
	assert.False(t, stderrors.Is(err, &SyncError{Code: ErrCodeIndexCorrupt}))
}

func TestSyncError_WithDetail(t *testing.T) {
	err := New(ErrCodeExtractionFailed, "msg", nil).
		WithDetail("path", "a.pdf").
		WithDetail("reason", "no text content")

	assert.Equal(t, "a.pdf", err.Details["path"])
	assert.Equal(t, "no text content", err.Details["reason"])
}

func TestWrap_NilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeReadFailure, nil))
}

func TestHelpers(t *testing.T) {
	src := SourceUnavailable("data_source", nil)
	assert.Equal(t, ErrCodeSourceUnavailable, src.Code)
	assert.Equal(t, "data_source", src.Details["path"])
	assert.True(t, IsFatal(src))

	rf := ReadFailure("a.pdf", fmt.Errorf("io error"))
	assert.True(t, IsRetryable(rf))
	assert.False(t, IsFatal(rf))

	ex := ExtractionFailed("a.pdf", nil)
	assert.Equal(t, ErrCodeExtractionFailed, ex.Code)

	cc := InvalidChunkConfig("overlap too large")
	assert.True(t, IsFatal(cc))

	vs := VectorStoreError("add failed", fmt.Errorf("boom"))
	require.NotNil(t, vs.Cause)
	assert.True(t, IsRetryable(vs))
}

func TestPredicates_NonSyncErrors(t *testing.T) {
	plain := fmt.Errorf("plain error")
	assert.False(t, IsRetryable(plain))
	assert.False(t, IsFatal(plain))
	assert.Empty(t, GetCode(plain))
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsFatal(nil))
}
