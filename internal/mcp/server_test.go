package mcp

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opskit/awsmcp/internal/config"
	"github.com/opskit/awsmcp/internal/embed"
	serrors "github.com/opskit/awsmcp/internal/errors"
	"github.com/opskit/awsmcp/internal/index"
	"github.com/opskit/awsmcp/internal/vectorstore"
)

func TestCostPeriod_Defaults(t *testing.T) {
	// Given: a fixed "now" mid-month
	now := time.Date(2026, 8, 25, 15, 30, 0, 0, time.UTC)

	// When: no dates are supplied
	start, end, err := costPeriod("", "", now)
	require.NoError(t, err)

	// Then: month-to-date with an exclusive end of tomorrow
	assert.Equal(t, "2026-08-01", start)
	assert.Equal(t, "2026-08-26", end)
}

func TestCostPeriod_ExplicitDates(t *testing.T) {
	start, end, err := costPeriod("2026-01-01", "2026-02-01", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01", start)
	assert.Equal(t, "2026-02-01", end)
}

func TestCostPeriod_Invalid(t *testing.T) {
	now := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)

	_, _, err := costPeriod("not-a-date", "", now)
	assert.Error(t, err)

	_, _, err = costPeriod("", "2026/08/01", now)
	assert.Error(t, err)

	// End must be after start.
	_, _, err = costPeriod("2026-08-10", "2026-08-10", now)
	assert.Error(t, err)
	_, _, err = costPeriod("2026-08-10", "2026-08-01", now)
	assert.Error(t, err)
}

func TestSyncStatus_FailedSyncKeepsDocumentsServable(t *testing.T) {
	// Given: a store already holding a document, and a startup sync that
	// failed (source directory gone), as recorded via SetSyncError
	ctx := context.Background()
	embedder := embed.NewStaticEmbedder()
	store := vectorstore.NewHNSWStore(embedder)
	defer func() { _ = store.Close() }()
	require.NoError(t, store.Add(ctx, "s3_guide", []string{"S3 stores objects in buckets."},
		vectorstore.DocumentMeta{Title: "S3 Guide", Category: "technical", DocType: "documentation"}))

	cfg := config.NewConfig()
	cfg.Knowledge.DataDir = t.TempDir()
	indexes := index.NewStore(filepath.Join(cfg.Knowledge.DataDir, "vector_store_index.json"))

	s := NewServer(store, indexes, embedder, nil, cfg)
	s.SetSyncError("source directory unavailable: data_source")

	// When: querying sync_status
	_, status, err := s.handleSyncStatus(ctx, nil, SyncStatusInput{})
	require.NoError(t, err)

	// Then: the knowledge base reports enabled with the failure attached
	assert.True(t, status.Enabled)
	assert.Equal(t, "source directory unavailable: data_source", status.LastSyncError)
	assert.Nil(t, status.LastSync)
	assert.Equal(t, 1, status.TotalChunks)

	// And: previously indexed documents are still searchable
	_, results, err := s.handleDocumentSearch(ctx, nil, DocumentSearchInput{Query: "S3 buckets"})
	require.NoError(t, err)
	require.NotEmpty(t, results.Results)
	assert.Equal(t, "s3_guide", results.Results[0].DocumentID)
}

func TestMapError(t *testing.T) {
	assert.Nil(t, MapError(nil))

	// Validation errors surface as invalid params
	e := MapError(serrors.New(serrors.ErrCodeQueryEmpty, "query is empty", nil))
	assert.Equal(t, ErrCodeInvalidParams, e.Code)
	assert.Equal(t, "query is empty", e.Message)

	// AWS credential failures get their own code
	e = MapError(serrors.New(serrors.ErrCodeAWSUnavailable, "no credentials", nil))
	assert.Equal(t, ErrCodeAWSUnavailable, e.Code)

	// Context cancellation maps to timeout
	e = MapError(context.Canceled)
	assert.Equal(t, ErrCodeTimeout, e.Code)
	e = MapError(context.DeadlineExceeded)
	assert.Equal(t, ErrCodeTimeout, e.Code)

	// Everything else is internal
	e = MapError(assert.AnError)
	assert.Equal(t, ErrCodeInternalError, e.Code)
}

func TestMCPError_Error(t *testing.T) {
	e := NewInvalidParamsError("query parameter is required")
	assert.Equal(t, "MCP error -32602: query parameter is required", e.Error())
}
