package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	stdsync "sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/opskit/awsmcp/internal/awstools"
	"github.com/opskit/awsmcp/internal/classify"
	"github.com/opskit/awsmcp/internal/config"
	"github.com/opskit/awsmcp/internal/embed"
	"github.com/opskit/awsmcp/internal/index"
	"github.com/opskit/awsmcp/internal/sync"
	"github.com/opskit/awsmcp/internal/vectorstore"
	"github.com/opskit/awsmcp/pkg/version"
)

// Server is the MCP server for awsmcp. It exposes the document knowledge
// base and a small set of AWS account tools over stdio.
type Server struct {
	mcp      *mcp.Server
	store    vectorstore.Store // nil when the knowledge base is disabled
	indexes  *index.Store      // nil when the knowledge base is disabled
	embedder embed.Embedder    // nil when the knowledge base is disabled
	aws      *awstools.Client  // nil when AWS credentials are unavailable
	config   *config.Config
	logger   *slog.Logger

	// Last sync run in this process, reported by sync_status. When the
	// startup sync failed, syncErr carries the error and lastSync is nil.
	lastSync *sync.Summary
	syncErr  string

	mu stdsync.RWMutex
}

// NewServer creates a new MCP server. store, indexes, and embedder may be
// nil when the knowledge base is disabled; aws may be nil when credentials
// could not be resolved. The corresponding tools then fail at call time
// instead of startup.
func NewServer(store vectorstore.Store, indexes *index.Store, embedder embed.Embedder, aws *awstools.Client, cfg *config.Config) *Server {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	s := &Server{
		store:    store,
		indexes:  indexes,
		embedder: embedder,
		aws:      aws,
		config:   cfg,
		logger:   slog.Default(),
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    "awsmcp",
			Version: version.Version,
		},
		nil,
	)

	s.registerTools()

	return s
}

// SetLastSync records the outcome of the startup sync for sync_status.
func (s *Server) SetLastSync(summary *sync.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSync = summary
}

// SetSyncError records a failed startup sync for sync_status. The document
// tools stay available for whatever the store already holds.
func (s *Server) SetSyncError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.syncErr = msg
}

// MCPServer returns the underlying MCP server instance.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// registerTools registers all tools with the MCP server. Document tools are
// only registered when the knowledge base is available.
func (s *Server) registerTools() {
	count := 0

	if s.store != nil {
		mcp.AddTool(s.mcp, &mcp.Tool{
			Name:        "document_search",
			Description: "Semantic search over the ingested document knowledge base. Returns ranked chunks with document metadata. Supports filtering by category, document type, and tags.",
		}, s.handleDocumentSearch)

		mcp.AddTool(s.mcp, &mcp.Tool{
			Name:        "document_list",
			Description: "List all documents currently in the knowledge base with their classification and chunk counts.",
		}, s.handleDocumentList)

		mcp.AddTool(s.mcp, &mcp.Tool{
			Name:        "document_categories",
			Description: "List known document categories and their document types, for building search filters.",
		}, s.handleDocumentCategories)

		count += 3
	}

	// sync_status is always available so clients can discover whether the
	// knowledge base is enabled at all.
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "sync_status",
		Description: "Report knowledge base state: tracked files, chunk count, and the outcome of the last document sync.",
	}, s.handleSyncStatus)
	count++

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "aws_identity",
		Description: "Return the AWS account, ARN, and region of the active credentials (STS GetCallerIdentity).",
	}, s.handleAWSIdentity)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "s3_list_buckets",
		Description: "List all S3 buckets owned by the account.",
	}, s.handleS3ListBuckets)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "ec2_describe_instances",
		Description: "List EC2 instances, optionally filtered by region and instance state.",
	}, s.handleEC2DescribeInstances)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "cost_summary",
		Description: "Return monthly unblended AWS cost grouped by service for a date range (Cost Explorer).",
	}, s.handleCostSummary)
	count += 4

	s.logger.Info("MCP tools registered", slog.Int("count", count))
}

// handleDocumentSearch is the MCP SDK handler for the document_search tool.
func (s *Server) handleDocumentSearch(ctx context.Context, _ *mcp.CallToolRequest, input DocumentSearchInput) (
	*mcp.CallToolResult,
	DocumentSearchOutput,
	error,
) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, DocumentSearchOutput{}, NewInvalidParamsError("query parameter is required and must be a non-empty string")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 5
	}
	if limit > 50 {
		limit = 50
	}

	start := time.Now()
	matches, err := s.store.Query(ctx, input.Query, vectorstore.Filters{
		Category: input.Category,
		DocType:  input.DocType,
		Tags:     input.Tags,
	}, limit)
	if err != nil {
		s.logger.Error("document_search failed",
			slog.String("query", input.Query),
			slog.String("error", err.Error()))
		return nil, DocumentSearchOutput{}, MapError(err)
	}

	output := DocumentSearchOutput{Results: make([]DocumentMatch, 0, len(matches))}
	for _, m := range matches {
		output.Results = append(output.Results, DocumentMatch{
			DocumentID: m.DocumentID,
			Title:      m.Meta.Title,
			ChunkIndex: m.ChunkIndex,
			Content:    m.Text,
			Score:      float64(m.Score),
			Category:   m.Meta.Category,
			DocType:    m.Meta.DocType,
			Tags:       m.Meta.Tags,
		})
	}

	s.logger.Info("document_search completed",
		slog.String("query", input.Query),
		slog.Int("result_count", len(output.Results)),
		slog.Duration("duration", time.Since(start)))

	return nil, output, nil
}

// handleDocumentList is the MCP SDK handler for the document_list tool.
func (s *Server) handleDocumentList(_ context.Context, _ *mcp.CallToolRequest, input DocumentListInput) (
	*mcp.CallToolResult,
	DocumentListOutput,
	error,
) {
	docs := s.store.Documents()

	output := DocumentListOutput{Documents: make([]DocumentSummary, 0, len(docs))}
	for _, d := range docs {
		if input.Category != "" && d.Meta.Category != input.Category {
			continue
		}
		output.Documents = append(output.Documents, DocumentSummary{
			DocumentID: d.DocumentID,
			Title:      d.Meta.Title,
			Category:   d.Meta.Category,
			DocType:    d.Meta.DocType,
			Tags:       d.Meta.Tags,
			ChunkCount: d.ChunkCount,
			AddedAt:    d.AddedAt.UTC().Format(time.RFC3339),
		})
	}
	output.Total = len(output.Documents)

	return nil, output, nil
}

// handleDocumentCategories is the MCP SDK handler for the
// document_categories tool.
func (s *Server) handleDocumentCategories(_ context.Context, _ *mcp.CallToolRequest, _ DocumentCategoriesInput) (
	*mcp.CallToolResult,
	DocumentCategoriesOutput,
	error,
) {
	return nil, DocumentCategoriesOutput{Categories: classify.Categories}, nil
}

// handleSyncStatus is the MCP SDK handler for the sync_status tool. It reads
// the tracking index from disk so the numbers reflect what is durably stored,
// not what this process believes.
func (s *Server) handleSyncStatus(_ context.Context, _ *mcp.CallToolRequest, _ SyncStatusInput) (
	*mcp.CallToolResult,
	SyncStatusOutput,
	error,
) {
	output := SyncStatusOutput{Enabled: s.store != nil}
	if s.store == nil {
		return nil, output, nil
	}

	output.IndexPath = s.config.IndexPath()
	output.TotalChunks = s.store.Count()
	if s.embedder != nil {
		output.EmbeddingModel = s.embedder.ModelName()
	}

	ix, err := s.indexes.Load()
	if err != nil {
		return nil, SyncStatusOutput{}, MapError(err)
	}
	output.TrackedFiles = ix.Len()

	s.mu.RLock()
	output.LastSync = s.lastSync
	output.LastSyncError = s.syncErr
	s.mu.RUnlock()

	return nil, output, nil
}

// handleAWSIdentity is the MCP SDK handler for the aws_identity tool.
func (s *Server) handleAWSIdentity(ctx context.Context, _ *mcp.CallToolRequest, _ AWSIdentityInput) (
	*mcp.CallToolResult,
	*awstools.CallerIdentity,
	error,
) {
	if s.aws == nil {
		return nil, nil, &MCPError{Code: ErrCodeAWSUnavailable, Message: "AWS credentials are not configured."}
	}

	identity, err := s.aws.Identity(ctx)
	if err != nil {
		return nil, nil, MapError(err)
	}
	return nil, identity, nil
}

// handleS3ListBuckets is the MCP SDK handler for the s3_list_buckets tool.
func (s *Server) handleS3ListBuckets(ctx context.Context, _ *mcp.CallToolRequest, _ S3ListBucketsInput) (
	*mcp.CallToolResult,
	S3ListBucketsOutput,
	error,
) {
	if s.aws == nil {
		return nil, S3ListBucketsOutput{}, &MCPError{Code: ErrCodeAWSUnavailable, Message: "AWS credentials are not configured."}
	}

	buckets, err := s.aws.ListBuckets(ctx)
	if err != nil {
		return nil, S3ListBucketsOutput{}, MapError(err)
	}
	return nil, S3ListBucketsOutput{Buckets: buckets, Total: len(buckets)}, nil
}

// handleEC2DescribeInstances is the MCP SDK handler for the
// ec2_describe_instances tool.
func (s *Server) handleEC2DescribeInstances(ctx context.Context, _ *mcp.CallToolRequest, input EC2DescribeInstancesInput) (
	*mcp.CallToolResult,
	EC2DescribeInstancesOutput,
	error,
) {
	if s.aws == nil {
		return nil, EC2DescribeInstancesOutput{}, &MCPError{Code: ErrCodeAWSUnavailable, Message: "AWS credentials are not configured."}
	}

	instances, err := s.aws.DescribeInstances(ctx, input.Region, input.States)
	if err != nil {
		return nil, EC2DescribeInstancesOutput{}, MapError(err)
	}
	return nil, EC2DescribeInstancesOutput{Instances: instances, Total: len(instances)}, nil
}

// handleCostSummary is the MCP SDK handler for the cost_summary tool.
func (s *Server) handleCostSummary(ctx context.Context, _ *mcp.CallToolRequest, input CostSummaryInput) (
	*mcp.CallToolResult,
	*awstools.CostSummary,
	error,
) {
	if s.aws == nil {
		return nil, nil, &MCPError{Code: ErrCodeAWSUnavailable, Message: "AWS credentials are not configured."}
	}

	start, end, err := costPeriod(input.Start, input.End, time.Now().UTC())
	if err != nil {
		return nil, nil, NewInvalidParamsError(err.Error())
	}

	summary, err := s.aws.CostByService(ctx, start, end)
	if err != nil {
		return nil, nil, MapError(err)
	}
	return nil, summary, nil
}

// costPeriod resolves the cost_summary date range. Defaults cover the
// current month to date; the Cost Explorer API treats end as exclusive.
func costPeriod(start, end string, now time.Time) (string, string, error) {
	const layout = "2006-01-02"

	if start == "" {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).Format(layout)
	} else if _, err := time.Parse(layout, start); err != nil {
		return "", "", fmt.Errorf("invalid start date %q, expected YYYY-MM-DD", start)
	}

	if end == "" {
		end = now.AddDate(0, 0, 1).Format(layout)
	} else if _, err := time.Parse(layout, end); err != nil {
		return "", "", fmt.Errorf("invalid end date %q, expected YYYY-MM-DD", end)
	}

	if end <= start {
		return "", "", fmt.Errorf("end date %s must be after start date %s", end, start)
	}
	return start, end, nil
}

// Serve runs the server on the stdio transport until ctx is canceled.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("Starting MCP server", slog.String("transport", "stdio"))

	err := s.mcp.Run(ctx, &mcp.StdioTransport{})
	if err != nil && err != context.Canceled {
		s.logger.Error("MCP server stopped with error", slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("MCP server stopped gracefully")
	return nil
}

// Close releases server resources.
func (s *Server) Close() error {
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
