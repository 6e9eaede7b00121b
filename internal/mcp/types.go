package mcp

import (
	"github.com/opskit/awsmcp/internal/awstools"
	"github.com/opskit/awsmcp/internal/sync"
)

// DocumentSearchInput defines the input schema for the document_search tool.
type DocumentSearchInput struct {
	Query    string   `json:"query" jsonschema:"the search query to execute against the document knowledge base"`
	Limit    int      `json:"limit,omitempty" jsonschema:"maximum number of results, default 5"`
	Category string   `json:"category,omitempty" jsonschema:"filter by document category, e.g. technical, business"`
	DocType  string   `json:"doc_type,omitempty" jsonschema:"filter by document type, e.g. manual, policy"`
	Tags     []string `json:"tags,omitempty" jsonschema:"filter by tags (a result matches if it carries any of them)"`
}

// DocumentSearchOutput defines the output schema for the document_search tool.
type DocumentSearchOutput struct {
	Results []DocumentMatch `json:"results" jsonschema:"list of matching document chunks"`
}

// DocumentMatch is one chunk-level search hit.
type DocumentMatch struct {
	DocumentID string   `json:"document_id" jsonschema:"stable identifier derived from the source path"`
	Title      string   `json:"title" jsonschema:"document title"`
	ChunkIndex int      `json:"chunk_index" jsonschema:"position of this chunk within the document"`
	Content    string   `json:"content" jsonschema:"matched chunk text"`
	Score      float64  `json:"score" jsonschema:"similarity score between 0 and 1"`
	Category   string   `json:"category,omitempty"`
	DocType    string   `json:"doc_type,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// DocumentListInput defines the input schema for the document_list tool.
type DocumentListInput struct {
	Category string `json:"category,omitempty" jsonschema:"only list documents in this category"`
}

// DocumentListOutput defines the output schema for the document_list tool.
type DocumentListOutput struct {
	Documents []DocumentSummary `json:"documents"`
	Total     int               `json:"total"`
}

// DocumentSummary is one indexed document in a listing.
type DocumentSummary struct {
	DocumentID string   `json:"document_id"`
	Title      string   `json:"title"`
	Category   string   `json:"category"`
	DocType    string   `json:"doc_type"`
	Tags       []string `json:"tags,omitempty"`
	ChunkCount int      `json:"chunk_count"`
	AddedAt    string   `json:"added_at"`
}

// DocumentCategoriesInput defines the input schema for the
// document_categories tool (no parameters).
type DocumentCategoriesInput struct{}

// DocumentCategoriesOutput defines the output schema for the
// document_categories tool.
type DocumentCategoriesOutput struct {
	Categories map[string][]string `json:"categories" jsonschema:"known categories mapped to their document types"`
}

// SyncStatusInput defines the input schema for the sync_status tool (no parameters).
type SyncStatusInput struct{}

// SyncStatusOutput defines the output schema for the sync_status tool.
type SyncStatusOutput struct {
	Enabled        bool          `json:"enabled"`
	TrackedFiles   int           `json:"tracked_files"`
	TotalChunks    int           `json:"total_chunks"`
	IndexPath      string        `json:"index_path,omitempty"`
	LastSync       *sync.Summary `json:"last_sync,omitempty" jsonschema:"summary of the last sync run in this process, if any"`
	LastSyncError  string        `json:"last_sync_error,omitempty" jsonschema:"error from the last sync run in this process; search still covers previously indexed documents"`
	EmbeddingModel string        `json:"embedding_model,omitempty"`
}

// AWSIdentityInput defines the input schema for the aws_identity tool (no parameters).
type AWSIdentityInput struct{}

// S3ListBucketsInput defines the input schema for the s3_list_buckets tool (no parameters).
type S3ListBucketsInput struct{}

// S3ListBucketsOutput defines the output schema for the s3_list_buckets tool.
type S3ListBucketsOutput struct {
	Buckets []awstools.Bucket `json:"buckets"`
	Total   int               `json:"total"`
}

// EC2DescribeInstancesInput defines the input schema for the
// ec2_describe_instances tool.
type EC2DescribeInstancesInput struct {
	Region string   `json:"region,omitempty" jsonschema:"AWS region to query, default is the configured region"`
	States []string `json:"states,omitempty" jsonschema:"only include instances in these states, e.g. running, stopped"`
}

// EC2DescribeInstancesOutput defines the output schema for the
// ec2_describe_instances tool.
type EC2DescribeInstancesOutput struct {
	Instances []awstools.Instance `json:"instances"`
	Total     int                 `json:"total"`
}

// CostSummaryInput defines the input schema for the cost_summary tool.
type CostSummaryInput struct {
	Start string `json:"start,omitempty" jsonschema:"period start date YYYY-MM-DD, default is the first day of the current month"`
	End   string `json:"end,omitempty" jsonschema:"period end date YYYY-MM-DD exclusive, default is tomorrow"`
}
