// Package vectorstore provides the chunk storage and similarity-search
// capability behind the document knowledge base.
//
// The sync engine drives it through three operations keyed by document
// identity: add a document's chunk set, delete a document's chunk set, and
// query by text. Chunk keys are derived as "<docID>#<index>", so re-adding
// a document can never produce duplicate chunk sets.
package vectorstore

import (
	"context"
	"time"
)

// DocumentMeta is the classification and identity attached to every chunk
// of a document at add time.
type DocumentMeta struct {
	Title    string
	Category string
	DocType  string
	Tags     []string
}

// Filters restricts query results. Zero values match everything; Tags
// matches documents carrying at least one of the given tags.
type Filters struct {
	Category string
	DocType  string
	Tags     []string
}

// Match is a single ranked query result.
type Match struct {
	DocumentID string
	ChunkIndex int
	Text       string
	Score      float32
	Meta       DocumentMeta
}

// Store is the vector-store capability consumed by the sync engine and the
// MCP document tools.
type Store interface {
	// Add stores a document's chunk set under docID, replacing nothing:
	// callers delete the old set first when replacing a document.
	Add(ctx context.Context, docID string, chunks []string, meta DocumentMeta) error

	// Delete removes every chunk belonging to docID. Deleting an absent
	// document is a no-op.
	Delete(ctx context.Context, docID string) error

	// Query returns up to k chunks ranked by similarity to text,
	// restricted by filters.
	Query(ctx context.Context, text string, filters Filters, k int) ([]*Match, error)

	// Contains reports whether any chunks exist for docID.
	Contains(docID string) bool

	// Count returns the total number of stored chunks.
	Count() int

	// Documents returns metadata for every stored document.
	Documents() []DocumentInfo

	// Persistence.
	Save(path string) error
	Load(path string) error
	Close() error
}

// DocumentInfo summarizes one stored document for listings.
type DocumentInfo struct {
	DocumentID string
	Meta       DocumentMeta
	ChunkCount int
	AddedAt    time.Time
}
