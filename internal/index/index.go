// Package index persists the file-to-metadata index that records what has
// already been ingested into the vector store.
//
// The index is the sync engine's single source of truth: an entry exists for
// a path iff that path's content is currently represented in the vector
// store, and the recorded hash always matches the content behind the stored
// chunks. The orchestrator maintains that invariant by mutating the store
// before the index and persisting after every file.
package index

import (
	"time"
)

// Entry tracks one ingested source file.
type Entry struct {
	// ContentHash is the SHA-256 hex digest of the file bytes that
	// produced the currently stored chunks.
	ContentHash string `json:"content_hash"`

	// SizeBytes and ModifiedTime are informational; change detection uses
	// ContentHash only.
	SizeBytes    int64     `json:"size_bytes"`
	ModifiedTime time.Time `json:"modified_time"`

	// IngestedAt is when the last successful ingestion completed.
	IngestedAt time.Time `json:"ingested_at"`

	DocumentTitle string   `json:"document_title"`
	ChunksCreated int      `json:"chunks_created"`
	Category      string   `json:"category"`
	DocType       string   `json:"document_type"`
	Tags          []string `json:"tags,omitempty"`
}

// Index maps relative file path to its entry.
type Index struct {
	Version int               `json:"version"`
	Entries map[string]*Entry `json:"entries"`
}

// New returns an empty index.
func New() *Index {
	return &Index{Version: 1, Entries: make(map[string]*Entry)}
}

// Get returns the entry for path, or nil.
func (ix *Index) Get(path string) *Entry {
	return ix.Entries[path]
}

// Put stores the entry for path.
func (ix *Index) Put(path string, e *Entry) {
	ix.Entries[path] = e
}

// Remove deletes the entry for path.
func (ix *Index) Remove(path string) {
	delete(ix.Entries, path)
}

// Len returns the number of tracked files.
func (ix *Index) Len() int {
	return len(ix.Entries)
}
