// Package extract converts source document files into plain text.
//
// Extraction is the boundary the sync engine depends on: (file) -> text.
// Failures are reported as ERR_212_EXTRACTION_FAILED and handled per file
// by the orchestrator, never aborting a run.
package extract

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/opskit/awsmcp/internal/errors"
)

// Document is the result of extracting one source file.
type Document struct {
	// Title is the human-readable document title, derived from the
	// filename stem unless the extractor finds something better.
	Title string
	// Text is the extracted plain text.
	Text string
}

// Extractor converts a file on disk into plain text.
type Extractor interface {
	// Extract reads and converts the file at path.
	Extract(ctx context.Context, path string) (*Document, error)

	// Extensions returns the lowercased file extensions this extractor handles.
	Extensions() []string
}

// Registry dispatches extraction by file extension.
type Registry struct {
	byExt map[string]Extractor
}

// NewRegistry creates a registry with the default extractors (PDF, plain text).
func NewRegistry() *Registry {
	r := &Registry{byExt: make(map[string]Extractor)}
	r.Register(NewPDFExtractor())
	r.Register(NewTextExtractor())
	return r
}

// Register adds an extractor for each extension it declares.
// Later registrations win on conflict.
func (r *Registry) Register(e Extractor) {
	for _, ext := range e.Extensions() {
		r.byExt[strings.ToLower(ext)] = e
	}
}

// Extract dispatches to the extractor registered for path's extension.
func (r *Registry) Extract(ctx context.Context, path string) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(path))
	e, ok := r.byExt[ext]
	if !ok {
		return nil, errors.ExtractionFailed(path, nil).WithDetail("extension", ext)
	}
	return e.Extract(ctx, path)
}

// TitleFromPath derives a display title from a file path: the filename stem
// with dashes and underscores replaced by spaces, words title-cased.
func TitleFromPath(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	stem = strings.ReplaceAll(stem, "-", " ")
	stem = strings.ReplaceAll(stem, "_", " ")

	words := strings.Fields(stem)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	if len(words) == 0 {
		return "Untitled"
	}
	return strings.Join(words, " ")
}
