// Package embed turns text into fixed-dimension vectors for similarity search.
//
// The embedding algorithm is deliberately simple and fully local: the sync
// engine only requires that identical text maps to identical vectors. A
// higher-quality model can be swapped in behind the Embedder interface.
package embed

import (
	"context"
)

// Embedder generates vector embeddings for text.
type Embedder interface {
	// Embed generates an embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding dimension.
	Dimensions() int

	// ModelName returns a stable identifier for the embedding scheme.
	ModelName() string

	// Close releases resources.
	Close() error
}
