package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/opskit/awsmcp/internal/chunk"
	"github.com/opskit/awsmcp/internal/classify"
	"github.com/opskit/awsmcp/internal/config"
	"github.com/opskit/awsmcp/internal/embed"
	"github.com/opskit/awsmcp/internal/extract"
	"github.com/opskit/awsmcp/internal/index"
	"github.com/opskit/awsmcp/internal/scanner"
	"github.com/opskit/awsmcp/internal/sync"
	"github.com/opskit/awsmcp/internal/vectorstore"
)

// knowledgeStack bundles the collaborators behind the document knowledge
// base, assembled once per process.
type knowledgeStack struct {
	Store        vectorstore.Store
	IndexStore   *index.Store
	Embedder     embed.Embedder
	Orchestrator *sync.Orchestrator
}

// buildKnowledge assembles the knowledge base from configuration and loads
// any previously persisted vector store from disk.
func buildKnowledge(cfg *config.Config, logger *slog.Logger) (*knowledgeStack, error) {
	if err := os.MkdirAll(cfg.Knowledge.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", cfg.Knowledge.DataDir, err)
	}

	var chunker *chunk.Chunker
	var err error
	if cfg.Knowledge.ChunkSize > 0 {
		chunker, err = chunk.New(chunk.Config{
			Size:    cfg.Knowledge.ChunkSize,
			Overlap: cfg.Knowledge.ChunkOverlap,
		})
	} else {
		chunker, err = chunk.NewFromPreset(cfg.Knowledge.ChunkPreset)
	}
	if err != nil {
		return nil, err
	}

	embedder := embed.NewCachedEmbedder(embed.NewStaticEmbedder(), embed.DefaultCacheSize)
	store := vectorstore.NewDurable(vectorstore.NewHNSWStore(embedder), cfg.VectorStorePath())
	if err := store.Load(cfg.VectorStorePath()); err != nil {
		return nil, err
	}

	indexStore := index.NewStore(cfg.IndexPath())

	orchestrator := sync.New(sync.Options{
		Scanner:    scanner.New(cfg.Knowledge.SourceDir, cfg.Knowledge.Extensions),
		Extractor:  extract.NewRegistry(),
		Classifier: classify.FromConfig(cfg.Knowledge.Rules),
		Chunker:    chunker,
		Store:      store,
		IndexStore: indexStore,
		Logger:     logger,
	})

	return &knowledgeStack{
		Store:        store,
		IndexStore:   indexStore,
		Embedder:     embedder,
		Orchestrator: orchestrator,
	}, nil
}
