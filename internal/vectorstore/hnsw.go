package vectorstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/coder/hnsw"

	"github.com/opskit/awsmcp/internal/embed"
	"github.com/opskit/awsmcp/internal/errors"
)

// HNSWStore implements Store with a coder/hnsw graph and an in-memory
// chunk table, both persisted together via Save/Load.
type HNSWStore struct {
	mu       sync.RWMutex
	graph    *hnsw.Graph[uint64]
	embedder embed.Embedder

	// chunk key ("docID#NNNN") <-> internal graph key
	idMap  map[string]uint64
	keyMap map[uint64]string
	// nextKey only grows; deleted keys are never reused so lazy deletion
	// in the graph stays sound.
	nextKey uint64

	// records holds chunk text and metadata by chunk key.
	records map[string]*chunkRecord
	// docChunks indexes chunk keys by document for prefix-free deletion.
	docChunks map[string][]string
	docAdded  map[string]time.Time

	closed bool
}

// chunkRecord is the stored form of one chunk.
type chunkRecord struct {
	DocID      string
	ChunkIndex int
	Text       string
	Meta       DocumentMeta
}

// NewHNSWStore creates an empty store embedding with embedder.
func NewHNSWStore(embedder embed.Embedder) *HNSWStore {
	graph := hnsw.NewGraph[uint64]()
	graph.Distance = hnsw.CosineDistance
	graph.M = 16
	graph.EfSearch = 20
	graph.Ml = 0.25

	return &HNSWStore{
		graph:     graph,
		embedder:  embedder,
		idMap:     make(map[string]uint64),
		keyMap:    make(map[uint64]string),
		records:   make(map[string]*chunkRecord),
		docChunks: make(map[string][]string),
		docAdded:  make(map[string]time.Time),
	}
}

// chunkKey derives the stable chunk identifier.
func chunkKey(docID string, index int) string {
	return fmt.Sprintf("%s#%04d", docID, index)
}

// Add implements Store.
func (s *HNSWStore) Add(ctx context.Context, docID string, chunks []string, meta DocumentMeta) error {
	if docID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "document id is required", nil)
	}

	vectors, err := s.embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		return errors.Wrap(errors.ErrCodeEmbeddingFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("store is closed")
	}

	keys := make([]string, 0, len(chunks))
	for i, text := range chunks {
		ck := chunkKey(docID, i)

		// Replacing an existing chunk key orphans the old graph node
		// (lazy deletion; coder/hnsw misbehaves when the last node is
		// removed from the graph).
		if oldKey, exists := s.idMap[ck]; exists {
			delete(s.keyMap, oldKey)
			delete(s.idMap, ck)
		}

		key := s.nextKey
		s.nextKey++

		s.graph.Add(hnsw.MakeNode(key, vectors[i]))
		s.idMap[ck] = key
		s.keyMap[key] = ck
		s.records[ck] = &chunkRecord{
			DocID:      docID,
			ChunkIndex: i,
			Text:       text,
			Meta:       meta,
		}
		keys = append(keys, ck)
	}

	s.docChunks[docID] = keys
	s.docAdded[docID] = time.Now().UTC()
	return nil
}

// Delete implements Store. Lazy deletion: graph nodes are orphaned by
// dropping their ID mappings, never surfacing in results again.
func (s *HNSWStore) Delete(ctx context.Context, docID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("store is closed")
	}

	for _, ck := range s.docChunks[docID] {
		if key, exists := s.idMap[ck]; exists {
			delete(s.keyMap, key)
			delete(s.idMap, ck)
		}
		delete(s.records, ck)
	}
	delete(s.docChunks, docID)
	delete(s.docAdded, docID)
	return nil
}

// Query implements Store. When filters are set, the graph is oversampled
// threefold so post-filtering can still fill k results.
func (s *HNSWStore) Query(ctx context.Context, text string, filters Filters, k int) ([]*Match, error) {
	if k <= 0 {
		k = 5
	}

	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEmbeddingFailed, err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, fmt.Errorf("store is closed")
	}
	if s.graph.Len() == 0 {
		return []*Match{}, nil
	}

	fetch := k
	if filters.Category != "" || filters.DocType != "" || len(filters.Tags) > 0 {
		fetch = k * 3
	}

	nodes := s.graph.Search(vector, fetch)

	matches := make([]*Match, 0, k)
	for _, node := range nodes {
		ck, exists := s.keyMap[node.Key]
		if !exists {
			// Orphaned by lazy deletion.
			continue
		}
		rec := s.records[ck]
		if rec == nil || !matchesFilters(rec.Meta, filters) {
			continue
		}

		distance := s.graph.Distance(vector, node.Value)
		matches = append(matches, &Match{
			DocumentID: rec.DocID,
			ChunkIndex: rec.ChunkIndex,
			Text:       rec.Text,
			Score:      1.0 - distance/2.0,
			Meta:       rec.Meta,
		})
		if len(matches) >= k {
			break
		}
	}

	return matches, nil
}

// matchesFilters checks a chunk's metadata against query filters.
func matchesFilters(meta DocumentMeta, filters Filters) bool {
	if filters.Category != "" && meta.Category != filters.Category {
		return false
	}
	if filters.DocType != "" && meta.DocType != filters.DocType {
		return false
	}
	if len(filters.Tags) > 0 {
		tagSet := make(map[string]bool, len(meta.Tags))
		for _, t := range meta.Tags {
			tagSet[t] = true
		}
		any := false
		for _, t := range filters.Tags {
			if tagSet[t] {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	return true
}

// Contains implements Store.
func (s *HNSWStore) Contains(docID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docChunks[docID]) > 0
}

// Count implements Store.
func (s *HNSWStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Documents implements Store, sorted by document ID for stable listings.
func (s *HNSWStore) Documents() []DocumentInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]DocumentInfo, 0, len(s.docChunks))
	for docID, keys := range s.docChunks {
		info := DocumentInfo{
			DocumentID: docID,
			ChunkCount: len(keys),
			AddedAt:    s.docAdded[docID],
		}
		if len(keys) > 0 {
			if rec := s.records[keys[0]]; rec != nil {
				info.Meta = rec.Meta
			}
		}
		docs = append(docs, info)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].DocumentID < docs[j].DocumentID
	})
	return docs
}

// Close implements Store.
func (s *HNSWStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.graph = nil
	return nil
}

// Verify interface implementation.
var _ Store = (*HNSWStore)(nil)
