package vectorstore

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// storeState is the gob-encoded sidecar holding everything the graph file
// does not: ID mappings, chunk records, and document bookkeeping.
type storeState struct {
	IDMap     map[string]uint64
	NextKey   uint64
	Records   map[string]*chunkRecord
	DocChunks map[string][]string
	DocAdded  map[string]time.Time
}

// Save persists the store: the HNSW graph at path and the chunk table at
// path+".meta". Both writes are atomic (temp file + rename), and the
// sidecar is committed before the graph. A crash between the two renames
// then leaves mappings whose nodes are missing from the older graph, which
// queries simply never return, and NextKey stays ahead of every key the
// graph may hold so keys are not reused after recovery.
func (s *HNSWStore) Save(path string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return fmt.Errorf("store is closed")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	tmpPath := path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create graph file: %w", err)
	}
	if err := s.graph.Export(file); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to export graph: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close graph file: %w", err)
	}

	if err := s.saveState(path + ".meta"); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace graph file: %w", err)
	}
	return nil
}

// saveState writes the gob sidecar.
func (s *HNSWStore) saveState(path string) error {
	tmpPath := path + ".tmp"
	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create state file: %w", err)
	}

	state := storeState{
		IDMap:     s.idMap,
		NextKey:   s.nextKey,
		Records:   s.records,
		DocChunks: s.docChunks,
		DocAdded:  s.docAdded,
	}
	if err := gob.NewEncoder(file).Encode(state); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to encode store state: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close state file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Load restores a previously saved store. A missing graph file leaves the
// store empty (fresh start).
func (s *HNSWStore) Load(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fmt.Errorf("store is closed")
	}

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open graph file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// coder/hnsw Import requires an io.ByteReader.
	if err := s.graph.Import(bufio.NewReader(file)); err != nil {
		return fmt.Errorf("failed to import graph: %w", err)
	}

	return s.loadState(path + ".meta")
}

// loadState reads the gob sidecar and rebuilds the reverse key mapping.
func (s *HNSWStore) loadState(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open state file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var state storeState
	if err := gob.NewDecoder(file).Decode(&state); err != nil {
		return fmt.Errorf("failed to decode store state: %w", err)
	}

	s.idMap = state.IDMap
	s.nextKey = state.NextKey
	s.records = state.Records
	s.docChunks = state.DocChunks
	s.docAdded = state.DocAdded
	if s.docAdded == nil {
		s.docAdded = make(map[string]time.Time)
	}

	s.keyMap = make(map[uint64]string, len(s.idMap))
	for ck, key := range s.idMap {
		s.keyMap[key] = ck
	}
	return nil
}
