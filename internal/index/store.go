package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/opskit/awsmcp/internal/errors"
)

// Store persists the index as a single pretty-printed JSON document.
//
// Save is atomic from the reader's perspective: content is written to a
// temp file in the same directory and renamed over the old one, so a crash
// mid-save leaves either the fully-prior or fully-new index on disk.
type Store struct {
	path string
	lock *flock.Flock
}

// NewStore creates a Store for the index file at path.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the index file path.
func (s *Store) Path() string {
	return s.path
}

// Lock acquires the cross-process lock guarding the index for the duration
// of a sync run. Two concurrent runs against the same index would produce
// lost updates, so a held lock is a hard error, not a wait.
func (s *Store) Lock() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	acquired, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire index lock: %w", err)
	}
	if !acquired {
		return errors.New(errors.ErrCodeIndexLocked,
			"another sync run holds the index lock", nil).
			WithDetail("lock_path", s.lock.Path())
	}
	return nil
}

// Unlock releases the cross-process lock.
func (s *Store) Unlock() error {
	return s.lock.Unlock()
}

// Load reads the persisted index. A missing file yields an empty index;
// an unreadable or unparsable file is fatal for the sync run.
func (s *Store) Load() (*Index, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, errors.New(errors.ErrCodeIndexCorrupt,
			fmt.Sprintf("failed to read index %s", s.path), err)
	}

	ix := New()
	if err := json.Unmarshal(data, ix); err != nil {
		return nil, errors.New(errors.ErrCodeIndexCorrupt,
			fmt.Sprintf("failed to parse index %s", s.path), err)
	}
	if ix.Entries == nil {
		ix.Entries = make(map[string]*Entry)
	}
	return ix, nil
}

// Save writes the index atomically.
func (s *Store) Save(ix *Index) error {
	data, err := json.MarshalIndent(ix, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	// Temp file in the same directory so the rename stays on one filesystem.
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp index file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write index: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp index file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace index: %w", err)
	}
	return nil
}
