// Package scanner discovers ingestible source documents under a root directory.
package scanner

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/opskit/awsmcp/internal/errors"
)

// FileInfo describes one discovered source file.
// RelPath is the stable identifier used throughout the sync engine.
type FileInfo struct {
	// RelPath is the path relative to the scan root, using forward slashes.
	RelPath string
	// AbsPath is the absolute path on disk.
	AbsPath string
	// Size is the file size in bytes.
	Size int64
	// ModTime is the filesystem modification time.
	ModTime time.Time
}

// Scanner walks a root path and returns eligible source files.
type Scanner struct {
	root       string
	extensions map[string]bool
}

// New creates a Scanner for root accepting the given extensions
// (lowercased, with leading dot, e.g. ".pdf").
func New(root string, extensions []string) *Scanner {
	allow := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allow[strings.ToLower(ext)] = true
	}
	return &Scanner{root: root, extensions: allow}
}

// Scan walks the root and returns matching files ordered by relative path.
// Subdirectories are traversed; non-matching files are skipped.
// Returns ERR_210_SOURCE_UNAVAILABLE if the root does not exist or cannot
// be read. Unreadable subdirectories are skipped, not fatal.
func (s *Scanner) Scan() ([]FileInfo, error) {
	absRoot, err := filepath.Abs(s.root)
	if err != nil {
		return nil, errors.SourceUnavailable(s.root, err)
	}

	var files []FileInfo
	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				// The root itself is missing or unreadable: fatal for the run.
				return errors.SourceUnavailable(s.root, err)
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !s.extensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			// File vanished between listing and stat; skip it this run.
			return nil
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return nil
		}

		files = append(files, FileInfo{
			RelPath: filepath.ToSlash(rel),
			AbsPath: path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	// WalkDir is already lexical, but sort explicitly: scan order is the
	// processing order and must be deterministic.
	sort.Slice(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})

	return files, nil
}
