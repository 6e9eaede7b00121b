// Package sync reconciles the vector store and the persisted index with the
// current state of the source directory.
package sync

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/opskit/awsmcp/internal/index"
	"github.com/opskit/awsmcp/internal/scanner"
)

// Candidate is a scanned file together with its content fingerprint.
type Candidate struct {
	scanner.FileInfo
	ContentHash string
}

// Plan is the outcome of change detection: three disjoint action sets plus
// the files that could not be fingerprinted this run.
type Plan struct {
	// ToIngest holds files absent from the index or present with a
	// different content hash, in scan order.
	ToIngest []Candidate

	// ToDelete holds index paths absent from the scan, sorted.
	ToDelete []string

	// Unchanged holds paths whose hash matches the index, in scan order.
	Unchanged []string

	// ReadFailures holds files that could not be read for fingerprinting.
	// They are excluded from both ToIngest and ToDelete: prior state is
	// left untouched until the file is readable again.
	ReadFailures []FileFailure
}

// Detect diffs the scan result against the index.
//
// The fingerprint covers file bytes, not size or mtime, so an edit that
// preserves both is still detected, and a touched-but-identical file is
// correctly Unchanged.
func Detect(ix *index.Index, files []scanner.FileInfo) *Plan {
	plan := &Plan{}
	seen := make(map[string]bool, len(files))

	for _, f := range files {
		seen[f.RelPath] = true

		hash, err := hashFile(f.AbsPath)
		if err != nil {
			plan.ReadFailures = append(plan.ReadFailures, FileFailure{
				Path:   f.RelPath,
				Reason: fmt.Sprintf("fingerprint failed: %v", err),
			})
			continue
		}

		entry := ix.Get(f.RelPath)
		if entry != nil && entry.ContentHash == hash {
			plan.Unchanged = append(plan.Unchanged, f.RelPath)
			continue
		}

		plan.ToIngest = append(plan.ToIngest, Candidate{FileInfo: f, ContentHash: hash})
	}

	for path := range ix.Entries {
		if !seen[path] {
			plan.ToDelete = append(plan.ToDelete, path)
		}
	}
	sort.Strings(plan.ToDelete)

	return plan
}

// hashFile computes the SHA-256 hex digest of a file's bytes, streamed.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
