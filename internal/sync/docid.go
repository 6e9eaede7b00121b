package sync

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

var (
	unsafeChars   = regexp.MustCompile(`[^a-z0-9_-]`)
	repeatedUnder = regexp.MustCompile(`_+`)
)

// DocumentID derives the vector-store document identity from a relative
// path. The readable part is the sanitized full path, never truncated. The
// sanitization folds separators, dots, and spaces into the same character,
// so a short hash of the raw path is appended to keep the mapping
// injective: a/b.txt and a_b.txt must not share a chunk set, or ingesting
// one would clobber the other.
//
// The derivation is deterministic: re-running sync for an unchanged path
// always addresses the same document.
func DocumentID(relPath string) string {
	id := strings.ToLower(relPath)
	id = unsafeChars.ReplaceAllString(id, "_")
	id = repeatedUnder.ReplaceAllString(id, "_")
	id = strings.Trim(id, "_")
	if id == "" {
		id = "untitled_document"
	}
	sum := sha256.Sum256([]byte(relPath))
	return id + "_" + hex.EncodeToString(sum[:4])
}
