package sync

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var docIDPattern = regexp.MustCompile(`^[a-z0-9_-]+_[0-9a-f]{8}$`)

func TestDocumentID(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantPrefix string
	}{
		{"simple file", "report.pdf", "report_pdf_"},
		{"nested path", "policy/Remote Work.pdf", "policy_remote_work_pdf_"},
		{"special characters collapse", "a!!b##c.pdf", "a_b_c_pdf_"},
		{"keeps dashes", "well-architected.pdf", "well-architected_pdf_"},
		{"empty input", "", "untitled_document_"},
		{"only unsafe characters", "###", "untitled_document_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := DocumentID(tt.path)
			assert.True(t, docIDPattern.MatchString(id), id)
			require.True(t, len(id) > len(tt.wantPrefix))
			assert.Equal(t, tt.wantPrefix, id[:len(tt.wantPrefix)])
		})
	}
}

func TestDocumentID_DistinctAcrossDirectories(t *testing.T) {
	// Same filename in different directories must map to different
	// documents, or one would silently overwrite the other's chunks.
	a := DocumentID("hr/policy.pdf")
	b := DocumentID("finance/policy.pdf")
	assert.NotEqual(t, a, b)
}

func TestDocumentID_NoAliasingAcrossSanitization(t *testing.T) {
	// Sanitization alone folds these three distinct paths into the same
	// readable slug; the hash suffix keeps their identities apart so the
	// tracking index and the vector store never cross-wire chunk sets.
	paths := []string{"a/b.txt", "a_b.txt", "a.b.txt", "a  b.txt"}

	seen := make(map[string]string)
	for _, p := range paths {
		id := DocumentID(p)
		if prev, ok := seen[id]; ok {
			t.Fatalf("paths %q and %q share document id %q", prev, p, id)
		}
		seen[id] = p
		assert.Equal(t, "a_b_txt_", id[:len("a_b_txt_")])
	}
}

func TestDocumentID_Deterministic(t *testing.T) {
	first := DocumentID("docs/AWS Overview (2024).pdf")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, DocumentID("docs/AWS Overview (2024).pdf"))
	}
}
