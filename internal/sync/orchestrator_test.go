package sync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opskit/awsmcp/internal/chunk"
	"github.com/opskit/awsmcp/internal/classify"
	"github.com/opskit/awsmcp/internal/errors"
	"github.com/opskit/awsmcp/internal/extract"
	"github.com/opskit/awsmcp/internal/index"
	"github.com/opskit/awsmcp/internal/scanner"
	"github.com/opskit/awsmcp/internal/vectorstore"
)

// fakeStore records every mutation so tests can assert ordering and
// absence of work.
type fakeStore struct {
	ops    []string
	chunks map[string][]string
	meta   map[string]vectorstore.DocumentMeta
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		chunks: make(map[string][]string),
		meta:   make(map[string]vectorstore.DocumentMeta),
	}
}

func (f *fakeStore) Add(_ context.Context, docID string, chunks []string, meta vectorstore.DocumentMeta) error {
	f.ops = append(f.ops, "add:"+docID)
	f.chunks[docID] = chunks
	f.meta[docID] = meta
	return nil
}

func (f *fakeStore) Delete(_ context.Context, docID string) error {
	f.ops = append(f.ops, "delete:"+docID)
	delete(f.chunks, docID)
	delete(f.meta, docID)
	return nil
}

func (f *fakeStore) Query(context.Context, string, vectorstore.Filters, int) ([]*vectorstore.Match, error) {
	return nil, nil
}

func (f *fakeStore) Contains(docID string) bool {
	return len(f.chunks[docID]) > 0
}

func (f *fakeStore) Count() int {
	n := 0
	for _, c := range f.chunks {
		n += len(c)
	}
	return n
}

func (f *fakeStore) Documents() []vectorstore.DocumentInfo { return nil }
func (f *fakeStore) Save(string) error                     { return nil }
func (f *fakeStore) Load(string) error                     { return nil }
func (f *fakeStore) Close() error                          { return nil }

// testHarness bundles an orchestrator over a temp source directory.
type testHarness struct {
	sourceDir  string
	store      *fakeStore
	indexStore *index.Store
	orch       *Orchestrator
}

func newHarness(t *testing.T, chunkCfg chunk.Config, extensions []string) *testHarness {
	t.Helper()

	sourceDir := t.TempDir()
	dataDir := t.TempDir()

	chunker, err := chunk.New(chunkCfg)
	require.NoError(t, err)

	store := newFakeStore()
	indexStore := index.NewStore(filepath.Join(dataDir, "vector_store_index.json"))

	orch := New(Options{
		Scanner:    scanner.New(sourceDir, extensions),
		Extractor:  extract.NewRegistry(),
		Classifier: classify.New(nil),
		Chunker:    chunker,
		Store:      store,
		IndexStore: indexStore,
	})

	return &testHarness{
		sourceDir:  sourceDir,
		store:      store,
		indexStore: indexStore,
		orch:       orch,
	}
}

func (h *testHarness) write(t *testing.T, rel, content string) {
	t.Helper()
	abs := filepath.Join(h.sourceDir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
	require.NoError(t, os.WriteFile(abs, []byte(content), 0o644))
}

func TestOrchestrator_InitialIngest(t *testing.T) {
	// Given: two fresh files in the source directory
	h := newHarness(t, chunk.Config{Size: 100, Overlap: 20}, []string{".txt"})
	h.write(t, "policy/handbook.txt", strings.Repeat("employees must badge in ", 20))
	h.write(t, "aws/s3.txt", "S3 stores objects in buckets.")

	// When: running sync
	summary, err := h.orch.Run(context.Background())
	require.NoError(t, err)

	// Then: both files are ingested
	assert.Equal(t, 2, summary.Ingested)
	assert.Equal(t, 0, summary.Updated)
	assert.Equal(t, 0, summary.Deleted)
	assert.Empty(t, summary.Failed)
	assert.Equal(t, 2, summary.TrackedAt)

	// And: the store holds both documents, added without prior deletes
	assert.Equal(t, []string{"add:" + DocumentID("aws/s3.txt"), "add:" + DocumentID("policy/handbook.txt")}, h.store.ops)

	// And: the persisted index records hash, chunk count, and classification
	ix, err := h.indexStore.Load()
	require.NoError(t, err)
	entry := ix.Get("policy/handbook.txt")
	require.NotNil(t, entry)
	assert.NotEmpty(t, entry.ContentHash)
	assert.Equal(t, len(h.store.chunks[DocumentID("policy/handbook.txt")]), entry.ChunksCreated)
	assert.Equal(t, "business", entry.Category)
	assert.Equal(t, "policy", entry.DocType)
	assert.False(t, entry.IngestedAt.IsZero())
}

func TestOrchestrator_SecondRunIsNoOp(t *testing.T) {
	// Given: a synced directory
	h := newHarness(t, chunk.Config{Size: 100, Overlap: 20}, []string{".txt"})
	h.write(t, "a.txt", "alpha")
	h.write(t, "b.txt", "bravo")

	_, err := h.orch.Run(context.Background())
	require.NoError(t, err)
	opsAfterFirst := len(h.store.ops)

	// When: running sync again with nothing changed
	summary, err := h.orch.Run(context.Background())
	require.NoError(t, err)

	// Then: everything is skipped and the store is not touched at all
	assert.Equal(t, 0, summary.Ingested)
	assert.Equal(t, 0, summary.Updated)
	assert.Equal(t, 0, summary.Deleted)
	assert.Equal(t, 2, summary.Skipped)
	assert.Len(t, h.store.ops, opsAfterFirst)
}

func TestOrchestrator_ModifiedFileDeletesThenAdds(t *testing.T) {
	// Given: a synced file that is then modified
	h := newHarness(t, chunk.Config{Size: 100, Overlap: 20}, []string{".txt"})
	h.write(t, "a.txt", "first version")
	_, err := h.orch.Run(context.Background())
	require.NoError(t, err)

	h.write(t, "a.txt", "second version, rather different")

	// When: running sync again
	summary, err := h.orch.Run(context.Background())
	require.NoError(t, err)

	// Then: the file counts as updated, not ingested
	assert.Equal(t, 1, summary.Updated)
	assert.Equal(t, 0, summary.Ingested)

	// And: the old chunk set was deleted before the new one was added
	aID := DocumentID("a.txt")
	assert.Equal(t, []string{"add:" + aID, "delete:" + aID, "add:" + aID}, h.store.ops)
	assert.Equal(t, []string{"second version, rather different"}, h.store.chunks[aID])

	// And: the index entry carries the new content hash
	ix, err := h.indexStore.Load()
	require.NoError(t, err)
	firstHash := ""
	plan := Detect(index.New(), mustScan(t, h))
	for _, c := range plan.ToIngest {
		firstHash = c.ContentHash
	}
	assert.Equal(t, firstHash, ix.Get("a.txt").ContentHash)
}

func TestOrchestrator_RemovedFileIsDeleted(t *testing.T) {
	// Given: two synced files, one of which is then removed
	h := newHarness(t, chunk.Config{Size: 100, Overlap: 20}, []string{".txt"})
	h.write(t, "keep.txt", "staying")
	h.write(t, "drop.txt", "leaving")
	_, err := h.orch.Run(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(h.sourceDir, "drop.txt")))

	// When: running sync again
	summary, err := h.orch.Run(context.Background())
	require.NoError(t, err)

	// Then: the removed file is deleted from store and index
	assert.Equal(t, 1, summary.Deleted)
	assert.Equal(t, 1, summary.Skipped)
	assert.False(t, h.store.Contains(DocumentID("drop.txt")))
	assert.True(t, h.store.Contains(DocumentID("keep.txt")))

	ix, err := h.indexStore.Load()
	require.NoError(t, err)
	assert.Nil(t, ix.Get("drop.txt"))
	assert.NotNil(t, ix.Get("keep.txt"))
	assert.Equal(t, 1, summary.TrackedAt)
}

func TestOrchestrator_ExtractionFailureIsIsolated(t *testing.T) {
	// Given: one extractable file and one with no registered extractor
	h := newHarness(t, chunk.Config{Size: 100, Overlap: 20}, []string{".txt", ".xyz"})
	h.write(t, "good.txt", "readable content")
	h.write(t, "bad.xyz", "no extractor for this")

	// When: running sync
	summary, err := h.orch.Run(context.Background())
	require.NoError(t, err)

	// Then: the run completes; the good file is ingested, the bad one recorded
	assert.Equal(t, 1, summary.Ingested)
	require.Len(t, summary.Failed, 1)
	assert.Equal(t, "bad.xyz", summary.Failed[0].Path)

	// And: the failed file has no index entry, so the next run retries it
	ix, err := h.indexStore.Load()
	require.NoError(t, err)
	assert.Nil(t, ix.Get("bad.xyz"))
	assert.NotNil(t, ix.Get("good.txt"))
}

func TestOrchestrator_CrashRecoveryReconverges(t *testing.T) {
	// Given: a synced file whose index entry is lost, simulating a crash
	// after the store write but before the index write
	h := newHarness(t, chunk.Config{Size: 100, Overlap: 20}, []string{".txt"})
	h.write(t, "a.txt", "content that survived the crash")
	_, err := h.orch.Run(context.Background())
	require.NoError(t, err)

	ix, err := h.indexStore.Load()
	require.NoError(t, err)
	ix.Remove("a.txt")
	require.NoError(t, h.indexStore.Save(ix))

	chunksBefore := h.store.Count()

	// When: the next run processes the file again
	summary, err := h.orch.Run(context.Background())
	require.NoError(t, err)

	// Then: the file is re-ingested through delete-then-add, so the store
	// converges to exactly one chunk set instead of accumulating duplicates
	assert.Equal(t, 1, summary.Ingested)
	assert.Equal(t, chunksBefore, h.store.Count())
	aID := DocumentID("a.txt")
	assert.Equal(t, []string{"add:" + aID, "delete:" + aID, "add:" + aID}, h.store.ops)

	// And: the index entry is back
	ix, err = h.indexStore.Load()
	require.NoError(t, err)
	assert.NotNil(t, ix.Get("a.txt"))
}

func TestOrchestrator_LongDocumentChunkCount(t *testing.T) {
	// Given: a 50000-character document under a policy directory, with
	// small chunk windows
	h := newHarness(t, chunk.Config{Size: 800, Overlap: 100}, []string{".txt"})
	h.write(t, "policy/handbook.txt", strings.Repeat("x", 50000))

	// When: running sync
	summary, err := h.orch.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.Ingested)

	// Then: chunk count follows ceil((50000-100)/700) = 72 and the document
	// is classified from its directory
	ix, err := h.indexStore.Load()
	require.NoError(t, err)
	entry := ix.Get("policy/handbook.txt")
	require.NotNil(t, entry)
	assert.Equal(t, 72, entry.ChunksCreated)
	assert.Equal(t, "business", entry.Category)
	assert.Equal(t, "policy", entry.DocType)
	assert.Empty(t, entry.Tags)
	assert.Len(t, h.store.chunks[DocumentID("policy/handbook.txt")], 72)
}

func TestOrchestrator_SanitizationTwinsKeepSeparateChunkSets(t *testing.T) {
	// Given: two files whose paths sanitize to the same readable slug
	h := newHarness(t, chunk.Config{Size: 100, Overlap: 20}, []string{".txt"})
	h.write(t, "a/b.txt", "nested file content")
	h.write(t, "a_b.txt", "flat file content")

	_, err := h.orch.Run(context.Background())
	require.NoError(t, err)

	// Then: both documents exist in the store under distinct identities
	nested := DocumentID("a/b.txt")
	flat := DocumentID("a_b.txt")
	require.NotEqual(t, nested, flat)
	assert.Equal(t, []string{"nested file content"}, h.store.chunks[nested])
	assert.Equal(t, []string{"flat file content"}, h.store.chunks[flat])

	// When: removing one of the twins
	require.NoError(t, os.Remove(filepath.Join(h.sourceDir, "a_b.txt")))
	summary, err := h.orch.Run(context.Background())
	require.NoError(t, err)

	// Then: only the removed file's chunks are gone; the survivor is still
	// tracked, still stored, and still skipped as unchanged
	assert.Equal(t, 1, summary.Deleted)
	assert.Equal(t, 1, summary.Skipped)
	assert.False(t, h.store.Contains(flat))
	assert.True(t, h.store.Contains(nested))

	ix, err := h.indexStore.Load()
	require.NoError(t, err)
	assert.Nil(t, ix.Get("a_b.txt"))
	assert.NotNil(t, ix.Get("a/b.txt"))
}

func TestOrchestrator_MissingSourceDirIsFatal(t *testing.T) {
	// Given: an orchestrator whose source directory does not exist
	dataDir := t.TempDir()
	chunker, err := chunk.New(chunk.Config{Size: 100, Overlap: 20})
	require.NoError(t, err)

	orch := New(Options{
		Scanner:    scanner.New(filepath.Join(dataDir, "no-such-dir"), []string{".txt"}),
		Extractor:  extract.NewRegistry(),
		Classifier: classify.New(nil),
		Chunker:    chunker,
		Store:      newFakeStore(),
		IndexStore: index.NewStore(filepath.Join(dataDir, "index.json")),
	})

	// When: running sync
	_, err = orch.Run(context.Background())

	// Then: the run aborts with a fatal source error
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeSourceUnavailable, errors.GetCode(err))
	assert.True(t, errors.IsFatal(err))
}

func TestOrchestrator_ManyFilesStableOrder(t *testing.T) {
	// Files are processed in scan (lexical) order, so the op log is
	// deterministic across runs.
	h := newHarness(t, chunk.Config{Size: 100, Overlap: 20}, []string{".txt"})
	for i := 0; i < 5; i++ {
		h.write(t, fmt.Sprintf("doc-%d.txt", i), fmt.Sprintf("document number %d", i))
	}

	_, err := h.orch.Run(context.Background())
	require.NoError(t, err)

	want := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		want = append(want, "add:"+DocumentID(fmt.Sprintf("doc-%d.txt", i)))
	}
	assert.Equal(t, want, h.store.ops)
}

// mustScan returns the current scanner view of the harness source dir.
func mustScan(t *testing.T, h *testHarness) []scanner.FileInfo {
	t.Helper()
	files, err := scanner.New(h.sourceDir, []string{".txt"}).Scan()
	require.NoError(t, err)
	return files
}
