package sync

import (
	"context"
	"log/slog"
	"time"

	"github.com/opskit/awsmcp/internal/chunk"
	"github.com/opskit/awsmcp/internal/classify"
	"github.com/opskit/awsmcp/internal/errors"
	"github.com/opskit/awsmcp/internal/extract"
	"github.com/opskit/awsmcp/internal/index"
	"github.com/opskit/awsmcp/internal/scanner"
	"github.com/opskit/awsmcp/internal/vectorstore"
)

// Extractor is the text-extraction collaborator consumed by the orchestrator.
type Extractor interface {
	Extract(ctx context.Context, path string) (*extract.Document, error)
}

// Orchestrator drives one sync run: scan, diff, reconcile each changed file
// against the vector store, and persist the index after every file.
//
// Files are processed one at a time in scan order. A failure on one file is
// recorded and skipped; only an unreadable index or an unenumerable source
// directory aborts the run.
type Orchestrator struct {
	scanner    *scanner.Scanner
	extractor  Extractor
	classifier *classify.Classifier
	chunker    *chunk.Chunker
	store      vectorstore.Store
	indexStore *index.Store
	logger     *slog.Logger
}

// Options assembles an Orchestrator.
type Options struct {
	Scanner    *scanner.Scanner
	Extractor  Extractor
	Classifier *classify.Classifier
	Chunker    *chunk.Chunker
	Store      vectorstore.Store
	IndexStore *index.Store
	Logger     *slog.Logger
}

// New creates an Orchestrator.
func New(opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		scanner:    opts.Scanner,
		extractor:  opts.Extractor,
		classifier: opts.Classifier,
		chunker:    opts.Chunker,
		store:      opts.Store,
		indexStore: opts.IndexStore,
		logger:     logger,
	}
}

// Run executes one sync run and returns its summary.
//
// The index is persisted after each successfully processed file, never
// batched at the end, so a crash loses at most the file in flight. Store
// mutations always precede the matching index mutation: the index never
// claims consistency the store does not have.
func (o *Orchestrator) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()

	if err := o.indexStore.Lock(); err != nil {
		return nil, err
	}
	defer func() { _ = o.indexStore.Unlock() }()

	ix, err := o.indexStore.Load()
	if err != nil {
		return nil, err
	}

	o.logger.Info("sync started", slog.Int("tracked_files", ix.Len()))

	files, err := o.scanner.Scan()
	if err != nil {
		return nil, err
	}
	o.logger.Info("scan complete", slog.Int("files", len(files)))

	plan := Detect(ix, files)
	o.logger.Info("diff complete",
		slog.Int("to_ingest", len(plan.ToIngest)),
		slog.Int("to_delete", len(plan.ToDelete)),
		slog.Int("unchanged", len(plan.Unchanged)),
		slog.Int("read_failures", len(plan.ReadFailures)))

	summary := &Summary{Skipped: len(plan.Unchanged)}
	for _, rf := range plan.ReadFailures {
		o.logger.Warn("skipping unreadable file",
			slog.String("path", rf.Path), slog.String("reason", rf.Reason))
		summary.Failed = append(summary.Failed, rf)
	}

	for _, cand := range plan.ToIngest {
		if fail := o.ingestFile(ctx, ix, cand, summary); fail != nil {
			o.logger.Warn("file failed",
				slog.String("path", fail.Path), slog.String("reason", fail.Reason))
			summary.Failed = append(summary.Failed, *fail)
		}
	}

	for _, path := range plan.ToDelete {
		if fail := o.deleteFile(ctx, ix, path); fail != nil {
			o.logger.Warn("delete failed",
				slog.String("path", fail.Path), slog.String("reason", fail.Reason))
			summary.Failed = append(summary.Failed, *fail)
			continue
		}
		summary.Deleted++
	}

	summary.TrackedAt = ix.Len()
	summary.Duration = time.Since(start)
	o.logger.Info("sync complete",
		slog.Int("ingested", summary.Ingested),
		slog.Int("updated", summary.Updated),
		slog.Int("skipped", summary.Skipped),
		slog.Int("deleted", summary.Deleted),
		slog.Int("failed", len(summary.Failed)),
		slog.Duration("duration", summary.Duration))

	return summary, nil
}

// ingestFile processes one new or modified file. Any prior index entry for
// the path is left untouched on failure, so the next run retries the file.
func (o *Orchestrator) ingestFile(ctx context.Context, ix *index.Index, cand Candidate, summary *Summary) *FileFailure {
	docID := DocumentID(cand.RelPath)
	prior := ix.Get(cand.RelPath)

	doc, err := o.extractor.Extract(ctx, cand.AbsPath)
	if err != nil {
		return &FileFailure{Path: cand.RelPath, Reason: err.Error()}
	}

	cls := o.classifier.Classify(cand.RelPath)
	chunks := o.chunker.Split(doc.Text)

	// Modified-file case: remove the stale chunk set before adding the new
	// one so the two never coexist under the same document identity. A
	// crash between delete and add is recovered by the next run, which
	// still sees the path in ToIngest.
	if prior != nil || o.store.Contains(docID) {
		if err := o.store.Delete(ctx, docID); err != nil {
			return &FileFailure{Path: cand.RelPath, Reason: errors.VectorStoreError("delete failed", err).Error()}
		}
	}

	meta := vectorstore.DocumentMeta{
		Title:    doc.Title,
		Category: cls.Category,
		DocType:  cls.DocType,
		Tags:     cls.Tags,
	}
	if err := o.store.Add(ctx, docID, chunks, meta); err != nil {
		return &FileFailure{Path: cand.RelPath, Reason: errors.VectorStoreError("add failed", err).Error()}
	}

	// The store holds the new chunk set; only now may the index claim it.
	ix.Put(cand.RelPath, &index.Entry{
		ContentHash:   cand.ContentHash,
		SizeBytes:     cand.Size,
		ModifiedTime:  cand.ModTime,
		IngestedAt:    time.Now().UTC(),
		DocumentTitle: doc.Title,
		ChunksCreated: len(chunks),
		Category:      cls.Category,
		DocType:       cls.DocType,
		Tags:          cls.Tags,
	})
	if err := o.indexStore.Save(ix); err != nil {
		// The store is ahead of the index now; the next run re-detects the
		// file and re-issues delete-then-add without duplicating chunks.
		return &FileFailure{Path: cand.RelPath, Reason: err.Error()}
	}

	if prior == nil {
		summary.Ingested++
		o.logger.Info("ingested",
			slog.String("path", cand.RelPath),
			slog.String("category", cls.Category),
			slog.String("doc_type", cls.DocType),
			slog.Int("chunks", len(chunks)))
	} else {
		summary.Updated++
		o.logger.Info("updated",
			slog.String("path", cand.RelPath),
			slog.Int("chunks", len(chunks)))
	}
	return nil
}

// deleteFile removes a no-longer-present file from the store and the index,
// in that order.
func (o *Orchestrator) deleteFile(ctx context.Context, ix *index.Index, path string) *FileFailure {
	if err := o.store.Delete(ctx, DocumentID(path)); err != nil {
		return &FileFailure{Path: path, Reason: errors.VectorStoreError("delete failed", err).Error()}
	}

	ix.Remove(path)
	if err := o.indexStore.Save(ix); err != nil {
		return &FileFailure{Path: path, Reason: err.Error()}
	}

	o.logger.Info("removed", slog.String("path", path))
	return nil
}
