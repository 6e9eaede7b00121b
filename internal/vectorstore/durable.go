package vectorstore

import (
	"context"
)

// Durable wraps a Store and persists it after every mutation.
//
// The sync engine records a file in its index only after the store call
// returns, so the store's state must be on disk by then: a crash may leave
// the store ahead of the index (self-healing on the next run) but never
// behind it.
type Durable struct {
	Store
	path string
}

// NewDurable wraps inner, persisting to path after each Add and Delete.
func NewDurable(inner Store, path string) *Durable {
	return &Durable{Store: inner, path: path}
}

// Add implements Store.
func (d *Durable) Add(ctx context.Context, docID string, chunks []string, meta DocumentMeta) error {
	if err := d.Store.Add(ctx, docID, chunks, meta); err != nil {
		return err
	}
	return d.Store.Save(d.path)
}

// Delete implements Store.
func (d *Durable) Delete(ctx context.Context, docID string) error {
	if err := d.Store.Delete(ctx, docID); err != nil {
		return err
	}
	return d.Store.Save(d.path)
}
