package reconcile

import (
	"cmp"
	"context"

	"ordered-sync/core/orderedsync"
)

// Adapter defines the model-specific side of a reconciliation job.
// Each adapter knows how to read its source and target in key order and how to
// apply an add or a remove to the target (e.g., table rows, countries, objects).
type Adapter[T any, K cmp.Ordered] interface {
	// Name returns the unique job name of this adapter (e.g., "tables", "countries").
	Name() string

	// Key returns the comparison key of an item. Both sequences must be
	// ordered by this key.
	Key(item T) K

	// Describe returns a short human readable form of an item for reports.
	Describe(item T) string

	// OpenSource opens the desired-state sequence. It is always opened before
	// the target, so a source that cannot be read aborts the job before any
	// change is made. Implementations should fail here rather than mid-stream.
	// A returned sequence that implements io.Closer is closed after the pass.
	OpenSource(ctx context.Context) (orderedsync.Sequence[T], error)

	// OpenTarget opens the current-state sequence.
	OpenTarget(ctx context.Context) (orderedsync.Sequence[T], error)

	// Add creates item in the target.
	Add(ctx context.Context, item T) error

	// Remove deletes exactly one occurrence of item from the target.
	Remove(ctx context.Context, item T) error
}
