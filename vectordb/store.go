package vectordb

import (
	"context"

	"github.com/docqa/ragcenter/schema"
)

// VectorStore persists chunk documents keyed by content id and serves
// similarity search over them. Every mutating call flushes to durable
// storage before returning, so on-disk state always reflects committed
// batches.
type VectorStore interface {
	// Add embeds and upserts the documents. Identical content collapses to
	// one entry. An empty batch is a no-op.
	Add(ctx context.Context, docs []schema.Document) error
	// DeleteBySource removes all entries owned by the source file. A source
	// with no entries is a no-op, not an error.
	DeleteBySource(ctx context.Context, source string) error
	// SimilaritySearch returns up to k entries nearest to the query,
	// highest relevance first.
	SimilaritySearch(ctx context.Context, query string, k int) ([]schema.Document, error)
	// Count returns the number of persisted entries.
	Count(ctx context.Context) (int, error)
}
