package embeddings

import "context"

// Embedder computes vector embeddings for documents and queries. The write
// and read paths of an index must use the same embedder for the lifetime of
// that index; switching models requires a full rebuild.
type Embedder interface {
	EmbedDocuments(ctx context.Context, docs []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}
