package ollama

import (
	"context"
	"fmt"
)

// Embedder bridges the client to the embeddings.Embedder interface.
type Embedder struct {
	C *Client
}

// New constructs an Embedder talking to a local Ollama server.
func New(model, baseURL string) *Embedder {
	var opts []ClientOption
	if baseURL != "" {
		opts = append(opts, WithBaseURL(baseURL))
	}
	return &Embedder{C: NewClient(model, opts...)}
}

func (e *Embedder) EmbedDocuments(ctx context.Context, docs []string) ([][]float32, error) {
	if e == nil || e.C == nil {
		return nil, fmt.Errorf("ollama embedder not configured")
	}
	vectors, err := e.C.Embed(ctx, docs)
	return vectors, err
}

func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedDocuments(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for 1 query", len(vectors))
	}
	return vectors[0], nil
}
