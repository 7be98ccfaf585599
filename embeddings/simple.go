package embeddings

import "context"

// Simple returns deterministic vectors derived from the input bytes. It is
// meant for tests and offline runs; identical text always maps to the
// identical vector, so relevance ordering is stable.
type Simple struct {
	Dim int
}

// NewSimple constructs a deterministic embedder with the given dimension.
func NewSimple(dim int) *Simple {
	if dim <= 0 {
		dim = 64
	}
	return &Simple{Dim: dim}
}

// EmbedDocuments embeds documents deterministically.
func (e *Simple) EmbedDocuments(ctx context.Context, docs []string) ([][]float32, error) {
	out := make([][]float32, len(docs))
	for i, doc := range docs {
		out[i] = embedString(doc, e.Dim)
	}
	return out, nil
}

// EmbedQuery embeds a query deterministically.
func (e *Simple) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return embedString(text, e.Dim), nil
}

func embedString(s string, dim int) []float32 {
	if dim <= 0 {
		dim = 64
	}
	v := make([]float32, dim)
	var h uint32
	for i := 0; i < len(s); i++ {
		h = h*16777619 ^ uint32(s[i])
	}
	seed := h
	for i := range v {
		seed = seed*1664525 + 1013904223
		v[i] = float32(seed%10000) / 10000.0
	}
	return v
}
