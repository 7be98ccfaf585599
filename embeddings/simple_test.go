package embeddings

import (
	"context"
	"testing"
)

func TestSimple_Deterministic(t *testing.T) {
	e := NewSimple(16)
	ctx := context.Background()
	a, err := e.EmbedQuery(ctx, "same text")
	if err != nil {
		t.Fatalf("EmbedQuery failed: %v", err)
	}
	b, err := e.EmbedQuery(ctx, "same text")
	if err != nil {
		t.Fatalf("EmbedQuery failed: %v", err)
	}
	if len(a) != 16 {
		t.Fatalf("dimension = %d, want 16", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("identical text embedded differently at %d: %v vs %v", i, a[i], b[i])
		}
	}
	c, err := e.EmbedQuery(ctx, "other text")
	if err != nil {
		t.Fatalf("EmbedQuery failed: %v", err)
	}
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different text produced the identical vector")
	}
}

func TestSimple_EmbedDocuments(t *testing.T) {
	e := NewSimple(0)
	vectors, err := e.EmbedDocuments(context.Background(), []string{"one", "two", "three"})
	if err != nil {
		t.Fatalf("EmbedDocuments failed: %v", err)
	}
	if len(vectors) != 3 {
		t.Fatalf("got %d vectors, want 3", len(vectors))
	}
	for i, v := range vectors {
		if len(v) != 64 {
			t.Fatalf("vector %d dimension = %d, want default 64", i, len(v))
		}
	}
}
