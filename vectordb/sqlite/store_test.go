package sqlite

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/docqa/ragcenter/document"
	"github.com/docqa/ragcenter/embeddings"
	"github.com/docqa/ragcenter/schema"
	"github.com/docqa/ragcenter/vectordb/meta"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.db")
	store, err := Open(path, embeddings.NewSimple(32))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func doc(source, content string) schema.Document {
	return schema.Document{
		PageContent: content,
		Metadata: map[string]interface{}{
			meta.SourceKey:    source,
			meta.ContentIDKey: document.ContentID(content),
		},
	}
}

func TestStore_AddAndCount(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	docs := []schema.Document{
		doc("a.txt", "alpha content"),
		doc("a.txt", "beta content"),
	}
	if err := store.Add(ctx, docs); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
}

func TestStore_Add_Idempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	docs := []schema.Document{doc("a.txt", "same content")}
	for i := 0; i < 3; i++ {
		if err := store.Add(ctx, docs); err != nil {
			t.Fatalf("Add %d failed: %v", i, err)
		}
	}
	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("re-adding identical content grew the store: count = %d, want 1", count)
	}
}

func TestStore_Add_Empty(t *testing.T) {
	store, _ := newTestStore(t)
	if err := store.Add(context.Background(), nil); err != nil {
		t.Fatalf("Add of empty batch failed: %v", err)
	}
}

func TestStore_DeleteBySource(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	docs := []schema.Document{
		doc("keep.txt", "content that stays"),
		doc("drop.txt", "content that goes"),
		doc("drop.txt", "more content that goes"),
	}
	if err := store.Add(ctx, docs); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.DeleteBySource(ctx, "drop.txt"); err != nil {
		t.Fatalf("DeleteBySource failed: %v", err)
	}
	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count after delete = %d, want 1", count)
	}
	has, err := store.HasEntry(ctx, document.ContentID("content that stays"))
	if err != nil {
		t.Fatalf("HasEntry failed: %v", err)
	}
	if !has {
		t.Fatal("entry of the untouched source was removed")
	}
}

func TestStore_DeleteBySource_NoMatch(t *testing.T) {
	store, _ := newTestStore(t)
	if err := store.DeleteBySource(context.Background(), "absent.txt"); err != nil {
		t.Fatalf("delete with no matching entries failed: %v", err)
	}
}

func TestStore_SimilaritySearch(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	docs := []schema.Document{
		doc("a.txt", "the exact phrase we will query for"),
		doc("a.txt", "completely unrelated filler text"),
		doc("b.txt", "another unrelated entry"),
	}
	if err := store.Add(ctx, docs); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	results, err := store.SimilaritySearch(ctx, "the exact phrase we will query for", 2)
	if err != nil {
		t.Fatalf("SimilaritySearch failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].PageContent != "the exact phrase we will query for" {
		t.Fatalf("verbatim match not ranked first: %q", results[0].PageContent)
	}
	if results[0].Score < results[1].Score {
		t.Fatalf("results out of score order: %v then %v", results[0].Score, results[1].Score)
	}
	if got := meta.GetString(results[0].Metadata, meta.SourceKey); got != "a.txt" {
		t.Fatalf("source attribution = %q, want a.txt", got)
	}
}

func TestStore_SimilaritySearch_KZero(t *testing.T) {
	store, _ := newTestStore(t)
	results, err := store.SimilaritySearch(context.Background(), "anything", 0)
	if err != nil {
		t.Fatalf("SimilaritySearch failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("k=0 returned %d results", len(results))
	}
}

func TestStore_Persistence(t *testing.T) {
	embedder := embeddings.NewSimple(32)
	path := filepath.Join(t.TempDir(), "index.db")
	ctx := context.Background()

	store, err := Open(path, embedder)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Add(ctx, []schema.Document{doc("a.txt", "persisted content")}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := Open(path, embedder)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()
	count, err := reopened.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count after reopen = %d, want 1", count)
	}
	results, err := reopened.SimilaritySearch(ctx, "persisted content", 1)
	if err != nil {
		t.Fatalf("SimilaritySearch failed: %v", err)
	}
	if len(results) != 1 || results[0].PageContent != "persisted content" {
		t.Fatalf("persisted entry not retrievable: %+v", results)
	}
}

func TestStore_SourceCatalog(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if _, found, err := store.SourceHash(ctx, "a.txt"); err != nil || found {
		t.Fatalf("expected no catalog row, found=%t err=%v", found, err)
	}
	if err := store.RecordSource(ctx, "a.txt", 42, 7); err != nil {
		t.Fatalf("RecordSource failed: %v", err)
	}
	hash, found, err := store.SourceHash(ctx, "a.txt")
	if err != nil {
		t.Fatalf("SourceHash failed: %v", err)
	}
	if !found || hash != 42 {
		t.Fatalf("got hash=%d found=%t, want 42 true", hash, found)
	}
	if err := store.RecordSource(ctx, "a.txt", 43, 8); err != nil {
		t.Fatalf("RecordSource upsert failed: %v", err)
	}
	hash, _, err = store.SourceHash(ctx, "a.txt")
	if err != nil {
		t.Fatalf("SourceHash failed: %v", err)
	}
	if hash != 43 {
		t.Fatalf("upsert did not replace hash: got %d", hash)
	}
	infos, err := store.Sources(ctx)
	if err != nil {
		t.Fatalf("Sources failed: %v", err)
	}
	if len(infos) != 1 || infos[0].Name != "a.txt" || infos[0].Chunks != 8 {
		t.Fatalf("unexpected catalog: %+v", infos)
	}
}

func TestCosine(t *testing.T) {
	testCases := []struct {
		name   string
		a, b   []float32
		expect float32
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, expect: 1},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, expect: 0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, expect: -1},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 1}, expect: 0},
		{name: "length mismatch", a: []float32{1}, b: []float32{1, 2}, expect: 0},
	}
	for _, tc := range testCases {
		got := cosine(tc.a, tc.b)
		if math.Abs(float64(got-tc.expect)) > 1e-6 {
			t.Errorf("%s: cosine = %v, want %v", tc.name, got, tc.expect)
		}
	}
}
