// Package sqlite persists the vector index in a single SQLite database.
// Entries are keyed by content id; a secondary index on source backs the
// typed delete-by-source operation without a full-store scan.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "modernc.org/sqlite" // pure Go sqlite driver

	"github.com/docqa/ragcenter/document"
	"github.com/docqa/ragcenter/embeddings"
	"github.com/docqa/ragcenter/schema"
	"github.com/docqa/ragcenter/vectordb"
	"github.com/docqa/ragcenter/vectordb/meta"
)

// Store is a VectorStore backed by SQLite. The embedder is fixed at
// construction; write and read paths share it for the lifetime of the store.
type Store struct {
	db       *sql.DB
	embedder embeddings.Embedder
}

// SourceInfo summarizes one indexed source file.
type SourceInfo struct {
	Name      string
	Chunks    int
	IndexedAt time.Time
}

// Open opens or lazily creates the store at path. Opening fails when an
// existing database cannot be read; no partial recovery is attempted.
func Open(path string, embedder embeddings.Embedder) (*Store, error) {
	if embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}
	s := &Store{db: db, embedder: embedder}
	if err := s.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open store at %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS entries (
            content_id TEXT PRIMARY KEY,
            source TEXT NOT NULL,
            content TEXT NOT NULL,
            embedding BLOB NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS idx_entries_source ON entries(source);`,
		`CREATE TABLE IF NOT EXISTS sources (
            name TEXT PRIMARY KEY,
            hash INTEGER NOT NULL,
            chunks INTEGER NOT NULL,
            indexed_at DATETIME NOT NULL
        );`,
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Add embeds the documents and upserts them by content id inside one
// transaction. Identical text carries the identical id, so re-adding
// unchanged content is a silent no-op.
func (s *Store) Add(ctx context.Context, docs []schema.Document) error {
	if len(docs) == 0 {
		return nil
	}
	texts := make([]string, len(docs))
	for i := range docs {
		texts[i] = docs[i].PageContent
	}
	vectors, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed documents: %w", err)
	}
	if len(vectors) != len(docs) {
		return fmt.Errorf("embedder returned %d vectors, expected %d", len(vectors), len(docs))
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	for i, doc := range docs {
		id := meta.GetString(doc.Metadata, meta.ContentIDKey)
		if id == "" {
			id = document.ContentID(doc.PageContent)
		}
		source := meta.GetString(doc.Metadata, meta.SourceKey)
		blob, err := vectordb.EncodeEmbedding(vectors[i])
		if err != nil {
			return fmt.Errorf("encode embedding: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO entries(content_id, source, content, embedding) VALUES(?, ?, ?, ?)`,
			id, source, doc.PageContent, blob); err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
	}
	return tx.Commit()
}

// DeleteBySource removes all entries owned by the source, plus its catalog
// row. Nothing matching is a no-op.
func (s *Store) DeleteBySource(ctx context.Context, source string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM entries WHERE source = ?`, source); err != nil {
		return fmt.Errorf("delete entries for %s: %w", source, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sources WHERE name = ?`, source); err != nil {
		return fmt.Errorf("delete source %s: %w", source, err)
	}
	return tx.Commit()
}

// SimilaritySearch embeds the query with the store's embedder and ranks all
// entries by cosine similarity, highest first.
func (s *Store) SimilaritySearch(ctx context.Context, query string, k int) ([]schema.Document, error) {
	if k <= 0 {
		return nil, nil
	}
	qvec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, `SELECT content_id, source, content, embedding FROM entries`)
	if err != nil {
		return nil, fmt.Errorf("scan entries: %w", err)
	}
	defer rows.Close()

	type hit struct {
		id      string
		source  string
		content string
		score   float32
	}
	var hits []hit
	for rows.Next() {
		var h hit
		var blob []byte
		if err := rows.Scan(&h.id, &h.source, &h.content, &blob); err != nil {
			return nil, err
		}
		vector, err := vectordb.DecodeEmbedding(blob)
		if err != nil {
			return nil, fmt.Errorf("decode embedding for %s: %w", h.id, err)
		}
		h.score = cosine(qvec, vector)
		hits = append(hits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > k {
		hits = hits[:k]
	}
	out := make([]schema.Document, 0, len(hits))
	for _, h := range hits {
		out = append(out, schema.Document{
			PageContent: h.content,
			Metadata: map[string]interface{}{
				meta.SourceKey:    h.source,
				meta.ContentIDKey: h.id,
			},
			Score: h.score,
		})
	}
	return out, nil
}

// Count returns the number of persisted entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// HasEntry reports whether a content id is present.
func (s *Store) HasEntry(ctx context.Context, contentID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM entries WHERE content_id = ?`, contentID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SourceHash returns the recorded extraction hash for a source file.
func (s *Store) SourceHash(ctx context.Context, name string) (uint64, bool, error) {
	var hash int64
	err := s.db.QueryRowContext(ctx, `SELECT hash FROM sources WHERE name = ?`, name).Scan(&hash)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return uint64(hash), true, nil
}

// RecordSource upserts the catalog row for a source file.
func (s *Store) RecordSource(ctx context.Context, name string, hash uint64, chunks int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sources(name, hash, chunks, indexed_at) VALUES(?, ?, ?, ?)
         ON CONFLICT(name) DO UPDATE SET hash = excluded.hash, chunks = excluded.chunks, indexed_at = excluded.indexed_at`,
		name, int64(hash), chunks, time.Now().UTC())
	return err
}

// Sources lists the catalog, most recently indexed first.
func (s *Store) Sources(ctx context.Context) ([]SourceInfo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, chunks, indexed_at FROM sources ORDER BY indexed_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SourceInfo
	for rows.Next() {
		var info SourceInfo
		if err := rows.Scan(&info.Name, &info.Chunks, &info.IndexedAt); err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func cosine(a, b []float32) float32 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
