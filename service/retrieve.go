package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/docqa/ragcenter/schema"
	"github.com/docqa/ragcenter/vectordb/meta"
)

// Retrieve returns the top-k chunks for the query in rank order. Scores
// stay internal to the documents; callers rely on the ordering. A
// non-positive k falls back to the configured default.
func (s *Service) Retrieve(ctx context.Context, query string, k int) ([]schema.Document, error) {
	if k <= 0 {
		k = s.cfg.Search.K
	}
	docs, err := s.store.SimilaritySearch(ctx, query, k)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	return docs, nil
}

// IsReady reports whether question answering can proceed: the index must
// exist and contain at least one entry.
func (s *Service) IsReady(ctx context.Context) bool {
	count, err := s.store.Count(ctx)
	return err == nil && count > 0
}

// FormatContext assembles the retrieved chunks into the context string the
// answer-generation collaborator consumes, each chunk prefixed with its
// source attribution.
func FormatContext(docs []schema.Document) string {
	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		source := meta.GetString(doc.Metadata, meta.SourceKey)
		if source == "" {
			source = "unknown"
		}
		parts = append(parts, fmt.Sprintf("[source: %s]\n%s", source, doc.PageContent))
	}
	return strings.Join(parts, "\n\n")
}
