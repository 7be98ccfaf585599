package service

import (
	"context"
	"strings"

	"github.com/docqa/ragcenter/document"
	"github.com/docqa/ragcenter/schema"
	"github.com/docqa/ragcenter/vectordb/meta"
)

// sourceCatalog is an optional store capability used to skip re-embedding
// files whose extracted content did not change.
type sourceCatalog interface {
	SourceHash(ctx context.Context, name string) (uint64, bool, error)
	RecordSource(ctx context.Context, name string, hash uint64, chunks int) error
}

// Ingest runs the write path for one source file: extract, split, identify
// and index. With overwrite set, entries previously owned by the file are
// deleted before the new ones are added.
//
// Extraction and chunking failures are reported in the result with a nil
// error so a batch can continue; a non-nil error means an index failure
// that aborts the operation in progress.
func (s *Service) Ingest(ctx context.Context, name string, overwrite bool) (*IngestResult, error) {
	data, err := s.sources.Open(ctx, name)
	if err != nil {
		return &IngestResult{Name: name, Status: StatusFailed, Err: err}, nil
	}
	extraction, err := s.extract.Extract(ctx, name, data)
	if err != nil {
		return &IngestResult{Name: name, Status: StatusFailed, Err: err}, nil
	}
	hash, err := document.Hash(extraction.Text)
	if err != nil {
		return &IngestResult{Name: name, Status: StatusFailed, Err: err}, nil
	}
	catalog, hasCatalog := s.store.(sourceCatalog)
	if !overwrite && hasCatalog {
		previous, found, err := catalog.SourceHash(ctx, name)
		if err != nil {
			return nil, err
		}
		if found && previous == hash {
			return &IngestResult{Name: name, Status: StatusUnchanged}, nil
		}
	}
	docs := s.buildDocuments(name, extraction.Text)
	if overwrite {
		if err := s.store.DeleteBySource(ctx, name); err != nil {
			return nil, err
		}
	}
	if len(docs) == 0 {
		if hasCatalog {
			if err := catalog.RecordSource(ctx, name, hash, 0); err != nil {
				return nil, err
			}
		}
		return &IngestResult{Name: name, Status: StatusEmpty}, nil
	}
	if err := s.store.Add(ctx, docs); err != nil {
		return nil, err
	}
	if hasCatalog {
		if err := catalog.RecordSource(ctx, name, hash, len(docs)); err != nil {
			return nil, err
		}
	}
	return &IngestResult{
		Name:   name,
		Status: StatusIndexed,
		Chunks: len(docs),
		Pages:  extraction.Pages,
		Images: len(extraction.Images),
	}, nil
}

// IngestAll ingests every supported file in the source directory. Per-file
// failures are reported and do not stop the batch; an index failure aborts
// it and returns the results gathered so far.
func (s *Service) IngestAll(ctx context.Context, overwrite bool) ([]*IngestResult, error) {
	names, err := s.sources.List(ctx)
	if err != nil {
		return nil, err
	}
	var results []*IngestResult
	for _, name := range names {
		if !s.extract.Supported(name) {
			continue
		}
		result, err := s.Ingest(ctx, name, overwrite)
		if err != nil {
			return results, err
		}
		results = append(results, result)
		s.logf("%s", result)
	}
	return results, nil
}

// buildDocuments splits extracted text into chunk documents carrying the
// source attribution and content id. The source is always the uploaded
// filename, never a derived intermediate. Chunks with identical text
// collapse to one document.
func (s *Service) buildDocuments(source string, text []byte) []schema.Document {
	fragments := s.split.Split(text)
	seen := make(map[string]bool, len(fragments))
	docs := make([]schema.Document, 0, len(fragments))
	for _, fragment := range fragments {
		chunk := strings.TrimSpace(fragment.Text(text))
		if chunk == "" {
			continue
		}
		id := document.ContentID(chunk)
		if seen[id] {
			continue
		}
		seen[id] = true
		docs = append(docs, schema.Document{
			PageContent: chunk,
			Metadata: map[string]interface{}{
				meta.SourceKey:    source,
				meta.ContentIDKey: id,
			},
		})
	}
	return docs
}
