// Package service is the retrieval gateway: it orchestrates ingestion of
// uploaded files into the vector index and serves ranked chunks back for
// question answering.
package service

import (
	"github.com/docqa/ragcenter/config"
	"github.com/docqa/ragcenter/embeddings"
	"github.com/docqa/ragcenter/extractor"
	"github.com/docqa/ragcenter/sources"
	"github.com/docqa/ragcenter/splitter"
	"github.com/docqa/ragcenter/vectordb"
)

// Option configures the Service.
type Option func(*Service)

// WithLogf sets the progress logger.
func WithLogf(logf func(format string, args ...any)) Option {
	return func(s *Service) { s.logf = logf }
}

// WithSplitter overrides the default recursive splitter.
func WithSplitter(split splitter.Splitter) Option {
	return func(s *Service) { s.split = split }
}

// WithExtractor overrides the default extractor factory.
func WithExtractor(extract *extractor.Factory) Option {
	return func(s *Service) { s.extract = extract }
}

// Service mediates all writes to the vector store. Readers may open their
// own store handle; mutating operations go through here and are expected to
// be serialized by the caller.
type Service struct {
	cfg      *config.Config
	sources  *sources.Store
	extract  *extractor.Factory
	split    splitter.Splitter
	store    vectordb.VectorStore
	embedder embeddings.Embedder
	logf     func(format string, args ...any)
}

// New constructs the gateway. The embedder must be the one the store was
// opened with: both paths have to share one embedding space.
func New(cfg *config.Config, embedder embeddings.Embedder, store vectordb.VectorStore, opts ...Option) *Service {
	s := &Service{
		cfg:      cfg,
		sources:  sources.New(cfg.Sources.BaseURL),
		extract:  extractor.NewFactory(cfg.Sources.MarkdownURL, cfg.Sources.ImageURL),
		split:    splitter.NewRecursive(cfg.Chunking.Size, cfg.Chunking.Overlap),
		store:    store,
		embedder: embedder,
		logf:     func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sources exposes the source document store to the upload surface.
func (s *Service) Sources() *sources.Store {
	return s.sources
}
