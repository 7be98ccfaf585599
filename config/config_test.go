package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Chunking.Size != 1000 || cfg.Chunking.Overlap != 100 {
		t.Fatalf("chunking defaults = %d/%d, want 1000/100", cfg.Chunking.Size, cfg.Chunking.Overlap)
	}
	if cfg.Search.K != 5 {
		t.Fatalf("search default k = %d, want 5", cfg.Search.K)
	}
	if cfg.Sources.BaseURL != "source_documents" {
		t.Fatalf("sources default = %q", cfg.Sources.BaseURL)
	}
	if cfg.Embedder.Type != "ollama" {
		t.Fatalf("embedder default = %q, want ollama", cfg.Embedder.Type)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
sources:
  baseURL: /data/docs
chunking:
  size: 500
  overlap: 50
search:
  k: 3
embedder:
  type: simple
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Sources.BaseURL != "/data/docs" {
		t.Fatalf("baseURL = %q, want /data/docs", cfg.Sources.BaseURL)
	}
	if cfg.Chunking.Size != 500 || cfg.Chunking.Overlap != 50 {
		t.Fatalf("chunking = %d/%d, want 500/50", cfg.Chunking.Size, cfg.Chunking.Overlap)
	}
	if cfg.Search.K != 3 {
		t.Fatalf("k = %d, want 3", cfg.Search.K)
	}
	if cfg.Embedder.Type != "simple" || cfg.Embedder.Dimension != 64 {
		t.Fatalf("embedder = %q dim %d, want simple dim 64", cfg.Embedder.Type, cfg.Embedder.Dimension)
	}
	// Untouched sections keep their defaults.
	if cfg.Store.Path != "vector_store/index.db" {
		t.Fatalf("store path = %q", cfg.Store.Path)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{invalid yaml"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(context.Background(), path); err == nil {
		t.Fatal("expected parse error")
	}
}
