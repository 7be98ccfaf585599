package service

import (
	"fmt"

	"github.com/docqa/ragcenter/config"
	"github.com/docqa/ragcenter/embeddings"
	"github.com/docqa/ragcenter/embeddings/ollama"
	"github.com/docqa/ragcenter/embeddings/openai"
)

// NewEmbedder constructs the configured embedding collaborator. It must be
// created before the vector store is opened.
func NewEmbedder(cfg config.EmbedderConfig) (embeddings.Embedder, error) {
	switch cfg.Type {
	case "", "ollama":
		return ollama.New(cfg.Model, cfg.BaseURL), nil
	case "openai":
		client := openai.NewClient(cfg.APIKey, cfg.Model)
		if cfg.BaseURL != "" {
			client.BaseURL = cfg.BaseURL
		}
		return &openai.Embedder{C: client}, nil
	case "simple":
		return embeddings.NewSimple(cfg.Dimension), nil
	default:
		return nil, fmt.Errorf("unknown embedder type %q", cfg.Type)
	}
}
