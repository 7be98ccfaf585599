// Package config loads the application configuration from YAML, applying
// defaults, user-path expansion and secret expansion for embedder credentials.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/scy/cred/secret"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Sources  SourcesConfig  `yaml:"sources"`
	Chunking ChunkingConfig `yaml:"chunking"`
	Search   SearchConfig   `yaml:"search"`
	Store    StoreConfig    `yaml:"store"`
	Embedder EmbedderConfig `yaml:"embedder"`
}

// SourcesConfig locates the source, markdown intermediate and image
// directories. Values are afs URLs; plain paths address the local disk.
type SourcesConfig struct {
	BaseURL     string `yaml:"baseURL"`
	MarkdownURL string `yaml:"markdownURL"`
	ImageURL    string `yaml:"imageURL"`
}

// ChunkingConfig fixes the splitter geometry for the life of the index.
type ChunkingConfig struct {
	Size    int `yaml:"size"`
	Overlap int `yaml:"overlap"`
}

// SearchConfig holds retrieval settings.
type SearchConfig struct {
	K int `yaml:"k"`
}

// StoreConfig locates the persistent vector store.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// EmbedderConfig selects and configures the embedding collaborator.
// APIKey may contain ${...} placeholders resolved from APIKeySecret.
type EmbedderConfig struct {
	Type         string `yaml:"type"` // ollama|openai|simple
	Model        string `yaml:"model"`
	BaseURL      string `yaml:"baseURL"`
	APIKey       string `yaml:"apiKey,omitempty"`
	APIKeySecret string `yaml:"apiKeySecret,omitempty"`
	Dimension    int    `yaml:"dimension,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the configuration file; a missing file yields the defaults.
func Load(ctx context.Context, path string) (*Config, error) {
	expanded, err := expandUserPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	if cfg.Embedder.APIKeySecret != "" {
		key, err := expandWithSecret(ctx, cfg.Embedder.APIKey, cfg.Embedder.APIKeySecret)
		if err != nil {
			return nil, err
		}
		cfg.Embedder.APIKey = key
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Sources.BaseURL == "" {
		c.Sources.BaseURL = "source_documents"
	}
	if c.Sources.MarkdownURL == "" {
		c.Sources.MarkdownURL = "processed_markdown"
	}
	if c.Sources.ImageURL == "" {
		c.Sources.ImageURL = "images"
	}
	if c.Chunking.Size <= 0 {
		c.Chunking.Size = 1000
	}
	if c.Chunking.Overlap < 0 || c.Chunking.Overlap >= c.Chunking.Size {
		c.Chunking.Overlap = 100
	}
	if c.Search.K <= 0 {
		c.Search.K = 5
	}
	if c.Store.Path == "" {
		c.Store.Path = "vector_store/index.db"
	}
	if c.Embedder.Type == "" {
		c.Embedder.Type = "ollama"
	}
	if c.Embedder.Type == "simple" && c.Embedder.Dimension <= 0 {
		c.Embedder.Dimension = 64
	}
}

func (c *Config) expandPaths() error {
	for _, target := range []*string{
		&c.Sources.BaseURL, &c.Sources.MarkdownURL, &c.Sources.ImageURL, &c.Store.Path,
	} {
		expanded, err := expandUserPath(*target)
		if err != nil {
			return err
		}
		*target = expanded
	}
	return nil
}

func expandUserPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if !strings.HasPrefix(trimmed, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(trimmed, "~")), nil
}

// expandWithSecret loads a secret and expands placeholders in the value.
func expandWithSecret(ctx context.Context, value, secretRef string) (string, error) {
	secretRef = strings.TrimSpace(secretRef)
	if secretRef == "" {
		return value, nil
	}
	svc := secret.New()
	sec, err := svc.Lookup(ctx, secret.Resource(secretRef))
	if err != nil {
		return "", fmt.Errorf("lookup secret %q: %w", secretRef, err)
	}
	return sec.Expand(value), nil
}
