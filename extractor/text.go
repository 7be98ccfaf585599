package extractor

import (
	"context"
)

// textExtractor passes plain text and markdown content through unchanged.
type textExtractor struct{}

// NewTextExtractor returns the passthrough strategy for .txt and .md files.
func NewTextExtractor() Extractor {
	return &textExtractor{}
}

func (t *textExtractor) Extract(ctx context.Context, name string, data []byte) (*Extraction, error) {
	return &Extraction{Text: data}, nil
}
