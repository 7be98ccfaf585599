package extractor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Extraction is the text representation of one source file.
type Extraction struct {
	// Text is the extracted plain/markdown content fed to the splitter.
	Text []byte
	// Pages is the page count for paginated formats, zero otherwise.
	Pages int
	// Images lists auxiliary image files written during extraction.
	Images []string
}

// Extractor converts one source file format into text.
type Extractor interface {
	Extract(ctx context.Context, name string, data []byte) (*Extraction, error)
}

// Error reports a failed extraction for a single file. A batch caller is
// expected to record it and continue with the remaining files.
type Error struct {
	Name  string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Name, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Factory dispatches extraction to a format strategy selected by the
// file extension.
type Factory struct {
	byExtension map[string]Extractor
}

// NewFactory creates a factory with the built-in strategies registered.
// PDF extraction writes its markdown intermediate under markdownURL and
// embedded images under imageURL.
func NewFactory(markdownURL, imageURL string) *Factory {
	f := &Factory{byExtension: make(map[string]Extractor)}
	f.Register(".pdf", NewPDFExtractor(markdownURL, imageURL))
	f.Register(".docx", NewDOCXExtractor())
	f.Register(".xlsx", NewExcelExtractor())
	f.Register(".xls", NewXLSExtractor())
	f.Register(".txt", NewTextExtractor())
	f.Register(".md", NewTextExtractor())
	return f
}

// Register binds an extractor to a file extension.
func (f *Factory) Register(ext string, extractor Extractor) {
	f.byExtension[strings.ToLower(ext)] = extractor
}

// Supported reports whether the factory has a strategy for the file.
func (f *Factory) Supported(name string) bool {
	_, ok := f.byExtension[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Extract runs the strategy for the file's extension. Failures are wrapped
// in *Error carrying the filename.
func (f *Factory) Extract(ctx context.Context, name string, data []byte) (*Extraction, error) {
	ext := strings.ToLower(filepath.Ext(name))
	extractor, ok := f.byExtension[ext]
	if !ok {
		return nil, &Error{Name: name, Cause: fmt.Errorf("unsupported file type %q", ext)}
	}
	extraction, err := extractor.Extract(ctx, name, data)
	if err != nil {
		return nil, &Error{Name: name, Cause: err}
	}
	return extraction, nil
}
