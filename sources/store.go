// Package sources manages the flat directory of uploaded files, keyed by
// their original filename.
package sources

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// Store provides access to the source document directory. The location is
// an afs URL, so local paths and registered cloud schemes both work.
type Store struct {
	fs      afs.Service
	baseURL string
}

// New creates a store rooted at baseURL.
func New(baseURL string) *Store {
	return &Store{fs: afs.New(), baseURL: baseURL}
}

// Path returns the full location of a source document.
func (s *Store) Path(name string) string {
	return url.Join(s.baseURL, name)
}

// Exists reports whether a same-named source document is already present.
// It is the new-vs-overwrite decision input for the upload surface.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	return s.fs.Exists(ctx, s.Path(name))
}

// Save persists an uploaded file under its original filename.
func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	if err := s.fs.Upload(ctx, s.Path(name), file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

// Open reads a source document's content.
func (s *Store) Open(ctx context.Context, name string) ([]byte, error) {
	data, err := s.fs.DownloadWithURL(ctx, s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return data, nil
}

// List returns the filenames present in the source directory.
func (s *Store) List(ctx context.Context) ([]string, error) {
	objects, err := s.fs.List(ctx, s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	var names []string
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		names = append(names, object.Name())
	}
	return names, nil
}
