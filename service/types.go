package service

import "fmt"

// Status is the per-file outcome of an ingestion.
type Status string

const (
	// StatusIndexed means chunks were written to the index.
	StatusIndexed Status = "indexed"
	// StatusEmpty means extraction produced no indexable content. This is a
	// soft outcome, not a failure.
	StatusEmpty Status = "empty"
	// StatusUnchanged means the file's content hash matched the catalog and
	// nothing was re-embedded.
	StatusUnchanged Status = "unchanged"
	// StatusFailed means the file could not be extracted. Other files of the
	// same batch are unaffected.
	StatusFailed Status = "failed"
)

// IngestResult reports one source file's ingestion, one line per file for
// the caller to render.
type IngestResult struct {
	Name   string
	Status Status
	Chunks int
	// Pages and Images report the extraction shape for paginated formats.
	Pages  int
	Images int
	Err    error
}

func (r *IngestResult) String() string {
	switch r.Status {
	case StatusIndexed:
		if r.Pages > 0 {
			return fmt.Sprintf("%s: indexed %d chunks from %d pages (%d images)", r.Name, r.Chunks, r.Pages, r.Images)
		}
		return fmt.Sprintf("%s: indexed %d chunks", r.Name, r.Chunks)
	case StatusEmpty:
		return fmt.Sprintf("%s: no indexable content", r.Name)
	case StatusUnchanged:
		return fmt.Sprintf("%s: unchanged", r.Name)
	default:
		return fmt.Sprintf("%s: failed: %v", r.Name, r.Err)
	}
}
