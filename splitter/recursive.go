package splitter

import (
	"bytes"

	"github.com/docqa/ragcenter/document"
)

// separators ordered from the largest structural boundary down.
var separators = [][]byte{[]byte("\n\n"), []byte("\n"), []byte(" ")}

// Recursive splits text into overlapping fragments, preferring to cut on
// paragraph breaks, then line breaks, then word boundaries before falling
// back to a hard cut at the size limit.
type Recursive struct {
	size    int
	overlap int
}

// NewRecursive creates a Recursive splitter with a maximum fragment size
// and the overlap repeated between consecutive fragments.
func NewRecursive(size, overlap int) *Recursive {
	if size <= 0 {
		size = 1000
	}
	if overlap < 0 || overlap >= size {
		overlap = size / 10
	}
	return &Recursive{size: size, overlap: overlap}
}

// Split produces fragments covering the whole input. Consecutive fragments
// share at least the configured overlap, adjusted when a structural
// boundary is chosen over a hard cut. Zero-length input yields no fragments.
func (r *Recursive) Split(data []byte) document.Fragments {
	n := len(data)
	if n == 0 {
		return nil
	}
	var fragments document.Fragments
	start := 0
	for {
		limit := start + r.size
		if limit >= n {
			fragments = append(fragments, &document.Fragment{Start: start, End: n})
			return fragments
		}
		end := r.cut(data, start, limit)
		fragments = append(fragments, &document.Fragment{Start: start, End: end})
		next := end - r.overlap
		if next <= start {
			// A fragment shorter than the overlap; move on without repeating it.
			next = end
		}
		start = next
	}
}

// cut picks the split position within (start, limit], preferring the last
// structural boundary in the second half of the window so fragments stay
// reasonably full.
func (r *Recursive) cut(data []byte, start, limit int) int {
	window := data[start:limit]
	for _, sep := range separators {
		idx := bytes.LastIndex(window, sep)
		if idx > 0 && idx >= len(window)/2 {
			return start + idx + len(sep)
		}
	}
	return limit
}
