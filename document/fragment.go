package document

// Fragments represents the fragments produced for one document.
type Fragments []*Fragment

// Fragment is a contiguous [Start, End) span of extracted text.
// Neighbouring fragments may overlap by the configured chunk overlap.
type Fragment struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Text returns the fragment content, clamped to the content bounds.
func (f *Fragment) Text(content []byte) string {
	start, end := f.Start, f.End
	if start < 0 {
		start = 0
	}
	if end > len(content) {
		end = len(content)
	}
	if end <= start {
		return ""
	}
	return string(content[start:end])
}
