package splitter

import (
	"github.com/docqa/ragcenter/document"
)

// Splitter divides extracted text into chunk fragments.
type Splitter interface {
	Split(data []byte) document.Fragments
}
