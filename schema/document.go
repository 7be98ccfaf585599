package schema

// Document is the unit exchanged with the vector store: a chunk of text
// with its metadata and, on the read path, a similarity score.
type Document struct {
	PageContent string                 `json:"page_content"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	// Score is populated by similarity search, highest relevance first.
	Score float32 `json:"score,omitempty"`
}
