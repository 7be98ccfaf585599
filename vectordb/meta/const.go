package meta

const (
	// SourceKey names the uploaded file a chunk belongs to. It is the only
	// load-bearing metadata field: delete-by-source and attribution key on it.
	SourceKey = "source"
	// ContentIDKey carries the chunk's content-addressed identifier.
	ContentIDKey = "contentId"
)
