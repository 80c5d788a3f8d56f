package domain

// ContentType classifies what kind of text a chunk holds.
// Command chunks contain CLI invocations or config examples; conceptual
// chunks contain prose. Queries can filter on this post-fusion.
type ContentType string

const (
	// ContentTypeAny matches every chunk (no filtering).
	ContentTypeAny ContentType = ""

	// ContentTypeConceptual marks explanatory prose.
	ContentTypeConceptual ContentType = "conceptual"

	// ContentTypeCommand marks command-line or configuration examples.
	ContentTypeCommand ContentType = "command"
)

// Valid reports whether the content type is a known value.
func (c ContentType) Valid() bool {
	switch c {
	case ContentTypeAny, ContentTypeConceptual, ContentTypeCommand:
		return true
	}
	return false
}

// Chunk is the unit of retrieval: a bounded span of source text with
// provenance metadata. Chunks are immutable once ingested; a corpus
// change produces a whole new index generation.
type Chunk struct {
	// ID is the unique identifier within one index generation.
	ID string

	// Content is the text of this chunk.
	Content string

	// DocName is the source document the chunk was cut from.
	DocName string

	// Page is the page number within the source document, if known.
	Page int

	// Position is the ordinal position within the source document.
	Position int

	// ContentType tags the chunk as conceptual prose or a command example.
	ContentType ContentType
}
