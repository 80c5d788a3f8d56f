package driving

import (
	"context"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// ChunkInput is one corpus record supplied by the ingestion pipeline.
// Chunking itself (splitting documents into passages) happens upstream.
type ChunkInput struct {
	// Text is the passage content.
	Text string `json:"text"`

	// DocName is the source document name.
	DocName string `json:"doc_name"`

	// Page is the page number within the source document, if known.
	Page int `json:"page"`

	// ContentType optionally tags the chunk; when empty the ingest
	// service classifies it.
	ContentType domain.ContentType `json:"content_type,omitempty"`
}

// IngestReport summarises one ingestion cycle.
type IngestReport struct {
	// Chunks is the number of chunks ingested.
	Chunks int

	// CommandChunks is how many chunks were tagged as command examples.
	CommandChunks int

	// EmbeddingModel is the model used to embed the corpus.
	EmbeddingModel string
}

// IngestService builds a new corpus generation from raw chunk records:
// embed, persist, and swap the live generation.
type IngestService interface {
	// Ingest embeds the inputs, persists the corpus, and reloads the
	// retrieval engine. A failure leaves the previous corpus serving.
	Ingest(ctx context.Context, inputs []ChunkInput) (*IngestReport, error)
}
