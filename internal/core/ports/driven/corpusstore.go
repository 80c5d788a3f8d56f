package driven

import (
	"context"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// CorpusStore persists the ingested corpus so a generation can be
// rebuilt without re-embedding. Backed by SQLite.
type CorpusStore interface {
	// Replace atomically replaces the stored corpus with the given
	// chunks and their embeddings. Embeddings are keyed by chunk ID;
	// every chunk must have one.
	Replace(ctx context.Context, chunks []domain.Chunk, embeddings map[string][]float32) error

	// Load returns all stored chunks and embeddings.
	Load(ctx context.Context) ([]domain.Chunk, map[string][]float32, error)

	// Count returns the number of stored chunks.
	Count(ctx context.Context) (int, error)

	// Path returns the database file path.
	Path() string

	// Close releases resources.
	Close() error
}
