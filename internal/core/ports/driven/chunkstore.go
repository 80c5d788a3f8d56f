package driven

import (
	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// ChunkStore holds the authoritative chunk-id to chunk mapping for one
// index generation. Built once per ingestion cycle and read-only
// thereafter; a corpus change swaps in a whole new store.
type ChunkStore interface {
	// Get retrieves a chunk by ID.
	// Returns domain.ErrNotFound if the chunk does not exist.
	Get(id string) (*domain.Chunk, error)

	// AllIDs returns every chunk ID in this generation.
	AllIDs() []string

	// Len returns the number of chunks in this generation.
	Len() int
}
