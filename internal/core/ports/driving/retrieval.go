package driving

import (
	"context"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// RetrievalService is the single public entry point of the retrieval
// engine: hybrid retrieve plus the administrative generation swap.
type RetrievalService interface {
	// Retrieve answers a query with a ranked, deduplicated candidate
	// list. Fewer than TopK survivors is a valid result, not an error.
	Retrieve(ctx context.Context, query string, opts domain.RetrievalOptions) (*domain.RetrievalResult, error)

	// Reload builds a new index generation from the given chunks and
	// embeddings and atomically swaps it in. In-flight Retrieve calls
	// keep the generation they started with. A failed build leaves
	// the previous generation serving.
	Reload(ctx context.Context, chunks []domain.Chunk, embeddings map[string][]float32) error

	// Ready reports whether a generation has been built.
	Ready() bool
}
