package driven

import "github.com/custodia-labs/recall-cli/internal/core/domain"

// IndexFactory builds the read-only structures that make up one index
// generation. The retrieval engine uses it during Reload so a whole
// generation is constructed off to the side before the atomic swap.
type IndexFactory interface {
	// NewChunkStore builds the chunk-id lookup for a generation.
	// Fails on duplicate chunk IDs.
	NewChunkStore(chunks []domain.Chunk) (ChunkStore, error)

	// NewDenseIndex builds a cosine-similarity index over the given
	// embeddings, keyed by chunk ID. Fails on dimension mismatches.
	NewDenseIndex(embeddings map[string][]float32) (DenseIndex, error)

	// NewSparseIndex builds a BM25 index over the chunks with the
	// given k1 and b parameters.
	NewSparseIndex(chunks []domain.Chunk, k1, b float64) (SparseIndex, error)
}
