package driven

import "context"

// Hit is a single entry in a ranked list produced by an index.
// Dense and sparse indices are interchangeable ranked-list producers;
// only the score scale differs.
type Hit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Score is the index-native relevance score: cosine similarity
	// in [-1, 1] for dense hits, BM25 (>= 0) for sparse hits.
	Score float64
}

// DenseIndex provides nearest-neighbour lookup over chunk embeddings
// by cosine similarity.
type DenseIndex interface {
	// Search returns up to k hits ordered by similarity descending,
	// ties broken by chunk ID ascending. Returns domain.ErrIndexNotReady
	// if queried before construction completes.
	Search(ctx context.Context, query []float32, k int) ([]Hit, error)
}

// SparseIndex provides lexical relevance scoring over tokenized chunks
// using BM25. Term statistics are computed once at build time and
// frozen for the generation.
type SparseIndex interface {
	// Search returns up to k hits ordered by BM25 score descending,
	// ties broken by chunk ID ascending. Chunks matching no query
	// term are not returned. Returns domain.ErrIndexNotReady if
	// queried before construction completes.
	Search(ctx context.Context, terms []string, k int) ([]Hit, error)
}
