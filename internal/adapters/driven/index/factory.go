// Package index wires the concrete per-generation index
// implementations behind the driven.IndexFactory port.
package index

import (
	"github.com/custodia-labs/recall-cli/internal/adapters/driven/index/dense"
	"github.com/custodia-labs/recall-cli/internal/adapters/driven/index/sparse"
	"github.com/custodia-labs/recall-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.IndexFactory = (*Factory)(nil)

// Factory builds in-memory generations: a map-backed chunk store, an
// exact cosine dense index, and a BM25 sparse index.
type Factory struct{}

// NewFactory creates the default index factory.
func NewFactory() *Factory {
	return &Factory{}
}

// NewChunkStore builds the chunk-id lookup for a generation.
func (f *Factory) NewChunkStore(chunks []domain.Chunk) (driven.ChunkStore, error) {
	return memory.NewChunkStore(chunks)
}

// NewDenseIndex builds a cosine-similarity index over the embeddings.
func (f *Factory) NewDenseIndex(embeddings map[string][]float32) (driven.DenseIndex, error) {
	return dense.New(embeddings)
}

// NewSparseIndex builds a BM25 index over the chunks.
func (f *Factory) NewSparseIndex(chunks []domain.Chunk, k1, b float64) (driven.SparseIndex, error) {
	return sparse.New(chunks, k1, b)
}
