// Package dense provides nearest-neighbour search over chunk embeddings.
// The index is an exact brute-force cosine scan: corpora here are tens
// of thousands of chunks at most, where a linear scan beats the
// build cost and recall loss of an approximate structure.
package dense

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.DenseIndex = (*Index)(nil)

// entry is one indexed vector, unit-normalized at build time so
// search is a plain dot product.
type entry struct {
	chunkID string
	vector  []float32
}

// Index is an immutable cosine-similarity index over chunk embeddings.
// Built once per generation; safe for concurrent readers.
type Index struct {
	entries    []entry
	dimensions int
	ready      bool
}

// New builds an index from embeddings keyed by chunk ID. All vectors
// must share one dimensionality. Vectors are copied and normalized,
// so callers may reuse their slices.
func New(embeddings map[string][]float32) (*Index, error) {
	idx := &Index{entries: make([]entry, 0, len(embeddings))}

	for chunkID, vec := range embeddings {
		if len(vec) == 0 {
			return nil, fmt.Errorf("empty embedding for chunk %s", chunkID)
		}
		if idx.dimensions == 0 {
			idx.dimensions = len(vec)
		} else if len(vec) != idx.dimensions {
			return nil, fmt.Errorf("embedding for chunk %s has %d dimensions, index has %d",
				chunkID, len(vec), idx.dimensions)
		}
		idx.entries = append(idx.entries, entry{chunkID: chunkID, vector: normalized(vec)})
	}

	// Stable storage order makes iteration deterministic.
	sort.Slice(idx.entries, func(i, j int) bool {
		return idx.entries[i].chunkID < idx.entries[j].chunkID
	})

	idx.ready = true
	return idx, nil
}

// Dimensions returns the vector size the index was built with.
// Zero for an empty index.
func (idx *Index) Dimensions() int {
	return idx.dimensions
}

// Len returns the number of indexed vectors.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Search returns up to k hits ordered by cosine similarity descending,
// ties broken by chunk ID ascending.
func (idx *Index) Search(ctx context.Context, query []float32, k int) ([]driven.Hit, error) {
	if idx == nil || !idx.ready {
		return nil, domain.ErrIndexNotReady
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 || len(idx.entries) == 0 {
		return nil, nil
	}
	if len(query) != idx.dimensions {
		return nil, fmt.Errorf("query has %d dimensions, index has %d", len(query), idx.dimensions)
	}

	q := normalized(query)

	hits := make([]driven.Hit, len(idx.entries))
	for i := range idx.entries {
		hits[i] = driven.Hit{
			ChunkID: idx.entries[i].chunkID,
			Score:   dot(q, idx.entries[i].vector),
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ChunkID < hits[j].ChunkID
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// normalized returns a unit-length copy of v. A zero vector comes
// back as a zero copy, which scores 0 against everything.
func normalized(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	out := make([]float32, len(v))
	if sum == 0 {
		return out
	}
	norm := math.Sqrt(sum)
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

// dot computes the inner product in float64 to limit rounding drift.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
