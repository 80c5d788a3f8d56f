package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
)

// fusedCandidate is the merger's output: one chunk with the raw and
// normalized scores from each side and the weighted combination.
type fusedCandidate struct {
	chunkID    string
	rawDense   *float64
	rawSparse  *float64
	normDense  float64
	normSparse float64
	fused      float64
}

// Merger fuses the independently-scaled ranked lists from the dense
// and sparse indices into one deduplicated list. Each side is min-max
// normalized over its own candidates, then combined as
// denseWeight*normDense + sparseWeight*normSparse with a missing side
// contributing 0.
type Merger struct {
	denseWeight  float64
	sparseWeight float64
}

// NewMerger creates a merger with the given fusion weights.
// Weights must be non-negative and sum to 1 within 1e-6; violations
// fail with domain.ErrConfiguration at construction, never at query time.
func NewMerger(denseWeight, sparseWeight float64) (*Merger, error) {
	if denseWeight < 0 || sparseWeight < 0 {
		return nil, fmt.Errorf("%w: fusion weights must be non-negative (dense=%v, sparse=%v)",
			domain.ErrConfiguration, denseWeight, sparseWeight)
	}
	if math.Abs(denseWeight+sparseWeight-1) > 1e-6 {
		return nil, fmt.Errorf("%w: fusion weights must sum to 1 (dense=%v, sparse=%v)",
			domain.ErrConfiguration, denseWeight, sparseWeight)
	}
	return &Merger{denseWeight: denseWeight, sparseWeight: sparseWeight}, nil
}

// Merge fuses the two ranked lists. The result is deduplicated by
// chunk ID, sorted by fused score descending with ties broken by
// chunk ID ascending, and every fused score lies in [0, 1].
func (m *Merger) Merge(dense, sparse []driven.Hit) []fusedCandidate {
	normDense := normalize(dense)
	normSparse := normalize(sparse)

	byID := make(map[string]*fusedCandidate, len(dense)+len(sparse))

	for i := range dense {
		hit := dense[i]
		raw := hit.Score
		byID[hit.ChunkID] = &fusedCandidate{
			chunkID:   hit.ChunkID,
			rawDense:  &raw,
			normDense: normDense[hit.ChunkID],
		}
	}
	for i := range sparse {
		hit := sparse[i]
		raw := hit.Score
		c, ok := byID[hit.ChunkID]
		if !ok {
			c = &fusedCandidate{chunkID: hit.ChunkID}
			byID[hit.ChunkID] = c
		}
		c.rawSparse = &raw
		c.normSparse = normSparse[hit.ChunkID]
	}

	merged := make([]fusedCandidate, 0, len(byID))
	for _, c := range byID {
		c.fused = m.denseWeight*c.normDense + m.sparseWeight*c.normSparse
		merged = append(merged, *c)
	}

	sort.Slice(merged, func(i, j int) bool {
		if merged[i].fused != merged[j].fused {
			return merged[i].fused > merged[j].fused
		}
		return merged[i].chunkID < merged[j].chunkID
	})

	return merged
}

// normalize min-max scales the hits' scores to [0, 1] over the
// candidates present in the list. A single candidate, or a list with
// zero score variance, normalizes to 1.0 for every candidate.
func normalize(hits []driven.Hit) map[string]float64 {
	if len(hits) == 0 {
		return nil
	}

	minScore, maxScore := hits[0].Score, hits[0].Score
	for _, h := range hits[1:] {
		if h.Score < minScore {
			minScore = h.Score
		}
		if h.Score > maxScore {
			maxScore = h.Score
		}
	}

	norm := make(map[string]float64, len(hits))
	spread := maxScore - minScore
	for _, h := range hits {
		if spread == 0 {
			norm[h.ChunkID] = 1.0
		} else {
			norm[h.ChunkID] = (h.Score - minScore) / spread
		}
	}
	return norm
}
