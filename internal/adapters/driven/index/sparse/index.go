// Package sparse provides BM25 lexical scoring over tokenized chunks.
// Term statistics (document frequency, average chunk length) are
// computed once at build time from the chunk set and frozen for the
// generation.
package sparse

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.SparseIndex = (*Index)(nil)

// posting records one chunk containing a term.
type posting struct {
	doc int // index into docs
	tf  int // term frequency within the chunk
}

// doc holds the per-chunk statistics needed at scoring time.
type doc struct {
	chunkID string
	length  int // token count
}

// Index is an immutable BM25 inverted index. Built once per
// generation; safe for concurrent readers.
type Index struct {
	postings map[string][]posting
	docs     []doc
	avgdl    float64
	k1       float64
	b        float64
	ready    bool
}

// New builds a BM25 index over the chunks. k1 controls term-frequency
// saturation and b controls length normalization.
func New(chunks []domain.Chunk, k1, b float64) (*Index, error) {
	if k1 <= 0 {
		return nil, fmt.Errorf("%w: bm25 k1 must be positive (got %v)", domain.ErrConfiguration, k1)
	}
	if b < 0 || b > 1 {
		return nil, fmt.Errorf("%w: bm25 b must be in [0, 1] (got %v)", domain.ErrConfiguration, b)
	}

	idx := &Index{
		postings: make(map[string][]posting),
		docs:     make([]doc, 0, len(chunks)),
		k1:       k1,
		b:        b,
	}

	var totalLength int
	for i := range chunks {
		terms := domain.Tokenize(chunks[i].Content)
		tf := make(map[string]int, len(terms))
		for _, t := range terms {
			tf[t]++
		}

		docIdx := len(idx.docs)
		idx.docs = append(idx.docs, doc{chunkID: chunks[i].ID, length: len(terms)})
		totalLength += len(terms)

		for term, freq := range tf {
			idx.postings[term] = append(idx.postings[term], posting{doc: docIdx, tf: freq})
		}
	}

	if len(idx.docs) > 0 {
		idx.avgdl = float64(totalLength) / float64(len(idx.docs))
	}

	idx.ready = true
	return idx, nil
}

// Len returns the number of indexed chunks.
func (idx *Index) Len() int {
	return len(idx.docs)
}

// Search scores every chunk containing at least one query term and
// returns up to k hits ordered by BM25 score descending, ties broken
// by chunk ID ascending. Scores are always >= 0.
func (idx *Index) Search(ctx context.Context, terms []string, k int) ([]driven.Hit, error) {
	if idx == nil || !idx.ready {
		return nil, domain.ErrIndexNotReady
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 || len(terms) == 0 || len(idx.docs) == 0 {
		return nil, nil
	}

	scores := make(map[int]float64)
	n := float64(len(idx.docs))

	for _, term := range terms {
		postings, ok := idx.postings[term]
		if !ok {
			continue
		}
		df := float64(len(postings))
		// The +1 inside the log keeps idf non-negative for terms
		// that appear in most chunks.
		idf := math.Log(1 + (n-df+0.5)/(df+0.5))

		for _, p := range postings {
			tf := float64(p.tf)
			norm := 1 - idx.b + idx.b*float64(idx.docs[p.doc].length)/idx.avgdl
			scores[p.doc] += idf * tf * (idx.k1 + 1) / (tf + idx.k1*norm)
		}
	}

	hits := make([]driven.Hit, 0, len(scores))
	for d, score := range scores {
		hits = append(hits, driven.Hit{ChunkID: idx.docs[d].chunkID, Score: score})
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
