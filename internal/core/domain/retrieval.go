package domain

import (
	"fmt"
	"sort"
	"strings"
)

// RetrievalOptions configures a single retrieve call.
type RetrievalOptions struct {
	// TopK is the maximum number of candidates to return.
	// Zero yields an empty result without error.
	TopK int

	// ContentType restricts results to chunks of the given type.
	// Applied post-fusion; ContentTypeAny disables the filter.
	ContentType ContentType

	// DisableExpansion skips query expansion for this call.
	DisableExpansion bool

	// Debug attaches a per-candidate score breakdown to the result.
	Debug bool
}

// ScoredCandidate is one ranked retrieval hit. Produced fresh per query,
// never persisted.
type ScoredCandidate struct {
	// ChunkID identifies the matched chunk.
	ChunkID string

	// Chunk is the hydrated chunk record.
	Chunk Chunk

	// DenseScore is the raw cosine similarity, or nil if the chunk
	// was not returned by the dense index.
	DenseScore *float64

	// SparseScore is the raw BM25 score, or nil if the chunk was not
	// returned by the sparse index.
	SparseScore *float64

	// FusedScore is the weighted combination of the normalized
	// dense and sparse scores, in [0, 1].
	FusedScore float64

	// Rank is the 1-based position in the final ordering.
	Rank int
}

// RetrievalResult is the ordered candidate list for one query, plus
// metadata about how the query was executed.
type RetrievalResult struct {
	// Query is the raw query text as received.
	Query string

	// ExpandedQuery is the query actually searched. Equal to Query
	// when no expansion table entry matched.
	ExpandedQuery string

	// Candidates is the ranked, deduplicated result list.
	Candidates []ScoredCandidate

	// Diagnostics holds the per-candidate score breakdown.
	// Nil unless the call requested debug output.
	Diagnostics *Diagnostics
}

// Diagnostics captures the score breakdown for one query. It is a
// side channel: attaching it never changes the returned ranking.
type Diagnostics struct {
	// Query is the raw query text.
	Query string

	// ExpandedQuery is the query after expansion.
	ExpandedQuery string

	// TopK is the requested result count.
	TopK int

	// Entries holds one breakdown per surviving candidate, in rank order.
	Entries []DiagnosticEntry
}

// DiagnosticEntry is the score breakdown for a single candidate.
type DiagnosticEntry struct {
	ChunkID     string
	DocName     string
	Page        int
	RawDense    *float64
	RawSparse   *float64
	NormDense   float64
	NormSparse  float64
	FusedScore  float64
	RerankScore *float64
}

// Sources returns the unique source document names across all
// candidates, sorted for stable output.
func (r *RetrievalResult) Sources() []string {
	seen := make(map[string]bool)
	for i := range r.Candidates {
		if name := r.Candidates[i].Chunk.DocName; name != "" {
			seen[name] = true
		}
	}
	sources := make([]string, 0, len(seen))
	for name := range seen {
		sources = append(sources, name)
	}
	sort.Strings(sources)
	return sources
}

// FormatContext renders the candidates into the block format consumed
// by the downstream generation service:
//
//	[Document 1] (Source: kafka-operations.pdf)
//	<chunk text>
//
// Blocks are separated by "---" lines.
func (r *RetrievalResult) FormatContext() string {
	var b strings.Builder
	for i := range r.Candidates {
		if i > 0 {
			b.WriteString("\n---\n")
		}
		source := r.Candidates[i].Chunk.DocName
		if source == "" {
			source = "Unknown source"
		}
		fmt.Fprintf(&b, "[Document %d] (Source: %s)\n%s\n",
			i+1, source, strings.TrimSpace(r.Candidates[i].Chunk.Content))
	}
	return b.String()
}
