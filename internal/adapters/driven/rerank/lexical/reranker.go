// Package lexical provides a heuristic reranker that scores candidates
// with cheap text-overlap signals. It needs no model or network call,
// which makes it the default second-pass scorer for local setups.
package lexical

import (
	"context"
	"math"
	"strings"

	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
)

// Ensure Reranker implements the interface.
var _ driven.Reranker = (*Reranker)(nil)

// Signal weights. The base keeps every candidate above zero so the
// heuristics reorder rather than eliminate.
const (
	baseWeight     = 0.5
	coverageWeight = 0.2
	lengthWeight   = 0.1
	positionWeight = 0.1

	// idealLength is the passage size the length signal prefers.
	// Chunks far shorter carry little context; far longer ones dilute
	// the answer.
	idealLength = 800
)

// Reranker scores candidates with lexical relevance signals: query term
// coverage, passage length, and how early the first query term appears.
type Reranker struct{}

// New creates a lexical reranker.
func New() *Reranker {
	return &Reranker{}
}

// Score rates how well candidateText answers query. Scores are in
// (0, 1) and share a scale across one retrieval call.
func (r *Reranker) Score(_ context.Context, query, candidateText string) (float64, error) {
	content := strings.ToLower(candidateText)
	terms := queryTerms(query)

	score := baseWeight

	// Query term coverage: fraction of distinct query terms present.
	if len(terms) > 0 {
		matches := 0
		for term := range terms {
			if strings.Contains(content, term) {
				matches++
			}
		}
		score += coverageWeight * float64(matches) / float64(len(terms))
	}

	// Length: prefer passages near the ideal size.
	lengthDelta := math.Abs(float64(len(candidateText)-idealLength)) / idealLength
	score += lengthWeight * (1 - math.Min(lengthDelta, 1))

	// Position: boost passages whose first matching term appears early.
	if len(content) > 0 {
		firstMatch := len(content)
		for term := range terms {
			if pos := strings.Index(content, term); pos >= 0 && pos < firstMatch {
				firstMatch = pos
			}
		}
		score += positionWeight * (1 - float64(firstMatch)/float64(len(content)))
	}

	return score, nil
}

// Name identifies the rerank implementation for diagnostics.
func (r *Reranker) Name() string {
	return "lexical"
}

// queryTerms lowercases and splits the query on whitespace. Terms keep
// their punctuation so command names like kafka-topics.sh match whole.
func queryTerms(query string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(query))
	terms := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		terms[f] = struct{}{}
	}
	return terms
}
