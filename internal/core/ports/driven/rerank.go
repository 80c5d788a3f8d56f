package driven

import "context"

// Reranker is an optional second-pass scorer applied to the small
// candidate set that survives fusion and truncation. It is pluggable
// and may be absent; the orchestrator is agnostic to its presence.
type Reranker interface {
	// Score rates how well candidateText answers query.
	// Higher is better; scores within one call share a scale.
	Score(ctx context.Context, query, candidateText string) (float64, error)

	// Name identifies the rerank implementation for diagnostics.
	Name() string
}
