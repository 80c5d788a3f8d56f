package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidQuery indicates an empty or malformed query.
	// Rejected before any index work; never retried.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrIndexNotReady indicates a query arrived before the first
	// successful index build. Surfaced to the caller, not retried locally.
	ErrIndexNotReady = errors.New("index not ready")

	// ErrConfiguration indicates invalid weights or thresholds.
	// Fatal at construction time, never at query time.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrProviderTimeout indicates the embedding provider did not
	// respond within the caller's deadline.
	ErrProviderTimeout = errors.New("embedding provider timeout")

	// ErrProviderAuth indicates the embedding provider rejected
	// the configured credentials.
	ErrProviderAuth = errors.New("embedding provider authentication failed")

	// ErrEmbeddingUnavailable indicates no embedding provider is configured.
	// Dense retrieval is disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding provider unavailable")

	// ErrRerankUnavailable indicates reranking was requested but no
	// rerank stage is configured.
	ErrRerankUnavailable = errors.New("rerank stage unavailable")

	// ErrIngestInProgress indicates a corpus rebuild is already running.
	ErrIngestInProgress = errors.New("ingest in progress")
)
