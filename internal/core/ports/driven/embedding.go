package driven

import "context"

// EmbeddingProvider generates vector embeddings from text.
// This is the only retrieval dependency with externally-variable
// latency; callers bound every call with a context deadline.
//
// Note: this is separate from DenseIndex, which stores and searches
// vectors. EmbeddingProvider generates vectors; DenseIndex holds them.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, all-minilm)
//   - Local models via inference servers
type EmbeddingProvider interface {
	// Embed generates a vector embedding for the given text.
	// Timeouts surface as domain.ErrProviderTimeout, credential
	// failures as domain.ErrProviderAuth.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// This is more efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768, 1536).
	// This must match the vectors held by the dense index.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
