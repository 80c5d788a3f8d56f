package domain

import (
	"fmt"
	"math"
)

const unknownDescription = "Unknown"

// weightTolerance is the allowed deviation of dense+sparse from 1.
const weightTolerance = 1e-6

// AIProvider identifies an embedding service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// ExpansionTable maps a domain phrase to related terms appended to
// matching queries. Loaded once at construction and never mutated.
type ExpansionTable map[string][]string

// RetrievalSettings holds the tunables of the retrieval pipeline.
type RetrievalSettings struct {
	// DenseWeight is the fusion weight for dense (embedding) scores.
	DenseWeight float64

	// SparseWeight is the fusion weight for sparse (BM25) scores.
	// DenseWeight + SparseWeight must equal 1.
	SparseWeight float64

	// OverfetchFactor multiplies top_k when querying each index so the
	// merger has enough material before truncation.
	OverfetchFactor int

	// SimilarityThreshold drops candidates whose fused score falls
	// below it. Zero disables threshold filtering.
	SimilarityThreshold float64

	// BM25K1 controls term-frequency saturation.
	BM25K1 float64

	// BM25B controls document-length normalization.
	BM25B float64

	// RerankEnabled turns on the optional rerank stage when one
	// is configured.
	RerankEnabled bool
}

// DefaultRetrievalSettings returns the tuning used when nothing is
// configured: 70/30 dense/sparse, 3x overfetch, BM25 at k1=1.2 b=0.75.
func DefaultRetrievalSettings() RetrievalSettings {
	return RetrievalSettings{
		DenseWeight:         0.7,
		SparseWeight:        0.3,
		OverfetchFactor:     3,
		SimilarityThreshold: 0,
		BM25K1:              1.2,
		BM25B:               0.75,
		RerankEnabled:       false,
	}
}

// Validate checks the settings for construction-time errors.
// All failures wrap ErrConfiguration.
func (s RetrievalSettings) Validate() error {
	if s.DenseWeight < 0 || s.SparseWeight < 0 {
		return fmt.Errorf("%w: fusion weights must be non-negative (dense=%v, sparse=%v)",
			ErrConfiguration, s.DenseWeight, s.SparseWeight)
	}
	if math.Abs(s.DenseWeight+s.SparseWeight-1) > weightTolerance {
		return fmt.Errorf("%w: fusion weights must sum to 1 (dense=%v, sparse=%v)",
			ErrConfiguration, s.DenseWeight, s.SparseWeight)
	}
	if s.OverfetchFactor < 1 {
		return fmt.Errorf("%w: overfetch factor must be at least 1 (got %d)",
			ErrConfiguration, s.OverfetchFactor)
	}
	if s.SimilarityThreshold < 0 || s.SimilarityThreshold > 1 {
		return fmt.Errorf("%w: similarity threshold must be in [0, 1] (got %v)",
			ErrConfiguration, s.SimilarityThreshold)
	}
	if s.BM25K1 <= 0 {
		return fmt.Errorf("%w: bm25 k1 must be positive (got %v)", ErrConfiguration, s.BM25K1)
	}
	if s.BM25B < 0 || s.BM25B > 1 {
		return fmt.Errorf("%w: bm25 b must be in [0, 1] (got %v)", ErrConfiguration, s.BM25B)
	}
	return nil
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Retrieval holds the retrieval pipeline tunables.
	Retrieval RetrievalSettings

	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// Expansion holds the query expansion table. When nil the
	// built-in table ships with the engine.
	Expansion ExpansionTable
}

// DefaultAppSettings returns settings with sensible defaults.
// The embedding provider is left unconfigured; users must set it up
// before dense retrieval is available.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Retrieval: DefaultRetrievalSettings(),
		Embedding: EmbeddingSettings{},
	}
}
