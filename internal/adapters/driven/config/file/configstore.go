// Package file provides a TOML-backed implementation of the config
// store. Settings live in ~/.recall/config.toml by default.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore loads and persists application settings as TOML.
type ConfigStore struct {
	mu       sync.Mutex
	filePath string
}

// fileSettings is the on-disk TOML layout. Numeric tunables are
// pointers so an absent key falls back to its default instead of zero.
type fileSettings struct {
	Retrieval struct {
		DenseWeight         *float64 `toml:"dense_weight"`
		SparseWeight        *float64 `toml:"sparse_weight"`
		OverfetchFactor     *int     `toml:"overfetch_factor"`
		SimilarityThreshold *float64 `toml:"similarity_threshold"`
		BM25K1              *float64 `toml:"bm25_k1"`
		BM25B               *float64 `toml:"bm25_b"`
		RerankEnabled       *bool    `toml:"rerank_enabled"`
	} `toml:"retrieval"`

	Embedding struct {
		Provider string `toml:"provider"`
		Model    string `toml:"model"`
		BaseURL  string `toml:"base_url"`
		APIKey   string `toml:"api_key"`
	} `toml:"embedding"`

	// Expansion maps a phrase to the related terms appended to
	// matching queries. Overrides the built-in table when present.
	Expansion map[string][]string `toml:"expansion"`
}

// NewConfigStore creates a TOML-based config store. If configDir is
// empty, defaults to ~/.recall.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".recall")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Load reads the stored settings. A missing file or absent keys fall
// back to defaults; a malformed file is a configuration error.
func (s *ConfigStore) Load() (domain.AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings := domain.DefaultAppSettings()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, err
	}

	var parsed fileSettings
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return settings, fmt.Errorf("%w: parse %s: %v", domain.ErrConfiguration, s.filePath, err)
	}

	r := parsed.Retrieval
	if r.DenseWeight != nil {
		settings.Retrieval.DenseWeight = *r.DenseWeight
	}
	if r.SparseWeight != nil {
		settings.Retrieval.SparseWeight = *r.SparseWeight
	}
	if r.OverfetchFactor != nil {
		settings.Retrieval.OverfetchFactor = *r.OverfetchFactor
	}
	if r.SimilarityThreshold != nil {
		settings.Retrieval.SimilarityThreshold = *r.SimilarityThreshold
	}
	if r.BM25K1 != nil {
		settings.Retrieval.BM25K1 = *r.BM25K1
	}
	if r.BM25B != nil {
		settings.Retrieval.BM25B = *r.BM25B
	}
	if r.RerankEnabled != nil {
		settings.Retrieval.RerankEnabled = *r.RerankEnabled
	}

	settings.Embedding = domain.EmbeddingSettings{
		Provider: domain.AIProvider(parsed.Embedding.Provider),
		Model:    parsed.Embedding.Model,
		BaseURL:  parsed.Embedding.BaseURL,
		APIKey:   parsed.Embedding.APIKey,
	}

	if len(parsed.Expansion) > 0 {
		settings.Expansion = domain.ExpansionTable(parsed.Expansion)
	}

	return settings, nil
}

// Save persists the settings.
func (s *ConfigStore) Save(settings domain.AppSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out fileSettings
	r := settings.Retrieval
	out.Retrieval.DenseWeight = &r.DenseWeight
	out.Retrieval.SparseWeight = &r.SparseWeight
	out.Retrieval.OverfetchFactor = &r.OverfetchFactor
	out.Retrieval.SimilarityThreshold = &r.SimilarityThreshold
	out.Retrieval.BM25K1 = &r.BM25K1
	out.Retrieval.BM25B = &r.BM25B
	out.Retrieval.RerankEnabled = &r.RerankEnabled

	out.Embedding.Provider = settings.Embedding.Provider.String()
	out.Embedding.Model = settings.Embedding.Model
	out.Embedding.BaseURL = settings.Embedding.BaseURL
	out.Embedding.APIKey = settings.Embedding.APIKey

	out.Expansion = settings.Expansion

	data, err := toml.Marshal(out)
	if err != nil {
		return err
	}

	// Write with restricted permissions, the file may hold an API key
	return os.WriteFile(s.filePath, data, 0600)
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}
