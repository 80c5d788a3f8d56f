// Package cli provides the cobra command tree for the recall binary.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recall-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/recall-cli/internal/adapters/driven/embedding/ollama"
	"github.com/custodia-labs/recall-cli/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/recall-cli/internal/adapters/driven/index"
	"github.com/custodia-labs/recall-cli/internal/adapters/driven/rerank/lexical"
	"github.com/custodia-labs/recall-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
	"github.com/custodia-labs/recall-cli/internal/core/services"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

// version is set by Execute from the build.
var version = "dev"

// verbose enables debug logging on stderr.
var verbose bool

// Services wired by initServices. Tests inject mocks directly.
var (
	retrievalService driving.RetrievalService
	ingestService    driving.IngestService
	corpusStore      driven.CorpusStore
	configStore      driven.ConfigStore
)

var rootCmd = &cobra.Command{
	Use:   "recall",
	Short: "Hybrid retrieval over a local document corpus",
	Long: `Recall answers questions with passages from an ingested corpus.
It fuses semantic (embedding) and keyword (BM25) search, with optional
query expansion and reranking.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute wires the services and runs the command tree. v is the
// build version stamped into the binary.
func Execute(v string) error {
	version = v
	if retrievalService == nil {
		if err := initServices(); err != nil {
			return fmt.Errorf("initialising services: %w", err)
		}
	}
	defer shutdown()
	return rootCmd.Execute()
}

// initServices assembles the retrieval stack from the config file.
func initServices() error {
	store, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}
	configStore = store

	settings, err := store.Load()
	if err != nil {
		return err
	}

	var embedder driven.EmbeddingProvider
	if settings.Embedding.IsConfigured() {
		embedder, err = buildEmbedder(settings.Embedding)
		if err != nil {
			return err
		}
	}

	var reranker driven.Reranker
	if settings.Retrieval.RerankEnabled {
		reranker = lexical.New()
	}

	engine, err := services.NewRetrievalEngine(
		settings.Retrieval, settings.Expansion, index.NewFactory(), embedder, reranker)
	if err != nil {
		return err
	}
	retrievalService = engine

	corpus, err := sqlite.NewCorpusStore("")
	if err != nil {
		return fmt.Errorf("opening corpus store: %w", err)
	}
	corpusStore = corpus

	ingestService = services.NewIngestService(embedder, corpus, engine)

	// Warm start: rebuild the generation from the persisted corpus.
	ctx := context.Background()
	count, err := corpus.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		chunks, embeddings, err := corpus.Load(ctx)
		if err != nil {
			return fmt.Errorf("loading corpus: %w", err)
		}
		if err := engine.Reload(ctx, chunks, embeddings); err != nil {
			return fmt.Errorf("rebuilding generation: %w", err)
		}
		logger.Debug("Warm start: %d chunks live", count)
	}

	return nil
}

// buildEmbedder creates the embedding provider the settings name.
func buildEmbedder(settings domain.EmbeddingSettings) (driven.EmbeddingProvider, error) {
	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollama.NewEmbeddingProvider(ollama.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil
	case domain.AIProviderOpenAI:
		return openai.NewEmbeddingProvider(openai.Config{
			APIKey: settings.APIKey,
			Model:  settings.Model,
		})
	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q",
			domain.ErrConfiguration, settings.Provider)
	}
}

// shutdown releases resources held by the driven adapters.
func shutdown() {
	if corpusStore != nil {
		if err := corpusStore.Close(); err != nil {
			logger.Warn("Closing corpus store: %v", err)
		}
	}
}
