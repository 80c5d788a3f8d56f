package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// embedBatchSize is how many chunks are embedded per provider call.
const embedBatchSize = 32

// IngestService builds a new corpus generation: embed the chunk
// records, persist them, and swap the live generation. The corpus
// store parameter is optional (can be nil) for in-memory operation.
type IngestService struct {
	embedder  driven.EmbeddingProvider
	corpus    driven.CorpusStore
	retrieval driving.RetrievalService
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	embedder driven.EmbeddingProvider,
	corpus driven.CorpusStore,
	retrieval driving.RetrievalService,
) *IngestService {
	return &IngestService{
		embedder:  embedder,
		corpus:    corpus,
		retrieval: retrieval,
	}
}

// Ingest embeds the inputs, persists the corpus, and reloads the
// retrieval engine. A failure at any step leaves the previous corpus
// and generation serving.
func (s *IngestService) Ingest(ctx context.Context, inputs []driving.ChunkInput) (*driving.IngestReport, error) {
	logger.Section("Corpus Ingestion")

	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: empty corpus", domain.ErrInvalidQuery)
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	chunks := make([]domain.Chunk, len(inputs))
	commands := 0
	for i, in := range inputs {
		text := strings.TrimSpace(in.Text)
		if text == "" {
			return nil, fmt.Errorf("%w: chunk %d has empty text", domain.ErrInvalidQuery, i)
		}
		contentType := in.ContentType
		if contentType == domain.ContentTypeAny {
			contentType = ClassifyContent(text)
		}
		if contentType == domain.ContentTypeCommand {
			commands++
		}
		chunks[i] = domain.Chunk{
			ID:          uuid.NewString(),
			Content:     text,
			DocName:     in.DocName,
			Page:        in.Page,
			Position:    i,
			ContentType: contentType,
		}
	}
	logger.Debug("Prepared %d chunks (%d command examples)", len(chunks), commands)

	embeddings := make(map[string][]float32, len(chunks))
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		texts := make([]string, end-start)
		for i := start; i < end; i++ {
			texts[i-start] = chunks[i].Content
		}

		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed batch %d-%d: %w", start, end, err)
		}
		if len(vectors) != len(texts) {
			return nil, fmt.Errorf("embed batch %d-%d: got %d vectors for %d texts",
				start, end, len(vectors), len(texts))
		}
		for i := start; i < end; i++ {
			embeddings[chunks[i].ID] = vectors[i-start]
		}
		logger.Debug("Embedded %d/%d chunks", end, len(chunks))
	}

	if s.corpus != nil {
		if err := s.corpus.Replace(ctx, chunks, embeddings); err != nil {
			return nil, fmt.Errorf("persist corpus: %w", err)
		}
		logger.Debug("Corpus persisted to %s", s.corpus.Path())
	}

	if err := s.retrieval.Reload(ctx, chunks, embeddings); err != nil {
		return nil, fmt.Errorf("reload generation: %w", err)
	}

	logger.Info("Ingested %d chunks", len(chunks))
	return &driving.IngestReport{
		Chunks:         len(chunks),
		CommandChunks:  commands,
		EmbeddingModel: s.embedder.ModelName(),
	}, nil
}

// ClassifyContent tags a chunk as a command example when it looks like
// CLI or config material, conceptual prose otherwise.
func ClassifyContent(text string) domain.ContentType {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, ".sh "), strings.HasSuffix(lower, ".sh"),
		strings.Contains(lower, "$ "), strings.Contains(lower, "bin/"),
		strings.Contains(lower, "```"), strings.Contains(lower, ".properties"):
		return domain.ContentTypeCommand
	}
	return domain.ContentTypeConceptual
}
