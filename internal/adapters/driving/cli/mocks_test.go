package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
)

// mockRetrievalService returns canned results.
type mockRetrievalService struct {
	result   *domain.RetrievalResult
	opts     domain.RetrievalOptions
	ready    bool
	err      error
	reloaded int
}

func (m *mockRetrievalService) Retrieve(
	_ context.Context, query string, opts domain.RetrievalOptions,
) (*domain.RetrievalResult, error) {
	m.opts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.RetrievalResult{Query: query, ExpandedQuery: query}, nil
}

func (m *mockRetrievalService) Reload(_ context.Context, chunks []domain.Chunk, _ map[string][]float32) error {
	m.reloaded = len(chunks)
	return m.err
}

func (m *mockRetrievalService) Ready() bool { return m.ready }

// mockIngestService records inputs.
type mockIngestService struct {
	report *driving.IngestReport
	inputs []driving.ChunkInput
	err    error
}

func (m *mockIngestService) Ingest(_ context.Context, inputs []driving.ChunkInput) (*driving.IngestReport, error) {
	m.inputs = inputs
	if m.err != nil {
		return nil, m.err
	}
	if m.report != nil {
		return m.report, nil
	}
	return &driving.IngestReport{Chunks: len(inputs), EmbeddingModel: "mock-embed"}, nil
}

// mockCorpusStore serves a fixed corpus.
type mockCorpusStore struct {
	chunks     []domain.Chunk
	embeddings map[string][]float32
	path       string
	err        error
}

func (m *mockCorpusStore) Replace(_ context.Context, chunks []domain.Chunk, embeddings map[string][]float32) error {
	if m.err != nil {
		return m.err
	}
	m.chunks = chunks
	m.embeddings = embeddings
	return nil
}

func (m *mockCorpusStore) Load(_ context.Context) ([]domain.Chunk, map[string][]float32, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.chunks, m.embeddings, nil
}

func (m *mockCorpusStore) Count(_ context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return len(m.chunks), nil
}

func (m *mockCorpusStore) Path() string { return m.path }

func (m *mockCorpusStore) Close() error { return nil }

// testResult is a small canned retrieval result.
func testResult() *domain.RetrievalResult {
	dense := 0.91
	return &domain.RetrievalResult{
		Query:         "create a topic",
		ExpandedQuery: "create a topic kafka-topics.sh",
		Candidates: []domain.ScoredCandidate{
			{
				ChunkID: "chunk-1",
				Chunk: domain.Chunk{
					ID:          "chunk-1",
					Content:     "Run kafka-topics.sh --create --topic name.",
					DocName:     "ops.pdf",
					Page:        12,
					ContentType: domain.ContentTypeCommand,
				},
				DenseScore: &dense,
				FusedScore: 0.88,
				Rank:       1,
			},
		},
	}
}

// setupTestServices installs mock services and returns a cleanup that
// restores the previous wiring.
func setupTestServices() func() {
	oldRetrieval := retrievalService
	oldIngest := ingestService

	retrievalService = &mockRetrievalService{result: testResult(), ready: true}
	ingestService = &mockIngestService{}

	return func() {
		retrievalService = oldRetrieval
		ingestService = oldIngest
	}
}

// errRetrieval always fails.
var errRetrieval = errors.New("index unavailable")

type mockRetrievalServiceError struct{}

func (m *mockRetrievalServiceError) Retrieve(
	_ context.Context, _ string, _ domain.RetrievalOptions,
) (*domain.RetrievalResult, error) {
	return nil, errRetrieval
}

func (m *mockRetrievalServiceError) Reload(_ context.Context, _ []domain.Chunk, _ map[string][]float32) error {
	return errRetrieval
}

func (m *mockRetrievalServiceError) Ready() bool { return false }
