package mcp

import (
	"context"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	result *domain.RetrievalResult
	opts   domain.RetrievalOptions
	ready  bool
	err    error
}

func (m *mockRetrievalService) Retrieve(
	_ context.Context,
	_ string,
	opts domain.RetrievalOptions,
) (*domain.RetrievalResult, error) {
	m.opts = opts
	return m.result, m.err
}

func (m *mockRetrievalService) Reload(_ context.Context, _ []domain.Chunk, _ map[string][]float32) error {
	return m.err
}

func (m *mockRetrievalService) Ready() bool {
	return m.ready
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	report *driving.IngestReport
	inputs []driving.ChunkInput
	err    error
}

func (m *mockIngestService) Ingest(_ context.Context, inputs []driving.ChunkInput) (*driving.IngestReport, error) {
	m.inputs = inputs
	return m.report, m.err
}

// mockCorpusStore is a mock implementation of driven.CorpusStore.
type mockCorpusStore struct {
	count int
	path  string
	err   error
}

func (m *mockCorpusStore) Replace(_ context.Context, _ []domain.Chunk, _ map[string][]float32) error {
	return m.err
}

func (m *mockCorpusStore) Load(_ context.Context) ([]domain.Chunk, map[string][]float32, error) {
	return nil, nil, m.err
}

func (m *mockCorpusStore) Count(_ context.Context) (int, error) {
	return m.count, m.err
}

func (m *mockCorpusStore) Path() string { return m.path }
func (m *mockCorpusStore) Close() error { return nil }
