package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

// stubCorpusStore serves a fixed corpus from a path under test control.
type stubCorpusStore struct {
	path   string
	chunks []domain.Chunk
}

func (s *stubCorpusStore) Replace(_ context.Context, chunks []domain.Chunk, _ map[string][]float32) error {
	s.chunks = chunks
	return nil
}

func (s *stubCorpusStore) Load(_ context.Context) ([]domain.Chunk, map[string][]float32, error) {
	embeddings := make(map[string][]float32, len(s.chunks))
	for _, c := range s.chunks {
		embeddings[c.ID] = []float32{1}
	}
	return s.chunks, embeddings, nil
}

func (s *stubCorpusStore) Count(_ context.Context) (int, error) { return len(s.chunks), nil }
func (s *stubCorpusStore) Path() string                         { return s.path }
func (s *stubCorpusStore) Close() error                         { return nil }

// countingRetrieval counts Reload calls.
type countingRetrieval struct {
	mu      sync.Mutex
	reloads int
}

func (r *countingRetrieval) Retrieve(_ context.Context, _ string, _ domain.RetrievalOptions) (*domain.RetrievalResult, error) {
	return nil, domain.ErrIndexNotReady
}

func (r *countingRetrieval) Reload(_ context.Context, _ []domain.Chunk, _ map[string][]float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reloads++
	return nil
}

func (r *countingRetrieval) Ready() bool { return true }

func (r *countingRetrieval) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reloads
}

func TestWatcher_ReloadsOnCorpusWrite(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "corpus.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("v1"), 0600))

	corpus := &stubCorpusStore{
		path:   dbPath,
		chunks: []domain.Chunk{{ID: "c1", Content: "chunk"}},
	}
	retrieval := &countingRetrieval{}

	w, err := New(corpus, retrieval)
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	require.NoError(t, os.WriteFile(dbPath, []byte("v2"), 0600))

	assert.Eventually(t, func() bool {
		return retrieval.count() >= 1
	}, 5*time.Second, 50*time.Millisecond)
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "corpus.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("v1"), 0600))

	corpus := &stubCorpusStore{
		path:   dbPath,
		chunks: []domain.Chunk{{ID: "c1", Content: "chunk"}},
	}
	retrieval := &countingRetrieval{}

	w, err := New(corpus, retrieval)
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "other.txt"), []byte("x"), 0600))

	time.Sleep(debounceDelay + 300*time.Millisecond)
	assert.Equal(t, 0, retrieval.count())
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "corpus.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("v1"), 0600))

	corpus := &stubCorpusStore{
		path:   dbPath,
		chunks: []domain.Chunk{{ID: "c1", Content: "chunk"}},
	}
	retrieval := &countingRetrieval{}

	w, err := New(corpus, retrieval)
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	// A burst of writes within the debounce window collapses to one reload.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(dbPath, []byte{byte(i)}, 0600))
		time.Sleep(20 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return retrieval.count() >= 1
	}, 5*time.Second, 50*time.Millisecond)
	time.Sleep(debounceDelay)
	assert.Equal(t, 1, retrieval.count())
}

func TestWatcher_StopEndsWatching(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "corpus.db")
	require.NoError(t, os.WriteFile(dbPath, []byte("v1"), 0600))

	corpus := &stubCorpusStore{path: dbPath}
	retrieval := &countingRetrieval{}

	w, err := New(corpus, retrieval)
	require.NoError(t, err)
	w.Start()
	w.Stop()

	require.NoError(t, os.WriteFile(dbPath, []byte("v2"), 0600))
	time.Sleep(debounceDelay + 200*time.Millisecond)
	assert.Equal(t, 0, retrieval.count())
}
