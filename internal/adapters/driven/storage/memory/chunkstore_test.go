package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

func TestNewChunkStore_RejectsDuplicateIDs(t *testing.T) {
	_, err := NewChunkStore([]domain.Chunk{
		{ID: "c1", Content: "one"},
		{ID: "c1", Content: "two"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestNewChunkStore_RejectsEmptyID(t *testing.T) {
	_, err := NewChunkStore([]domain.Chunk{{Content: "no id"}})
	require.Error(t, err)
}

func TestChunkStore_Get(t *testing.T) {
	store, err := NewChunkStore([]domain.Chunk{
		{ID: "c1", Content: "one", DocName: "a.pdf"},
		{ID: "c2", Content: "two"},
	})
	require.NoError(t, err)

	chunk, err := store.Get("c1")
	require.NoError(t, err)
	assert.Equal(t, "one", chunk.Content)
	assert.Equal(t, "a.pdf", chunk.DocName)

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChunkStore_AllIDsSorted(t *testing.T) {
	store, err := NewChunkStore([]domain.Chunk{
		{ID: "c3"}, {ID: "c1"}, {ID: "c2"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"c1", "c2", "c3"}, store.AllIDs())
	assert.Equal(t, 3, store.Len())
}

func TestChunkStore_Empty(t *testing.T) {
	store, err := NewChunkStore(nil)
	require.NoError(t, err)
	assert.Zero(t, store.Len())
	assert.Empty(t, store.AllIDs())
}
