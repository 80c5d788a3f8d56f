package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(home, ".recall", "config.toml"), store.Path())
}

func TestConfigStore_LoadMissingFileReturnsDefaults(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	settings, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultRetrievalSettings(), settings.Retrieval)
	assert.False(t, settings.Embedding.IsConfigured())
	assert.Nil(t, settings.Expansion)
}

func TestConfigStore_SaveAndLoadRoundTrip(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	saved := domain.DefaultAppSettings()
	saved.Retrieval.DenseWeight = 0.6
	saved.Retrieval.SparseWeight = 0.4
	saved.Retrieval.SimilarityThreshold = 0.25
	saved.Retrieval.RerankEnabled = true
	saved.Embedding = domain.EmbeddingSettings{
		Provider: domain.AIProviderOllama,
		Model:    "nomic-embed-text",
		BaseURL:  "http://localhost:11434",
	}
	saved.Expansion = domain.ExpansionTable{
		"rebalance": {"partition reassignment", "kafka-reassign-partitions.sh"},
	}

	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, saved.Retrieval, loaded.Retrieval)
	assert.Equal(t, saved.Embedding, loaded.Embedding)
	assert.Equal(t, saved.Expansion, loaded.Expansion)
}

func TestConfigStore_PartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	content := `
[retrieval]
dense_weight = 0.5
sparse_weight = 0.5

[embedding]
provider = "openai"
api_key = "sk-test"
`
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0600))

	settings, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, 0.5, settings.Retrieval.DenseWeight)
	assert.Equal(t, 0.5, settings.Retrieval.SparseWeight)
	// Untouched keys stay at their defaults.
	assert.Equal(t, 3, settings.Retrieval.OverfetchFactor)
	assert.Equal(t, 1.2, settings.Retrieval.BM25K1)
	assert.Equal(t, 0.75, settings.Retrieval.BM25B)
	assert.False(t, settings.Retrieval.RerankEnabled)

	assert.Equal(t, domain.AIProviderOpenAI, settings.Embedding.Provider)
	assert.True(t, settings.Embedding.IsConfigured())
}

func TestConfigStore_MalformedFile(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(store.Path(), []byte("not [valid toml"), 0600))

	_, err = store.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(domain.DefaultAppSettings()))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
