package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	}
}

func TestServer_handleCorpusResource(t *testing.T) {
	ctx := context.Background()

	t.Run("reports ready corpus with stats", func(t *testing.T) {
		ports := &Ports{
			Retrieval: &mockRetrievalService{ready: true},
			Corpus:    &mockCorpusStore{count: 128, path: "/tmp/corpus.db"},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleCorpusResource(ctx, readResourceRequest(uriScheme+"corpus"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)

		var info struct {
			Ready  bool   `json:"ready"`
			Chunks int    `json:"chunks"`
			Path   string `json:"path"`
		}
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &info))
		assert.True(t, info.Ready)
		assert.Equal(t, 128, info.Chunks)
		assert.Equal(t, "/tmp/corpus.db", info.Path)
	})

	t.Run("works without a corpus store", func(t *testing.T) {
		ports := &Ports{
			Retrieval: &mockRetrievalService{ready: false},
		}
		server, err := NewServer(ports)
		require.NoError(t, err)

		result, err := server.handleCorpusResource(ctx, readResourceRequest(uriScheme+"corpus"))
		require.NoError(t, err)

		var info struct {
			Ready  bool `json:"ready"`
			Chunks int  `json:"chunks"`
		}
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &info))
		assert.False(t, info.Ready)
		assert.Equal(t, 0, info.Chunks)
	})
}
