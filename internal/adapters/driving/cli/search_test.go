package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_Long(t *testing.T) {
	assert.Contains(t, searchCmd.Long, "hybrid")
	assert.Contains(t, searchCmd.Long, "BM25")
	assert.Contains(t, searchCmd.Long, "semantic")
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasLimitFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "5", flag.DefValue)
}

func TestSearchCmd_ExecutesWithQuery(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "create a topic"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Results:")
	assert.Contains(t, buf.String(), "ops.pdf")
	assert.Contains(t, buf.String(), "0.880")
}

func TestSearchCmd_PassesOptions(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	mock := retrievalService.(*mockRetrievalService)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "-n", "7", "--no-expand", "--content-type", "command", "query"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchLimit = 5
		searchNoExpand = false
		searchContentType = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, 7, mock.opts.TopK)
	assert.True(t, mock.opts.DisableExpansion)
	assert.Equal(t, domain.ContentTypeCommand, mock.opts.ContentType)
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--json", "create a topic"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchJSON = false // Reset flag
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "\"chunk_id\"")
	assert.Contains(t, buf.String(), "\"fused_score\"")
	assert.Contains(t, buf.String(), "\"expanded_query\"")
	assert.Contains(t, buf.String(), "\"sources\"")
}

func TestSearchCmd_DebugShowsBreakdown(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	dense := 0.91
	result := testResult()
	result.Diagnostics = &domain.Diagnostics{
		Query:         result.Query,
		ExpandedQuery: result.ExpandedQuery,
		TopK:          5,
		Entries: []domain.DiagnosticEntry{
			{ChunkID: "chunk-1", RawDense: &dense, NormDense: 1, FusedScore: 0.88},
		},
	}
	retrievalService.(*mockRetrievalService).result = result

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--debug", "create a topic"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchDebug = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Score breakdown:")
	assert.Contains(t, buf.String(), "raw_dense=0.9100")
}

func TestSearchCmd_ServiceNotConfigured(t *testing.T) {
	oldService := retrievalService
	retrievalService = nil
	defer func() {
		retrievalService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "test"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "retrieval service not configured")
}

func TestSearchCmd_ServiceError(t *testing.T) {
	oldService := retrievalService
	retrievalService = &mockRetrievalServiceError{}
	defer func() {
		retrievalService = oldService
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "test"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "retrieval failed")
}

func TestOutputResultTable_EmptyResults(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	err := outputResultTable(rootCmd, &domain.RetrievalResult{})

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No results found")
}

func TestOutputResultJSON_EmptyResults(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	err := outputResultJSON(rootCmd, &domain.RetrievalResult{Query: "q", ExpandedQuery: "q"})

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "\"results\": []")
}

func TestSnippet_TruncatesLongContent(t *testing.T) {
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'a'
	}

	got := snippet(string(long))
	assert.Len(t, got, 163)
	assert.Contains(t, got, "...")

	assert.Equal(t, "short", snippet("short"))
}
