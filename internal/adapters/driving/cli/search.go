package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
)

var (
	searchLimit       int
	searchJSON        bool
	searchDebug       bool
	searchNoExpand    bool
	searchContentType string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Retrieve passages for a query",
	Long: `Performs hybrid retrieval over the ingested corpus.
Combines keyword (BM25) and semantic (vector) search, fusing the two
score lists into one ranking.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchDebug, "debug", false, "show the per-candidate score breakdown")
	searchCmd.Flags().BoolVar(&searchNoExpand, "no-expand", false, "disable query expansion")
	searchCmd.Flags().StringVar(&searchContentType, "content-type", "", "restrict to 'conceptual' or 'command' passages")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	ctx := context.Background()
	opts := domain.RetrievalOptions{
		TopK:             searchLimit,
		ContentType:      domain.ContentType(searchContentType),
		DisableExpansion: searchNoExpand,
		Debug:            searchDebug,
	}

	result, err := retrievalService.Retrieve(ctx, query, opts)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	if searchJSON {
		return outputResultJSON(cmd, result)
	}

	return outputResultTable(cmd, result)
}

// jsonCandidate is the JSON shape of one result row.
type jsonCandidate struct {
	ChunkID     string   `json:"chunk_id"`
	Content     string   `json:"content"`
	DocName     string   `json:"doc_name"`
	Page        int      `json:"page,omitempty"`
	ContentType string   `json:"content_type,omitempty"`
	DenseScore  *float64 `json:"dense_score,omitempty"`
	SparseScore *float64 `json:"sparse_score,omitempty"`
	FusedScore  float64  `json:"fused_score"`
	Rank        int      `json:"rank"`
}

// jsonResult is the JSON shape of a whole retrieval.
type jsonResult struct {
	Query         string              `json:"query"`
	ExpandedQuery string              `json:"expanded_query,omitempty"`
	Results       []jsonCandidate     `json:"results"`
	Sources       []string            `json:"sources"`
	Diagnostics   *domain.Diagnostics `json:"diagnostics,omitempty"`
}

func outputResultJSON(cmd *cobra.Command, result *domain.RetrievalResult) error {
	out := jsonResult{
		Query:       result.Query,
		Results:     make([]jsonCandidate, len(result.Candidates)),
		Sources:     result.Sources(),
		Diagnostics: result.Diagnostics,
	}
	if result.ExpandedQuery != result.Query {
		out.ExpandedQuery = result.ExpandedQuery
	}
	for i := range result.Candidates {
		c := result.Candidates[i]
		out.Results[i] = jsonCandidate{
			ChunkID:     c.ChunkID,
			Content:     c.Chunk.Content,
			DocName:     c.Chunk.DocName,
			Page:        c.Chunk.Page,
			ContentType: string(c.Chunk.ContentType),
			DenseScore:  c.DenseScore,
			SparseScore: c.SparseScore,
			FusedScore:  c.FusedScore,
			Rank:        c.Rank,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputResultTable(cmd *cobra.Command, result *domain.RetrievalResult) error {
	if len(result.Candidates) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	if result.ExpandedQuery != result.Query {
		cmd.Printf("Expanded query: %s\n", result.ExpandedQuery)
	}
	cmd.Println("Results:")
	cmd.Println()
	for i := range result.Candidates {
		c := result.Candidates[i]

		source := c.Chunk.DocName
		if source == "" {
			source = "unknown"
		}
		cmd.Printf("  [%d] %s (%.3f)\n", c.Rank, source, c.FusedScore)
		if c.Chunk.Page > 0 {
			cmd.Printf("      Page %d\n", c.Chunk.Page)
		}
		cmd.Printf("      %s\n", snippet(c.Chunk.Content))
		cmd.Println()
	}

	if result.Diagnostics != nil {
		outputDiagnostics(cmd, result.Diagnostics)
	}

	return nil
}

// outputDiagnostics prints the per-candidate score breakdown.
func outputDiagnostics(cmd *cobra.Command, diag *domain.Diagnostics) {
	cmd.Println("Score breakdown:")
	for i := range diag.Entries {
		e := diag.Entries[i]
		cmd.Printf("  %s: fused=%.4f norm_dense=%.4f norm_sparse=%.4f",
			e.ChunkID, e.FusedScore, e.NormDense, e.NormSparse)
		if e.RawDense != nil {
			cmd.Printf(" raw_dense=%.4f", *e.RawDense)
		}
		if e.RawSparse != nil {
			cmd.Printf(" raw_sparse=%.4f", *e.RawSparse)
		}
		if e.RerankScore != nil {
			cmd.Printf(" rerank=%.4f", *e.RerankScore)
		}
		cmd.Println()
	}
	cmd.Println()
}

// snippet truncates content for table display.
func snippet(content string) string {
	const maxLen = 160
	if len(content) <= maxLen {
		return content
	}
	return content[:maxLen] + "..."
}
