package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
)

// defaultTopK is used when a tool call omits the limit.
const defaultTopK = 5

// RetrieveInput is the input schema for the retrieve tool.
type RetrieveInput struct {
	Query       string `json:"query" jsonschema:"the question to retrieve supporting passages for"`
	Limit       int    `json:"limit,omitempty" jsonschema:"maximum number of passages to return (default 5)"`
	ContentType string `json:"content_type,omitempty" jsonschema:"restrict to 'conceptual' or 'command' passages"`
	NoExpansion bool   `json:"no_expansion,omitempty" jsonschema:"disable query expansion for this call"`
}

// RetrieveOutput is the output schema for the retrieve tool.
type RetrieveOutput struct {
	Results       []RetrieveResultOutput `json:"results"`
	Count         int                    `json:"count"`
	ExpandedQuery string                 `json:"expanded_query,omitempty"`
	Context       string                 `json:"context"`
	Sources       []string               `json:"sources"`
}

// RetrieveResultOutput represents a single retrieved passage.
type RetrieveResultOutput struct {
	ChunkID     string  `json:"chunk_id"`
	Content     string  `json:"content"`
	DocName     string  `json:"doc_name"`
	Page        int     `json:"page,omitempty"`
	ContentType string  `json:"content_type,omitempty"`
	Score       float64 `json:"score"`
	Rank        int     `json:"rank"`
}

// IngestInput is the input schema for the ingest tool.
type IngestInput struct {
	Chunks []driving.ChunkInput `json:"chunks" jsonschema:"the corpus chunks to embed and index"`
}

// IngestOutput is the output schema for the ingest tool.
type IngestOutput struct {
	Chunks         int    `json:"chunks"`
	CommandChunks  int    `json:"command_chunks"`
	EmbeddingModel string `json:"embedding_model"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve",
		Description: "Retrieve the corpus passages most relevant to a question",
	}, s.handleRetrieve)

	if s.ports.Ingest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ingest",
			Description: "Replace the corpus with a new set of chunks",
		}, s.handleIngest)
	}
}

// handleRetrieve handles the retrieve tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, RetrieveOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultTopK
	}

	opts := domain.RetrievalOptions{
		TopK:             limit,
		ContentType:      domain.ContentType(input.ContentType),
		DisableExpansion: input.NoExpansion,
	}
	result, err := s.ports.Retrieval.Retrieve(ctx, input.Query, opts)
	if err != nil {
		return nil, RetrieveOutput{}, err
	}

	output := RetrieveOutput{
		Results: make([]RetrieveResultOutput, len(result.Candidates)),
		Count:   len(result.Candidates),
		Context: result.FormatContext(),
		Sources: result.Sources(),
	}
	if result.ExpandedQuery != result.Query {
		output.ExpandedQuery = result.ExpandedQuery
	}

	for i := range result.Candidates {
		c := result.Candidates[i]
		output.Results[i] = RetrieveResultOutput{
			ChunkID:     c.ChunkID,
			Content:     c.Chunk.Content,
			DocName:     c.Chunk.DocName,
			Page:        c.Chunk.Page,
			ContentType: string(c.Chunk.ContentType),
			Score:       c.FusedScore,
			Rank:        c.Rank,
		}
	}

	return nil, output, nil
}

// handleIngest handles the ingest tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	report, err := s.ports.Ingest.Ingest(ctx, input.Chunks)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	return nil, IngestOutput{
		Chunks:         report.Chunks,
		CommandChunks:  report.CommandChunks,
		EmbeddingModel: report.EmbeddingModel,
	}, nil
}
