package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Recall resources.
	uriScheme = "recall://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for corpus status.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "corpus",
		Name:        "corpus",
		Description: "Status of the indexed corpus",
		MIMEType:    "application/json",
	}, s.handleCorpusResource)
}

// handleCorpusResource returns the corpus status.
func (s *Server) handleCorpusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type corpusInfo struct {
		Ready  bool   `json:"ready"`
		Chunks int    `json:"chunks"`
		Path   string `json:"path,omitempty"`
	}

	info := corpusInfo{Ready: s.ports.Retrieval.Ready()}
	if s.ports.Corpus != nil {
		count, err := s.ports.Corpus.Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("counting chunks: %w", err)
		}
		info.Chunks = count
		info.Path = s.ports.Corpus.Path()
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling corpus status: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
