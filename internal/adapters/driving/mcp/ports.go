package mcp

import (
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval answers retrieve tool calls.
	Retrieval driving.RetrievalService

	// Ingest rebuilds the corpus. Optional; without it the ingest
	// tool is not registered.
	Ingest driving.IngestService

	// Corpus backs the corpus stats resource. Optional.
	Corpus driven.CorpusStore
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	// Ingest and Corpus are optional
	return nil
}
