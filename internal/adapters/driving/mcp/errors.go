// Package mcp provides an MCP (Model Context Protocol) server adapter for Recall.
// It enables AI assistants to retrieve grounded context from the local corpus.
package mcp

import "errors"

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")
