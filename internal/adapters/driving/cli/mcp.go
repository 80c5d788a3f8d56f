package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recall-cli/internal/adapters/driving/mcp"
	"github.com/custodia-labs/recall-cli/internal/adapters/driving/watcher"
	"github.com/custodia-labs/recall-cli/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

While serving, the corpus database is watched: an ingest run from
another process swaps the live indexes automatically.

Examples:
  # Stdio mode (default, for Claude Desktop)
  recall mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  recall mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "recall": {
        "command": "/path/to/recall",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{
		Retrieval: retrievalService,
		Ingest:    ingestService,
		Corpus:    corpusStore,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if corpusStore != nil {
		w, err := watcher.New(corpusStore, retrievalService)
		if err != nil {
			logger.Warn("Corpus watcher unavailable: %v", err)
		} else {
			w.Start()
			defer w.Stop()
		}
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
