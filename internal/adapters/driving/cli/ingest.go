package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/recall-cli/internal/core/ports/driving"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a corpus from a JSON chunk file",
	Long: `Replaces the corpus with the chunks in the given JSON file,
embeds them, and rebuilds the retrieval indexes.

The file holds an array of chunk records:

  [
    {"text": "To create a topic ...", "doc_name": "kafka-ops.pdf", "page": 12},
    {"text": "Brokers replicate ...", "doc_name": "kafka-arch.pdf", "page": 3}
  ]

Each record may carry an optional "content_type" of "conceptual" or
"command"; untagged records are classified automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := args[0]

	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var inputs []driving.ChunkInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	report, err := ingestService.Ingest(context.Background(), inputs)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %d chunks (%d command examples) with %s\n",
		report.Chunks, report.CommandChunks, report.EmbeddingModel)
	return nil
}
