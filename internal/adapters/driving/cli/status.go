package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show corpus and index status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	if retrievalService.Ready() {
		cmd.Println("Index: ready")
	} else {
		cmd.Println("Index: not built (run 'recall ingest' first)")
	}

	if corpusStore != nil {
		count, err := corpusStore.Count(context.Background())
		if err != nil {
			return err
		}
		cmd.Printf("Corpus: %d chunks at %s\n", count, corpusStore.Path())
	}

	if configStore != nil {
		cmd.Printf("Config: %s\n", configStore.Path())
	}

	return nil
}
