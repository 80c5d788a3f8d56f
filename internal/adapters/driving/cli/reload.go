package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var reloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Rebuild the index from the persisted corpus",
	Long: `Reload reads the persisted corpus and swaps in a freshly built
index generation. Use it after replacing the corpus database out of
band; 'recall ingest' reloads automatically.`,
	RunE: runReload,
}

func init() {
	rootCmd.AddCommand(reloadCmd)
}

func runReload(cmd *cobra.Command, _ []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}
	if corpusStore == nil {
		return errors.New("corpus store not configured")
	}

	ctx := context.Background()
	chunks, embeddings, err := corpusStore.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading corpus: %w", err)
	}
	if len(chunks) == 0 {
		cmd.Println("Corpus is empty (run 'recall ingest' first)")
		return nil
	}

	if err := retrievalService.Reload(ctx, chunks, embeddings); err != nil {
		return fmt.Errorf("reload failed: %w", err)
	}

	cmd.Printf("Reloaded %d chunks\n", len(chunks))
	return nil
}
