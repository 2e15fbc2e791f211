package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucerne-labs/fundreply/internal/corpus"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the built-in sample corpus into the index",
	Long: `Embeds and indexes the built-in sample email/response pairs.
Useful for trying the pipeline before ingesting a real corpus.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	svc, err := ensureIngest()
	if err != nil {
		return err
	}

	pairs := corpus.SamplePairs()
	n, err := svc.Ingest(cmd.Context(), pairs)
	if err != nil {
		return fmt.Errorf("seed corpus: %w", err)
	}

	cmd.Printf("Indexed %d sample pairs.\n", n)
	return nil
}
