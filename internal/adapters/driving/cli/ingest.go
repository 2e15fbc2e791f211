package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucerne-labs/fundreply/internal/corpus"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [corpus.csv]",
	Short: "Ingest a CSV corpus of historical email/response pairs",
	Long: `Reads email/response pairs from a CSV file and indexes them.

The file must have a header row with email_text and response_text
columns. Any other columns are stored as metadata on each pair.
Re-ingesting the same file updates pairs in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	pairs, err := corpus.LoadCSV(args[0])
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	svc, err := ensureIngest()
	if err != nil {
		return err
	}

	n, err := svc.Ingest(cmd.Context(), pairs)
	if err != nil {
		return fmt.Errorf("ingest corpus: %w", err)
	}

	cmd.Printf("Indexed %d pairs from %s.\n", n, args[0])
	return nil
}
