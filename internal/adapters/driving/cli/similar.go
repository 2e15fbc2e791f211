package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucerne-labs/fundreply/internal/core/domain"
)

var (
	similarCount int
	similarJSON  bool
)

var similarCmd = &cobra.Command{
	Use:   "similar [email-file]",
	Short: "Show the historical exchanges most similar to an email",
	Long: `Retrieves the indexed email/response pairs nearest to the given
inquiry. Reads the email from the named file, or from stdin when the
argument is omitted or "-".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimilar,
}

func init() {
	similarCmd.Flags().IntVarP(&similarCount, "count", "n", 3, "number of examples to retrieve")
	similarCmd.Flags().BoolVar(&similarJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(similarCmd)
}

func runSimilar(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	emailText, err := readEmailText(path)
	if err != nil {
		return fmt.Errorf("read email: %w", err)
	}

	svc, err := ensureRetriever()
	if err != nil {
		return err
	}

	examples, err := svc.Retrieve(cmd.Context(), emailText, similarCount)
	if err != nil {
		return fmt.Errorf("retrieve examples: %w", err)
	}

	if similarJSON {
		return outputSimilarJSON(cmd, examples)
	}
	return outputSimilarText(cmd, examples)
}

func outputSimilarJSON(cmd *cobra.Command, examples []domain.RetrievedExample) error {
	data, err := json.MarshalIndent(examples, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal examples: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSimilarText(cmd *cobra.Command, examples []domain.RetrievedExample) error {
	if len(examples) == 0 {
		cmd.Println("No similar exchanges found. Ingest a corpus first.")
		return nil
	}

	for i, ex := range examples {
		cmd.Printf("[%d] distance %.4f\n", i+1, ex.Distance)
		cmd.Printf("    Email: %s\n", firstLine(ex.Email))
		cmd.Printf("    Response: %s\n", firstLine(ex.Response))
		cmd.Println()
	}
	return nil
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i] + " ..."
		}
	}
	return s
}
