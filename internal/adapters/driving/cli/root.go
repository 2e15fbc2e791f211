// Package cli implements the fundreply command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/lucerne-labs/fundreply/internal/adapters/driven/config/file"
	"github.com/lucerne-labs/fundreply/internal/adapters/driven/index/sqlite"
	"github.com/lucerne-labs/fundreply/internal/adapters/driven/openai"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driven"
	"github.com/lucerne-labs/fundreply/internal/core/ports/driving"
	"github.com/lucerne-labs/fundreply/internal/logger"
)

var version = "0.1.0"

var (
	configDir string
	verbose   bool
)

// Package-level collaborators. Commands build them on demand through the
// ensure* helpers; tests substitute them directly.
var (
	settings      configfile.Settings
	settingsStore *configfile.Store

	similarityIndex  driven.SimilarityIndex
	ingestService    driving.IngestService
	retrieverService driving.Retriever
	replyService     driving.ReplyService
)

var rootCmd = &cobra.Command{
	Use:   "fundreply",
	Short: "Draft investment inquiry replies from your email history",
	Long: `Fundreply drafts replies to inbound investment inquiries.

It indexes historical email/response pairs, retrieves the most similar
past exchanges for each new inquiry, and composes a reply that matches
the fund's established tone. Replies can be reviewed, sent over SMTP,
and logged to a Google Sheets audit trail.`,
	SilenceUsage:      true,
	PersistentPreRunE: initRoot,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.fundreply)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if similarityIndex != nil {
			if err := similarityIndex.Close(); err != nil {
				logger.Warn("close index: %v", err)
			}
		}
	}()
	return rootCmd.Execute()
}

func initRoot(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	store, err := configfile.NewStore(configDir)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	settingsStore = store

	settings, err = store.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return nil
}

// ensureIndex opens the durable similarity index once per invocation.
func ensureIndex() (driven.SimilarityIndex, error) {
	if similarityIndex != nil {
		return similarityIndex, nil
	}
	idx, err := sqlite.NewIndex(settings.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open similarity index: %w", err)
	}
	similarityIndex = idx
	return idx, nil
}

func buildEmbedder() (driven.EmbeddingService, error) {
	return openai.NewEmbeddingService(openai.Config{
		APIKey:         settings.OpenAI.APIKey,
		BaseURL:        settings.OpenAI.BaseURL,
		EmbeddingModel: settings.OpenAI.EmbeddingModel,
	})
}

func buildGenerator() (driven.TextGenerator, error) {
	return openai.NewTextGenerator(openai.Config{
		APIKey:    settings.OpenAI.APIKey,
		BaseURL:   settings.OpenAI.BaseURL,
		ChatModel: settings.OpenAI.ChatModel,
	})
}
