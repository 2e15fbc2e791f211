package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the OpenAI provider, SMTP delivery, and audit
log settings. Values set here are stored in the config file; environment
variables still override them at run time.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set one configuration value and persist it.

Available keys:
  openai.api_key          OpenAI API key
  openai.base_url         OpenAI-compatible API base URL
  openai.embedding_model  Embedding model name
  openai.chat_model       Generation model name
  email.smtp_server       SMTP server hostname
  email.smtp_port         SMTP server port
  email.username          SMTP username
  email.password          SMTP password
  email.default_sender    Sender address for outbound replies
  sheets.credentials_path Service account key file for the audit log
  sheets.spreadsheet_id   Audit spreadsheet ID
  sheets.sheet_name       Audit sheet tab name
  data_dir                Similarity index data directory`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[OpenAI]")
	cmd.Printf("  API Key: %s\n", maskSecret(settings.OpenAI.APIKey))
	cmd.Printf("  Base URL: %s\n", orDefault(settings.OpenAI.BaseURL, "(default)"))
	cmd.Printf("  Embedding Model: %s\n", orDefault(settings.OpenAI.EmbeddingModel, "text-embedding-3-small"))
	cmd.Printf("  Chat Model: %s\n", orDefault(settings.OpenAI.ChatModel, "gpt-4o-mini"))
	cmd.Println()

	cmd.Println("[Email]")
	cmd.Printf("  SMTP Server: %s\n", orDefault(settings.Email.SMTPServer, "(not set)"))
	port := "(default)"
	if settings.Email.SMTPPort != 0 {
		port = strconv.Itoa(settings.Email.SMTPPort)
	}
	cmd.Printf("  SMTP Port: %s\n", port)
	cmd.Printf("  Username: %s\n", orDefault(settings.Email.Username, "(not set)"))
	cmd.Printf("  Password: %s\n", maskSecret(settings.Email.Password))
	cmd.Printf("  Default Sender: %s\n", orDefault(settings.Email.DefaultSender, "(not set)"))
	cmd.Println()

	cmd.Println("[Audit Log]")
	cmd.Printf("  Credentials: %s\n", orDefault(settings.Sheets.CredentialsPath, "(not set)"))
	cmd.Printf("  Spreadsheet: %s\n", orDefault(settings.Sheets.SpreadsheetID, "(not set)"))
	cmd.Printf("  Sheet: %s\n", orDefault(settings.Sheets.SheetName, "Email Interactions"))
	cmd.Println()

	cmd.Printf("Data directory: %s\n", settings.DataDir)
	cmd.Printf("Config file: %s\n", settingsStore.Path())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	switch key {
	case "openai.api_key":
		settings.OpenAI.APIKey = value
	case "openai.base_url":
		settings.OpenAI.BaseURL = value
	case "openai.embedding_model":
		settings.OpenAI.EmbeddingModel = value
	case "openai.chat_model":
		settings.OpenAI.ChatModel = value
	case "email.smtp_server":
		settings.Email.SMTPServer = value
	case "email.smtp_port":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid port %q", value)
		}
		settings.Email.SMTPPort = port
	case "email.username":
		settings.Email.Username = value
	case "email.password":
		settings.Email.Password = value
	case "email.default_sender":
		settings.Email.DefaultSender = value
	case "sheets.credentials_path":
		settings.Sheets.CredentialsPath = value
	case "sheets.spreadsheet_id":
		settings.Sheets.SpreadsheetID = value
	case "sheets.sheet_name":
		settings.Sheets.SheetName = value
	case "data_dir":
		settings.DataDir = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	if err := settingsStore.Save(settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	cmd.Printf("Set %s.\n", key)
	return nil
}

func maskSecret(secret string) string {
	if secret == "" {
		return "(not set)"
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
