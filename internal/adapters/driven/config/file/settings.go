// Package file loads and persists application settings from a TOML file,
// with a .env file and environment variables layered on top.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Default locations and values.
const (
	DefaultConfigDirName = ".fundreply"
	configFileName       = "config.toml"
)

// Settings is the full application configuration. TOML file values are
// the base; environment variables override them.
type Settings struct {
	// DataDir holds the similarity index database. Empty means
	// <configDir>/data.
	DataDir string `toml:"data_dir"`

	OpenAI OpenAISettings `toml:"openai"`
	Email  EmailSettings  `toml:"email"`
	Sheets SheetsSettings `toml:"sheets"`
}

// OpenAISettings configures the embedding and generation provider.
type OpenAISettings struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	EmbeddingModel string `toml:"embedding_model"`
	ChatModel      string `toml:"chat_model"`
}

// EmailSettings configures outbound SMTP delivery.
type EmailSettings struct {
	SMTPServer    string `toml:"smtp_server"`
	SMTPPort      int    `toml:"smtp_port"`
	Username      string `toml:"username"`
	Password      string `toml:"password"`
	DefaultSender string `toml:"default_sender"`
}

// SheetsSettings configures the audit spreadsheet.
type SheetsSettings struct {
	CredentialsPath string `toml:"credentials_path"`
	SpreadsheetID   string `toml:"spreadsheet_id"`
	SheetName       string `toml:"sheet_name"`
}

// Store reads and writes settings under one config directory.
type Store struct {
	configDir string
	filePath  string
}

// NewStore creates a settings store. If configDir is empty, defaults to
// ~/.fundreply.
func NewStore(configDir string) (*Store, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		configDir = filepath.Join(home, DefaultConfigDirName)
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}
	return &Store{
		configDir: configDir,
		filePath:  filepath.Join(configDir, configFileName),
	}, nil
}

// Load reads the TOML file (a missing file yields zero settings), loads
// a .env file from the working directory if present, and applies
// environment overrides.
func (s *Store) Load() (Settings, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	var settings Settings
	data, err := os.ReadFile(s.filePath)
	if err != nil && !os.IsNotExist(err) {
		return Settings{}, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &settings); err != nil {
			return Settings{}, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(&settings)

	if settings.DataDir == "" {
		settings.DataDir = filepath.Join(s.configDir, "data")
	}
	return settings, nil
}

// Save persists settings to the TOML file with restricted permissions.
func (s *Store) Save(settings Settings) error {
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Path returns the configuration file path.
func (s *Store) Path() string {
	return s.filePath
}

// applyEnv overrides settings from well-known environment variables.
func applyEnv(settings *Settings) {
	setEnvString(&settings.OpenAI.APIKey, "OPENAI_API_KEY")
	setEnvString(&settings.OpenAI.BaseURL, "OPENAI_BASE_URL")
	setEnvString(&settings.Email.SMTPServer, "EMAIL_SMTP_SERVER")
	setEnvString(&settings.Email.Username, "EMAIL_USERNAME")
	setEnvString(&settings.Email.Password, "EMAIL_PASSWORD")
	setEnvString(&settings.Email.DefaultSender, "EMAIL_DEFAULT_SENDER")
	setEnvString(&settings.Sheets.CredentialsPath, "GOOGLE_CREDENTIALS_PATH")
	setEnvString(&settings.Sheets.SpreadsheetID, "GOOGLE_SHEETS_SPREADSHEET_ID")
	setEnvString(&settings.Sheets.SheetName, "GOOGLE_SHEETS_SHEET_NAME")

	if v := os.Getenv("EMAIL_SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			settings.Email.SMTPPort = port
		}
	}
}

func setEnvString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
