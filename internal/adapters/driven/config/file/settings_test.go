package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	store, err := NewStore(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	settings, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data"), settings.DataDir)
	assert.Empty(t, settings.OpenAI.APIKey)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("EMAIL_SMTP_SERVER", "")
	t.Setenv("EMAIL_SMTP_PORT", "")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "")

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	want := Settings{
		OpenAI: OpenAISettings{
			APIKey:    "sk-test",
			ChatModel: "gpt-4o-mini",
		},
		Email: EmailSettings{
			SMTPServer:    "smtp.example.com",
			SMTPPort:      587,
			Username:      "fund@example.com",
			DefaultSender: "fund@example.com",
		},
		Sheets: SheetsSettings{
			SpreadsheetID: "sheet-123",
		},
	}
	require.NoError(t, store.Save(want))

	got, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, "sk-test", got.OpenAI.APIKey)
	assert.Equal(t, "smtp.example.com", got.Email.SMTPServer)
	assert.Equal(t, 587, got.Email.SMTPPort)
	assert.Equal(t, "sheet-123", got.Sheets.SpreadsheetID)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save(Settings{
		OpenAI: OpenAISettings{APIKey: "sk-from-file"},
		Email:  EmailSettings{SMTPPort: 25},
	}))

	t.Setenv("OPENAI_API_KEY", "sk-from-env")
	t.Setenv("EMAIL_SMTP_PORT", "2525")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "env-sheet")

	got, err := store.Load()

	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", got.OpenAI.APIKey)
	assert.Equal(t, 2525, got.Email.SMTPPort)
	assert.Equal(t, "env-sheet", got.Sheets.SpreadsheetID)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path(), []byte("not = [valid"), 0600))

	_, err = store.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
