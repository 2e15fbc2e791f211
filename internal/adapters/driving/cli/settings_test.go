package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "fundreply version")
}

func TestSettingsShow_MasksSecrets(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-verysecretapikey123")

	out, err := execute(t, "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "sk-v...y123")
	assert.NotContains(t, out, "sk-verysecretapikey123")
}

func TestSettingsSet_PersistsValue(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "--config-dir", dir, "settings", "set", "email.smtp_server", "smtp.example.com")
	require.NoError(t, err)

	out, err := execute(t, "--config-dir", dir, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "smtp.example.com")
}

func TestSettingsSet_RejectsUnknownKey(t *testing.T) {
	_, err := execute(t, "settings", "set", "no.such.key", "value")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown setting")
}

func TestSettingsSet_RejectsInvalidPort(t *testing.T) {
	_, err := execute(t, "settings", "set", "email.smtp_port", "not-a-number")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
}

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "(not set)", maskSecret(""))
	assert.Equal(t, "****", maskSecret("short"))
	assert.Equal(t, "sk-t...6789", maskSecret("sk-test-123456789"))
}
