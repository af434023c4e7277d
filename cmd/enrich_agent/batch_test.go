package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEmailFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "emails.txt")
	content := "jane@acme.io\n\n# internal test accounts\nbob@globex.com\n  carol@initech.com  \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	emails, err := readEmailFile(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"jane@acme.io", "bob@globex.com", "carol@initech.com"}, emails)
}

func TestReadEmailFile_Missing(t *testing.T) {
	_, err := readEmailFile("/nonexistent/emails.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open email file")
}

func TestLoadAppConfig_MockOverridesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"database_url": "postgres://localhost/leads"}`), 0644))

	cfg, err := loadAppConfig(path, true)

	require.NoError(t, err)
	assert.True(t, cfg.Mock)
	assert.Empty(t, cfg.DatabaseURL)
}
