package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEnablesEverything(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.Enabled("Unread variables"))
	assert.True(t, cfg.Enabled("Type changes"))
	assert.Equal(t, "auto", cfg.Color)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.True(t, cfg.Enabled("Unread variables"))
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".blockpy.yml")
	content := `disabled_checks:
  - Unread variables
  - Unnecessary Pass
color: never
history: reports.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Enabled("Unread variables"))
	assert.False(t, cfg.Enabled("Unnecessary Pass"))
	assert.True(t, cfg.Enabled("Type changes"))
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, "reports.db", cfg.History)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".blockpy.yml")
	require.NoError(t, os.WriteFile(path, []byte("disabled_checks: {"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDisable(t *testing.T) {
	cfg := Default()
	cfg.Disable("Type changes")

	assert.False(t, cfg.Enabled("Type changes"))
	assert.True(t, cfg.Enabled("Unread variables"))
}

func TestNilConfigEnablesEverything(t *testing.T) {
	var cfg *Config
	assert.True(t, cfg.Enabled("Unread variables"))
}
