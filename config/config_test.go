package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/susji/jcheck/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.True(t, cfg.Color)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, "fixed-array-to-slice", cfg.DefaultScenario)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadOverridesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jcheck.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
color = false
verbose = true
default_scenario = "circular-dependency"
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Color)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "circular-dependency", cfg.DefaultScenario)
}

func TestLoadPartialFileKeepsOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jcheck.toml")
	require.NoError(t, os.WriteFile(path, []byte(`verbose = true`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.Color, "fields absent from the file keep Default's value")
	assert.Equal(t, "fixed-array-to-slice", cfg.DefaultScenario)
}
