package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWhenNoPathGiven(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8090", cfg.Server.Addr)
	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, 2000, cfg.App.ProcessingDelayMS)
	assert.Equal(t, 3600, cfg.App.SweepIntervalS)
	assert.Positive(t, cfg.App.MaxUploadSize)
}

func TestLoad_ExplicitMissingPathFails(t *testing.T) {
	// conflux.ParseConfig only reads paths relative to the working directory.
	t.Chdir(t.TempDir())
	_, err := Load("nope.yaml")
	require.Error(t, err)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	// conflux.ParseConfig only reads paths relative to the working directory.
	t.Chdir(t.TempDir())
	path := "test.yaml"
	content := []byte("server:\n  addr: \":9999\"\nstore:\n  backend: memory\n")
	require.NoError(t, os.WriteFile(path, content, 0o640))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Store.Backend)
	// Untouched sections keep their defaults.
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}
