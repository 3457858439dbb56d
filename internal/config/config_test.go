package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8420", cfg.HTTPAddr)
	assert.Equal(t, 1000, cfg.SnapshotLimit)
	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, IndexTiered, cfg.IndexKind)
	assert.Equal(t, EmbedderHash, cfg.Embedder)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "http_addr: \":9999\"\ntop_k: 10\nindex_kind: brute\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, 10, cfg.TopK)
	assert.Equal(t, IndexBrute, cfg.IndexKind)
	// Untouched fields keep their defaults.
	assert.Equal(t, 1000, cfg.SnapshotLimit)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("top_k: 10\n"), 0644))

	t.Setenv("NIGHTWATCH_TOP_K", "3")
	t.Setenv("NIGHTWATCH_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.TopK)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"zero top_k", func(c *Config) { c.TopK = 0 }, "top_k"},
		{"negative snapshot limit", func(c *Config) { c.SnapshotLimit = -1 }, "snapshot_limit"},
		{"bad index kind", func(c *Config) { c.IndexKind = "flat" }, "index_kind"},
		{"bad embedder", func(c *Config) { c.Embedder = "openai" }, "embedder"},
		{"local embedder without model", func(c *Config) { c.Embedder = EmbedderLocal }, "embedder_model_path"},
		{"local embedder with model", func(c *Config) {
			c.Embedder = EmbedderLocal
			c.EmbedderModelPath = "/models/embed.gguf"
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestDerivedPaths(t *testing.T) {
	cfg := Default()
	assert.Empty(t, cfg.DatabasePath())
	assert.Empty(t, cfg.ClassifierPath())

	cfg.DataDir = "/var/lib/nightwatch"
	assert.Equal(t, filepath.Join("/var/lib/nightwatch", "incidents.db"), cfg.DatabasePath())
	assert.Equal(t, filepath.Join("/var/lib/nightwatch", "model.json"), cfg.ClassifierPath())

	cfg.ModelPath = "/models/custom.json"
	assert.Equal(t, "/models/custom.json", cfg.ClassifierPath())
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := Default()
	cfg.HTTPAddr = ":7000"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
