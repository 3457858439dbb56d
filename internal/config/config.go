// Package config loads nightwatch settings from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Index kinds accepted by Config.IndexKind.
const (
	IndexBrute  = "brute"
	IndexHNSW   = "hnsw"
	IndexTiered = "tiered"
)

// Embedder kinds accepted by Config.Embedder.
const (
	EmbedderHash  = "hash"
	EmbedderLocal = "local"
)

// Config holds all service settings.
type Config struct {
	// DataDir is where the SQLite database, vector index, and trained
	// model live. Empty means in-memory storage only.
	DataDir string `yaml:"data_dir"`

	// HTTPAddr is the listen address for the HTTP server.
	HTTPAddr string `yaml:"http_addr"`

	// SnapshotLimit bounds the memory rebuild and SOS scans.
	SnapshotLimit int `yaml:"snapshot_limit"`

	// TopK is how many similar incidents feed each query's semantic score.
	TopK int `yaml:"top_k"`

	// IndexKind selects the vector index: brute, hnsw, or tiered.
	IndexKind string `yaml:"index_kind"`

	// Embedder selects the embedding backend: hash or local.
	Embedder string `yaml:"embedder"`

	// EmbedderModelPath is the GGUF model file for the local embedder.
	EmbedderModelPath string `yaml:"embedder_model_path"`

	// ModelPath is the trained classifier file. Empty means train the
	// built-in dataset at startup.
	ModelPath string `yaml:"model_path"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		HTTPAddr:      ":8420",
		SnapshotLimit: 1000,
		TopK:          5,
		IndexKind:     IndexTiered,
		Embedder:      EmbedderHash,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Load builds a Config: defaults, then the YAML file at path (if path is
// empty, defaults only), then environment overrides, then validation.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setString(&c.DataDir, "NIGHTWATCH_DATA_DIR")
	setString(&c.HTTPAddr, "NIGHTWATCH_HTTP_ADDR")
	setInt(&c.SnapshotLimit, "NIGHTWATCH_SNAPSHOT_LIMIT")
	setInt(&c.TopK, "NIGHTWATCH_TOP_K")
	setString(&c.IndexKind, "NIGHTWATCH_INDEX_KIND")
	setString(&c.Embedder, "NIGHTWATCH_EMBEDDER")
	setString(&c.EmbedderModelPath, "NIGHTWATCH_EMBEDDER_MODEL")
	setString(&c.ModelPath, "NIGHTWATCH_MODEL_PATH")
	setString(&c.LogLevel, "NIGHTWATCH_LOG_LEVEL")
	setString(&c.LogFormat, "NIGHTWATCH_LOG_FORMAT")
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.SnapshotLimit <= 0 {
		return fmt.Errorf("snapshot_limit must be positive, got %d", c.SnapshotLimit)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}
	switch c.IndexKind {
	case IndexBrute, IndexHNSW, IndexTiered:
	default:
		return fmt.Errorf("unknown index_kind %q (want brute, hnsw, or tiered)", c.IndexKind)
	}
	switch c.Embedder {
	case EmbedderHash:
	case EmbedderLocal:
		if c.EmbedderModelPath == "" {
			return fmt.Errorf("embedder_model_path is required for the local embedder")
		}
	default:
		return fmt.Errorf("unknown embedder %q (want hash or local)", c.Embedder)
	}
	return nil
}

// DatabasePath returns the SQLite file path, or "" for in-memory mode.
func (c *Config) DatabasePath() string {
	if c.DataDir == "" {
		return ""
	}
	return filepath.Join(c.DataDir, "incidents.db")
}

// ClassifierPath returns where the trained model is stored. Empty when
// neither ModelPath nor DataDir is set.
func (c *Config) ClassifierPath() string {
	if c.ModelPath != "" {
		return c.ModelPath
	}
	if c.DataDir == "" {
		return ""
	}
	return filepath.Join(c.DataDir, "model.json")
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
