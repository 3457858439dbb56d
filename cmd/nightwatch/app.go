package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nightwatch-ai/nightwatch/internal/classifier"
	"github.com/nightwatch-ai/nightwatch/internal/config"
	"github.com/nightwatch-ai/nightwatch/internal/embedding"
	"github.com/nightwatch-ai/nightwatch/internal/engine"
	"github.com/nightwatch-ai/nightwatch/internal/memory"
	"github.com/nightwatch-ai/nightwatch/internal/observability"
	"github.com/nightwatch-ai/nightwatch/internal/store"
	"github.com/nightwatch-ai/nightwatch/internal/vectorindex"
)

// app bundles the wired pipeline for a single command invocation.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    store.IncidentStore
	embedder embedding.Embedder
	engine   *engine.Engine
}

// newApp loads the config and wires store, index, embedder, classifier,
// and engine. Pass metrics only from long-running commands; one-shot
// commands use an unregistered metrics set.
func newApp(cmd *cobra.Command, metrics *observability.Metrics) (*app, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	emb, err := newEmbedder(cfg)
	if err != nil {
		st.Close()
		return nil, err
	}

	model, err := loadClassifier(cfg)
	if err != nil {
		st.Close()
		return nil, err
	}

	mem := memory.New(st, memory.Config{SnapshotLimit: cfg.SnapshotLimit})
	eng := engine.New(st, emb, mem, model, metrics, logger, engine.Config{
		TopK:     cfg.TopK,
		SOSLimit: cfg.SnapshotLimit,
	})

	if err := eng.RebuildMemory(cmd.Context()); err != nil {
		st.Close()
		return nil, fmt.Errorf("building time-location memory: %w", err)
	}

	return &app{cfg: cfg, logger: logger, store: st, embedder: emb, engine: eng}, nil
}

// Close releases the store, flushing any persisted index state.
func (a *app) Close() error {
	return a.store.Close()
}

// CheckReadiness reports whether the backing store answers queries.
func (a *app) CheckReadiness(ctx context.Context) error {
	_, err := a.store.Count(ctx)
	return err
}

func openStore(cfg *config.Config) (store.IncidentStore, error) {
	dbPath := cfg.DatabasePath()
	if dbPath == "" {
		return store.NewMemoryStore(), nil
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	index, err := newIndex(cfg)
	if err != nil {
		return nil, err
	}
	return store.OpenSQLite(dbPath, index)
}

func newIndex(cfg *config.Config) (vectorindex.VectorIndex, error) {
	indexDir := ""
	if cfg.DataDir != "" {
		indexDir = filepath.Join(cfg.DataDir, "index")
	}

	switch cfg.IndexKind {
	case config.IndexBrute:
		return vectorindex.NewBruteForceIndex(), nil
	case config.IndexHNSW:
		return vectorindex.NewHNSWIndex(vectorindex.HNSWConfig{Dir: indexDir})
	case config.IndexTiered:
		return vectorindex.NewTieredIndex(vectorindex.TieredConfig{
			HNSW: vectorindex.HNSWConfig{Dir: indexDir},
		})
	default:
		return nil, fmt.Errorf("unknown index kind %q", cfg.IndexKind)
	}
}

func newEmbedder(cfg *config.Config) (embedding.Embedder, error) {
	switch cfg.Embedder {
	case config.EmbedderHash:
		return embedding.NewHashEmbedder(embedding.DefaultDims), nil
	case config.EmbedderLocal:
		return embedding.NewLocalEmbedder(embedding.LocalConfig{
			ModelPath: cfg.EmbedderModelPath,
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedder %q", cfg.Embedder)
	}
}

// loadClassifier loads the trained model from disk, training the
// built-in dataset when no model file is present.
func loadClassifier(cfg *config.Config) (*classifier.Model, error) {
	path := cfg.ClassifierPath()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return classifier.Load(path)
		}
	}
	return classifier.Train(classifier.DefaultTrainingSet(), classifier.TrainConfig{})
}
