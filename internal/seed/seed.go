// Package seed provides the deterministic demo dataset and a Seeder
// that loads it into an incident store.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nightwatch-ai/nightwatch/internal/embedding"
	"github.com/nightwatch-ai/nightwatch/internal/normalize"
	"github.com/nightwatch-ai/nightwatch/internal/store"
)

// Seeder loads the synthetic dataset into a store. Vectors are computed
// from the normalized incident text so they share a lexical space with
// query embeddings. Seeding is idempotent: dataset IDs are stable and
// upserts replace prior copies.
type Seeder struct {
	store    store.IncidentStore
	embedder embedding.Embedder
	logger   *slog.Logger
}

// SeedResult reports what a Seed call did.
type SeedResult struct {
	Seeded int `json:"seeded"`
	SOS    int `json:"sos"`
}

// NewSeeder creates a Seeder over the given store and embedder.
func NewSeeder(st store.IncidentStore, emb embedding.Embedder, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{store: st, embedder: emb, logger: logger}
}

// Seed embeds and upserts the full demo dataset.
func (s *Seeder) Seed(ctx context.Context) (*SeedResult, error) {
	result := &SeedResult{}
	for _, inc := range Incidents() {
		vec, err := s.embedder.Embed(ctx, normalize.Text(inc.Text))
		if err != nil {
			return nil, fmt.Errorf("embedding %s: %w", inc.ID, err)
		}
		inc.Vector = vec
		if err := s.store.Upsert(ctx, inc); err != nil {
			return nil, fmt.Errorf("upserting %s: %w", inc.ID, err)
		}
		result.Seeded++
		if inc.SOS {
			result.SOS++
		}
	}
	s.logger.Info("seeded demo dataset", "seeded", result.Seeded, "sos", result.SOS)
	return result, nil
}
