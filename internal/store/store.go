// Package store defines the IncidentStore boundary and its bundled
// implementations. The store is treated as an eventually-consistent
// snapshot source: callers get no transactional guarantees across calls,
// and derived structures (the time-location memory) tolerate staleness
// between explicit rebuilds.
package store

import (
	"context"
	"errors"

	"github.com/nightwatch-ai/nightwatch/internal/models"
)

// ErrEmptyVector is returned by Upsert when the incident carries no embedding.
var ErrEmptyVector = errors.New("incident has no embedding vector")

// IncidentStore stores incident records and serves both similarity-ordered
// and unordered bounded reads.
type IncidentStore interface {
	// Upsert inserts or replaces the incident by ID. The record must
	// carry its embedding vector; the store indexes it for Query.
	Upsert(ctx context.Context, inc models.Incident) error

	// Query returns up to limit incidents. With a non-nil vector the
	// results are ordered by descending cosine similarity; with a nil
	// vector the store returns an unordered bounded snapshot (callers
	// must not assume any cross-record order).
	Query(ctx context.Context, vector []float32, limit int) ([]models.Incident, error)

	// Count returns the number of stored incidents.
	Count(ctx context.Context) (int, error)

	// Close releases resources, flushing any persistent state.
	Close() error
}
