package store

import (
	"context"
	"sort"
	"sync"

	"github.com/nightwatch-ai/nightwatch/internal/models"
	"github.com/nightwatch-ai/nightwatch/internal/vecmath"
)

// MemoryStore is a map-backed IncidentStore for tests and ephemeral runs.
// Thread-safe. Unordered queries return records in insertion order, which
// is convenient for tests but not part of the IncidentStore contract.
type MemoryStore struct {
	mu    sync.RWMutex
	byID  map[string]models.Incident
	order []string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]models.Incident)}
}

// Upsert inserts or replaces the incident by ID.
func (m *MemoryStore) Upsert(_ context.Context, inc models.Incident) error {
	if len(inc.Vector) == 0 {
		return ErrEmptyVector
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[inc.ID]; !exists {
		m.order = append(m.order, inc.ID)
	}
	cp := inc
	cp.Vector = make([]float32, len(inc.Vector))
	copy(cp.Vector, inc.Vector)
	m.byID[inc.ID] = cp
	return nil
}

// Query returns up to limit incidents, similarity-ordered when a vector is
// given, insertion-ordered otherwise.
func (m *MemoryStore) Query(_ context.Context, vector []float32, limit int) ([]models.Incident, error) {
	if limit <= 0 {
		return nil, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if vector == nil {
		out := make([]models.Incident, 0, min(limit, len(m.order)))
		for _, id := range m.order {
			if len(out) == limit {
				break
			}
			out = append(out, m.byID[id])
		}
		return out, nil
	}

	type scored struct {
		inc   models.Incident
		score float64
	}
	all := make([]scored, 0, len(m.byID))
	for _, id := range m.order {
		inc := m.byID[id]
		all = append(all, scored{inc: inc, score: vecmath.CosineSimilarity(vector, inc.Vector)})
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].score > all[j].score })

	if limit > len(all) {
		limit = len(all)
	}
	out := make([]models.Incident, 0, limit)
	for _, s := range all[:limit] {
		out = append(out, s.inc)
	}
	return out, nil
}

// Count returns the number of stored incidents.
func (m *MemoryStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID), nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error { return nil }
