// Package memory implements the time-location memory: a read-mostly,
// in-memory aggregation of the incident store keyed by (normalized
// location, hour-of-day). It is a derived cache, not a source of truth:
// it is rebuilt wholesale from a bounded store snapshot, and readers may
// observe staleness between rebuilds.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/nightwatch-ai/nightwatch/internal/models"
	"github.com/nightwatch-ai/nightwatch/internal/normalize"
	"github.com/nightwatch-ai/nightwatch/internal/store"
)

// DefaultSnapshotLimit bounds how many records a rebuild fetches from the
// store. This is an explicit sampling parameter: stores larger than the
// limit contribute only a prefix of their records to the memory.
const DefaultSnapshotLimit = 1000

// Config configures a Memory.
type Config struct {
	// SnapshotLimit is the maximum number of records fetched per rebuild.
	// Default: DefaultSnapshotLimit.
	SnapshotLimit int

	// Clock supplies the fallback time for unparseable timestamps.
	// Default: the real clock. Tests inject a fake to pin the fallback.
	Clock clockwork.Clock
}

func (c Config) withDefaults() Config {
	if c.SnapshotLimit <= 0 {
		c.SnapshotLimit = DefaultSnapshotLimit
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	return c
}

// snapshot is one fully-built generation of the memory. Immutable once
// published; Rebuild swaps a fresh snapshot in atomically so readers never
// observe a half-built map.
type snapshot struct {
	buckets map[string]map[int][]models.Summary
	builtAt time.Time
	records int
}

// Memory aggregates incident summaries by normalized location and
// hour-of-day. Safe for concurrent readers; Rebuild is a blocking,
// synchronous, full-snapshot operation.
type Memory struct {
	src   store.IncidentStore
	limit int
	clock clockwork.Clock

	mu   sync.RWMutex
	snap *snapshot
}

// New creates a Memory over the given store. The memory starts empty;
// call Rebuild to populate it.
func New(src store.IncidentStore, cfg Config) *Memory {
	cfg = cfg.withDefaults()
	return &Memory{
		src:   src,
		limit: cfg.SnapshotLimit,
		clock: cfg.Clock,
		snap:  &snapshot{buckets: map[string]map[int][]models.Summary{}},
	}
}

// Rebuild fetches a bounded snapshot from the store and replaces the
// current memory with a freshly-built one. Summaries within an hour bucket
// keep retrieval order; no deduplication is performed. Records whose
// timestamps fail to parse are bucketed under the current hour rather than
// dropped (ParseTimeOrNow).
func (m *Memory) Rebuild(ctx context.Context) error {
	incidents, err := m.src.Query(ctx, nil, m.limit)
	if err != nil {
		return fmt.Errorf("fetching store snapshot: %w", err)
	}

	next := &snapshot{
		buckets: make(map[string]map[int][]models.Summary),
		builtAt: m.clock.Now(),
		records: len(incidents),
	}

	for _, inc := range incidents {
		loc := normalize.Location(inc.Location)
		hour := ParseTimeOrNow(inc.Time, m.clock).Hour()

		byHour, ok := next.buckets[loc]
		if !ok {
			byHour = make(map[int][]models.Summary)
			next.buckets[loc] = byHour
		}
		byHour[hour] = append(byHour[hour], models.Summary{
			Severity: inc.Severity,
			Text:     inc.Text,
		})
	}

	m.mu.Lock()
	m.snap = next
	m.mu.Unlock()
	return nil
}

// Bucket returns the summaries recorded for (location, hour). The location
// is normalized before lookup, so callers may pass raw input. Returns nil
// for unseen locations or hours. The returned slice is a copy; mutating it
// cannot corrupt the snapshot.
func (m *Memory) Bucket(location string, hour int) []models.Summary {
	m.mu.RLock()
	snap := m.snap
	m.mu.RUnlock()

	byHour, ok := snap.buckets[normalize.Location(location)]
	if !ok {
		return nil
	}
	summaries := byHour[hour]
	if summaries == nil {
		return nil
	}
	out := make([]models.Summary, len(summaries))
	copy(out, summaries)
	return out
}

// Locations returns the number of distinct normalized locations in the
// current snapshot.
func (m *Memory) Locations() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.snap.buckets)
}

// Records returns how many store records the current snapshot was built from.
func (m *Memory) Records() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap.records
}

// BuiltAt returns when the current snapshot was built; zero for the
// initial empty memory.
func (m *Memory) BuiltAt() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap.builtAt
}

// ParseTimeOrNow parses an incident timestamp, substituting the clock's
// current time on failure. The fallback is an explicit policy, not an
// error path: no record is ever skipped for a bad timestamp, it is merely
// attributed to an hour it may not belong to.
func ParseTimeOrNow(value string, clock clockwork.Clock) time.Time {
	t, err := time.Parse(models.TimeLayout, value)
	if err != nil {
		return clock.Now()
	}
	return t
}
