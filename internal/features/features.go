// Package features derives the classifier's fixed 4-dimensional feature
// vector for a (location, hour, semantic-score) query from the
// time-location memory.
package features

import (
	"github.com/nightwatch-ai/nightwatch/internal/memory"
	"github.com/nightwatch-ai/nightwatch/internal/models"
)

// NightStart and NightEnd bound the night window: hours in
// [NightStart, 23] or [0, NightEnd] set the night flag.
const (
	NightStart = 20
	NightEnd   = 5
)

// Builder derives feature vectors from a time-location memory.
type Builder struct {
	mem *memory.Memory
}

// NewBuilder creates a Builder reading from the given memory.
func NewBuilder(mem *memory.Memory) *Builder {
	return &Builder{mem: mem}
}

// Build returns [count, avgSeverity, nightFlag, semanticScore] for the
// query. The location may be raw input; it is normalized during the
// memory lookup. avgSeverity is 0 (not NaN) for empty buckets, by policy.
//
// The hour must already be validated to 0-23 by the caller; out-of-range
// hours are a contract violation with undefined results.
func (b *Builder) Build(location string, hour int, semanticScore float64) models.FeatureVector {
	bucket := b.mem.Bucket(location, hour)

	count := len(bucket)
	avg := 0.0
	if count > 0 {
		total := 0
		for _, s := range bucket {
			total += s.Severity.Rank()
		}
		avg = float64(total) / float64(count)
	}

	return models.FeatureVector{
		float64(count),
		avg,
		float64(NightFlag(hour)),
		semanticScore,
	}
}

// NightFlag returns 1 for night hours (20:00 through 05:59), else 0.
func NightFlag(hour int) int {
	if hour >= NightStart || hour <= NightEnd {
		return 1
	}
	return 0
}

// SemanticScore derives the semantic severity proxy from similarity-search
// results: the maximum severity rank among the retrieved incidents, 0 when
// nothing was retrieved.
func SemanticScore(hits []models.Incident) float64 {
	score := 0
	for _, inc := range hits {
		if r := inc.Severity.Rank(); r > score {
			score = r
		}
	}
	return float64(score)
}
