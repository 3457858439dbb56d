// Package models defines the core domain types shared across the
// nightwatch pipeline: incident records, severity levels, risk labels,
// and the classifier feature vector.
package models

import (
	"time"
)

// TimeLayout is the wire format for incident timestamps (minute precision).
const TimeLayout = "2006-01-02 15:04"

// Incident represents a reported safety-relevant event.
type Incident struct {
	// Unique identifier (UUID assigned at ingestion)
	ID string `json:"id" yaml:"id"`

	// Free-form description of what happened
	Text string `json:"text" yaml:"text"`

	// Normalized location key. Invariant: always equal to
	// normalize.Location(OriginalLocation).
	Location string `json:"location" yaml:"location"`

	// Location exactly as entered by the reporter
	OriginalLocation string `json:"original_location" yaml:"original_location"`

	// When the incident occurred, formatted with TimeLayout
	Time string `json:"time" yaml:"time"`

	// Severity of the incident
	Severity Severity `json:"severity" yaml:"severity"`

	// SOS is set at creation time for incidents reported as High severity.
	// It feeds the operator-facing SOS worklist and never changes afterwards.
	SOS bool `json:"sos" yaml:"sos"`

	// Embedding of the normalized description text. Omitted on API
	// responses; stored alongside the record for similarity search.
	Vector []float32 `json:"-" yaml:"-"`
}

// OccurredAt parses the incident timestamp. The boolean reports whether
// the stored value was well-formed.
func (i Incident) OccurredAt() (time.Time, bool) {
	t, err := time.Parse(TimeLayout, i.Time)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Summary is the per-incident slice of data retained by the time-location
// memory: enough to count, average severity, and show evidence text.
type Summary struct {
	Severity Severity `json:"severity"`
	Text     string   `json:"text"`
}
