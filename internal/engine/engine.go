// Package engine orchestrates the risk analysis pipeline: it combines
// the incident store, embedder, time-location memory, and classifier
// into the operations the CLI, HTTP, and MCP surfaces expose.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/nightwatch-ai/nightwatch/internal/classifier"
	"github.com/nightwatch-ai/nightwatch/internal/embedding"
	"github.com/nightwatch-ai/nightwatch/internal/features"
	"github.com/nightwatch-ai/nightwatch/internal/intent"
	"github.com/nightwatch-ai/nightwatch/internal/memory"
	"github.com/nightwatch-ai/nightwatch/internal/models"
	"github.com/nightwatch-ai/nightwatch/internal/normalize"
	"github.com/nightwatch-ai/nightwatch/internal/observability"
	"github.com/nightwatch-ai/nightwatch/internal/store"
)

// DefaultTopK is how many nearest incidents feed the semantic score.
const DefaultTopK = 5

// ErrInvalidInput marks errors caused by bad caller input rather than
// backend failures. Surfaces map it to a 4xx response.
var ErrInvalidInput = errors.New("invalid input")

// Config holds engine tunables.
type Config struct {
	// TopK is the number of similar incidents retrieved per query.
	// Default: DefaultTopK
	TopK int

	// SOSLimit bounds how many records an SOS scan reads from the store.
	// Default: memory.DefaultSnapshotLimit
	SOSLimit int

	// Clock supplies "now" for timestamp fallbacks. Default: real clock.
	Clock clockwork.Clock
}

func (c Config) withDefaults() Config {
	if c.TopK <= 0 {
		c.TopK = DefaultTopK
	}
	if c.SOSLimit <= 0 {
		c.SOSLimit = memory.DefaultSnapshotLimit
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	return c
}

// Analysis is the result of analyzing one user query.
type Analysis struct {
	// Query is the raw query text as submitted.
	Query string `json:"query"`

	// NormalizedQuery is the cleaned form used for embedding.
	NormalizedQuery string `json:"normalized_query"`

	// Matches are the most similar past incidents, best first.
	Matches []models.Incident `json:"matches"`

	// SemanticScore is the highest severity rank among Matches (0 when none).
	SemanticScore float64 `json:"semantic_score"`

	// IntentRecognized reports whether a travel plan with a usable hour
	// was found in the query.
	IntentRecognized bool `json:"intent_recognized"`

	// Location and Hour describe the recognized plan. Only meaningful
	// when IntentRecognized is true. Hour is always serialized so a
	// midnight plan (hour 0) survives the trip to API clients.
	Location string `json:"location,omitempty"`
	Hour     int    `json:"hour"`

	// Features is the classifier input. Nil when no intent was recognized.
	Features *models.FeatureVector `json:"features,omitempty"`

	// Risk is the predicted label. Empty when no intent was recognized;
	// callers should fall back to SemanticScore and Matches.
	Risk models.RiskLabel `json:"risk,omitempty"`
}

// Engine wires the pipeline components together.
type Engine struct {
	store      store.IncidentStore
	embedder   embedding.Embedder
	memory     *memory.Memory
	features   *features.Builder
	classifier classifier.Classifier
	metrics    *observability.Metrics
	logger     *slog.Logger

	topK     int
	sosLimit int
	clock    clockwork.Clock
}

// New creates an Engine. Store, embedder, memory, and classifier are
// required; metrics and logger fall back to test-safe defaults.
func New(st store.IncidentStore, emb embedding.Embedder, mem *memory.Memory, cls classifier.Classifier, metrics *observability.Metrics, logger *slog.Logger, cfg Config) *Engine {
	cfg = cfg.withDefaults()
	if metrics == nil {
		metrics = observability.NewMetricsForTesting()
	}
	if logger == nil {
		logger = observability.NewNopLogger()
	}
	return &Engine{
		store:      st,
		embedder:   emb,
		memory:     mem,
		features:   features.NewBuilder(mem),
		classifier: cls,
		metrics:    metrics,
		logger:     logger,
		topK:       cfg.TopK,
		sosLimit:   cfg.SOSLimit,
		clock:      cfg.Clock,
	}
}

// Analyze runs the full query pipeline: normalize, embed, retrieve
// similar incidents, extract travel intent, and classify risk. Queries
// without a recognizable intent (or with an out-of-range hour) degrade
// to semantic evidence only.
func (e *Engine) Analyze(ctx context.Context, query string) (*Analysis, error) {
	timer := e.clock.Now()
	e.metrics.QueriesTotal.Inc()

	normalized := normalize.Text(query)
	if normalized == "" {
		return nil, fmt.Errorf("%w: empty query", ErrInvalidInput)
	}

	vec, err := e.embedder.Embed(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	matches, err := e.store.Query(ctx, vec, e.topK)
	if err != nil {
		return nil, fmt.Errorf("searching incidents: %w", err)
	}

	result := &Analysis{
		Query:           query,
		NormalizedQuery: normalized,
		Matches:         matches,
		SemanticScore:   features.SemanticScore(matches),
	}

	// Hour validation happens here, not in the extractor: the regex
	// accepts 0-99 and the pipeline decides what is usable.
	if plan, ok := intent.Extract(query); ok && plan.ValidHour() {
		e.metrics.IntentExtracted.Inc()
		result.IntentRecognized = true
		result.Location = normalize.Location(plan.Location)
		result.Hour = plan.Hour

		fv := e.features.Build(plan.Location, plan.Hour, result.SemanticScore)
		result.Features = &fv
		result.Risk = e.classifier.Predict(fv)
		e.metrics.Predictions.WithLabelValues(strings.ToLower(string(result.Risk))).Inc()
	} else if ok {
		e.logger.Debug("intent hour out of range, degrading to semantic evidence",
			"location", plan.Location, "hour", plan.Hour)
	}

	e.metrics.AnalyzeDuration.Observe(e.clock.Since(timer).Seconds())
	e.logger.Info("query analyzed",
		"intent", result.IntentRecognized,
		"risk", string(result.Risk),
		"matches", len(matches),
		"semantic_score", result.SemanticScore)
	return result, nil
}

// AddIncident validates, embeds, and stores a new incident report, then
// rebuilds the time-location memory so the next query sees it. The
// returned record carries the assigned ID and SOS flag.
func (e *Engine) AddIncident(ctx context.Context, text, location, timestamp string, severity models.Severity) (*models.Incident, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: incident text is required", ErrInvalidInput)
	}
	if strings.TrimSpace(location) == "" {
		return nil, fmt.Errorf("%w: incident location is required", ErrInvalidInput)
	}
	if !severity.Valid() {
		severity = models.SeverityLow
	}
	if timestamp == "" {
		timestamp = e.clock.Now().Format(models.TimeLayout)
	}

	inc := models.Incident{
		ID:               uuid.NewString(),
		Text:             text,
		Location:         normalize.Location(location),
		OriginalLocation: location,
		Time:             timestamp,
		Severity:         severity,
		SOS:              severity == models.SeverityHigh,
	}

	vec, err := e.embedder.Embed(ctx, normalize.Text(text))
	if err != nil {
		return nil, fmt.Errorf("embedding incident: %w", err)
	}
	inc.Vector = vec

	if err := e.store.Upsert(ctx, inc); err != nil {
		return nil, fmt.Errorf("storing incident: %w", err)
	}

	// The memory rebuild is synchronous: an ingest that returns success
	// is immediately visible to Analyze.
	if err := e.RebuildMemory(ctx); err != nil {
		return nil, fmt.Errorf("rebuilding memory: %w", err)
	}

	e.metrics.IncidentsIngested.Inc()
	if inc.SOS {
		e.metrics.SOSFlagged.Inc()
		e.logger.Warn("sos incident reported", "id", inc.ID, "location", inc.Location)
	} else {
		e.logger.Info("incident reported", "id", inc.ID, "location", inc.Location, "severity", string(inc.Severity))
	}
	return &inc, nil
}

// Incidents returns up to limit stored incidents as an unordered
// bounded snapshot. A non-positive limit uses the SOS scan bound.
func (e *Engine) Incidents(ctx context.Context, limit int) ([]models.Incident, error) {
	if limit <= 0 {
		limit = e.sosLimit
	}
	return e.store.Query(ctx, nil, limit)
}

// SOSCases returns all SOS-flagged incidents, most recent first.
// Records with malformed timestamps sort last.
func (e *Engine) SOSCases(ctx context.Context) ([]models.Incident, error) {
	all, err := e.store.Query(ctx, nil, e.sosLimit)
	if err != nil {
		return nil, fmt.Errorf("scanning incidents: %w", err)
	}

	var cases []models.Incident
	for _, inc := range all {
		if inc.SOS {
			cases = append(cases, inc)
		}
	}

	sort.SliceStable(cases, func(i, j int) bool {
		ti, iok := cases[i].OccurredAt()
		tj, jok := cases[j].OccurredAt()
		if iok != jok {
			return iok
		}
		return ti.After(tj)
	})
	return cases, nil
}

// RebuildMemory refreshes the time-location memory from the store and
// updates the locations gauge.
func (e *Engine) RebuildMemory(ctx context.Context) error {
	if err := e.memory.Rebuild(ctx); err != nil {
		return err
	}
	e.metrics.MemoryLocations.Set(float64(e.memory.Locations()))
	return nil
}

// Memory exposes the engine's time-location memory for reporting surfaces.
func (e *Engine) Memory() *memory.Memory {
	return e.memory
}
