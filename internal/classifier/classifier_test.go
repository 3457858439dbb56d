package classifier

import (
	"path/filepath"
	"testing"

	"github.com/nightwatch-ai/nightwatch/internal/models"
)

// handModel returns a model with hand-picked weights where each class
// scores highest in an obvious region: LOW near the origin, HIGH for
// busy night-time buckets.
func handModel() *Model {
	return &Model{
		Weights: [3][4]float64{
			{-1, -1, -1, -1}, // LOW: fires when everything is small
			{0.2, 0.2, 0.5, 0.2},
			{1, 1, 1, 1}, // HIGH: fires when everything is large
		},
		Bias: [3]float64{2, 0.5, -6},
	}
}

func TestPredictArgmax(t *testing.T) {
	m := handModel()

	tests := []struct {
		name     string
		features models.FeatureVector
		want     models.RiskLabel
	}{
		{name: "quiet daytime", features: models.FeatureVector{0, 0, 0, 0}, want: models.RiskLow},
		{name: "busy night", features: models.FeatureVector{6, 3, 1, 3}, want: models.RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Predict(tt.features); got != tt.want {
				t.Errorf("Predict(%v) = %q, want %q", tt.features, got, tt.want)
			}
		})
	}
}

func TestPredictIsPure(t *testing.T) {
	m := handModel()
	f := models.FeatureVector{2, 1.5, 1, 2}

	first := m.Predict(f)
	for i := 0; i < 10; i++ {
		if got := m.Predict(f); got != first {
			t.Fatalf("Predict changed between calls: %q then %q", first, got)
		}
	}
}

func TestZeroModelPredictsLow(t *testing.T) {
	var m Model
	// All logits tie at zero; the first class (LOW) wins the argmax.
	if got := m.Predict(models.FeatureVector{5, 3, 1, 3}); got != models.RiskLow {
		t.Errorf("zero model Predict = %q, want LOW", got)
	}
}

func TestTrainSeparatesClearClasses(t *testing.T) {
	samples := []Sample{
		{Features: models.FeatureVector{0, 0, 0, 0}, Class: 0},
		{Features: models.FeatureVector{1, 1, 0, 0.5}, Class: 0},
		{Features: models.FeatureVector{3, 2, 1, 1.5}, Class: 1},
		{Features: models.FeatureVector{3.5, 2, 1, 1.8}, Class: 1},
		{Features: models.FeatureVector{7, 3, 1, 3}, Class: 2},
		{Features: models.FeatureVector{8, 3, 1, 3}, Class: 2},
	}

	m, err := Train(samples, TrainConfig{})
	if err != nil {
		t.Fatalf("Train: %v", err)
	}

	if got := m.Predict(models.FeatureVector{0, 0, 0, 0}); got != models.RiskLow {
		t.Errorf("quiet bucket predicted %q, want LOW", got)
	}
	if got := m.Predict(models.FeatureVector{8, 3, 1, 3}); got != models.RiskHigh {
		t.Errorf("busy night bucket predicted %q, want HIGH", got)
	}
}

func TestTrainDeterministic(t *testing.T) {
	a, err := Train(DefaultTrainingSet(), TrainConfig{Epochs: 50})
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	b, err := Train(DefaultTrainingSet(), TrainConfig{Epochs: 50})
	if err != nil {
		t.Fatalf("Train: %v", err)
	}

	if a.Weights != b.Weights || a.Bias != b.Bias {
		t.Error("identical training inputs produced different models")
	}
}

func TestTrainRejectsBadInput(t *testing.T) {
	if _, err := Train(nil, TrainConfig{}); err == nil {
		t.Error("Train(nil) should fail")
	}
	bad := []Sample{{Features: models.FeatureVector{1, 1, 0, 1}, Class: 7}}
	if _, err := Train(bad, TrainConfig{}); err == nil {
		t.Error("Train with out-of-range class should fail")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	m := handModel()
	m.TrainedAt = "2026-03-14T00:00:00Z"

	path := filepath.Join(t.TempDir(), "risk_model.json")
	if err := m.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if loaded.Weights != m.Weights || loaded.Bias != m.Bias {
		t.Error("loaded model differs from saved model")
	}
	if loaded.TrainedAt != m.TrainedAt {
		t.Errorf("TrainedAt = %q, want %q", loaded.TrainedAt, m.TrainedAt)
	}

	f := models.FeatureVector{6, 3, 1, 3}
	if loaded.Predict(f) != m.Predict(f) {
		t.Error("loaded model predicts differently from saved model")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Load of missing artifact should fail")
	}
}
