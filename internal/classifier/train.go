package classifier

import (
	"fmt"
	"time"

	"github.com/nightwatch-ai/nightwatch/internal/models"
)

// Sample pairs a feature vector with its class index into models.RiskLabels.
type Sample struct {
	Features models.FeatureVector `json:"features"`
	Class    int                  `json:"class"`
}

// TrainConfig holds the gradient-descent hyperparameters.
type TrainConfig struct {
	// LearningRate for batch gradient descent. Default: 0.05.
	LearningRate float64

	// Epochs is the number of full passes over the samples. Default: 5000.
	Epochs int
}

func (c TrainConfig) withDefaults() TrainConfig {
	if c.LearningRate <= 0 {
		c.LearningRate = 0.05
	}
	if c.Epochs <= 0 {
		c.Epochs = 5000
	}
	return c
}

// Train fits a multinomial logistic regression to the samples with batch
// gradient descent. Deterministic: weights start at zero and the samples
// are visited in order, so identical inputs produce an identical model.
func Train(samples []Sample, cfg TrainConfig) (*Model, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("no training samples")
	}
	for i, s := range samples {
		if s.Class < 0 || s.Class >= len(models.RiskLabels) {
			return nil, fmt.Errorf("sample %d: class %d out of range", i, s.Class)
		}
	}

	cfg = cfg.withDefaults()
	m := &Model{}
	n := float64(len(samples))

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		var gradW [len(models.RiskLabels)][models.FeatureDims]float64
		var gradB [len(models.RiskLabels)]float64

		for _, s := range samples {
			probs := m.probabilities(s.Features)
			for c := range probs {
				diff := probs[c]
				if c == s.Class {
					diff -= 1
				}
				for d := 0; d < models.FeatureDims; d++ {
					gradW[c][d] += diff * s.Features[d]
				}
				gradB[c] += diff
			}
		}

		for c := range gradW {
			for d := 0; d < models.FeatureDims; d++ {
				m.Weights[c][d] -= cfg.LearningRate * gradW[c][d] / n
			}
			m.Bias[c] -= cfg.LearningRate * gradB[c] / n
		}
	}

	m.TrainedAt = time.Now().UTC().Format(time.RFC3339)
	return m, nil
}

// DefaultTrainingSet is the built-in demo training table mapping feature
// prototypes to risk classes: sparse daytime buckets are LOW, busier
// night-time buckets climb through MODERATE to HIGH.
func DefaultTrainingSet() []Sample {
	return []Sample{
		{Features: models.FeatureVector{1, 1.0, 0, 0.2}, Class: 0},
		{Features: models.FeatureVector{2, 1.5, 0, 0.3}, Class: 0},
		{Features: models.FeatureVector{3, 2.0, 1, 0.6}, Class: 1},
		{Features: models.FeatureVector{4, 2.5, 1, 0.7}, Class: 2},
		{Features: models.FeatureVector{6, 3.0, 1, 0.9}, Class: 2},
	}
}
