// Package classifier scores risk from the 4-feature vector. The consuming
// contract is deliberately narrow: Predict is a pure function of the
// vector, the model is loaded once per process and treated as immutable,
// and the label set is fixed to {LOW, MODERATE, HIGH}.
package classifier

import (
	"math"

	"github.com/nightwatch-ai/nightwatch/internal/models"
)

// Classifier predicts a risk label from a feature vector.
type Classifier interface {
	Predict(features models.FeatureVector) models.RiskLabel
}

// Model is a multinomial logistic-regression classifier over the three
// risk classes. Zero-valued weights predict LOW everywhere; a useful model
// comes from Load or Train.
type Model struct {
	// Weights holds one row of per-feature coefficients per class,
	// indexed as models.RiskLabels.
	Weights [len(models.RiskLabels)][models.FeatureDims]float64 `json:"weights"`

	// Bias holds the per-class intercepts.
	Bias [len(models.RiskLabels)]float64 `json:"bias"`

	// TrainedAt records when the model was fitted (informational).
	TrainedAt string `json:"trained_at,omitempty"`
}

// Predict returns the risk label whose class scores highest under the
// model. Pure: no state is read or written.
func (m *Model) Predict(features models.FeatureVector) models.RiskLabel {
	probs := m.probabilities(features)

	best := 0
	for c := 1; c < len(probs); c++ {
		if probs[c] > probs[best] {
			best = c
		}
	}
	return models.RiskLabels[best]
}

// probabilities returns the softmax class distribution for the features.
func (m *Model) probabilities(features models.FeatureVector) [len(models.RiskLabels)]float64 {
	var logits [len(models.RiskLabels)]float64
	for c := range logits {
		z := m.Bias[c]
		for d := 0; d < models.FeatureDims; d++ {
			z += m.Weights[c][d] * features[d]
		}
		logits[c] = z
	}

	// Shift by the max logit for numerical stability.
	maxZ := logits[0]
	for _, z := range logits[1:] {
		if z > maxZ {
			maxZ = z
		}
	}

	var sum float64
	var probs [len(models.RiskLabels)]float64
	for c, z := range logits {
		probs[c] = math.Exp(z - maxZ)
		sum += probs[c]
	}
	for c := range probs {
		probs[c] /= sum
	}
	return probs
}
