package models

// RiskLabel is the classifier's verdict for a (location, hour) query.
type RiskLabel string

const (
	RiskLow      RiskLabel = "LOW"
	RiskModerate RiskLabel = "MODERATE"
	RiskHigh     RiskLabel = "HIGH"
)

// RiskLabels lists the labels in class order. The classifier's class
// index i corresponds to RiskLabels[i].
var RiskLabels = [3]RiskLabel{RiskLow, RiskModerate, RiskHigh}

// FeatureDims is the fixed width of the classifier feature vector.
const FeatureDims = 4

// FeatureVector is the fixed 4-tuple fed to the risk classifier:
// [incident count, average severity, night flag, semantic score].
// It is ephemeral: recomputed per query, never persisted.
type FeatureVector [FeatureDims]float64

// Count is the number of incident summaries at (location, hour).
func (f FeatureVector) Count() float64 { return f[0] }

// AvgSeverity is the mean severity rank of those summaries, 0 when empty.
func (f FeatureVector) AvgSeverity() float64 { return f[1] }

// NightFlag is 1 for night hours (20:00-05:59), else 0.
func (f FeatureVector) NightFlag() float64 { return f[2] }

// SemanticScore is the caller-supplied severity proxy from similarity search.
func (f FeatureVector) SemanticScore() float64 { return f[3] }
