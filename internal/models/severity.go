package models

// Severity grades how serious a reported incident is.
// The three levels are totally ordered: Low < Medium < High.
type Severity string

const (
	SeverityLow    Severity = "Low"
	SeverityMedium Severity = "Medium"
	SeverityHigh   Severity = "High"
)

// Rank maps a severity to its numeric rank (Low=1, Medium=2, High=3).
// Malformed values rank as Low rather than rejecting the record.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	default:
		return 1
	}
}

// Valid reports whether s is one of the three known levels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return true
	}
	return false
}

// ParseSeverity converts user input to a Severity, defaulting to Low
// for anything unrecognized.
func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case SeverityMedium:
		return SeverityMedium
	case SeverityHigh:
		return SeverityHigh
	default:
		return SeverityLow
	}
}
