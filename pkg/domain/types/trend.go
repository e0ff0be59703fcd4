package types

import "fmt"

// Trend is the direction a risk rating is moving in
type Trend string

const (
	TrendStable    Trend = "stable"
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
)

// AllTrends returns all valid trends
func AllTrends() []Trend {
	return []Trend{
		TrendStable,
		TrendImproving,
		TrendDeclining,
	}
}

// IsValid checks if the trend is valid
func (t Trend) IsValid() bool {
	switch t {
	case TrendStable,
		TrendImproving,
		TrendDeclining:
		return true
	default:
		return false
	}
}

// Label returns the capitalised display form
func (t Trend) Label() string {
	switch t {
	case TrendStable:
		return "Stable"
	case TrendImproving:
		return "Improving"
	case TrendDeclining:
		return "Declining"
	default:
		return string(t)
	}
}

// String returns the string representation of the trend
func (t Trend) String() string {
	return string(t)
}

// ParseTrend parses a string into a Trend
func ParseTrend(s string) (Trend, error) {
	trend := Trend(s)
	if !trend.IsValid() {
		return "", fmt.Errorf("invalid trend: %q (want one of %v)", s, AllTrends())
	}
	return trend, nil
}
