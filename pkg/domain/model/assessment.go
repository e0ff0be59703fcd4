package model

import "github.com/secmon-lab/riskcard/pkg/domain/types"

// RiskRating is the internal grade shown on the first metric card
type RiskRating struct {
	Label       types.RatingLabel
	Description string // e.g. "Low Risk"
	Trend       types.Trend
}

// DefaultProbability is the 12 month probability of default, in percent
type DefaultProbability struct {
	Percent float64
	Delta   float64 // signed change against the prior period, in percentage points
}

// CreditLimit is the recommended exposure cap
type CreditLimit struct {
	Amount Money
	Note   string // e.g. "High Cap"
}

// Sentiment groups the static news signals by tone
type Sentiment struct {
	Positive []string
	Neutral  []string
	Negative []string
}

// Signals returns the signals of one tone
func (s Sentiment) Signals(tone types.SignalTone) []string {
	switch tone {
	case types.SignalTonePositive:
		return s.Positive
	case types.SignalToneNeutral:
		return s.Neutral
	case types.SignalToneNegative:
		return s.Negative
	default:
		return nil
	}
}

// Decision is the final recommendation
type Decision struct {
	Verdict        types.Verdict
	Recommendation string
	Rationale      []string
}
