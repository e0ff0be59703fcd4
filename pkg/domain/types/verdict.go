package types

import (
	"fmt"
	"strings"
)

// Verdict is the final credit decision
type Verdict string

const (
	VerdictApproved    Verdict = "approved"
	VerdictRejected    Verdict = "rejected"
	VerdictConditional Verdict = "conditional"
)

// AllVerdicts returns all valid verdicts
func AllVerdicts() []Verdict {
	return []Verdict{
		VerdictApproved,
		VerdictRejected,
		VerdictConditional,
	}
}

// IsValid checks if the verdict is valid
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictApproved,
		VerdictRejected,
		VerdictConditional:
		return true
	default:
		return false
	}
}

// Banner returns the heading shown on the verdict banner
func (v Verdict) Banner() string {
	return strings.ToUpper(string(v))
}

// Icon returns the glyph shown next to the banner heading
func (v Verdict) Icon() string {
	switch v {
	case VerdictApproved:
		return "✅"
	case VerdictRejected:
		return "❌"
	case VerdictConditional:
		return "⚠️"
	default:
		return ""
	}
}

// String returns the string representation of the verdict
func (v Verdict) String() string {
	return string(v)
}

// ParseVerdict parses a string into a Verdict
func ParseVerdict(s string) (Verdict, error) {
	verdict := Verdict(s)
	if !verdict.IsValid() {
		return "", fmt.Errorf("invalid verdict: %q (want one of %v)", s, AllVerdicts())
	}
	return verdict, nil
}
