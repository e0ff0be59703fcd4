package render

import (
	"math"
	"strconv"
	"time"
)

// displayDate is the sidebar date layout, e.g. "Dec 28, 2025"
const displayDate = "Jan 2, 2006"

// formatNumber prints v with the fewest digits that round-trip, e.g. 8.9 or -3.5
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatSigned is formatNumber with an explicit plus sign for positive values
func formatSigned(v float64) string {
	if v > 0 {
		return "+" + formatNumber(v)
	}
	return formatNumber(v)
}

func formatPercent(v float64) string {
	return formatNumber(v) + "%"
}

// formatProgress renders a 0-1 fraction as a whole percentage
func formatProgress(v float64) string {
	return strconv.Itoa(int(math.Round(v*100))) + "%"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(displayDate)
}

// tone is the colouring of a metric card delta
type tone string

const (
	toneGood    tone = "good"
	toneBad     tone = "bad"
	toneNeutral tone = "neutral"
)

// deltaTone colours a signed delta. With inverse set, a decrease is good,
// as for a probability of default.
func deltaTone(v float64, inverse bool) tone {
	switch {
	case v == 0:
		return toneNeutral
	case (v < 0) == inverse:
		return toneGood
	default:
		return toneBad
	}
}

func arrow(v float64) string {
	switch {
	case v > 0:
		return "▲"
	case v < 0:
		return "▼"
	default:
		return "●"
	}
}
