package types

// SignalTone tags a sentiment signal
type SignalTone string

const (
	SignalTonePositive SignalTone = "positive"
	SignalToneNeutral  SignalTone = "neutral"
	SignalToneNegative SignalTone = "negative"
)

// AllSignalTones returns the tones in display order
func AllSignalTones() []SignalTone {
	return []SignalTone{
		SignalTonePositive,
		SignalToneNeutral,
		SignalToneNegative,
	}
}

// Symbol returns the marker printed after the tone label
func (s SignalTone) Symbol() string {
	switch s {
	case SignalTonePositive:
		return "+"
	case SignalToneNeutral:
		return "="
	case SignalToneNegative:
		return "-"
	default:
		return "?"
	}
}

// Label returns the heading of the tone's signal list
func (s SignalTone) Label() string {
	switch s {
	case SignalTonePositive:
		return "Positive Signals"
	case SignalToneNeutral:
		return "Neutral Signals"
	case SignalToneNegative:
		return "Negative Signals"
	default:
		return "Signals"
	}
}

// String returns the string representation of the tone
func (s SignalTone) String() string {
	return string(s)
}
