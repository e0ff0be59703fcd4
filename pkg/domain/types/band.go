package types

// Credit score scale bounds
const (
	ScoreMin = 0
	ScoreMax = 1000
)

// RiskBand is the coloured zone of the riskometer a credit score falls into
type RiskBand string

const (
	RiskBandRed    RiskBand = "red"
	RiskBandYellow RiskBand = "yellow"
	RiskBandGreen  RiskBand = "green"
)

const (
	yellowLowerBound = 500
	greenLowerBound  = 750
)

// AllRiskBands returns the bands in gauge order, lowest score first
func AllRiskBands() []RiskBand {
	return []RiskBand{
		RiskBandRed,
		RiskBandYellow,
		RiskBandGreen,
	}
}

// BandOf classifies a score. Both 500 and 750 belong to the yellow band.
func BandOf(score int) RiskBand {
	switch {
	case score < yellowLowerBound:
		return RiskBandRed
	case score <= greenLowerBound:
		return RiskBandYellow
	default:
		return RiskBandGreen
	}
}

// IsValid checks if the band is valid
func (b RiskBand) IsValid() bool {
	switch b {
	case RiskBandRed,
		RiskBandYellow,
		RiskBandGreen:
		return true
	default:
		return false
	}
}

// Range returns the band's lower and upper bounds on the gauge axis
func (b RiskBand) Range() (int, int) {
	switch b {
	case RiskBandRed:
		return ScoreMin, yellowLowerBound
	case RiskBandYellow:
		return yellowLowerBound, greenLowerBound
	case RiskBandGreen:
		return greenLowerBound, ScoreMax
	default:
		return 0, 0
	}
}

// Color returns the gauge fill colour of the band
func (b RiskBand) Color() string {
	switch b {
	case RiskBandRed:
		return "#ffcccb"
	case RiskBandYellow:
		return "#fff4cc"
	case RiskBandGreen:
		return "#d4edda"
	default:
		return "#ffffff"
	}
}

// Label returns the human readable risk level of the band
func (b RiskBand) Label() string {
	switch b {
	case RiskBandRed:
		return "High Risk"
	case RiskBandYellow:
		return "Moderate"
	case RiskBandGreen:
		return "Low Risk"
	default:
		return "Unknown"
	}
}

// String returns the string representation of the band
func (b RiskBand) String() string {
	return string(b)
}
