package model

// Factor is one weighted scoring category of the assessment
type Factor struct {
	Category string
	Score    float64 // 0-100
	Weight   float64 // 0-100, all weights of a report sum to 100
}

// Contribution returns the factor's weighted share of the overall score
func (f Factor) Contribution() float64 {
	return f.Score * f.Weight / 100
}
