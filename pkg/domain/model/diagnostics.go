package model

// PiotroskiMax is the best possible Piotroski F-Score
const PiotroskiMax = 9

// Diagnostic is a forensic distress index shown as a score tile
type Diagnostic struct {
	Value          float64
	Progress       float64 // 0-1, fill of the tile's progress bar
	Benchmark      string
	Interpretation string
}

// PiotroskiScore is the 0-9 Piotroski F-Score tile
type PiotroskiScore struct {
	Value          int
	Benchmark      string
	Interpretation string
}

// Progress returns the fill of the tile's progress bar; 9 of 9 is 1.0
func (p PiotroskiScore) Progress() float64 {
	return float64(p.Value) / PiotroskiMax
}
