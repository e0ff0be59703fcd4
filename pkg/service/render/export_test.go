package render

var (
	GaugeChart   = gaugeChart
	ProgressBar  = progressBar
	Blues        = blues
	FormatSigned = formatSigned
)

// DeltaTone exposes the card delta colouring as a plain string
func DeltaTone(v float64, inverse bool) string {
	return string(deltaTone(v, inverse))
}
