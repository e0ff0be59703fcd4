package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskcard/pkg/domain/types"
)

func TestBandOf(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  types.RiskBand
	}{
		{"lowest score", 0, types.RiskBandRed},
		{"just below yellow", 499, types.RiskBandRed},
		{"yellow lower bound", 500, types.RiskBandYellow},
		{"middle of yellow", 640, types.RiskBandYellow},
		{"yellow upper bound", 750, types.RiskBandYellow},
		{"just above yellow", 751, types.RiskBandGreen},
		{"example report", 985, types.RiskBandGreen},
		{"highest score", 1000, types.RiskBandGreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, types.BandOf(tt.score)).Equal(tt.want)
		})
	}
}

func TestRiskBand_Range(t *testing.T) {
	bands := types.AllRiskBands()
	gt.A(t, bands).Length(3)

	lower, _ := bands[0].Range()
	gt.Value(t, lower).Equal(types.ScoreMin)
	_, upper := bands[len(bands)-1].Range()
	gt.Value(t, upper).Equal(types.ScoreMax)

	// bands tile the axis without gaps
	for i := 1; i < len(bands); i++ {
		_, prevUpper := bands[i-1].Range()
		lower, _ := bands[i].Range()
		gt.Value(t, lower).Equal(prevUpper)
	}
}

func TestRiskBand_Color(t *testing.T) {
	gt.S(t, types.RiskBandRed.Color()).Equal("#ffcccb")
	gt.S(t, types.RiskBandYellow.Color()).Equal("#fff4cc")
	gt.S(t, types.RiskBandGreen.Color()).Equal("#d4edda")
}

func TestRiskBand_IsValid(t *testing.T) {
	for _, b := range types.AllRiskBands() {
		gt.B(t, b.IsValid()).True()
	}
	gt.B(t, types.RiskBand("blue").IsValid()).False()
	gt.S(t, types.RiskBand("blue").Label()).Equal("Unknown")
}
