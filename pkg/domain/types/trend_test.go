package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskcard/pkg/domain/types"
)

func TestParseTrend(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    types.Trend
		wantErr bool
	}{
		{name: "stable", input: "stable", want: types.TrendStable},
		{name: "improving", input: "improving", want: types.TrendImproving},
		{name: "declining", input: "declining", want: types.TrendDeclining},
		{name: "capitalised", input: "Stable", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := types.ParseTrend(tt.input)
			if tt.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
				gt.V(t, got).Equal(tt.want)
			}
		})
	}
}

func TestTrend_Label(t *testing.T) {
	gt.S(t, types.TrendStable.Label()).Equal("Stable")
	gt.S(t, types.TrendImproving.Label()).Equal("Improving")
	gt.S(t, types.TrendDeclining.Label()).Equal("Declining")
	gt.A(t, types.AllTrends()).Length(3)
}
