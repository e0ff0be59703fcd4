package model_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskcard/pkg/domain/model"
	"github.com/secmon-lab/riskcard/pkg/domain/types"
	"github.com/shopspring/decimal"
)

func TestExampleReport(t *testing.T) {
	r := model.ExampleReport()

	gt.Value(t, r.Borrower()).Equal("Maruti Suzuki India Ltd")
	gt.Value(t, r.CreditScore()).Equal(985)
	gt.Value(t, r.ScoreReference()).Equal(750)
	gt.Value(t, r.ScoreDelta()).Equal(235)
	gt.Value(t, r.Band()).Equal(types.RiskBandGreen)
	gt.Value(t, r.DefaultProbability().Percent).Equal(0.01)
	gt.Value(t, r.AltmanZ().Value).Equal(8.9)
	gt.Value(t, r.PiotroskiF().Value).Equal(9)
	gt.Value(t, r.PiotroskiF().Progress()).Equal(1.0)
	gt.Value(t, r.Decision().Verdict).Equal(types.VerdictApproved)
	gt.A(t, r.Factors()).Length(5)
	gt.Value(t, r.LoanAmount().String()).Equal("₹3.3 Crores")
	gt.Value(t, r.CreditLimit().Amount.String()).Equal("₹3,500 Cr")
}

func TestNewRiskReport_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(p *model.ReportParams)
		field  string
	}{
		{
			name:   "credit score above range",
			modify: func(p *model.ReportParams) { p.CreditScore = 1200 },
			field:  "credit_score",
		},
		{
			name:   "negative credit score",
			modify: func(p *model.ReportParams) { p.CreditScore = -1 },
			field:  "credit_score",
		},
		{
			name:   "score reference above range",
			modify: func(p *model.ReportParams) { p.ScoreReference = 1001 },
			field:  "score_reference",
		},
		{
			name: "weights do not sum to 100",
			modify: func(p *model.ReportParams) {
				p.Factors[4].Weight = 5
			},
			field: "factors.weight",
		},
		{
			name:   "piotroski above 9",
			modify: func(p *model.ReportParams) { p.PiotroskiF.Value = 10 },
			field:  "piotroski_f_score",
		},
		{
			name:   "probability of default above 100",
			modify: func(p *model.ReportParams) { p.DefaultProbability.Percent = 100.5 },
			field:  "probability_of_default_12m",
		},
		{
			name:   "probability of default is NaN",
			modify: func(p *model.ReportParams) { p.DefaultProbability.Percent = math.NaN() },
			field:  "probability_of_default_12m",
		},
		{
			name:   "factor score above 100",
			modify: func(p *model.ReportParams) { p.Factors[0].Score = 101 },
			field:  "factors.score",
		},
		{
			name:   "no factors",
			modify: func(p *model.ReportParams) { p.Factors = nil },
			field:  "factors",
		},
		{
			name:   "empty category",
			modify: func(p *model.ReportParams) { p.Factors[1].Category = "" },
			field:  "factors.category",
		},
		{
			name:   "duplicated category",
			modify: func(p *model.ReportParams) { p.Factors[1].Category = p.Factors[0].Category },
			field:  "factors.category",
		},
		{
			name:   "empty borrower",
			modify: func(p *model.ReportParams) { p.Borrower = "" },
			field:  "borrower",
		},
		{
			name: "negative loan amount",
			modify: func(p *model.ReportParams) {
				p.LoanAmount.Amount = decimal.NewFromInt(-1)
			},
			field: "loan_amount",
		},
		{
			name:   "unknown verdict",
			modify: func(p *model.ReportParams) { p.Decision.Verdict = "maybe" },
			field:  "verdict",
		},
		{
			name:   "unknown trend",
			modify: func(p *model.ReportParams) { p.Rating.Trend = "sideways" },
			field:  "risk_rating.trend",
		},
		{
			name:   "malformed rating label",
			modify: func(p *model.ReportParams) { p.Rating.Label = "Z9" },
			field:  "risk_rating",
		},
		{
			name:   "altman progress above 1",
			modify: func(p *model.ReportParams) { p.AltmanZ.Progress = 1.5 },
			field:  "altman_z_score.progress",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := model.ExampleParams()
			tt.modify(&p)

			r, err := model.NewRiskReport(p)
			gt.Value(t, r).Nil()
			gt.Error(t, err).Is(model.ErrInvalidReport)

			var goErr *goerr.Error
			gt.B(t, errors.As(err, &goErr)).True()
			gt.Value(t, goErr.Values()[model.FieldKey]).Equal(any(tt.field))
		})
	}
}

func TestNewRiskReport_WeightTolerance(t *testing.T) {
	tests := []struct {
		name    string
		last    float64
		wantErr bool
	}{
		{"exact sum", 10, false},
		{"half tolerance above", 10.005, false},
		{"tolerance above", 10.01, false},
		{"tolerance below", 9.99, false},
		{"just inside above", 10.009, false},
		{"beyond tolerance above", 10.02, true},
		{"beyond tolerance below", 9.98, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := model.ExampleParams()
			p.Factors[4].Weight = tt.last

			r, err := model.NewRiskReport(p)
			if tt.wantErr {
				gt.Error(t, err).Is(model.ErrInvalidReport)
				return
			}
			gt.NoError(t, err).Required()
			gt.Value(t, r.CreditScore()).Equal(985)
		})
	}
}

func TestNewRiskReport_Boundaries(t *testing.T) {
	for _, score := range []int{0, 500, 750, 1000} {
		p := model.ExampleParams()
		p.CreditScore = score
		p.PiotroskiF.Value = 0

		r, err := model.NewRiskReport(p)
		gt.NoError(t, err).Required()
		gt.Value(t, r.Band()).Equal(types.BandOf(score))
	}
}

func TestRiskReport_Immutable(t *testing.T) {
	p := model.ExampleParams()
	r, err := model.NewRiskReport(p)
	gt.NoError(t, err).Required()

	t.Run("input mutation does not leak", func(t *testing.T) {
		p.Factors[0].Score = 0
		p.Decision.Rationale[0] = "changed"
		p.Sentiment.Positive[0] = "changed"

		gt.Value(t, r.Factors()[0].Score).Equal(100.0)
		gt.Value(t, r.Decision().Rationale[0]).Equal("Zero-debt balance sheet.")
		gt.Value(t, r.Sentiment().Positive[0]).NotEqual("changed")
	})

	t.Run("accessor mutation does not leak", func(t *testing.T) {
		factors := r.Factors()
		factors[0].Category = "changed"
		rationale := r.Decision().Rationale
		rationale[1] = "changed"

		gt.Value(t, r.Factors()[0].Category).Equal("Repayment History")
		gt.Value(t, r.Decision().Rationale[1]).Equal("Perfect Piotroski Score (9/9).")
	})
}

func TestRiskReport_MarshalJSON(t *testing.T) {
	raw, err := json.Marshal(model.ExampleReport())
	gt.NoError(t, err).Required()

	var out map[string]any
	gt.NoError(t, json.Unmarshal(raw, &out)).Required()

	gt.Value(t, out["borrower"]).Equal(any("Maruti Suzuki India Ltd"))
	gt.Value(t, out["report_date"]).Equal(any("2025-12-28"))
	gt.Value(t, out["credit_score"]).Equal(any(985.0))
	gt.Value(t, out["band"]).Equal(any("green"))

	verdict, ok := out["verdict"].(map[string]any)
	gt.B(t, ok).True()
	gt.Value(t, verdict["decision"]).Equal(any("approved"))

	loan, ok := out["loan_amount"].(map[string]any)
	gt.B(t, ok).True()
	gt.Value(t, loan["amount"]).Equal(any("3.3"))
}
