package model

import (
	"time"

	"github.com/secmon-lab/riskcard/pkg/domain/types"
	"github.com/shopspring/decimal"
)

// ExampleParams returns the parameters of the built-in sample assessment of
// Maruti Suzuki India Ltd by HDFC Bank. A new value is returned on every call.
func ExampleParams() ReportParams {
	return ReportParams{
		Lender:    "HDFC Bank",
		PageTitle: "HDFC Bank - AI Credit Evaluation",
		ModelName: "Corporate Credit Assessment Model (CCAM v4.0)",
		LogoURL:   "https://upload.wikimedia.org/wikipedia/commons/2/28/HDFC_Bank_Logo.svg",

		Borrower:     "Maruti Suzuki India Ltd",
		Industry:     "Automotive (OEM)",
		LoanAmount:   Money{Amount: decimal.RequireFromString("3.3"), Symbol: "₹", Unit: "Crores"},
		FacilityType: "Unsecured Term Loan",
		Analyst:      "Credit AI Team",
		ReportDate:   time.Date(2025, time.December, 28, 0, 0, 0, 0, time.UTC),

		CreditScore:    985,
		ScoreReference: 750,

		Rating: RiskRating{
			Label:       "A1",
			Description: "Low Risk",
			Trend:       types.TrendStable,
		},
		DefaultProbability: DefaultProbability{Percent: 0.01, Delta: -0.05},
		CreditLimit: CreditLimit{
			Amount: Money{Amount: decimal.NewFromInt(3500), Symbol: "₹", Unit: "Cr"},
			Note:   "High Cap",
		},
		Summary: "The borrower is in the Safe Zone. Repayment probability is exceptionally high based on current liquidity velocity.",

		Factors: []Factor{
			{Category: "Repayment History", Score: 100, Weight: 30},
			{Category: "Cash Flow Velocity", Score: 99, Weight: 25},
			{Category: "Forensic Accounting", Score: 96, Weight: 20},
			{Category: "Sentiment Analysis", Score: 92, Weight: 15},
			{Category: "Macro Factors", Score: 95, Weight: 10},
		},

		AltmanZ: Diagnostic{
			Value:          8.9,
			Progress:       0.99,
			Benchmark:      "Benchmark: > 2.99 (Safe Zone)",
			Interpretation: "Bankruptcy is virtually impossible.",
		},
		OhlsonO: Diagnostic{
			Value:          -3.5,
			Progress:       0.1,
			Benchmark:      "Benchmark: Lower is Better",
			Interpretation: "Probability of default < 1%.",
		},
		PiotroskiF: PiotroskiScore{
			Value:          9,
			Benchmark:      "Benchmark: 9 is Perfect",
			Interpretation: "High operational efficiency & quality.",
		},

		Sentiment: Sentiment{
			Positive: []string{
				"Strong sales volume for 'Grand Vitara'",
				"successful export growth to Africa/LatAm",
				"declared dividends.",
			},
			Neutral: []string{
				"EV production timeline pushed to FY25",
				"Hybrid tax debates.",
			},
			Negative: []string{
				"None significant. Small car segment volume decline (offset by SUV growth).",
			},
		},

		Decision: Decision{
			Verdict:        types.VerdictApproved,
			Recommendation: "Sanction the loan of ₹3.3 Crores.",
			Rationale: []string{
				"Zero-debt balance sheet.",
				"Perfect Piotroski Score (9/9).",
				"Strategic value for HDFC Bank > Loan Interest Income.",
			},
		},
	}
}

// ExampleReport builds the sample assessment. It panics only if the sample
// itself is broken.
func ExampleReport() *RiskReport {
	r, err := NewRiskReport(ExampleParams())
	if err != nil {
		panic(err)
	}
	return r
}
