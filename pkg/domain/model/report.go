package model

import (
	"encoding/json"
	"math"
	"slices"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcard/pkg/domain/types"
)

// WeightTolerance is the accepted rounding error of the factor weight sum
const WeightTolerance = 0.01

// weightEpsilon absorbs the float error of summing the weights so that a
// sum exactly WeightTolerance away from 100 is still accepted.
const weightEpsilon = 1e-9

// ReportParams holds everything needed to build a RiskReport
type ReportParams struct {
	Lender    string
	PageTitle string
	ModelName string
	LogoURL   string

	Borrower     string
	Industry     string
	LoanAmount   Money
	FacilityType string
	Analyst      string
	ReportDate   time.Time

	CreditScore    int
	ScoreReference int

	Rating             RiskRating
	DefaultProbability DefaultProbability
	CreditLimit        CreditLimit
	Summary            string

	Factors []Factor

	AltmanZ    Diagnostic
	OhlsonO    Diagnostic
	PiotroskiF PiotroskiScore

	Sentiment Sentiment
	Decision  Decision
}

// RiskReport is the immutable view model of one credit assessment. It is
// built once by NewRiskReport and only exposes read accessors.
type RiskReport struct {
	p ReportParams
}

// NewRiskReport validates params and returns a report holding a private copy
// of them. Any violated invariant yields an error matching ErrInvalidReport.
func NewRiskReport(params ReportParams) (*RiskReport, error) {
	p := cloneParams(params)
	if err := validateParams(&p); err != nil {
		return nil, err
	}
	return &RiskReport{p: p}, nil
}

func cloneParams(p ReportParams) ReportParams {
	p.Factors = slices.Clone(p.Factors)
	p.Sentiment.Positive = slices.Clone(p.Sentiment.Positive)
	p.Sentiment.Neutral = slices.Clone(p.Sentiment.Neutral)
	p.Sentiment.Negative = slices.Clone(p.Sentiment.Negative)
	p.Decision.Rationale = slices.Clone(p.Decision.Rationale)
	return p
}

func invalid(msg, field string, value any) error {
	return goerr.Wrap(ErrInvalidReport, msg, goerr.V(FieldKey, field), goerr.V(ValueKey, value))
}

func isPercent(v float64) bool {
	return v >= 0 && v <= 100
}

func isFraction(v float64) bool {
	return v >= 0 && v <= 1
}

func validateParams(p *ReportParams) error {
	if p.Borrower == "" {
		return invalid("borrower name is required", "borrower", p.Borrower)
	}
	if p.LoanAmount.IsNegative() {
		return invalid("loan amount must not be negative", "loan_amount", p.LoanAmount.Amount.String())
	}
	if p.CreditLimit.Amount.IsNegative() {
		return invalid("credit limit must not be negative", "recommended_credit_limit", p.CreditLimit.Amount.String())
	}

	if p.CreditScore < types.ScoreMin || p.CreditScore > types.ScoreMax {
		return invalid("credit_score must be within [0, 1000]", "credit_score", p.CreditScore)
	}
	if p.ScoreReference < types.ScoreMin || p.ScoreReference > types.ScoreMax {
		return invalid("score_reference must be within [0, 1000]", "score_reference", p.ScoreReference)
	}

	if err := p.Rating.Label.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidReport, "risk rating label is malformed",
			goerr.V(FieldKey, "risk_rating"), goerr.V(ValueKey, p.Rating.Label), goerr.V("cause", err.Error()))
	}
	if _, err := types.ParseTrend(p.Rating.Trend.String()); err != nil {
		return goerr.Wrap(ErrInvalidReport, "risk rating trend is unknown",
			goerr.V(FieldKey, "risk_rating.trend"), goerr.V(ValueKey, p.Rating.Trend), goerr.V("cause", err.Error()))
	}

	if !isPercent(p.DefaultProbability.Percent) {
		return invalid("probability_of_default_12m must be within [0, 100]", "probability_of_default_12m", p.DefaultProbability.Percent)
	}
	if !(p.DefaultProbability.Delta >= -100 && p.DefaultProbability.Delta <= 100) {
		return invalid("probability of default delta must be within [-100, 100]", "probability_of_default_12m.delta", p.DefaultProbability.Delta)
	}

	if err := validateFactors(p.Factors); err != nil {
		return err
	}

	if math.IsNaN(p.AltmanZ.Value) || math.IsInf(p.AltmanZ.Value, 0) {
		return invalid("altman_z_score must be a finite number", "altman_z_score", p.AltmanZ.Value)
	}
	if !isFraction(p.AltmanZ.Progress) {
		return invalid("altman_z_score progress must be within [0, 1]", "altman_z_score.progress", p.AltmanZ.Progress)
	}
	if math.IsNaN(p.OhlsonO.Value) || math.IsInf(p.OhlsonO.Value, 0) {
		return invalid("ohlson_o_score must be a finite number", "ohlson_o_score", p.OhlsonO.Value)
	}
	if !isFraction(p.OhlsonO.Progress) {
		return invalid("ohlson_o_score progress must be within [0, 1]", "ohlson_o_score.progress", p.OhlsonO.Progress)
	}
	if p.PiotroskiF.Value < 0 || p.PiotroskiF.Value > PiotroskiMax {
		return invalid("piotroski_f_score must be within [0, 9]", "piotroski_f_score", p.PiotroskiF.Value)
	}

	if _, err := types.ParseVerdict(p.Decision.Verdict.String()); err != nil {
		return goerr.Wrap(ErrInvalidReport, "verdict is unknown",
			goerr.V(FieldKey, "verdict"), goerr.V(ValueKey, p.Decision.Verdict), goerr.V("cause", err.Error()))
	}

	return nil
}

func validateFactors(factors []Factor) error {
	if len(factors) == 0 {
		return invalid("at least one factor is required", "factors", 0)
	}

	seen := make(map[string]bool, len(factors))
	var sum float64
	for i, f := range factors {
		if f.Category == "" {
			return goerr.Wrap(ErrInvalidReport, "factor category is required",
				goerr.V(FieldKey, "factors.category"), goerr.V(IndexKey, i))
		}
		if seen[f.Category] {
			return goerr.Wrap(ErrInvalidReport, "factor category is duplicated",
				goerr.V(FieldKey, "factors.category"), goerr.V(ValueKey, f.Category), goerr.V(IndexKey, i))
		}
		seen[f.Category] = true

		if !isPercent(f.Score) {
			return goerr.Wrap(ErrInvalidReport, "factor score must be within [0, 100]",
				goerr.V(FieldKey, "factors.score"), goerr.V(ValueKey, f.Score), goerr.V(IndexKey, i))
		}
		if !isPercent(f.Weight) {
			return goerr.Wrap(ErrInvalidReport, "factor weight must be within [0, 100]",
				goerr.V(FieldKey, "factors.weight"), goerr.V(ValueKey, f.Weight), goerr.V(IndexKey, i))
		}
		sum += f.Weight
	}

	if math.Abs(sum-100) > WeightTolerance+weightEpsilon {
		return invalid("factor weights must sum to 100", "factors.weight", sum)
	}
	return nil
}

func (r *RiskReport) Lender() string    { return r.p.Lender }
func (r *RiskReport) PageTitle() string { return r.p.PageTitle }
func (r *RiskReport) ModelName() string { return r.p.ModelName }
func (r *RiskReport) LogoURL() string   { return r.p.LogoURL }

func (r *RiskReport) Borrower() string      { return r.p.Borrower }
func (r *RiskReport) Industry() string      { return r.p.Industry }
func (r *RiskReport) LoanAmount() Money     { return r.p.LoanAmount }
func (r *RiskReport) FacilityType() string  { return r.p.FacilityType }
func (r *RiskReport) Analyst() string       { return r.p.Analyst }
func (r *RiskReport) ReportDate() time.Time { return r.p.ReportDate }

func (r *RiskReport) CreditScore() int    { return r.p.CreditScore }
func (r *RiskReport) ScoreReference() int { return r.p.ScoreReference }

// ScoreDelta is the credit score minus the reference score
func (r *RiskReport) ScoreDelta() int { return r.p.CreditScore - r.p.ScoreReference }

// Band is the riskometer band the credit score falls into
func (r *RiskReport) Band() types.RiskBand { return types.BandOf(r.p.CreditScore) }

func (r *RiskReport) RiskRating() RiskRating                 { return r.p.Rating }
func (r *RiskReport) DefaultProbability() DefaultProbability { return r.p.DefaultProbability }
func (r *RiskReport) CreditLimit() CreditLimit               { return r.p.CreditLimit }
func (r *RiskReport) Summary() string                        { return r.p.Summary }

// Factors returns a copy of the ordered factor table
func (r *RiskReport) Factors() []Factor { return slices.Clone(r.p.Factors) }

func (r *RiskReport) AltmanZ() Diagnostic        { return r.p.AltmanZ }
func (r *RiskReport) OhlsonO() Diagnostic        { return r.p.OhlsonO }
func (r *RiskReport) PiotroskiF() PiotroskiScore { return r.p.PiotroskiF }

// Sentiment returns a copy of the sentiment signals
func (r *RiskReport) Sentiment() Sentiment {
	return Sentiment{
		Positive: slices.Clone(r.p.Sentiment.Positive),
		Neutral:  slices.Clone(r.p.Sentiment.Neutral),
		Negative: slices.Clone(r.p.Sentiment.Negative),
	}
}

// Decision returns a copy of the final recommendation
func (r *RiskReport) Decision() Decision {
	d := r.p.Decision
	d.Rationale = slices.Clone(d.Rationale)
	return d
}

type moneyJSON struct {
	Amount  string `json:"amount"`
	Symbol  string `json:"symbol"`
	Unit    string `json:"unit,omitempty"`
	Display string `json:"display"`
}

func newMoneyJSON(m Money) moneyJSON {
	return moneyJSON{
		Amount:  m.Amount.String(),
		Symbol:  m.Symbol,
		Unit:    m.Unit,
		Display: m.String(),
	}
}

type diagnosticJSON struct {
	Value          float64 `json:"value"`
	Progress       float64 `json:"progress"`
	Benchmark      string  `json:"benchmark,omitempty"`
	Interpretation string  `json:"interpretation,omitempty"`
}

type factorJSON struct {
	Category string  `json:"category"`
	Score    float64 `json:"score"`
	Weight   float64 `json:"weight"`
}

type reportJSON struct {
	Lender       string    `json:"lender,omitempty"`
	ModelName    string    `json:"model_name,omitempty"`
	Borrower     string    `json:"borrower"`
	Industry     string    `json:"industry"`
	LoanAmount   moneyJSON `json:"loan_amount"`
	FacilityType string    `json:"facility_type"`
	Analyst      string    `json:"analyst"`
	ReportDate   string    `json:"report_date"`

	CreditScore    int    `json:"credit_score"`
	ScoreReference int    `json:"score_reference"`
	Band           string `json:"band"`

	RiskRating struct {
		Label       string `json:"label"`
		Description string `json:"description,omitempty"`
		Trend       string `json:"trend"`
	} `json:"risk_rating"`
	ProbabilityOfDefault struct {
		Percent float64 `json:"percent"`
		Delta   float64 `json:"delta"`
	} `json:"probability_of_default_12m"`
	RecommendedCreditLimit struct {
		moneyJSON
		Note string `json:"note,omitempty"`
	} `json:"recommended_credit_limit"`
	Summary string `json:"summary,omitempty"`

	Factors []factorJSON `json:"factors"`

	AltmanZ    diagnosticJSON `json:"altman_z_score"`
	OhlsonO    diagnosticJSON `json:"ohlson_o_score"`
	PiotroskiF diagnosticJSON `json:"piotroski_f_score"`

	Sentiment struct {
		Positive []string `json:"positive"`
		Neutral  []string `json:"neutral"`
		Negative []string `json:"negative"`
	} `json:"sentiment_signals"`

	Verdict struct {
		Decision       string   `json:"decision"`
		Recommendation string   `json:"recommendation,omitempty"`
		Rationale      []string `json:"rationale"`
	} `json:"verdict"`
}

// MarshalJSON encodes the report with snake_case keys and the report date as YYYY-MM-DD
func (r *RiskReport) MarshalJSON() ([]byte, error) {
	var out reportJSON
	out.Lender = r.p.Lender
	out.ModelName = r.p.ModelName
	out.Borrower = r.p.Borrower
	out.Industry = r.p.Industry
	out.LoanAmount = newMoneyJSON(r.p.LoanAmount)
	out.FacilityType = r.p.FacilityType
	out.Analyst = r.p.Analyst
	if !r.p.ReportDate.IsZero() {
		out.ReportDate = r.p.ReportDate.Format(time.DateOnly)
	}

	out.CreditScore = r.p.CreditScore
	out.ScoreReference = r.p.ScoreReference
	out.Band = r.Band().String()

	out.RiskRating.Label = r.p.Rating.Label.String()
	out.RiskRating.Description = r.p.Rating.Description
	out.RiskRating.Trend = r.p.Rating.Trend.String()
	out.ProbabilityOfDefault.Percent = r.p.DefaultProbability.Percent
	out.ProbabilityOfDefault.Delta = r.p.DefaultProbability.Delta
	out.RecommendedCreditLimit.moneyJSON = newMoneyJSON(r.p.CreditLimit.Amount)
	out.RecommendedCreditLimit.Note = r.p.CreditLimit.Note
	out.Summary = r.p.Summary

	out.Factors = make([]factorJSON, len(r.p.Factors))
	for i, f := range r.p.Factors {
		out.Factors[i] = factorJSON{Category: f.Category, Score: f.Score, Weight: f.Weight}
	}

	out.AltmanZ = diagnosticJSON(r.p.AltmanZ)
	out.OhlsonO = diagnosticJSON(r.p.OhlsonO)
	out.PiotroskiF = diagnosticJSON{
		Value:          float64(r.p.PiotroskiF.Value),
		Progress:       r.p.PiotroskiF.Progress(),
		Benchmark:      r.p.PiotroskiF.Benchmark,
		Interpretation: r.p.PiotroskiF.Interpretation,
	}

	out.Sentiment.Positive = nonNil(r.p.Sentiment.Positive)
	out.Sentiment.Neutral = nonNil(r.p.Sentiment.Neutral)
	out.Sentiment.Negative = nonNil(r.p.Sentiment.Negative)

	out.Verdict.Decision = r.p.Decision.Verdict.String()
	out.Verdict.Recommendation = r.p.Decision.Recommendation
	out.Verdict.Rationale = nonNil(r.p.Decision.Rationale)

	return json.Marshal(out)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
