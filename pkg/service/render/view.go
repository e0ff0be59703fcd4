package render

import (
	"html/template"

	"github.com/secmon-lab/riskcard/pkg/domain/model"
	"github.com/secmon-lab/riskcard/pkg/domain/types"
)

// DocumentTitle is the heading of every rendered card
const DocumentTitle = "AI-Based Credit Score Card"

type metricCard struct {
	Label string
	Value string
	Delta string
	Tone  tone
}

type factorRow struct {
	Category     string
	Score        string
	Weight       string
	Contribution string
}

type diagnosticTile struct {
	Name           string
	Value          string
	Progress       template.HTML
	ProgressLabel  string
	Benchmark      string
	Interpretation string
}

type signalGroup struct {
	Label   string
	Tone    string
	Signals []string
}

type verdictBanner struct {
	Class          string
	Icon           string
	Heading        string
	Recommendation string
	Rationale      []string
}

// page is the fully formatted document model; the template only prints it
type page struct {
	Title     string
	Heading   string
	ModelName string
	Style     template.CSS

	Lender       string
	LogoURL      string
	Borrower     string
	Industry     string
	LoanAmount   string
	FacilityType string
	Analyst      string
	ReportDate   string

	Gauge     template.HTML
	BandLabel string
	BandClass string
	Metrics   []metricCard
	Summary   string

	Radar   template.HTML
	Bars    template.HTML
	Factors []factorRow

	ValueClass  string
	Diagnostics []diagnosticTile

	Sentiment []signalGroup

	Verdict verdictBanner
}

func ratingValue(r model.RiskRating) string {
	if r.Description == "" {
		return r.Label.String()
	}
	return r.Label.String() + " (" + r.Description + ")"
}

func trendTone(t types.Trend) tone {
	switch t {
	case types.TrendImproving:
		return toneGood
	case types.TrendDeclining:
		return toneBad
	default:
		return toneNeutral
	}
}

func trendDelta(t types.Trend) string {
	switch t {
	case types.TrendImproving:
		return "▲ " + t.Label()
	case types.TrendDeclining:
		return "▼ " + t.Label()
	default:
		return "● " + t.Label()
	}
}

func verdictClass(v types.Verdict) string {
	switch v {
	case types.VerdictApproved:
		return "approved"
	case types.VerdictRejected:
		return "rejected"
	default:
		return "conditional"
	}
}

func newPage(r *model.RiskReport) *page {
	title := r.PageTitle()
	if title == "" {
		title = DocumentTitle
	}

	band := r.Band()
	pd := r.DefaultProbability()
	limit := r.CreditLimit()
	rating := r.RiskRating()

	p := &page{
		Title:     title,
		Heading:   DocumentTitle,
		ModelName: r.ModelName(),
		Style:     template.CSS(stylesheet), // #nosec G203 -- embedded asset

		Lender:       r.Lender(),
		LogoURL:      r.LogoURL(),
		Borrower:     r.Borrower(),
		Industry:     r.Industry(),
		LoanAmount:   r.LoanAmount().String(),
		FacilityType: r.FacilityType(),
		Analyst:      r.Analyst(),
		ReportDate:   formatDate(r.ReportDate()),

		Gauge:     gaugeChart(r.CreditScore(), r.ScoreReference()),
		BandLabel: band.Label(),
		BandClass: band.String(),
		Metrics: []metricCard{
			{
				Label: "Risk Rating",
				Value: ratingValue(rating),
				Delta: trendDelta(rating.Trend),
				Tone:  trendTone(rating.Trend),
			},
			{
				Label: "Prob. of Default (12M)",
				Value: formatPercent(pd.Percent),
				Delta: arrow(pd.Delta) + " " + formatSigned(pd.Delta) + "%",
				Tone:  deltaTone(pd.Delta, true),
			},
			{
				Label: "Credit Limit Rec.",
				Value: limit.Amount.String(),
				Delta: limit.Note,
				Tone:  toneGood,
			},
		},
		Summary: r.Summary(),

		ValueClass: band.String(),
	}

	factors := r.Factors()
	p.Radar = radarChart(factors)
	p.Bars = barChart(factors)
	for _, f := range factors {
		p.Factors = append(p.Factors, factorRow{
			Category:     f.Category,
			Score:        formatNumber(f.Score),
			Weight:       formatPercent(f.Weight),
			Contribution: formatNumber(f.Contribution()),
		})
	}

	altman, ohlson, piotroski := r.AltmanZ(), r.OhlsonO(), r.PiotroskiF()
	p.Diagnostics = []diagnosticTile{
		newDiagnosticTile("Altman Z-Score", formatNumber(altman.Value), altman.Progress, altman.Benchmark, altman.Interpretation),
		newDiagnosticTile("Ohlson O-Score", formatNumber(ohlson.Value), ohlson.Progress, ohlson.Benchmark, ohlson.Interpretation),
		newDiagnosticTile("Piotroski F-Score", formatPiotroski(piotroski.Value), piotroski.Progress(), piotroski.Benchmark, piotroski.Interpretation),
	}

	sentiment := r.Sentiment()
	for _, t := range types.AllSignalTones() {
		p.Sentiment = append(p.Sentiment, signalGroup{
			Label:   t.Label() + " (" + t.Symbol() + ")",
			Tone:    t.String(),
			Signals: sentiment.Signals(t),
		})
	}

	decision := r.Decision()
	p.Verdict = verdictBanner{
		Class:          verdictClass(decision.Verdict),
		Icon:           decision.Verdict.Icon(),
		Heading:        decision.Verdict.Banner(),
		Recommendation: decision.Recommendation,
		Rationale:      decision.Rationale,
	}

	return p
}

func newDiagnosticTile(name, value string, progress float64, benchmark, interpretation string) diagnosticTile {
	return diagnosticTile{
		Name:           name,
		Value:          value,
		Progress:       progressBar(progress),
		ProgressLabel:  formatProgress(progress),
		Benchmark:      benchmark,
		Interpretation: interpretation,
	}
}

func formatPiotroski(v int) string {
	return formatNumber(float64(v)) + " / " + formatNumber(model.PiotroskiMax)
}
