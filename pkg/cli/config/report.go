package config

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/riskcard/pkg/domain/model"
	"github.com/secmon-lab/riskcard/pkg/domain/types"
	"github.com/secmon-lab/riskcard/pkg/service/source"
	"github.com/secmon-lab/riskcard/pkg/utils/logging"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// ReportFile is the on-disk shape of a report definition. The same field
// names are used for TOML, YAML and JSON.
type ReportFile struct {
	Lender    string `toml:"lender" yaml:"lender" json:"lender"`
	PageTitle string `toml:"page_title" yaml:"page_title" json:"page_title"`
	ModelName string `toml:"model_name" yaml:"model_name" json:"model_name"`
	LogoURL   string `toml:"logo_url" yaml:"logo_url" json:"logo_url"`

	Borrower BorrowerFile `toml:"borrower" yaml:"borrower" json:"borrower"`

	CreditScore    int `toml:"credit_score" yaml:"credit_score" json:"credit_score"`
	ScoreReference int `toml:"score_reference" yaml:"score_reference" json:"score_reference"`

	RiskRating             RatingFile      `toml:"risk_rating" yaml:"risk_rating" json:"risk_rating"`
	ProbabilityOfDefault   PDFile          `toml:"probability_of_default_12m" yaml:"probability_of_default_12m" json:"probability_of_default_12m"`
	RecommendedCreditLimit CreditLimitFile `toml:"recommended_credit_limit" yaml:"recommended_credit_limit" json:"recommended_credit_limit"`
	Summary                string          `toml:"summary" yaml:"summary" json:"summary"`

	Factors []FactorFile `toml:"factors" yaml:"factors" json:"factors"`

	AltmanZ    DiagnosticFile `toml:"altman_z_score" yaml:"altman_z_score" json:"altman_z_score"`
	OhlsonO    DiagnosticFile `toml:"ohlson_o_score" yaml:"ohlson_o_score" json:"ohlson_o_score"`
	PiotroskiF PiotroskiFile  `toml:"piotroski_f_score" yaml:"piotroski_f_score" json:"piotroski_f_score"`

	Sentiment SentimentFile `toml:"sentiment_signals" yaml:"sentiment_signals" json:"sentiment_signals"`
	Verdict   VerdictFile   `toml:"verdict" yaml:"verdict" json:"verdict"`
}

type BorrowerFile struct {
	Name         string    `toml:"name" yaml:"name" json:"name"`
	Industry     string    `toml:"industry" yaml:"industry" json:"industry"`
	LoanAmount   MoneyFile `toml:"loan_amount" yaml:"loan_amount" json:"loan_amount"`
	FacilityType string    `toml:"facility_type" yaml:"facility_type" json:"facility_type"`
	Analyst      string    `toml:"analyst" yaml:"analyst" json:"analyst"`
	ReportDate   string    `toml:"report_date" yaml:"report_date" json:"report_date"`
}

// MoneyFile holds an amount as a decimal string so that no precision is lost
// in float parsing
type MoneyFile struct {
	Amount string `toml:"amount" yaml:"amount" json:"amount"`
	Symbol string `toml:"symbol" yaml:"symbol" json:"symbol"`
	Unit   string `toml:"unit" yaml:"unit" json:"unit"`
}

type CreditLimitFile struct {
	Amount string `toml:"amount" yaml:"amount" json:"amount"`
	Symbol string `toml:"symbol" yaml:"symbol" json:"symbol"`
	Unit   string `toml:"unit" yaml:"unit" json:"unit"`
	Note   string `toml:"note" yaml:"note" json:"note"`
}

type RatingFile struct {
	Label       string `toml:"label" yaml:"label" json:"label"`
	Description string `toml:"description" yaml:"description" json:"description"`
	Trend       string `toml:"trend" yaml:"trend" json:"trend"`
}

type PDFile struct {
	Percent float64 `toml:"percent" yaml:"percent" json:"percent"`
	Delta   float64 `toml:"delta" yaml:"delta" json:"delta"`
}

type FactorFile struct {
	Category string  `toml:"category" yaml:"category" json:"category"`
	Score    float64 `toml:"score" yaml:"score" json:"score"`
	Weight   float64 `toml:"weight" yaml:"weight" json:"weight"`
}

type DiagnosticFile struct {
	Value          float64 `toml:"value" yaml:"value" json:"value"`
	Progress       float64 `toml:"progress" yaml:"progress" json:"progress"`
	Benchmark      string  `toml:"benchmark" yaml:"benchmark" json:"benchmark"`
	Interpretation string  `toml:"interpretation" yaml:"interpretation" json:"interpretation"`
}

type PiotroskiFile struct {
	Value          int    `toml:"value" yaml:"value" json:"value"`
	Benchmark      string `toml:"benchmark" yaml:"benchmark" json:"benchmark"`
	Interpretation string `toml:"interpretation" yaml:"interpretation" json:"interpretation"`
}

type SentimentFile struct {
	Positive []string `toml:"positive" yaml:"positive" json:"positive"`
	Neutral  []string `toml:"neutral" yaml:"neutral" json:"neutral"`
	Negative []string `toml:"negative" yaml:"negative" json:"negative"`
}

type VerdictFile struct {
	Decision       string   `toml:"decision" yaml:"decision" json:"decision"`
	Recommendation string   `toml:"recommendation" yaml:"recommendation" json:"recommendation"`
	Rationale      []string `toml:"rationale" yaml:"rationale" json:"rationale"`
}

func invalidFile(msg, field string, value any) error {
	return goerr.Wrap(ErrInvalidReportFile, msg, goerr.V(FieldKey, field), goerr.V(ValueKey, value))
}

// Validate checks the parts of the file that must be parsed before a
// report can be built: dates and decimal amounts. Every report invariant,
// including required names and enumerations, is left to
// model.NewRiskReport so that it fails with model.ErrInvalidReport whatever
// the input source is.
func (f *ReportFile) Validate() error {
	if f.Borrower.ReportDate != "" {
		if _, err := time.Parse(time.DateOnly, f.Borrower.ReportDate); err != nil {
			return invalidFile("borrower.report_date must be YYYY-MM-DD", "borrower.report_date", f.Borrower.ReportDate)
		}
	}
	if _, err := decimal.NewFromString(f.Borrower.LoanAmount.Amount); err != nil {
		return invalidFile("borrower.loan_amount.amount must be a decimal string", "borrower.loan_amount.amount", f.Borrower.LoanAmount.Amount)
	}
	if _, err := decimal.NewFromString(f.RecommendedCreditLimit.Amount); err != nil {
		return invalidFile("recommended_credit_limit.amount must be a decimal string", "recommended_credit_limit.amount", f.RecommendedCreditLimit.Amount)
	}
	return nil
}

// Params converts the file into domain construction parameters. Validate
// must have succeeded.
func (f *ReportFile) Params() (model.ReportParams, error) {
	loan, err := model.NewMoney(f.Borrower.LoanAmount.Amount, f.Borrower.LoanAmount.Symbol, f.Borrower.LoanAmount.Unit)
	if err != nil {
		return model.ReportParams{}, goerr.Wrap(err, "failed to parse loan amount")
	}
	limit, err := model.NewMoney(f.RecommendedCreditLimit.Amount, f.RecommendedCreditLimit.Symbol, f.RecommendedCreditLimit.Unit)
	if err != nil {
		return model.ReportParams{}, goerr.Wrap(err, "failed to parse credit limit")
	}

	var reportDate time.Time
	if f.Borrower.ReportDate != "" {
		reportDate, err = time.Parse(time.DateOnly, f.Borrower.ReportDate)
		if err != nil {
			return model.ReportParams{}, goerr.Wrap(err, "failed to parse report date")
		}
	}

	factors := make([]model.Factor, len(f.Factors))
	for i, factor := range f.Factors {
		factors[i] = model.Factor{Category: factor.Category, Score: factor.Score, Weight: factor.Weight}
	}

	return model.ReportParams{
		Lender:    f.Lender,
		PageTitle: f.PageTitle,
		ModelName: f.ModelName,
		LogoURL:   f.LogoURL,

		Borrower:     f.Borrower.Name,
		Industry:     f.Borrower.Industry,
		LoanAmount:   loan,
		FacilityType: f.Borrower.FacilityType,
		Analyst:      f.Borrower.Analyst,
		ReportDate:   reportDate,

		CreditScore:    f.CreditScore,
		ScoreReference: f.ScoreReference,

		Rating: model.RiskRating{
			Label:       types.RatingLabel(f.RiskRating.Label),
			Description: f.RiskRating.Description,
			Trend:       types.Trend(f.RiskRating.Trend),
		},
		DefaultProbability: model.DefaultProbability{
			Percent: f.ProbabilityOfDefault.Percent,
			Delta:   f.ProbabilityOfDefault.Delta,
		},
		CreditLimit: model.CreditLimit{Amount: limit, Note: f.RecommendedCreditLimit.Note},
		Summary:     f.Summary,

		Factors: factors,

		AltmanZ:    model.Diagnostic(f.AltmanZ),
		OhlsonO:    model.Diagnostic(f.OhlsonO),
		PiotroskiF: model.PiotroskiScore(f.PiotroskiF),

		Sentiment: model.Sentiment(f.Sentiment),
		Decision: model.Decision{
			Verdict:        types.Verdict(f.Verdict.Decision),
			Recommendation: f.Verdict.Recommendation,
			Rationale:      f.Verdict.Rationale,
		},
	}, nil
}

// ToDomain validates the file and builds the immutable report
func (f *ReportFile) ToDomain() (*model.RiskReport, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	params, err := f.Params()
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidReportFile, "failed to convert report file", goerr.V("cause", err.Error()))
	}
	report, err := model.NewRiskReport(params)
	if err != nil {
		return nil, goerr.Wrap(err, "report file violates report invariants")
	}
	return report, nil
}

// DecodeReport parses a report definition in the given format. Unknown keys
// are rejected so that typos surface as errors.
func DecodeReport(data []byte, format source.Format) (*ReportFile, error) {
	var f ReportFile
	switch format {
	case source.FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, goerr.Wrap(ErrInvalidReportFile, "failed to decode TOML report",
				goerr.V(FormatKey, format), goerr.V("cause", err.Error()))
		}

	case source.FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, goerr.Wrap(ErrInvalidReportFile, "failed to decode YAML report",
				goerr.V(FormatKey, format), goerr.V("cause", err.Error()))
		}

	case source.FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, goerr.Wrap(ErrInvalidReportFile, "failed to decode JSON report",
				goerr.V(FormatKey, format), goerr.V("cause", err.Error()))
		}

	default:
		return nil, goerr.Wrap(ErrUnsupportedFormat, "unknown report format", goerr.V(FormatKey, format))
	}
	return &f, nil
}

// LoadReport reads, decodes and validates the report definition at location
func LoadReport(ctx context.Context, location string, opts ...source.Option) (*model.RiskReport, error) {
	data, format, err := source.Read(ctx, location, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read report definition", goerr.V(ReportPathKey, location))
	}

	f, err := DecodeReport(data, format)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode report definition", goerr.V(ReportPathKey, location))
	}

	report, err := f.ToDomain()
	if err != nil {
		return nil, goerr.Wrap(err, "invalid report definition", goerr.V(ReportPathKey, location))
	}
	return report, nil
}

// Report is the flag group selecting the report definition
type Report struct {
	path           string
	gcsCredentials string
}

func (x *Report) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "report",
			Usage:       "Report definition file (.toml, .yaml, .yml or .json), local path or gs://bucket/object. The built-in example is used when omitted",
			Category:    "Report",
			Destination: &x.path,
			Sources:     cli.EnvVars("RISKCARD_REPORT"),
		},
		&cli.StringFlag{
			Name:        "gcs-credentials",
			Usage:       "Service account key file for gs:// report locations (default: Application Default Credentials)",
			Category:    "Report",
			Destination: &x.gcsCredentials,
			Sources:     cli.EnvVars("RISKCARD_GCS_CREDENTIALS"),
		},
	}
}

func (x Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", x.path),
		slog.Bool("gcs_credentials", x.gcsCredentials != ""),
	)
}

// Path returns the configured report location, empty for the built-in example
func (x *Report) Path() string {
	return x.path
}

// Configure loads the configured report, or the built-in example when no
// location is set
func (x *Report) Configure(ctx context.Context) (*model.RiskReport, error) {
	if x.path == "" {
		logging.From(ctx).Info("No report definition given, using built-in example")
		return model.ExampleReport(), nil
	}

	return LoadReport(ctx, x.path, source.WithCredentialsFile(x.gcsCredentials))
}
