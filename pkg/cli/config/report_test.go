package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskcard/pkg/cli/config"
	"github.com/secmon-lab/riskcard/pkg/domain/model"
	"github.com/secmon-lab/riskcard/pkg/domain/types"
	"github.com/secmon-lab/riskcard/pkg/service/source"
)

func TestLoadReport(t *testing.T) {
	t.Run("toml example matches built-in example", func(t *testing.T) {
		report, err := config.LoadReport(t.Context(), "testdata/report.toml")
		gt.NoError(t, err).Required()

		want := model.ExampleReport()
		gt.Value(t, report.Borrower()).Equal(want.Borrower())
		gt.Value(t, report.CreditScore()).Equal(want.CreditScore())
		gt.Value(t, report.Factors()).Equal(want.Factors())
		gt.Value(t, report.Decision()).Equal(want.Decision())
		gt.Value(t, report.Sentiment()).Equal(want.Sentiment())
		gt.Value(t, report.ReportDate()).Equal(want.ReportDate())
		gt.Value(t, report.LoanAmount().String()).Equal("₹3.3 Crores")
		gt.Value(t, report.CreditLimit().Amount.String()).Equal("₹3,500 Cr")
	})

	t.Run("yaml conditional report", func(t *testing.T) {
		report, err := config.LoadReport(t.Context(), "testdata/conditional.yaml")
		gt.NoError(t, err).Required()

		gt.Value(t, report.Band()).Equal(types.RiskBandYellow)
		gt.Value(t, report.Decision().Verdict).Equal(types.VerdictConditional)
		gt.Value(t, report.RiskRating().Trend).Equal(types.TrendDeclining)
		gt.A(t, report.Factors()).Length(3)
	})

	t.Run("json report with bad weights", func(t *testing.T) {
		_, err := config.LoadReport(t.Context(), "testdata/bad_weights.json")
		gt.Error(t, err).Is(model.ErrInvalidReport)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.LoadReport(t.Context(), "testdata/missing.toml")
		gt.Error(t, err).Is(config.ErrReportNotFound)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := config.LoadReport(t.Context(), "testdata/report.xml")
		gt.Error(t, err).Is(config.ErrUnsupportedFormat)
	})
}

func TestDecodeReport_UnknownField(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format source.Format
	}{
		{"toml", "credit_scor = 985\n", source.FormatTOML},
		{"yaml", "credit_scor: 985\n", source.FormatYAML},
		{"json", `{"credit_scor": 985}`, source.FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.DecodeReport([]byte(tt.data), tt.format)
			gt.Error(t, err).Is(config.ErrInvalidReportFile)
		})
	}
}

func TestReportFile_Validate(t *testing.T) {
	base := func() *config.ReportFile {
		data, err := os.ReadFile("testdata/report.toml")
		gt.NoError(t, err).Required()
		f, err := config.DecodeReport(data, source.FormatTOML)
		gt.NoError(t, err).Required()
		return f
	}

	gt.NoError(t, base().Validate())

	tests := []struct {
		name   string
		modify func(f *config.ReportFile)
		field  string
	}{
		{"bad date", func(f *config.ReportFile) { f.Borrower.ReportDate = "28/12/2025" }, "borrower.report_date"},
		{"bad loan amount", func(f *config.ReportFile) { f.Borrower.LoanAmount.Amount = "3.3 Cr" }, "borrower.loan_amount.amount"},
		{"bad limit amount", func(f *config.ReportFile) { f.RecommendedCreditLimit.Amount = "" }, "recommended_credit_limit.amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := base()
			tt.modify(f)
			err := f.Validate()
			gt.Error(t, err).Is(config.ErrInvalidReportFile)

			var goErr *goerr.Error
			gt.B(t, errors.As(err, &goErr)).True()
			gt.Value(t, goErr.Values()[config.FieldKey]).Equal(any(tt.field))
		})
	}
}

func TestReportFile_ToDomain_InvariantViolation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(f *config.ReportFile)
		field  string
	}{
		{"missing borrower", func(f *config.ReportFile) { f.Borrower.Name = "" }, "borrower"},
		{"bad trend", func(f *config.ReportFile) { f.RiskRating.Trend = "flat" }, "risk_rating.trend"},
		{"bad verdict", func(f *config.ReportFile) { f.Verdict.Decision = "yes" }, "verdict"},
		{"bad rating", func(f *config.ReportFile) { f.RiskRating.Label = "a1" }, "risk_rating"},
		{"empty category", func(f *config.ReportFile) { f.Factors[2].Category = "" }, "factors.category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := os.ReadFile("testdata/report.toml")
			gt.NoError(t, err).Required()
			f, err := config.DecodeReport(data, source.FormatTOML)
			gt.NoError(t, err).Required()
			tt.modify(f)

			gt.NoError(t, f.Validate())

			report, err := f.ToDomain()
			gt.Value(t, report).Nil()
			gt.Error(t, err).Is(model.ErrInvalidReport)
			gt.B(t, errors.Is(err, config.ErrInvalidReportFile)).False()

			var goErr *goerr.Error
			gt.B(t, errors.As(err, &goErr)).True()
			gt.Value(t, goErr.Values()[model.FieldKey]).Equal(any(tt.field))
		})
	}
}

func TestLoadReport_EmptyBorrower(t *testing.T) {
	data, err := os.ReadFile("testdata/conditional.yaml")
	gt.NoError(t, err).Required()
	data = []byte(strings.Replace(string(data), "name: Acme Fabrication Pvt Ltd", `name: ""`, 1))

	p := filepath.Join(t.TempDir(), "empty_borrower.yaml")
	gt.NoError(t, os.WriteFile(p, data, 0600)).Required()

	_, err = config.LoadReport(t.Context(), p)
	gt.Error(t, err).Is(model.ErrInvalidReport)
}

func TestReport_Configure(t *testing.T) {
	t.Run("built-in example without path", func(t *testing.T) {
		report, err := config.NewReportForTest("").Configure(t.Context())
		gt.NoError(t, err).Required()
		gt.Value(t, report.Borrower()).Equal("Maruti Suzuki India Ltd")
	})

	t.Run("local file", func(t *testing.T) {
		data, err := os.ReadFile("testdata/conditional.yaml")
		gt.NoError(t, err).Required()
		p := filepath.Join(t.TempDir(), "copy.yml")
		gt.NoError(t, os.WriteFile(p, data, 0600)).Required()

		report, err := config.NewReportForTest(p).Configure(t.Context())
		gt.NoError(t, err).Required()
		gt.Value(t, report.Borrower()).Equal("Acme Fabrication Pvt Ltd")
	})
}
