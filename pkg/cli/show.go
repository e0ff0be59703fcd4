package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcard/pkg/cli/config"
	"github.com/secmon-lab/riskcard/pkg/domain/model"
	"github.com/secmon-lab/riskcard/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func cmdShow() *cli.Command {
	var reportCfg config.Report

	return &cli.Command{
		Name:  "show",
		Usage: "Print a summary of the score card to the terminal",
		Flags: reportCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			report, err := reportCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to load report")
			}
			if err := printSummary(c.Root().Writer, report); err != nil {
				return goerr.Wrap(err, "failed to print summary")
			}
			return nil
		},
	}
}

func bandColor(b types.RiskBand) *color.Color {
	switch b {
	case types.RiskBandRed:
		return color.New(color.FgRed, color.Bold)
	case types.RiskBandYellow:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgGreen, color.Bold)
	}
}

func verdictColor(v types.Verdict) *color.Color {
	switch v {
	case types.VerdictApproved:
		return color.New(color.FgGreen, color.Bold)
	case types.VerdictRejected:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgYellow, color.Bold)
	}
}

func printSummary(w io.Writer, r *model.RiskReport) error {
	heading := color.New(color.Bold)
	label := color.New(color.FgHiBlack)
	band := r.Band()
	rating := r.RiskRating()
	pd := r.DefaultProbability()
	limit := r.CreditLimit()
	decision := r.Decision()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", heading.Sprint(r.Borrower()))
	if r.Industry() != "" {
		fmt.Fprintf(&sb, "%s\n", label.Sprint(r.Industry()))
	}
	sb.WriteString("\n")

	row := func(name, value string) {
		fmt.Fprintf(&sb, "%s %s\n", label.Sprintf("%-16s", name), value)
	}

	row("Loan", fmt.Sprintf("%s, %s", r.LoanAmount(), r.FacilityType()))
	row("Credit score", fmt.Sprintf("%s / %d (%+d vs %d) %s",
		bandColor(band).Sprint(r.CreditScore()), types.ScoreMax,
		r.ScoreDelta(), r.ScoreReference(),
		bandColor(band).Sprint(band.Label())))
	row("Risk rating", fmt.Sprintf("%s %s, %s", rating.Label, rating.Description, rating.Trend.Label()))
	row("Default (12M)", fmt.Sprintf("%v%% (%+v)", pd.Percent, pd.Delta))
	row("Credit limit", strings.TrimSpace(limit.Amount.String()+" "+limit.Note))
	row("Diagnostics", fmt.Sprintf("Altman Z %v, Ohlson O %v, Piotroski F %d/%d",
		r.AltmanZ().Value, r.OhlsonO().Value, r.PiotroskiF().Value, model.PiotroskiMax))

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s\n", heading.Sprint("Factors"))
	for _, f := range r.Factors() {
		fmt.Fprintf(&sb, "  %-24s %5v  weight %v%%\n", f.Category, f.Score, f.Weight)
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s %s\n", decision.Verdict.Icon(), verdictColor(decision.Verdict).Sprint(decision.Verdict.Banner()))
	if decision.Recommendation != "" {
		fmt.Fprintf(&sb, "%s\n", decision.Recommendation)
	}
	for i, line := range decision.Rationale {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, line)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
