package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcard/pkg/cli/config"
	"github.com/secmon-lab/riskcard/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var reportCfg config.Report

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a report definition",
		Flags:   reportCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			report, err := reportCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "report validation failed", goerr.V("report", reportCfg.Path()))
			}

			logger.Info("Report validation passed",
				"report", reportCfg.Path(),
				"borrower", report.Borrower(),
				"credit_score", report.CreditScore(),
				"band", report.Band(),
				"factor_count", len(report.Factors()),
				"verdict", report.Decision().Verdict,
			)
			return nil
		},
	}
}
