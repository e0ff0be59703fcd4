package cli

import (
	"bytes"
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcard/pkg/cli/config"
	"github.com/secmon-lab/riskcard/pkg/service/render"
	"github.com/secmon-lab/riskcard/pkg/usecase"
	"github.com/secmon-lab/riskcard/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdRender() *cli.Command {
	var output string
	var format string
	var reportCfg config.Report

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output file ('-' for stdout)",
			Value:       "-",
			Sources:     cli.EnvVars("RISKCARD_OUTPUT"),
			Destination: &output,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "Output format [html|json]",
			Value:       string(render.FormatHTML),
			Sources:     cli.EnvVars("RISKCARD_FORMAT"),
			Destination: &format,
		},
	}
	flags = append(flags, reportCfg.Flags()...)

	return &cli.Command{
		Name:    "render",
		Aliases: []string{"r"},
		Usage:   "Render the score card as a static document",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			report, err := reportCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to load report")
			}

			var buf bytes.Buffer
			if err := usecase.New(report).Render(ctx, &buf, f); err != nil {
				return err
			}

			if output == "-" {
				if _, err := c.Root().Writer.Write(buf.Bytes()); err != nil {
					return goerr.Wrap(err, "failed to write document to stdout")
				}
				return nil
			}

			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return goerr.Wrap(err, "failed to write document", goerr.V("path", output))
			}
			logging.Default().Info("Document written",
				"path", output,
				"format", f,
				"size", buf.Len(),
			)
			return nil
		},
	}
}
