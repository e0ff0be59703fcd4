package cli

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcard/pkg/cli/config"
	"github.com/secmon-lab/riskcard/pkg/utils/errutil"
	"github.com/secmon-lab/riskcard/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const defaultEnvFile = ".env"

// loadEnvFile exports variables from RISKCARD_ENV_FILE (default .env).
// Variables already set in the environment take precedence. A missing
// default file is not an error.
func loadEnvFile() error {
	path, explicit := os.LookupEnv("RISKCARD_ENV_FILE")
	if !explicit || path == "" {
		path = defaultEnvFile
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return nil
		}
		return goerr.Wrap(err, "failed to access env file", goerr.V("path", path))
	}

	if err := godotenv.Load(path); err != nil {
		return goerr.Wrap(err, "failed to load env file", goerr.V("path", path))
	}
	return nil
}

func Run(ctx context.Context, args []string, version string) error {
	return run(ctx, args, version, os.Stdout, os.Stderr)
}

// run executes the command line. errW receives failures that happen before
// the logger is configured.
func run(ctx context.Context, args []string, version string, w, errW io.Writer) error {
	if err := loadEnvFile(); err != nil {
		slog.New(slog.NewTextHandler(errW, nil)).Error("failed to load env file", "error", err)
		return err
	}

	var loggerCfg config.Logger
	var sentryCfg config.Sentry
	var closers []func()

	flags := loggerCfg.Flags()
	flags = append(flags, sentryCfg.Flags()...)

	app := &cli.Command{
		Name:      "riskcard",
		Usage:     "AI-based credit score card for a corporate borrower",
		Version:   version,
		Flags:     flags,
		Writer:    w,
		ErrWriter: errW,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closers = append(closers, f)

			flush, err := sentryCfg.Configure(version)
			if err != nil {
				return ctx, err
			}
			closers = append(closers, flush)

			logging.Default().Debug("Starting riskcard",
				"version", version,
				"logger", loggerCfg,
				"sentry", sentryCfg,
			)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdRender(),
			cmdValidate(),
			cmdShow(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		_ = errutil.Handle(ctx, err, "failed to run app")
		return err
	}

	return nil
}
