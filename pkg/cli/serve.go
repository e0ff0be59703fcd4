package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcard/pkg/cli/config"
	httpctrl "github.com/secmon-lab/riskcard/pkg/controller/http"
	"github.com/secmon-lab/riskcard/pkg/service/metrics"
	"github.com/secmon-lab/riskcard/pkg/usecase"
	"github.com/secmon-lab/riskcard/pkg/utils/logging"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func cmdServe() *cli.Command {
	var addr string
	var rateLimit float64
	var rateBurst int
	var enableMetrics bool
	var reportCfg config.Report

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("RISKCARD_ADDR"),
			Destination: &addr,
		},
		&cli.FloatFlag{
			Name:        "rate-limit",
			Usage:       "Maximum requests per second to the report routes (0 disables limiting)",
			Category:    "HTTP",
			Sources:     cli.EnvVars("RISKCARD_RATE_LIMIT"),
			Destination: &rateLimit,
		},
		&cli.IntFlag{
			Name:        "rate-burst",
			Usage:       "Burst size of the rate limiter",
			Category:    "HTTP",
			Value:       10,
			Sources:     cli.EnvVars("RISKCARD_RATE_BURST"),
			Destination: &rateBurst,
		},
		&cli.BoolFlag{
			Name:        "metrics",
			Usage:       "Expose Prometheus metrics at /metrics",
			Category:    "HTTP",
			Sources:     cli.EnvVars("RISKCARD_METRICS"),
			Destination: &enableMetrics,
		},
	}
	flags = append(flags, reportCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			report, err := reportCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to load report")
			}

			var ucOpts []usecase.Option
			httpOpts := []httpctrl.Options{
				httpctrl.WithRateLimit(rateLimit, rateBurst),
			}

			if enableMetrics {
				m, err := metrics.New(metrics.WithRuntimeCollectors())
				if err != nil {
					return goerr.Wrap(err, "failed to initialize metrics")
				}
				ucOpts = append(ucOpts, usecase.WithMetrics(m))
				httpOpts = append(httpOpts, httpctrl.WithMetrics(m, m.Handler()))
				logging.Default().Info("Prometheus metrics enabled", "path", "/metrics")
			}

			uc := usecase.New(report, ucOpts...)

			httpHandler, err := httpctrl.New(uc, httpOpts...)
			if err != nil {
				return goerr.Wrap(err, "failed to create http server")
			}
			server := &http.Server{
				Addr:              addr,
				Handler:           httpHandler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			eg, ctx := errgroup.WithContext(ctx)
			eg.Go(func() error {
				logging.Default().Info("Starting HTTP server",
					"addr", addr,
					"borrower", uc.Report().Borrower(),
					"rate_limit", rateLimit,
					"metrics", enableMetrics,
				)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "failed to start server", goerr.V("addr", addr))
				}
				return nil
			})
			eg.Go(func() error {
				<-ctx.Done()
				logging.Default().Info("Shutting down HTTP server")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			})

			return eg.Wait()
		},
	}
}
