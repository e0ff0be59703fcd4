package errutil

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskcard/pkg/utils/logging"
)

// Handle logs the error with goerr values and stacks and forwards it to
// Sentry when a client is configured. It returns err unchanged.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logError(ctx, msg, err)
	capture(ctx, err)
	return err
}

// HandleHTTP logs the error and writes a plain text error response.
// 5xx errors are also sent to Sentry; the internal message is not exposed
// to the client for them.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logError(ctx, "HTTP error", err, slog.Int("status", statusCode))

	if statusCode >= http.StatusInternalServerError {
		capture(ctx, err)
		http.Error(w, http.StatusText(statusCode), statusCode)
		return
	}
	http.Error(w, err.Error(), statusCode)
}

func logError(ctx context.Context, msg string, err error, attrs ...any) {
	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		attrs = append(attrs,
			slog.String("error", err.Error()),
			slog.Any("values", ge.Values()),
			slog.Any("stack", ge.Stacks()),
		)
	} else {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	logger.Error(msg, attrs...)
}

func capture(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	var ge *goerr.Error
	if errors.As(err, &ge) {
		hub.WithScope(func(scope *sentry.Scope) {
			scope.SetContext("goerr", sentry.Context(ge.Values()))
			hub.CaptureException(err)
		})
		return
	}
	hub.CaptureException(err)
}
