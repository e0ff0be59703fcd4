package safe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"syscall"

	"github.com/secmon-lab/riskcard/pkg/utils/logging"
)

// Close closes closer and logs a failure instead of returning it. A nil
// closer is ignored.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Warn("failed to close",
			slog.String("resource", fmt.Sprintf("%T", closer)),
			slog.Any("error", err),
		)
	}
}

// Write sends a fully rendered body to w. A peer that went away is only
// worth a debug line; any other failure, including a short write, is a
// warning.
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}

	n, err := w.Write(data)
	switch {
	case err != nil && isDisconnect(ctx, err):
		logging.From(ctx).Debug("peer disconnected before the body was written",
			slog.Int("written", n), slog.Int("size", len(data)))
	case err != nil:
		logging.From(ctx).Warn("failed to write",
			slog.Any("error", err), slog.Int("written", n), slog.Int("size", len(data)))
	case n < len(data):
		logging.From(ctx).Warn("short write",
			slog.Int("written", n), slog.Int("size", len(data)))
	}
}

func isDisconnect(ctx context.Context, err error) bool {
	return ctx.Err() != nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, syscall.ECONNRESET)
}
