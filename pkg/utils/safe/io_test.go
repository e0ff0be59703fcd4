package safe_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"syscall"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskcard/pkg/utils/logging"
	"github.com/secmon-lab/riskcard/pkg/utils/safe"
)

type brokenCloser struct{}

func (brokenCloser) Close() error { return errors.New("already closed") }

type failingWriter struct {
	n   int
	err error
}

func (w failingWriter) Write([]byte) (int, error) { return w.n, w.err }

func newLogContext(ctx context.Context) (context.Context, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logging.With(ctx, logger), &buf
}

func TestClose(t *testing.T) {
	ctx, log := newLogContext(t.Context())

	safe.Close(ctx, nil)
	gt.Number(t, log.Len()).Equal(0)

	safe.Close(ctx, brokenCloser{})
	gt.S(t, log.String()).Contains("already closed")
	gt.S(t, log.String()).Contains("safe_test.brokenCloser")
}

func TestWrite(t *testing.T) {
	t.Run("success writes the body silently", func(t *testing.T) {
		ctx, log := newLogContext(t.Context())
		var out bytes.Buffer
		safe.Write(ctx, &out, []byte("riskcard"))
		gt.Value(t, out.String()).Equal("riskcard")
		gt.Number(t, log.Len()).Equal(0)
	})

	t.Run("write failure is a warning", func(t *testing.T) {
		ctx, log := newLogContext(t.Context())
		safe.Write(ctx, failingWriter{err: errors.New("disk full")}, []byte("riskcard"))
		gt.S(t, log.String()).Contains("level=WARN")
		gt.S(t, log.String()).Contains("disk full")
	})

	t.Run("short write is a warning", func(t *testing.T) {
		ctx, log := newLogContext(t.Context())
		safe.Write(ctx, failingWriter{n: 3}, []byte("riskcard"))
		gt.S(t, log.String()).Contains("short write")
		gt.S(t, log.String()).Contains("written=3")
	})

	t.Run("broken pipe is a debug line", func(t *testing.T) {
		ctx, log := newLogContext(t.Context())
		err := fmt.Errorf("write tcp: %w", syscall.EPIPE)
		safe.Write(ctx, failingWriter{err: err}, []byte("riskcard"))
		gt.S(t, log.String()).Contains("level=DEBUG")
		gt.S(t, log.String()).NotContains("level=WARN")
	})

	t.Run("cancelled request is a debug line", func(t *testing.T) {
		parent, cancel := context.WithCancel(t.Context())
		cancel()
		ctx, log := newLogContext(parent)
		safe.Write(ctx, failingWriter{err: errors.New("i/o timeout")}, []byte("riskcard"))
		gt.S(t, log.String()).Contains("peer disconnected")
	})
}
