package cli

import (
	"context"
	"io"
)

// RunWithWriter runs the CLI with command output sent to w
func RunWithWriter(ctx context.Context, args []string, w io.Writer) error {
	return run(ctx, args, "test", w, io.Discard)
}

// RunWithWriters also captures errors reported before logging is configured
func RunWithWriters(ctx context.Context, args []string, w, errW io.Writer) error {
	return run(ctx, args, "test", w, errW)
}

// PrintSummary is exported for testing
var PrintSummary = printSummary
