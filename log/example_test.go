package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/litcalc/log"
)

func Example_basic() {
	logger := log.Make(os.Stdout, log.WithTimeLayout("none"))
	logger.Warn("batch discarded", slog.Int("fragments", 2))
	// Output:
	// level=WARN msg="batch discarded" fragments=2
}

func Example_levels() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelTrace),
		log.WithTimeLayout(""))

	logger.Trace("flush")
	logger.Debug("evaluate")
	// Output:
	// level=TRACE msg=flush
	// level=DEBUG msg=evaluate
}

func Example_withAttributes() {
	logger := log.Make(os.Stdout, log.WithTimeLayout("none")).
		With(slog.String("source", "notes.md"))

	logger.Warn("unterminated batch")
	// Output:
	// level=WARN msg="unterminated batch" source=notes.md
}

func Example_withContext() {
	type docKey struct{}

	ctx := context.WithValue(context.Background(), docKey{}, "notes.md")

	logger := log.Make(os.Stdout, log.WithFormat(log.FormatJSON), log.WithTimeLayout("none"))
	logger.ErrorContext(ctx, "evaluation failed", slog.String("code", "1 m + 1 s"))
	// Output:
	// {"level":"ERROR","msg":"evaluation failed","code":"1 m + 1 s"}
}
