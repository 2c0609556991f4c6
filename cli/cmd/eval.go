package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/litcalc/literate"
	"github.com/ardnew/litcalc/log"
	"github.com/ardnew/litcalc/source"
)

// Eval evaluates the marked lines of one or more documents.
type Eval struct {
	Files  []string `arg:""       help:"Documents to evaluate, or '-' for stdin." name:"file" optional:""`
	Marker string   `default:"#=" help:"Token that closes a statement."                        short:"m"`
	Strict bool     `             help:"Fail if the input ends inside a statement."`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context, s *Session) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	stdio := StdioFrom(ctx)
	logger := log.Default()

	files := e.Files
	if len(files) == 0 {
		files = []string{source.Stdin}
	}

	set, err := source.Open(files, stdio.In)
	if err != nil {
		return literate.ErrSource.Wrap(err)
	}

	defer func() { _ = set.Close() }()

	ev, err := s.Evaluator(ctx, logger)
	if err != nil {
		return err
	}

	engine := literate.New(ev,
		literate.WithMarker(e.Marker),
		literate.WithStrict(e.Strict),
		literate.WithLogger(logger),
	)

	stats, err := engine.Run(ctx, set.Lines(), stdio.Out)
	if err != nil {
		return err
	}

	logger.DebugContext(ctx, "eval complete",
		slog.Any("sources", set.Names()),
		slog.Int("lines", stats.Lines),
		slog.Int("flushes", stats.Flushes),
		slog.Int("calls", ev.Calls()),
	)

	return nil
}
