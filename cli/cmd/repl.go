package cmd

import (
	"context"

	"github.com/ardnew/litcalc/cli/cmd/repl"
	"github.com/ardnew/litcalc/log"
)

// Repl starts an interactive session.
type Repl struct{}

// Run executes the repl command.
func (Repl) Run(ctx context.Context, s *Session) error {
	stdio := StdioFrom(ctx)

	if !repl.IsTerminal(stdio.In) {
		return repl.ErrNotTerminal
	}

	logger := log.Default()

	ev, err := s.Evaluator(ctx, logger)
	if err != nil {
		return err
	}

	var cacheDir string
	if ktx := kongContextFrom(ctx); ktx != nil {
		cacheDir = ktx.Model.Vars()[CacheIdentifier]
	}

	return repl.Run(ctx, ev, repl.Config{
		CacheDir: cacheDir,
		In:       stdio.In,
		Out:      stdio.Out,
		Logger:   logger,
	})
}
