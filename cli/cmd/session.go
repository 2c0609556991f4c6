package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/litcalc/backend"
	"github.com/ardnew/litcalc/backend/calc"
	"github.com/ardnew/litcalc/backend/starlark"
	"github.com/ardnew/litcalc/literate"
	"github.com/ardnew/litcalc/log"
)

// PreludeStatement loads the standard module of either backend.
const PreludeStatement = "use prelude"

// Backend names accepted by --backend.
const (
	BackendCalc     = "calc"
	BackendStarlark = "starlark"
)

// Session holds the flags that configure the interpreter used by eval and
// repl.
type Session struct {
	Backend    string   `default:"calc" enum:"calc,starlark" help:"Evaluation backend (${enum})."                           short:"b"`
	Prelude    bool     `default:"true"                      help:"Load the prelude module before reading input."                      negatable:""`
	ModulePath []string `                                    help:"Directories searched by 'use' before embedded modules." placeholder:"DIR" type:"path"`
	Keyword    string   `default:"let "                      help:"Prefix that marks a binding statement."`
}

// Interpreter creates a fresh interpreter for the selected backend.
func (s *Session) Interpreter(logger log.Logger) (backend.Interpreter, error) {
	dirs := backend.SearchPath(s.ModulePath...)

	switch s.Backend {
	case BackendCalc, "":
		return calc.New(calc.WithSearchPath(dirs...), calc.WithLogger(logger)), nil

	case BackendStarlark:
		return starlark.New(
			starlark.WithSearchPath(dirs...),
			starlark.WithLogger(logger),
		), nil

	default:
		return nil, ErrBackend.With(slog.String("backend", s.Backend))
	}
}

// Evaluator creates an interpreter and wraps it in an evaluator, loading
// the prelude unless disabled.
func (s *Session) Evaluator(
	ctx context.Context,
	logger log.Logger,
) (*literate.Evaluator, error) {
	interp, err := s.Interpreter(logger)
	if err != nil {
		return nil, err
	}

	ev := literate.NewEvaluator(interp,
		literate.WithKeyword(s.Keyword),
		literate.WithLogger(logger),
	)

	if s.Prelude {
		if err := ev.Bootstrap(ctx, PreludeStatement); err != nil {
			return nil, err
		}
	}

	logger.DebugContext(ctx, "session ready",
		slog.String("backend", s.Backend),
		slog.Bool("prelude", s.Prelude),
	)

	return ev, nil
}
