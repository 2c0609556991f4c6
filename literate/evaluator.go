package literate

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ardnew/litcalc/backend"
)

var errNoBindingName = errors.New("binding statement has no name")

// Evaluator sends batches to one interpreter session. Bindings made by one
// batch are visible to every later batch. An Evaluator is not safe for
// concurrent use.
type Evaluator struct {
	interp backend.Interpreter
	config
	calls int
}

// NewEvaluator returns an Evaluator over interp. Only [WithKeyword] and
// [WithLogger] affect an Evaluator.
func NewEvaluator(interp backend.Interpreter, opts ...Option) *Evaluator {
	return &Evaluator{interp: interp, config: makeConfig(opts...)}
}

// Bootstrap interprets stmt as internal source, before any document text.
func (ev *Evaluator) Bootstrap(ctx context.Context, stmt string) error {
	meta, _, err := ev.interp.Interpret(ctx, stmt, backend.SourceInternal)
	if err != nil {
		return ErrBootstrap.Wrap(err).With(slog.String("statement", stmt))
	}

	ev.logger.DebugContext(ctx, "bootstrap",
		slog.String("statement", stmt),
		slog.Int("statements", meta.Statements),
	)

	return nil
}

// Evaluate interprets code with exactly one interpreter call and returns
// the rendered result.
//
// If code starts with the binding keyword, the second field of code is
// taken as the bound name and appended as a final line, so the result is
// the value of the new binding.
func (ev *Evaluator) Evaluate(ctx context.Context, code string) (string, error) {
	input, err := ev.input(code)
	if err != nil {
		return "", err
	}

	ev.calls++

	meta, v, err := ev.interp.Interpret(ctx, input, backend.SourceText)
	if err != nil {
		return "", ErrEvaluate.Wrap(err).With(slog.String("code", input))
	}

	ev.logger.TraceContext(ctx, "evaluate",
		slog.String("code", input),
		slog.Int("statements", meta.Statements),
		slog.Any("declared", meta.Declared),
	)

	if v == nil {
		return "", ErrRender.Wrap(errors.New("no value")).
			With(slog.String("code", input))
	}

	out, err := v.Render()
	if err != nil {
		return "", ErrRender.Wrap(err).With(slog.String("code", input))
	}

	return out, nil
}

func (ev *Evaluator) input(code string) (string, error) {
	if ev.keyword == "" || !strings.HasPrefix(code, ev.keyword) {
		return code, nil
	}

	fields := strings.Fields(code)
	if len(fields) < 2 {
		return "", ErrRender.Wrap(errNoBindingName).
			With(slog.String("code", code))
	}

	return code + "\n" + fields[1], nil
}

// Calls returns the number of interpreter calls made by [Evaluator.Evaluate].
func (ev *Evaluator) Calls() int { return ev.calls }

// Names returns the names in scope if the interpreter can list them.
func (ev *Evaluator) Names() []string {
	if n, ok := ev.interp.(backend.Namer); ok {
		return n.Names()
	}

	return nil
}
