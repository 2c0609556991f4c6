package literate

import (
	"context"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/ardnew/litcalc/pkg"
)

// Stats counts what a run did.
type Stats struct {
	Lines     int // lines read
	Flushes   int // batches evaluated
	Discarded int // lines of an unterminated final batch
}

func (s Stats) attrs() []slog.Attr {
	return []slog.Attr{
		slog.Int("lines", s.Lines),
		slog.Int("flushes", s.Flushes),
		slog.Int("discarded", s.Discarded),
	}
}

// Engine splits a document into batches and writes it back with results.
type Engine struct {
	eval *Evaluator
	config
}

// New returns an Engine that evaluates batches with ev.
func New(ev *Evaluator, opts ...Option) *Engine {
	return &Engine{eval: ev, config: makeConfig(opts...)}
}

// Marker returns the marker token.
func (e *Engine) Marker() string { return e.marker }

// Run reads lines until they are exhausted or an error occurs, writing
// output to w as each line is handled. The first error halts the run;
// output already written is left in place.
func (e *Engine) Run(
	ctx context.Context,
	lines iter.Seq2[string, error],
	w io.Writer,
) (Stats, error) {
	var (
		stats   Stats
		pending batch
	)

	out := &renderer{w: w}

	for line, err := range lines {
		if err != nil {
			return stats, ErrSource.Wrap(err).With(slog.Int("line", stats.Lines+1))
		}

		if err := ctx.Err(); err != nil {
			return stats, err
		}

		stats.Lines++

		k := strings.Index(line, e.marker)
		if k < 0 {
			if err := out.line(line); err != nil {
				return stats, err
			}

			pending.add(line)

			continue
		}

		expr := line[:k]

		if err := out.fragment(expr, e.marker); err != nil {
			return stats, err
		}

		pending.add(expr)

		e.logger.TraceContext(ctx, "flush",
			slog.Int("line", stats.Lines),
			slog.Int("batch", pending.len()),
		)

		stats.Flushes++

		result, err := e.eval.Evaluate(ctx, pending.flush())
		if err != nil {
			return stats, pkg.WrapError(err).With(slog.Int("line", stats.Lines))
		}

		if err := out.result(result); err != nil {
			return stats, err
		}
	}

	if n := pending.len(); n > 0 {
		stats.Discarded = n

		if e.strict {
			return stats, ErrUnterminated.With(slog.Int("lines", n))
		}

		e.logger.DebugContext(ctx, "batch discarded", slog.Int("lines", n))
	}

	e.logger.DebugContext(ctx, "run complete", stats.attrs()...)

	return stats, nil
}
