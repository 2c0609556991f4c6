package calc

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ardnew/litcalc/backend"
	"github.com/ardnew/litcalc/log"
	"github.com/ardnew/litcalc/pkg"
	"github.com/ardnew/litcalc/units"
)

// DefaultCacheSize is the number of compiled expressions kept per session.
const DefaultCacheSize = 256

// Session is a persistent calculator environment. It implements
// [backend.Interpreter] and [backend.Namer]. A Session is not safe for
// concurrent use.
type Session struct {
	registry *units.Registry
	vars     map[string]any
	loaded   map[string]bool
	path     []string
	cache    *lru.Cache[string, *program]
	options  []expr.Option
	logger   log.Logger
	fault    error
}

// program is a compiled expression and the environment it expects.
type program struct {
	*vm.Program
	rewrite
}

// Option configures a [Session].
type Option func(*Session)

// WithRegistry sets the unit registry. Units defined by the session are
// added to it.
func WithRegistry(r *units.Registry) Option {
	return func(s *Session) { s.registry = r }
}

// WithSearchPath sets the directories searched for modules.
func WithSearchPath(dirs ...string) Option {
	return func(s *Session) { s.path = dirs }
}

// WithLogger sets the logger for compile and module events.
func WithLogger(l log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithCacheSize sets the number of compiled expressions retained.
func WithCacheSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.cache, _ = lru.New[string, *program](n)
		}
	}
}

// New returns a session with no bindings and no loaded modules.
func New(opts ...Option) *Session {
	s := &Session{
		vars:   make(map[string]any),
		loaded: make(map[string]bool),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if s.registry == nil {
		s.registry = units.NewRegistry()
	}

	if s.cache == nil {
		s.cache, _ = lru.New[string, *program](DefaultCacheSize)
	}

	s.options = s.exprOptions()

	return s
}

// Registry returns the session's unit registry.
func (s *Session) Registry() *units.Registry { return s.registry }

// Interpret runs every statement of src in order. The returned value is
// that of the last expression statement.
func (s *Session) Interpret(
	ctx context.Context,
	src string,
	kind backend.SourceKind,
) (backend.Metadata, backend.Value, error) {
	meta := backend.Metadata{Source: kind.String()}

	v, declared, err := s.run(ctx, src)

	meta.Declared = declared
	meta.Statements = statements(src)

	if err != nil {
		return meta, nil, err
	}

	return meta, Value{v: v}, nil
}

// Names returns the variables, functions, and units in scope, sorted.
func (s *Session) Names() []string {
	names := slices.Collect(maps.Keys(s.vars))
	names = append(names, FunctionNames()...)
	names = append(names, s.registry.Names()...)
	slices.Sort(names)

	return slices.Compact(names)
}

// Lookup returns the value bound to a variable.
func (s *Session) Lookup(name string) (any, bool) {
	v, ok := s.vars[name]

	return v, ok
}

func statements(src string) int {
	n := 0

	for line := range strings.Lines(src) {
		if stripComment(line) != "" {
			n++
		}
	}

	return n
}

func stripComment(line string) string {
	before, _, _ := strings.Cut(line, "#")

	return strings.TrimSpace(before)
}

func (s *Session) run(ctx context.Context, src string) (any, []string, error) {
	var (
		last     any
		declared []string
	)

	for line := range strings.Lines(src) {
		stmt := stripComment(line)
		if stmt == "" {
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, declared, err
		}

		keyword, rest, _ := strings.Cut(stmt, " ")

		switch keyword {
		case "let":
			name, err := s.let(ctx, rest)
			if err != nil {
				return nil, declared, err
			}

			declared = append(declared, name)

		case "unit":
			names, err := s.unit(ctx, rest)
			if err != nil {
				return nil, declared, err
			}

			declared = append(declared, names...)

		case "use":
			if err := s.use(ctx, strings.TrimSpace(rest)); err != nil {
				return nil, declared, err
			}

		default:
			v, err := s.eval(ctx, stmt)
			if err != nil {
				return nil, declared, err
			}

			last = v
		}
	}

	return last, declared, nil
}

var reserved = map[string]bool{
	"let": true, "unit": true, "use": true, "to": true,
	"and": true, "or": true, "not": true, "true": true, "false": true,
}

func bindingName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if !units.ValidName(name) || reserved[name] {
		return "", ErrBinding.With(slog.String("name", name))
	}

	return name, nil
}

func (s *Session) let(ctx context.Context, rest string) (string, error) {
	lhs, rhs, ok := strings.Cut(rest, "=")
	if !ok || strings.TrimSpace(rhs) == "" {
		return "", ErrBinding.With(slog.String("statement", "let "+rest))
	}

	name, err := bindingName(lhs)
	if err != nil {
		return "", err
	}

	v, err := s.eval(ctx, rhs)
	if err != nil {
		return "", err
	}

	prev, exists := s.vars[name]
	if !exists || reflect.TypeOf(prev) != reflect.TypeOf(v) {
		// Compiled programs bake in how names resolve and their types.
		s.cache.Purge()
	}

	s.vars[name] = v

	return name, nil
}

func (s *Session) unit(ctx context.Context, rest string) ([]string, error) {
	lhs, rhs, ok := strings.Cut(rest, "=")
	if !ok || strings.TrimSpace(rhs) == "" {
		return nil, ErrBinding.With(slog.String("statement", "unit "+rest))
	}

	var names []string

	for part := range strings.SplitSeq(lhs, ",") {
		name, err := bindingName(part)
		if err != nil {
			return nil, err
		}

		names = append(names, name)
	}

	v, err := s.eval(ctx, rhs)
	if err != nil {
		return nil, err
	}

	q, ok := v.(units.Quantity)
	if !ok {
		return nil, ErrBinding.With(
			slog.String("unit", names[0]),
			slog.String("reason", "not a quantity"),
		)
	}

	if _, err := s.registry.Define(names[0], q, false, names[1:]...); err != nil {
		return nil, ErrBinding.Wrap(err)
	}

	s.cache.Purge()

	return names, nil
}

// eval compiles (or reuses) and runs one expression.
func (s *Session) eval(ctx context.Context, text string) (any, error) {
	text = strings.TrimSpace(text)

	prog, err := s.compile(ctx, text)
	if err != nil {
		return nil, err
	}

	s.fault = nil

	out, err := vm.Run(prog.Program, prog.env(s.vars))
	if err != nil {
		fault := s.fault
		s.fault = nil

		switch {
		case errors.Is(fault, units.ErrDimension):
			return nil, ErrDimension.Wrap(fault).With(slog.String("expr", text))
		case fault != nil:
			return nil, ErrMath.Wrap(fault).With(slog.String("expr", text))
		default:
			return nil, ErrMath.Wrap(err).With(slog.String("expr", text))
		}
	}

	return out, nil
}

func (s *Session) fail(err error) error {
	s.fault = err

	return err
}

func (s *Session) compile(ctx context.Context, text string) (*program, error) {
	if prog, ok := s.cache.Get(text); ok {
		s.logger.TraceContext(ctx, "compile", slog.String("expr", text), slog.Bool("cached", true))

		return prog, nil
	}

	toks, err := tokenize(text)
	if err != nil {
		return nil, err
	}

	if len(toks) == 0 {
		return nil, ErrSyntax.With(slog.String("reason", "empty expression"))
	}

	rw := rewriter{resolve: s.resolve, seen: make(map[string]string)}

	src, err := rw.expr(toks)
	if err != nil {
		return nil, pkg.WrapError(err).With(slog.String("expr", text))
	}

	rw.out.source = src

	opts := append([]expr.Option{expr.Env(rw.out.env(s.vars))}, s.options...)

	compiled, err := expr.Compile(src, opts...)
	if err != nil {
		return nil, ErrSyntax.Wrap(err).With(
			slog.String("expr", text),
			slog.String("compiled", src),
		)
	}

	prog := &program{Program: compiled, rewrite: rw.out}
	s.cache.Add(text, prog)

	s.logger.TraceContext(ctx, "compile",
		slog.String("expr", text),
		slog.String("compiled", src),
		slog.Bool("cached", false))

	return prog, nil
}

func (s *Session) resolve(name string) (ref, error) {
	if _, ok := s.vars[name]; ok {
		return ref{name: name, kind: refVar}, nil
	}

	if u, ok := s.registry.Lookup(name); ok {
		return ref{name: name, kind: refUnit, unit: u.Quantity()}, nil
	}

	return ref{}, ErrUnknownName.With(slog.String("name", name))
}
