// Package starlark is a backend that evaluates batches as Starlark code.
//
// Globals persist across batches. A line starting with "let " is a plain
// assignment, and a trailing expression line becomes the value of the
// batch. "use NAME" loads NAME.star from the search path or an embedded
// module once per session.
package starlark

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	starlarkJSON "go.starlark.net/lib/json"
	starlarkMath "go.starlark.net/lib/math"
	starlarkTime "go.starlark.net/lib/time"
	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/resolve"
	"go.starlark.net/syntax"

	"github.com/ardnew/litcalc/backend"
	"github.com/ardnew/litcalc/log"
)

// ModuleExt is the file extension of module files.
const ModuleExt = ".star"

// resultName holds the value of the trailing expression.
const resultName = "_"

//go:embed modules/*.star
var embedded embed.FS

// Session is a persistent Starlark environment. It implements
// [backend.Interpreter] and [backend.Namer].
type Session struct {
	globals starlarkLib.StringDict
	loaded  map[string]bool
	path    []string
	options *syntax.FileOptions
	logger  log.Logger
	chunks  int
}

// Option configures a [Session].
type Option func(*Session)

// WithSearchPath sets the directories searched for modules.
func WithSearchPath(dirs ...string) Option {
	return func(s *Session) { s.path = dirs }
}

// WithLogger sets the logger receiving print output and load events.
func WithLogger(l log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithGlobals predeclares values visible to every batch.
func WithGlobals(g starlarkLib.StringDict) Option {
	return func(s *Session) { maps.Copy(s.globals, g) }
}

// New returns a session with the json, math, and time modules predeclared.
func New(opts ...Option) *Session {
	s := &Session{
		globals: starlarkLib.StringDict{
			"json": starlarkJSON.Module,
			"math": starlarkMath.Module,
			"time": starlarkTime.Module,
		},
		loaded: make(map[string]bool),
		options: &syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
			GlobalReassign:  true,
			Recursion:       true,
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// Interpret executes src. "use" lines split it into chunks run in order;
// the value is that of the trailing expression of the last chunk.
func (s *Session) Interpret(
	ctx context.Context,
	src string,
	kind backend.SourceKind,
) (backend.Metadata, backend.Value, error) {
	meta := backend.Metadata{Source: kind.String()}

	var (
		chunk []string
		last  starlarkLib.Value = starlarkLib.None
	)

	flush := func() error {
		if len(chunk) == 0 {
			return nil
		}

		v, declared, err := s.exec(ctx, chunk)
		meta.Declared = append(meta.Declared, declared...)
		chunk = chunk[:0]
		last = v

		return err
	}

	for line := range strings.Lines(src) {
		line = strings.TrimRight(line, "\r\n")

		if trimmed := strings.TrimSpace(line); trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			meta.Statements++
		}

		if name, ok := strings.CutPrefix(line, "use "); ok {
			if err := flush(); err != nil {
				return meta, nil, err
			}

			if err := s.use(ctx, strings.TrimSpace(name)); err != nil {
				return meta, nil, err
			}

			last = starlarkLib.None

			continue
		}

		if rest, ok := strings.CutPrefix(line, "let "); ok {
			line = rest
		}

		chunk = append(chunk, line)
	}

	if err := flush(); err != nil {
		return meta, nil, err
	}

	return meta, Value{v: last}, nil
}

// exec runs lines as one REPL chunk, so names defined by earlier chunks
// may be read and rebound.
func (s *Session) exec(
	ctx context.Context,
	lines []string,
) (starlarkLib.Value, []string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	s.chunks++
	name := "batch" + strconv.Itoa(s.chunks)

	f, err := s.options.Parse(name, s.captureResult(name, lines), 0)
	if err != nil {
		return nil, nil, ErrSyntax.Wrap(err).With(slog.String("chunk", name))
	}

	thread := &starlarkLib.Thread{
		Name: name,
		Print: func(t *starlarkLib.Thread, msg string) {
			s.logger.InfoContext(ctx, msg, slog.String("thread", t.Name))
		},
	}

	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})
	defer stop()

	delete(s.globals, resultName)

	if err := starlarkLib.ExecREPLChunk(f, thread, s.globals); err != nil {
		if cause := context.Cause(ctx); cause != nil {
			return nil, nil, cause
		}

		attrs := []slog.Attr{slog.String("chunk", name)}

		var evalErr *starlarkLib.EvalError
		if errors.As(err, &evalErr) {
			attrs = append(attrs, slog.String("backtrace", evalErr.Backtrace()))
		}

		var resolveErr resolve.ErrorList
		if errors.As(err, &resolveErr) {
			return nil, nil, ErrSyntax.Wrap(err).With(attrs...)
		}

		return nil, nil, ErrExec.Wrap(err).With(attrs...)
	}

	v, ok := s.globals[resultName]
	if !ok {
		v = starlarkLib.None
	}

	delete(s.globals, resultName)

	return v, declared(f), nil
}

// declared returns the names bound by top-level statements of f.
func declared(f *syntax.File) []string {
	var names []string

	for _, stmt := range f.Stmts {
		switch st := stmt.(type) {
		case *syntax.AssignStmt:
			if id, ok := st.LHS.(*syntax.Ident); ok && id.Name != resultName {
				names = append(names, id.Name)
			}

		case *syntax.DefStmt:
			names = append(names, st.Name.Name)
		}
	}

	return names
}

// captureResult rewrites the last line of a chunk to assign its value to
// "_" when it is an unindented expression.
func (s *Session) captureResult(name string, lines []string) string {
	i := len(lines) - 1
	for i >= 0 && strings.TrimSpace(lines[i]) == "" {
		i--
	}

	if i >= 0 {
		line := lines[i]
		if line == strings.TrimLeft(line, " \t") && !strings.HasPrefix(line, "#") {
			if _, err := s.options.ParseExpr(name, line, 0); err == nil {
				out := slices.Clone(lines)
				out[i] = resultName + " = (" + line + ")"

				return strings.Join(out, "\n")
			}
		}
	}

	return strings.Join(lines, "\n")
}

func (s *Session) use(ctx context.Context, name string) error {
	if s.loaded[name] {
		return nil
	}

	src, err := s.findModule(name)
	if err != nil {
		return err
	}

	s.logger.DebugContext(ctx, "load module", slog.String("module", name))
	s.loaded[name] = true

	if _, _, err := s.exec(ctx, strings.Split(src, "\n")); err != nil {
		delete(s.loaded, name)

		return err
	}

	return nil
}

func (s *Session) findModule(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\.`) {
		return "", ErrModuleNotFound.With(slog.String("module", name))
	}

	for _, dir := range s.path {
		data, err := os.ReadFile(filepath.Join(dir, name+ModuleExt))
		if err == nil {
			return string(data), nil
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return "", ErrModuleNotFound.Wrap(err).With(slog.String("module", name))
		}
	}

	data, err := embedded.ReadFile("modules/" + name + ModuleExt)
	if err != nil {
		return "", ErrModuleNotFound.With(slog.String("module", name))
	}

	return string(data), nil
}

// Names returns the globals and universe builtins, sorted.
func (s *Session) Names() []string {
	names := slices.Collect(maps.Keys(s.globals))
	names = slices.AppendSeq(names, maps.Keys(starlarkLib.Universe))
	slices.Sort(names)

	return slices.Compact(names)
}

// Value wraps a Starlark value.
type Value struct {
	v starlarkLib.Value
}

// Render returns strings unquoted, None as the empty string, and any other
// value in its Starlark representation.
func (v Value) Render() (string, error) {
	if v.v == nil || v.v == starlarkLib.None {
		return "", nil
	}

	if str, ok := starlarkLib.AsString(v.v); ok {
		return str, nil
	}

	return v.v.String(), nil
}
