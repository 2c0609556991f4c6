package cli

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/ardnew/litcalc/log"
)

// logFormat configures the logger format as a side effect of parsing, so
// that errors reported during parsing already use it.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the logger level as a side effect of parsing.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"warn"           enum:"${logLevelEnum}"  help:"Set log level (${enum})."`
	Format     logFormat `default:"text"           enum:"${logFormatEnum}" help:"Set log format (${enum})."`
	TimeLayout string    `default:"RFC3339"                                help:"Set timestamp layout, or 'none'."`
	Caller     bool      `default:"false"                                  help:"Include caller information."        negatable:""`
	Pretty     bool      `default:"${logPretty}"                           help:"Enable colorized pretty printing."  negatable:""`
}

// vars supplies the enums and the pretty default. Colors default on only
// when log output is a terminal.
func (*logConfig) vars(w io.Writer) kong.Vars {
	return kong.Vars{
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
		"logPretty":     strconv.FormatBool(isTerminal(w)),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })

	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start applies every parsed logging flag, including those without a
// TextUnmarshaler.
func (f *logConfig) start(ctx context.Context, w io.Writer) {
	log.Config(
		log.WithOutput(w),
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan applies logger flags found in args before kong parses them, so the
// logger is configured regardless of flag position. Boolean flags do not
// pass through a TextUnmarshaler and are only seen here and in start.
func (f *logConfig) scan(args []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			return
		}

		name, value, assigned := strings.Cut(arg, "=")

		negated := false
		if rest, ok := strings.CutPrefix(name, "--no-log-"); ok {
			name, negated = rest, true
		} else if rest, ok := strings.CutPrefix(name, "--log-"); ok {
			name = rest
		} else {
			continue
		}

		// next consumes the following argument as the value of a
		// non-boolean flag.
		next := func() string {
			if !assigned && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++

				return args[i]
			}

			return value
		}

		switch name {
		case "level":
			_ = f.Level.UnmarshalText([]byte(next()))

		case "format":
			_ = f.Format.UnmarshalText([]byte(next()))

		case "time-layout":
			f.TimeLayout = next()
			log.Config(log.WithTimeLayout(f.TimeLayout))

		case "pretty":
			if v, ok := scanBool(value, assigned, negated); ok {
				f.Pretty = v
				log.Config(log.WithPretty(v))
			}

		case "caller":
			if v, ok := scanBool(value, assigned, negated); ok {
				f.Caller = v
				log.Config(log.WithCaller(v))
			}
		}
	}
}

// scanBool interprets a boolean flag, which only takes a value when it is
// written with "=".
func scanBool(value string, assigned, negated bool) (bool, bool) {
	v := true

	if assigned {
		var err error

		v, err = strconv.ParseBool(value)
		if err != nil {
			return false, false
		}
	}

	return v != negated, true
}
