package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// ANSI color codes for pretty printing.
const (
	colorReset   = "\033[0m"
	colorGray    = "\033[90m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// prettyTextHandler writes one colorized key=value line per record.
type prettyTextHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	prefix string      // dotted group path applied to record attributes
	preset []slog.Attr // attributes added with WithAttrs, already qualified
}

func newPrettyTextHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
) *prettyTextHandler {
	return &prettyTextHandler{
		opts: *opts,
		mu:   &sync.Mutex{},
		w:    w,
	}
}

func (h *prettyTextHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.opts.Level != nil {
		threshold = h.opts.Level.Level()
	}

	return level >= threshold
}

func (h *prettyTextHandler) Handle(_ context.Context, r slog.Record) error {
	buf := new(bytes.Buffer)

	if !r.Time.IsZero() {
		h.writeAttr(buf, h.replace(slog.Time(slog.TimeKey, r.Time)))
	}

	h.writeAttr(buf, h.replace(slog.Any(slog.LevelKey, r.Level)))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeAttr(buf, slog.String(
				slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line),
			))
		}
	}

	h.writeAttr(buf, slog.String(slog.MessageKey, r.Message))

	for _, a := range h.preset {
		h.writeAttr(buf, a)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, h.qualify(a))

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyTextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.preset = slices.Clip(h.preset)

	for _, a := range attrs {
		clone.preset = append(clone.preset, h.qualify(a))
	}

	return &clone
}

func (h *prettyTextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.prefix = h.prefix + name + "."

	return &clone
}

// replace applies the configured ReplaceAttr to a built-in attribute.
func (h *prettyTextHandler) replace(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

func (h *prettyTextHandler) qualify(a slog.Attr) slog.Attr {
	if h.prefix == "" {
		return a
	}

	a.Key = h.prefix + a.Key

	return a
}

func (h *prettyTextHandler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			if a.Key != "" {
				ga.Key = a.Key + "." + ga.Key
			}

			h.writeAttr(buf, ga)
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	buf.WriteString(colorGray)
	buf.WriteString(a.Key)
	buf.WriteString(colorReset)
	buf.WriteByte('=')

	h.writeValue(buf, a.Key, a.Value)
}

func (h *prettyTextHandler) writeValue(
	buf *bytes.Buffer,
	key string,
	v slog.Value,
) {
	color := colorCyan
	text := v.String()

	switch v.Kind() {
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		color = colorYellow

		if v.Kind() == slog.KindFloat64 {
			text = strconv.FormatFloat(v.Float64(), 'g', -1, 64)
		}

	case slog.KindBool:
		color = colorRed
		if v.Bool() {
			color = colorGreen
		}

	case slog.KindDuration:
		color = colorMagenta

	case slog.KindTime:
		color = colorBlue

	case slog.KindString:
		if key == slog.LevelKey {
			color = levelColor(ParseLevel(text))
		}

	case slog.KindAny:
		if level, ok := v.Any().(slog.Level); ok {
			color = levelColor(Level(level))
			text = strings.ToUpper(Level(level).String())
		}
	}

	buf.WriteString(color)
	buf.WriteString(text)
	buf.WriteString(colorReset)
}

func levelColor(level Level) string {
	switch {
	case level >= LevelError:
		return colorRed
	case level >= LevelWarn:
		return colorYellow
	case level >= LevelInfo:
		return colorGreen
	default:
		return colorBlue
	}
}
