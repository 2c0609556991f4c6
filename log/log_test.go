package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestMake_DefaultsToWarnText(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none"))

	logger.Info("hidden")
	logger.Warn("shown")

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("info record emitted at default level: %q", got)
	}

	if got != "level=WARN msg=shown\n" {
		t.Errorf("output = %q", got)
	}
}

func TestLogger_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelTrace), WithTimeLayout("none"))
	logger.Trace("flush", slog.Int("fragments", 2))

	if got := buf.String(); got != "level=TRACE msg=flush fragments=2\n" {
		t.Errorf("output = %q", got)
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithFormat(FormatJSON),
		WithLevel(LevelDebug),
		WithTimeLayout("none"),
	)
	logger.Debug("evaluate", slog.String("code", "1 + 1"))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if rec["level"] != "DEBUG" || rec["msg"] != "evaluate" || rec["code"] != "1 + 1" {
		t.Errorf("record = %v", rec)
	}

	if _, ok := rec["time"]; ok {
		t.Errorf("time attribute should be removed: %v", rec)
	}
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithCaller(true), WithTimeLayout("none"))
	logger.Warn("here")

	if !strings.Contains(buf.String(), "log_test.go:") {
		t.Errorf("caller should reference this file: %q", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithTimeLayout("none"))
	scoped := base.With(slog.String("source", "notes.md"))

	scoped.Warn("one")
	base.Warn("two")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}

	if !strings.Contains(lines[0], "source=notes.md") {
		t.Errorf("scoped logger lost attribute: %q", lines[0])
	}

	if strings.Contains(lines[1], "source=") {
		t.Errorf("base logger gained attribute: %q", lines[1])
	}
}

func TestLogger_Wrap_KeepsSettings(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithTimeLayout("none")).
		Wrap(WithLevel(LevelInfo))

	if logger.Format() != FormatJSON || logger.Level() != LevelInfo {
		t.Fatalf("format/level = %v/%v", logger.Format(), logger.Level())
	}

	logger.Info("kept")

	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("expected JSON output, got %q", buf.String())
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var logger Logger

	logger.Error("discarded")
	logger.With(slog.Int("n", 1)).Warn("discarded")

	if logger.Enabled(context.Background(), LevelError) {
		t.Error("zero Logger should not be enabled")
	}

	if logger.Level() != DefaultLevel || logger.Format() != DefaultFormat {
		t.Errorf("zero Logger level/format = %v/%v", logger.Level(), logger.Format())
	}
}

func TestLogger_Enabled(t *testing.T) {
	logger := Make(&bytes.Buffer{}, WithLevel(LevelInfo))
	ctx := context.Background()

	if logger.Enabled(ctx, LevelDebug) {
		t.Error("debug enabled at info threshold")
	}

	if !logger.Enabled(ctx, LevelInfo) || !logger.Enabled(ctx, LevelError) {
		t.Error("info/error should be enabled at info threshold")
	}
}

func TestPretty_Colorizes(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(true), WithTimeLayout("none"))
	logger.With(slog.Group("batch", slog.Int("size", 3))).
		Error("failed", slog.Bool("strict", true))

	got := buf.String()

	for _, want := range []string{
		colorRed + "ERROR" + colorReset,
		"batch.size" + colorReset + "=" + colorYellow + "3",
		"strict" + colorReset + "=" + colorGreen + "true",
		"msg" + colorReset + "=" + colorCyan + "failed",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}

	if !strings.HasSuffix(got, "\n") {
		t.Errorf("record not newline-terminated: %q", got)
	}
}

func TestPretty_WithGroupQualifiesKeys(t *testing.T) {
	var buf bytes.Buffer

	h := newPrettyTextHandler(&buf, &slog.HandlerOptions{})
	slog.New(h).WithGroup("eval").Info("done", slog.Int("calls", 4))

	if !strings.Contains(buf.String(), "eval.calls") {
		t.Errorf("group prefix missing: %q", buf.String())
	}
}

func TestPretty_IgnoredForJSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithFormat(FormatJSON),
		WithPretty(true),
		WithTimeLayout("none"),
	)
	logger.Warn("plain")

	if strings.Contains(buf.String(), "\033[") {
		t.Errorf("JSON output contains escape codes: %q", buf.String())
	}
}
