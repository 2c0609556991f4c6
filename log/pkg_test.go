package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestPackage_LogFunctions_UseDefaultLogger(t *testing.T) {
	original := Default()
	defer func() {
		defaultMu.Lock()
		defaultLog = original
		defaultMu.Unlock()
	}()

	var buf bytes.Buffer

	Config(
		WithOutput(&buf),
		WithLevel(LevelDebug),
		WithFormat(FormatJSON),
		WithPretty(false),
	)

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
		msg   string
	}{
		{"Debug", Debug, "DEBUG", "debug message"},
		{"Info", Info, "INFO", "info message"},
		{"Warn", Warn, "WARN", "warn message"},
		{"Error", Error, "ERROR", "error message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn(tt.msg, slog.String("key", "value"))

			output := buf.String()
			if !strings.Contains(output, tt.msg) {
				t.Errorf("expected output to contain message %q, got: %s", tt.msg, output)
			}

			if !strings.Contains(output, tt.level) {
				t.Errorf("expected output to contain level %q, got: %s", tt.level, output)
			}

			if !strings.Contains(output, `"key":"value"`) {
				t.Errorf("expected output to contain attribute, got: %s", output)
			}
		})
	}
}

func TestPackage_Config_KeepsUnspecifiedSettings(t *testing.T) {
	original := Default()
	defer func() {
		defaultMu.Lock()
		defaultLog = original
		defaultMu.Unlock()
	}()

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithFormat(FormatJSON))
	Config(WithLevel(LevelError))

	if got := Default().Format(); got != FormatJSON {
		t.Errorf("format = %v, want json", got)
	}

	Warn("dropped")

	if buf.Len() != 0 {
		t.Errorf("warn logged below error threshold: %s", buf.String())
	}
}
