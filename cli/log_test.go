package cli

import (
	"testing"

	"github.com/ardnew/litcalc/log"
)

func TestLogConfigScan(t *testing.T) {
	t.Cleanup(func() { log.Config(log.WithDefaults(nil)) })

	tests := []struct {
		name       string
		args       []string
		wantLevel  logLevel
		wantFormat logFormat
		wantPretty bool
		wantCaller bool
		wantTime   string
	}{
		{
			name:      "assigned",
			args:      []string{"--log-level=debug", "--log-format=json"},
			wantLevel: "debug", wantFormat: "json",
		},
		{
			name:      "separate values",
			args:      []string{"eval", "--log-level", "trace", "doc.md"},
			wantLevel: "trace",
		},
		{
			name:       "booleans",
			args:       []string{"--log-pretty", "--log-caller=false"},
			wantPretty: true,
		},
		{
			name:       "negated",
			args:       []string{"--log-pretty", "--no-log-pretty", "--no-log-caller=false"},
			wantCaller: true,
		},
		{
			name:     "time layout",
			args:     []string{"--log-time-layout", "none"},
			wantTime: "none",
		},
		{
			name: "stops at terminator",
			args: []string{"--", "--log-level=error"},
		},
		{
			name:       "value that looks like a flag is not consumed",
			args:       []string{"--log-level", "--log-format=json"},
			wantFormat: "json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f logConfig

			f.scan(tt.args)

			if f.Level != tt.wantLevel {
				t.Errorf("Level = %q, want %q", f.Level, tt.wantLevel)
			}

			if f.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", f.Format, tt.wantFormat)
			}

			if f.Pretty != tt.wantPretty {
				t.Errorf("Pretty = %v, want %v", f.Pretty, tt.wantPretty)
			}

			if f.Caller != tt.wantCaller {
				t.Errorf("Caller = %v, want %v", f.Caller, tt.wantCaller)
			}

			if f.TimeLayout != tt.wantTime {
				t.Errorf("TimeLayout = %q, want %q", f.TimeLayout, tt.wantTime)
			}
		})
	}
}

func TestScanBool(t *testing.T) {
	tests := []struct {
		value             string
		assigned, negated bool
		want, ok          bool
	}{
		{"", false, false, true, true},
		{"", false, true, false, true},
		{"false", true, false, false, true},
		{"false", true, true, true, true},
		{"maybe", true, false, false, false},
	}

	for _, tt := range tests {
		got, ok := scanBool(tt.value, tt.assigned, tt.negated)
		if got != tt.want || ok != tt.ok {
			t.Errorf("scanBool(%q, %v, %v) = (%v, %v), want (%v, %v)",
				tt.value, tt.assigned, tt.negated, got, ok, tt.want, tt.ok)
		}
	}
}
