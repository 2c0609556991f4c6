package calc

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/litcalc/backend"
	"github.com/ardnew/litcalc/units"
)

func render(t *testing.T, s *Session, src string) string {
	t.Helper()

	_, v, err := s.Interpret(context.Background(), src, backend.SourceText)
	require.NoError(t, err, "source %q", src)

	out, err := v.Render()
	require.NoError(t, err)

	return out
}

func withPrelude(t *testing.T, opts ...Option) *Session {
	t.Helper()

	s := New(opts...)

	_, _, err := s.Interpret(context.Background(), "use prelude", backend.SourceInternal)
	require.NoError(t, err)

	return s
}

func TestSession_Expressions(t *testing.T) {
	s := withPrelude(t)

	tests := []struct {
		src  string
		want string
	}{
		{"1 + 1", "2"},
		{"1 V + 1 V -> mV", "2000 mV"},
		{"100 km / 2 h", "50 km/h"},
		{"1 mi to km", "1.60934 km"},
		{"2 m²", "2 m^2"},
		{"-3 m + 5 m", "2 m"},
		{"2^-1", "0.5"},
		{"2 ** 10", "1024"},
		{"7 % 3", "1"},
		{"3 × 4 ÷ 2", "6"},
		{"1 km > 999 m", "true"},
		{"1 kg == 1000 g", "true"},
		{"1 kg != 1000 g", "false"},
		{"sqrt(9 m^2)", "3 m"},
		{"sin(90 deg)", "1"},
		{"abs(-4 s)", "4 s"},
		{"round(2.6 kg)", "3 kg"},
		{"1 h -> min", "60 min"},
		{"2 pi", "6.28319"},
		{"1 inch -> mm", "25.4 mm"},
		{"1 km > 1 m ? 1 : 2", "1"},
		{"", ""},
		{"# only a comment", ""},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, s, tt.src))
		})
	}
}

func TestSession_RepeatedExpression(t *testing.T) {
	s := New()

	assert.Equal(t, "2", render(t, s, "1 + 1"))
	assert.Equal(t, "2", render(t, s, "1 + 1"))
}

func TestSession_BindingsPersist(t *testing.T) {
	s := New()
	ctx := context.Background()

	meta, _, err := s.Interpret(ctx, "let voltage = 1 V + 1 V -> mV", backend.SourceText)
	require.NoError(t, err)
	assert.Equal(t, []string{"voltage"}, meta.Declared)
	assert.Equal(t, "text", meta.Source)
	assert.Equal(t, 1, meta.Statements)

	assert.Equal(t, "2000 mV", render(t, s, "voltage"))
	assert.Equal(t, "2 V", render(t, s, "voltage -> V"))

	v, ok := s.Lookup("voltage")
	require.True(t, ok)
	assert.IsType(t, units.Quantity{}, v)
}

func TestSession_LastExpressionWins(t *testing.T) {
	s := New()

	assert.Equal(t, "3", render(t, s, "1\nlet x = 2\n# comment\n\nx + 1\nlet y = 4"))
}

func TestSession_RebindChangesType(t *testing.T) {
	s := New()

	assert.Equal(t, "3", render(t, s, "let x = 2\nx + 1"))
	assert.Equal(t, "true", render(t, s, "let x = 1 > 0\nx"))
	assert.Equal(t, "6", render(t, s, "let m = 5\nm + 1"))
}

func TestSession_UnitDefinition(t *testing.T) {
	s := New()

	meta, _, err := s.Interpret(context.Background(),
		"unit furlong, furlongs = 201.168 m", backend.SourceText)
	require.NoError(t, err)
	assert.Equal(t, []string{"furlong", "furlongs"}, meta.Declared)

	assert.Equal(t, "201.168 m", render(t, s, "1 furlong -> m"))
	assert.Equal(t, "2 furlong", render(t, s, "402.336 m -> furlongs"))
}

func TestSession_Errors(t *testing.T) {
	tests := []struct {
		src  string
		want error
	}{
		{"1 m + 1 s", ErrDimension},
		{"sin(1 m)", ErrDimension},
		{"1 J -> W", ErrDimension},
		{"foo + 1", ErrUnknownName},
		{"1 +", ErrSyntax},
		{"1 $ 1", ErrSyntax},
		{"let = 3", ErrBinding},
		{"let x", ErrBinding},
		{"let to = 3", ErrBinding},
		{"unit q = true", ErrBinding},
		{"unit m = 1 m", ErrBinding},
		{"use nothing", ErrModuleNotFound},
		{"use ../etc", ErrModuleNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, v, err := New().Interpret(context.Background(), tt.src, backend.SourceText)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, v)
		})
	}
}

func TestSession_StopsAtFirstError(t *testing.T) {
	s := New()

	_, _, err := s.Interpret(context.Background(), "let a = 1\nbogus\nlet b = 2", backend.SourceText)
	require.ErrorIs(t, err, ErrUnknownName)

	_, ok := s.Lookup("a")
	assert.True(t, ok)

	_, ok = s.Lookup("b")
	assert.False(t, ok)
}

func TestSession_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := New().Interpret(ctx, "1 + 1", backend.SourceText)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSession_ModulesFromSearchPath(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "circuit.calc"),
		[]byte("let vcc = 3.3 V\nlet r1 = 10 kΩ\n"),
		0o600,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "prelude.calc"),
		[]byte("let pi = 3\n"),
		0o600,
	))

	s := New(WithSearchPath(dir))

	assert.Equal(t, "0.33 mA", render(t, s, "use circuit\nvcc / r1 -> mA"))
	assert.Equal(t, "3", render(t, s, "use prelude\npi"))

	// Loaded once: re-running the module must not reset the binding.
	assert.Equal(t, "5 V", render(t, s, "let vcc = 5 V\nuse circuit\nvcc"))
}

func TestSession_BrokenModule(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "broken.calc"), []byte("1 m + 1 s\n"), 0o600))

	s := New(WithSearchPath(dir))

	_, _, err := s.Interpret(context.Background(), "use broken", backend.SourceText)
	require.ErrorIs(t, err, ErrModule)
	require.ErrorIs(t, err, ErrDimension)
}

func TestEmbeddedModules(t *testing.T) {
	assert.Contains(t, EmbeddedModules(), "prelude")
}

func TestSession_Names(t *testing.T) {
	s := New()
	render(t, s, "let total = 3")

	names := s.Names()
	assert.Contains(t, names, "total")
	assert.Contains(t, names, "sqrt")
	assert.Contains(t, names, "meter")
	assert.IsIncreasing(t, names)
}

func TestValue_Render(t *testing.T) {
	out, err := Value{}.Render()
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = Value{v: 3}.Render()
	require.ErrorIs(t, err, ErrNotDisplayable)
}
