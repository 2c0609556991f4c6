package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func q(t *testing.T, r *Registry, v float64, name string) Quantity {
	t.Helper()

	u, ok := r.Lookup(name)
	require.True(t, ok, "unit %q", name)

	return Quantity{Value: v, Unit: u.Compound()}
}

func TestLookup(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name  string
		canon string
		scale float64
	}{
		{"m", "m", 1},
		{"meters", "m", 1},
		{"km", "km", 1e3},
		{"kilometer", "km", 1e3},
		{"kilometres", "km", 1e3},
		{"kg", "kg", 1},
		{"mV", "mV", 1e-3},
		{"µs", "µs", 1e-6},
		{"us", "µs", 1e-6},
		{"dam", "dam", 10},
		{"min", "min", 60},
		{"mol", "mol", 1},
		{"Pa", "Pa", 1},
		{"hPa", "hPa", 100},
		{"kWh", "kWh", 3.6e6},
		{"mL", "mL", 1e-6},
		{"kΩ", "kΩ", 1e3},
		{"T", "T", 1},
		{"h", "h", 3600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, ok := r.Lookup(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.canon, u.Name)
			assert.InEpsilon(t, tt.scale, u.Scale, 1e-12)
		})
	}
}

func TestLookup_Rejects(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"", "k", "kmin", "kilom", "mmeter", "foo", "kh"} {
		_, ok := r.Lookup(name)
		assert.False(t, ok, "%q should not resolve", name)
	}
}

func TestArithmetic(t *testing.T) {
	r := NewRegistry()

	sum, err := q(t, r, 1, "V").Add(q(t, r, 1, "V"))
	require.NoError(t, err)
	assert.Equal(t, "2 V", sum.String())

	mv, err := sum.Convert(q(t, r, 1, "mV"))
	require.NoError(t, err)
	assert.Equal(t, "2000 mV", mv.String())

	mixed, err := q(t, r, 1, "km").Add(q(t, r, 250, "m"))
	require.NoError(t, err)
	assert.Equal(t, "1.25 km", mixed.String())

	speed := q(t, r, 100, "km").Div(q(t, r, 2, "h"))
	assert.Equal(t, "50 km/h", speed.String())

	ms, err := speed.Convert(q(t, r, 1, "m").Div(q(t, r, 1, "s")))
	require.NoError(t, err)
	assert.Equal(t, "13.8889 m/s", ms.String())

	_, err = q(t, r, 1, "m").Add(q(t, r, 1, "s"))
	require.ErrorIs(t, err, ErrDimension)

	_, err = q(t, r, 1, "J").Convert(q(t, r, 1, "W"))
	require.ErrorIs(t, err, ErrDimension)
}

func TestMul_MergesFactors(t *testing.T) {
	r := NewRegistry()

	area := q(t, r, 3, "m").Mul(q(t, r, 4, "m"))
	assert.Equal(t, "12 m^2", area.String())

	back := area.Div(q(t, r, 2, "m"))
	assert.Equal(t, "6 m", back.String())

	plain := q(t, r, 6, "m").Div(q(t, r, 2, "m"))
	assert.Equal(t, "3", plain.String())
	assert.Empty(t, plain.Unit)
}

func TestPow(t *testing.T) {
	r := NewRegistry()

	sq, err := q(t, r, 3, "m").Pow(Number(2))
	require.NoError(t, err)
	assert.Equal(t, "9 m^2", sq.String())

	root, err := sq.Pow(Number(0.5))
	require.NoError(t, err)
	assert.Equal(t, "3 m", root.String())

	_, err = q(t, r, 2, "m").Pow(Number(0.5))
	require.ErrorIs(t, err, ErrExponent)

	_, err = Number(2).Pow(q(t, r, 1, "m"))
	require.ErrorIs(t, err, ErrExponent)
	require.ErrorIs(t, err, ErrDimension)

	n, err := Number(2).Pow(Number(10))
	require.NoError(t, err)
	assert.Equal(t, "1024", n.String())
}

func TestCmpAndMod(t *testing.T) {
	r := NewRegistry()

	c, err := q(t, r, 1, "km").Cmp(q(t, r, 999, "m"))
	require.NoError(t, err)
	assert.Equal(t, 1, c)

	c, err = q(t, r, 1000, "g").Cmp(q(t, r, 1, "kg"))
	require.NoError(t, err)
	assert.Equal(t, 0, c)

	m, err := q(t, r, 130, "min").Mod(q(t, r, 1, "h"))
	require.NoError(t, err)
	assert.Equal(t, "10 min", m.String())

	_, err = q(t, r, 1, "kg").Cmp(q(t, r, 1, "m"))
	require.ErrorIs(t, err, ErrDimension)
}

func TestAngles(t *testing.T) {
	r := NewRegistry()

	x, err := q(t, r, 180, "deg").Float()
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, x, 1e-12)

	sum, err := Number(1).Add(q(t, r, 90, "deg"))
	require.NoError(t, err)
	assert.Equal(t, "deg", sum.Unit.String())
}

func TestCompoundString(t *testing.T) {
	r := NewRegistry()

	kg := q(t, r, 1, "kg")
	m := q(t, r, 1, "m")
	s := q(t, r, 1, "s")
	a := q(t, r, 1, "A")

	tests := []struct {
		want string
		q    Quantity
	}{
		{"1 kg·m^2/s^2", kg.Mul(m).Mul(m).Div(s).Div(s)},
		{"1 s^-1", Number(1).Div(s)},
		{"1 m/(s·A)", m.Div(s).Div(a)},
		{"1 s^-1·A^-2", Number(1).Div(s).Div(a).Div(a)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.q.String())
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{2, "2"},
		{-17, "-17"},
		{2000.0000000000002, "2000"},
		{0.1 + 0.2, "0.3"},
		{math.Pi, "3.14159"},
		{1.5e-7, "1.5e-7"},
		{1234567.5, "1.23457e6"},
		{1e20, "1e20"},
		{123456789012345, "123456789012345"},
		{math.Inf(1), "+Inf"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.v), "FormatNumber(%v)", tt.v)
	}
}

func TestDefine(t *testing.T) {
	r := NewRegistry()

	u, err := r.Define("inch", q(t, r, 2.54, "cm"), false, "inches")
	require.NoError(t, err)
	assert.InEpsilon(t, 0.0254, u.Scale, 1e-12)

	got, ok := r.Lookup("inches")
	require.True(t, ok)
	assert.Equal(t, "inch", got.Name)

	_, ok = r.Lookup("kinch")
	assert.False(t, ok)

	_, err = r.Define("inch", Number(1), false)
	require.ErrorIs(t, err, ErrDefined)

	_, err = r.Define("2x", Number(1), false)
	require.ErrorIs(t, err, ErrUnitName)

	_, err = r.Define("nothing", Number(0), false)
	require.ErrorIs(t, err, ErrUnitName)

	bit, err := r.Define("B", Number(1), true)
	require.NoError(t, err)
	assert.True(t, bit.Prefixable)

	kb, ok := r.Lookup("kB")
	require.True(t, ok)
	assert.InEpsilon(t, 1e3, kb.Scale, 1e-12)

	units := r.Units()
	assert.Equal(t, "B", units[len(units)-1].Name)
}

func TestDimensionString(t *testing.T) {
	assert.Equal(t, "1", Dimension{}.String())
	assert.Equal(t, "kg·m^2·s^-3·A^-1", dimVoltage.String())
}
