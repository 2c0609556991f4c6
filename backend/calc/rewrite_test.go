package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	toks, err := tokenize("1_000.5e3 km × 4 ÷ 2 → m² # note")
	require.NoError(t, err)

	var kinds []tokenKind
	var texts []string

	for _, tok := range toks {
		kinds = append(kinds, tok.kind)
		texts = append(texts, tok.text)
	}

	assert.Equal(t, []tokenKind{
		tokNumber, tokIdent, tokOp, tokNumber, tokOp, tokNumber,
		tokArrow, tokIdent, tokOp, tokNumber,
	}, kinds)
	assert.Equal(t, []string{"1_000.5e3", "km", "*", "4", "/", "2", "→", "m", "^", "²"}, texts)
	assert.InDelta(t, 1000500.0, toks[0].num, 1e-9)
	assert.InDelta(t, 2.0, toks[9].num, 0)
}

func TestTokenize_ExponentNeedsDigits(t *testing.T) {
	toks, err := tokenize("2e")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, tokNumber, toks[0].kind)
	assert.Equal(t, "e", toks[1].text)
}

func TestTokenize_Words(t *testing.T) {
	toks, err := tokenize("x to y and not z")
	require.NoError(t, err)
	assert.Equal(t, tokArrow, toks[1].kind)
	assert.Equal(t, tokOp, toks[3].kind)
	assert.Equal(t, tokOp, toks[4].kind)
}

func TestTokenize_Rejects(t *testing.T) {
	_, err := tokenize("1 $ 2")
	require.ErrorIs(t, err, ErrSyntax)
}

func rewriteString(t *testing.T, text string) (string, error) {
	t.Helper()

	toks, err := tokenize(text)
	require.NoError(t, err)

	rw := rewriter{
		resolve: func(name string) (ref, error) {
			return ref{name: name, kind: refVar}, nil
		},
		seen: make(map[string]string),
	}

	return rw.expr(toks)
}

func TestRewrite(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1 + 1", "__n0 + __n1"},
		{"10 m / 5 s", "(__n0 * __v0) / (__n1 * __v1)"},
		{"1 V + 1 V -> mV", "__convert((__n0 * __v0) + (__n1 * __v0), __v1)"},
		{"m²", "__v0 ^ (__n0)"},
		{"2 (3 + 4)", "(__n0 * (__n1 + __n2))"},
		{"sqrt(x, y)", "sqrt(__v0, __v1)"},
		{"a ^ -b", "__v0 ^ (-__v1)"},
		{"2 kg m^2", "(__n0 * __v0 * __v1 ^ (__n1))"},
		{"x to km to m", "__convert(__convert(__v0, __v1), __v2)"},
		{"(1 km -> m) * 2", "(__convert((__n0 * __v0), __v1)) * __n1"},
		{"true and x > 1", "true and __v0 > __n0"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := rewriteString(t, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRewrite_SyntaxErrors(t *testing.T) {
	for _, in := range []string{"(1 + 2", "1 + 2)", "-> m", "1 ->", "2 ^", "()", "sqrt(1, )"} {
		t.Run(in, func(t *testing.T) {
			_, err := rewriteString(t, in)
			require.ErrorIs(t, err, ErrSyntax)
		})
	}
}
