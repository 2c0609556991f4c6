package units

import (
	"math"
	"strconv"
	"strings"
)

const maxExactInt = 1e15

// FormatNumber formats v for display. Integral values below 1e15 are
// printed exactly; everything else uses six significant digits with a
// compact exponent ("1.5e-7").
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}

	if v == math.Trunc(v) && math.Abs(v) < maxExactInt {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	s := strconv.FormatFloat(v, 'g', 6, 64)

	mant, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}

	sign := ""

	switch exp[0] {
	case '-':
		sign = "-"
		exp = exp[1:]
	case '+':
		exp = exp[1:]
	}

	return mant + "e" + sign + strings.TrimLeft(exp, "0")
}
