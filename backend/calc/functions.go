package calc

import (
	"math"
	"slices"

	"github.com/expr-lang/expr"

	"github.com/ardnew/litcalc/units"
)

// Internal function names. The tokenizer never produces identifiers that
// resolve to them.
const (
	fnNegate  = "__neg"
	fnConvert = "__convert"
)

type (
	unaryFunc  func(units.Quantity) (units.Quantity, error)
	binaryFunc func(a, b units.Quantity) (any, error)
)

var (
	unaryType   = new(func(units.Quantity) units.Quantity)
	binaryType  = new(func(units.Quantity, units.Quantity) units.Quantity)
	compareType = new(func(units.Quantity, units.Quantity) bool)
)

// functions are callable by name from expressions.
var functions = map[string]unaryFunc{
	"sqrt": func(q units.Quantity) (units.Quantity, error) {
		return q.Pow(units.Number(0.5))
	},
	"abs":   magnitude(math.Abs),
	"round": magnitude(math.Round),
	"floor": magnitude(math.Floor),
	"ceil":  magnitude(math.Ceil),
	"exp":   dimensionless(math.Exp),
	"ln":    dimensionless(math.Log),
	"log10": dimensionless(math.Log10),
	"sin":   dimensionless(math.Sin),
	"cos":   dimensionless(math.Cos),
	"tan":   dimensionless(math.Tan),
}

// FunctionNames returns the names of the callable functions, sorted.
func FunctionNames() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// magnitude applies f to the value of q, keeping its unit.
func magnitude(f func(float64) float64) unaryFunc {
	return func(q units.Quantity) (units.Quantity, error) {
		return units.Quantity{Value: f(q.Value), Unit: q.Unit}, nil
	}
}

// dimensionless applies f to the base value of a dimensionless quantity.
func dimensionless(f func(float64) float64) unaryFunc {
	return func(q units.Quantity) (units.Quantity, error) {
		x, err := q.Float()
		if err != nil {
			return units.Quantity{}, err
		}

		return units.Number(f(x)), nil
	}
}

func compare(test func(int) bool) binaryFunc {
	return func(a, b units.Quantity) (any, error) {
		c, err := a.Cmp(b)
		if err != nil {
			return nil, err
		}

		return test(c), nil
	}
}

func quantity(f func(a, b units.Quantity) (units.Quantity, error)) binaryFunc {
	return func(a, b units.Quantity) (any, error) { return f(a, b) }
}

func total(f func(a, b units.Quantity) units.Quantity) binaryFunc {
	return func(a, b units.Quantity) (any, error) { return f(a, b), nil }
}

var operators = []struct {
	fn   string
	ops  []string
	call binaryFunc
	typ  any
}{
	{"__add", []string{"+"}, quantity(units.Quantity.Add), binaryType},
	{"__sub", []string{"-"}, quantity(units.Quantity.Sub), binaryType},
	{"__mul", []string{"*"}, total(units.Quantity.Mul), binaryType},
	{"__div", []string{"/"}, total(units.Quantity.Div), binaryType},
	{"__mod", []string{"%"}, quantity(units.Quantity.Mod), binaryType},
	{"__pow", []string{"^", "**"}, quantity(units.Quantity.Pow), binaryType},
	{fnConvert, nil, quantity(units.Quantity.Convert), binaryType},
	{"__lt", []string{"<"}, compare(func(c int) bool { return c < 0 }), compareType},
	{"__le", []string{"<="}, compare(func(c int) bool { return c <= 0 }), compareType},
	{"__gt", []string{">"}, compare(func(c int) bool { return c > 0 }), compareType},
	{"__ge", []string{">="}, compare(func(c int) bool { return c >= 0 }), compareType},
	{"__eq", []string{"=="}, compare(func(c int) bool { return c == 0 }), compareType},
	{"__ne", []string{"!="}, compare(func(c int) bool { return c != 0 }), compareType},
}

// exprOptions returns the compiler options shared by every statement of s.
// Failures raised inside functions are recorded on s so the original error
// survives expr's runtime wrapping.
func (s *Session) exprOptions() []expr.Option {
	opts := []expr.Option{expr.DisableAllBuiltins()}

	for name, f := range functions {
		opts = append(opts, expr.Function(name, func(args ...any) (any, error) {
			q, _ := args[0].(units.Quantity)

			out, err := f(q)
			if err != nil {
				return nil, s.fail(err)
			}

			return out, nil
		}, unaryType))
	}

	opts = append(opts, expr.Function(fnNegate, func(args ...any) (any, error) {
		q, _ := args[0].(units.Quantity)

		return q.Neg(), nil
	}, unaryType))

	for _, op := range operators {
		opts = append(opts, expr.Function(op.fn, func(args ...any) (any, error) {
			a, _ := args[0].(units.Quantity)
			b, _ := args[1].(units.Quantity)

			out, err := op.call(a, b)
			if err != nil {
				return nil, s.fail(err)
			}

			return out, nil
		}, op.typ))
	}

	opts = append(opts, expr.Patch(signPatcher{}))

	for _, op := range operators {
		for _, sym := range op.ops {
			opts = append(opts, expr.Operator(sym, op.fn))
		}
	}

	return opts
}
