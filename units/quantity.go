package units

import (
	"log/slog"
	"math"
)

// Quantity is a magnitude expressed in a compound unit.
type Quantity struct {
	Value float64
	Unit  Compound
}

// Number returns the dimensionless quantity v.
func Number(v float64) Quantity { return Quantity{Value: v} }

// Base returns the magnitude of q in SI base units.
func (q Quantity) Base() float64 { return q.Value * q.Unit.Scale() }

// Dim returns the dimension of q.
func (q Quantity) Dim() Dimension { return q.Unit.Dim() }

// Float returns the base magnitude of a dimensionless quantity.
func (q Quantity) Float() (float64, error) {
	if !q.Dim().IsZero() {
		return 0, ErrDimension.With(
			slog.String("want", "1"),
			slog.String("have", q.Dim().String()),
		)
	}

	return q.Base(), nil
}

func (q Quantity) compatible(o Quantity) error {
	if q.Dim() != o.Dim() {
		return ErrDimension.With(
			slog.String("left", q.Unit.String()),
			slog.String("right", o.Unit.String()),
		)
	}

	return nil
}

// in returns the magnitude of o expressed in the unit of q.
func (q Quantity) in(o Quantity) float64 {
	return o.Value * (o.Unit.Scale() / q.Unit.Scale())
}

// Add returns q+o in the unit of q. A plain number takes the unit of o.
func (q Quantity) Add(o Quantity) (Quantity, error) {
	if err := q.compatible(o); err != nil {
		return Quantity{}, err
	}

	if len(q.Unit) == 0 {
		return Quantity{Value: o.in(q) + o.Value, Unit: o.Unit}, nil
	}

	return Quantity{Value: q.Value + q.in(o), Unit: q.Unit}, nil
}

// Sub returns q-o in the unit of q.
func (q Quantity) Sub(o Quantity) (Quantity, error) {
	return q.Add(o.Neg())
}

// Mod returns the remainder of q/o in the unit of q.
func (q Quantity) Mod(o Quantity) (Quantity, error) {
	if err := q.compatible(o); err != nil {
		return Quantity{}, err
	}

	return Quantity{Value: math.Mod(q.Value, q.in(o)), Unit: q.Unit}, nil
}

// Neg returns -q.
func (q Quantity) Neg() Quantity {
	return Quantity{Value: -q.Value, Unit: q.Unit}
}

// Mul returns q·o.
func (q Quantity) Mul(o Quantity) Quantity {
	return Quantity{Value: q.Value * o.Value, Unit: q.Unit.Mul(o.Unit)}
}

// Div returns q/o.
func (q Quantity) Div(o Quantity) Quantity {
	return Quantity{Value: q.Value / o.Value, Unit: q.Unit.Mul(o.Unit.Inv())}
}

// Pow returns q raised to the dimensionless quantity o. A quantity with
// units may only be raised to a power that keeps every exponent integral.
func (q Quantity) Pow(o Quantity) (Quantity, error) {
	e, err := o.Float()
	if err != nil {
		return Quantity{}, ErrExponent.Wrap(err)
	}

	if len(q.Unit) == 0 {
		return Number(math.Pow(q.Value, e)), nil
	}

	if n := math.Round(e); n == e {
		return Quantity{
			Value: math.Pow(q.Value, e),
			Unit:  q.Unit.Pow(int(n)),
		}, nil
	}

	// Fractional powers are allowed when they divide every exponent,
	// as in sqrt(m^2).
	unit := make(Compound, len(q.Unit))

	for i, f := range q.Unit {
		x := float64(f.Exp) * e
		if x != math.Round(x) {
			return Quantity{}, ErrExponent.With(
				slog.String("unit", q.Unit.String()),
				slog.Float64("exponent", e),
			)
		}

		f.Exp = int(x)
		unit[i] = f
	}

	return Quantity{Value: math.Pow(q.Value, e), Unit: unit.compact()}, nil
}

// Cmp compares q and o by base magnitude, returning -1, 0, or +1.
func (q Quantity) Cmp(o Quantity) (int, error) {
	if err := q.compatible(o); err != nil {
		return 0, err
	}

	a, b := q.Base(), o.Base()

	switch {
	case a < b:
		return -1, nil
	case a > b:
		return 1, nil
	default:
		return 0, nil
	}
}

// Convert expresses q in the unit of target. The magnitude of target is
// ignored.
func (q Quantity) Convert(target Quantity) (Quantity, error) {
	if err := q.compatible(target); err != nil {
		return Quantity{}, err
	}

	return Quantity{Value: target.in(q), Unit: target.Unit}, nil
}

// String formats q as "<number> <unit>", or just the number when q has no
// unit.
func (q Quantity) String() string {
	if len(q.Unit) == 0 {
		return FormatNumber(q.Value)
	}

	return FormatNumber(q.Value) + " " + q.Unit.String()
}
