package units

import (
	"math"
	"strconv"
	"strings"
)

// Factor is one named unit raised to an integer power.
type Factor struct {
	Name  string
	Exp   int
	Scale float64 // of the unit itself, not raised to Exp
	Dim   Dimension
}

// Compound is a product of unit factors in order of first appearance.
// The empty Compound is the unit of a plain number.
type Compound []Factor

// Scale returns the factor converting a magnitude in c to SI base units.
func (c Compound) Scale() float64 {
	s := 1.0

	for _, f := range c {
		s *= math.Pow(f.Scale, float64(f.Exp))
	}

	return s
}

// Dim returns the combined dimension of c.
func (c Compound) Dim() Dimension {
	var d Dimension

	for _, f := range c {
		d = d.add(f.Dim.scale(f.Exp))
	}

	return d
}

// Mul returns the product c·o. Factors with the same name are merged and
// factors whose exponent drops to zero are removed.
func (c Compound) Mul(o Compound) Compound {
	out := make(Compound, 0, len(c)+len(o))
	out = append(out, c...)

	for _, f := range o {
		merged := false

		for i := range out {
			if out[i].Name == f.Name {
				out[i].Exp += f.Exp
				merged = true

				break
			}
		}

		if !merged {
			out = append(out, f)
		}
	}

	return out.compact()
}

// Pow returns c with every exponent multiplied by n.
func (c Compound) Pow(n int) Compound {
	out := make(Compound, len(c))

	for i, f := range c {
		f.Exp *= n
		out[i] = f
	}

	return out.compact()
}

// Inv returns the reciprocal of c.
func (c Compound) Inv() Compound { return c.Pow(-1) }

func (c Compound) compact() Compound {
	out := c[:0]

	for _, f := range c {
		if f.Exp != 0 {
			out = append(out, f)
		}
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

// String renders c as "kg·m^2/s^2". Denominators with more than one factor
// are parenthesized; a unit with no numerator is written with negative
// exponents ("s^-1").
func (c Compound) String() string {
	var num, den []string

	for _, f := range c {
		switch {
		case f.Exp > 0:
			num = append(num, power(f.Name, f.Exp))
		case f.Exp < 0:
			den = append(den, power(f.Name, -f.Exp))
		}
	}

	switch {
	case len(den) == 0:
		return strings.Join(num, "·")

	case len(num) == 0:
		part := make([]string, 0, len(c))
		for _, f := range c {
			part = append(part, f.Name+"^"+strconv.Itoa(f.Exp))
		}

		return strings.Join(part, "·")

	case len(den) == 1:
		return strings.Join(num, "·") + "/" + den[0]

	default:
		return strings.Join(num, "·") + "/(" + strings.Join(den, "·") + ")"
	}
}

func power(name string, exp int) string {
	if exp == 1 {
		return name
	}

	return name + "^" + strconv.Itoa(exp)
}
