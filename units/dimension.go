package units

import (
	"strconv"
	"strings"
)

// Base dimension indices.
const (
	Length = iota
	Mass
	Time
	Current
	Temperature
	Amount
	Luminosity
	numBase
)

var baseSymbol = [numBase]string{"m", "kg", "s", "A", "K", "mol", "cd"}

// Dimension holds the exponents of the seven SI base dimensions.
type Dimension [numBase]int

// Dim builds a Dimension from (index, exponent) pairs.
func Dim(pairs ...int) Dimension {
	var d Dimension

	for i := 0; i+1 < len(pairs); i += 2 {
		d[pairs[i]] += pairs[i+1]
	}

	return d
}

func (d Dimension) add(o Dimension) Dimension {
	for i := range d {
		d[i] += o[i]
	}

	return d
}

func (d Dimension) scale(n int) Dimension {
	for i := range d {
		d[i] *= n
	}

	return d
}

// IsZero reports whether d is dimensionless.
func (d Dimension) IsZero() bool { return d == Dimension{} }

// String renders d in base units, e.g. "kg·m^2·s^-3·A^-1".
func (d Dimension) String() string {
	if d.IsZero() {
		return "1"
	}

	order := [numBase]int{Mass, Length, Time, Current, Temperature, Amount, Luminosity}
	part := make([]string, 0, numBase)

	for _, i := range order {
		switch d[i] {
		case 0:
		case 1:
			part = append(part, baseSymbol[i])
		default:
			part = append(part, baseSymbol[i]+"^"+strconv.Itoa(d[i]))
		}
	}

	return strings.Join(part, "·")
}
