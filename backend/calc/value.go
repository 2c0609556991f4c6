package calc

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/ardnew/litcalc/units"
)

// Value is the result of a batch: the value of its last expression
// statement, or nothing.
type Value struct {
	v any
}

// Any returns the underlying [units.Quantity], bool, or nil.
func (v Value) Any() any { return v.v }

// Render formats the value for display. A batch without an expression
// renders as the empty string.
func (v Value) Render() (string, error) {
	switch x := v.v.(type) {
	case nil:
		return "", nil

	case units.Quantity:
		return x.String(), nil

	case bool:
		return strconv.FormatBool(x), nil

	default:
		return "", ErrNotDisplayable.With(
			slog.String("type", fmt.Sprintf("%T", x)),
		)
	}
}
