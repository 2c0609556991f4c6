package units

import (
	"log/slog"
	"math"
	"strings"
	"sync"
	"unicode"
)

// Unit is a named unit definition.
type Unit struct {
	Name       string
	Aliases    []string
	Scale      float64
	Dim        Dimension
	Prefixable bool
}

// Compound returns u as a single-factor compound unit.
func (u Unit) Compound() Compound {
	return Compound{{Name: u.Name, Exp: 1, Scale: u.Scale, Dim: u.Dim}}
}

// Quantity returns one of u.
func (u Unit) Quantity() Quantity {
	return Quantity{Value: 1, Unit: u.Compound()}
}

type prefix struct {
	short  string
	long   string
	symbol string
	scale  float64
}

// Two-letter symbols come before their one-letter initials so "da" wins
// over "d".
var prefixes = []prefix{
	{"Q", "quetta", "Q", 1e30},
	{"R", "ronna", "R", 1e27},
	{"Y", "yotta", "Y", 1e24},
	{"Z", "zetta", "Z", 1e21},
	{"E", "exa", "E", 1e18},
	{"P", "peta", "P", 1e15},
	{"T", "tera", "T", 1e12},
	{"G", "giga", "G", 1e9},
	{"M", "mega", "M", 1e6},
	{"k", "kilo", "k", 1e3},
	{"h", "hecto", "h", 1e2},
	{"da", "deca", "da", 1e1},
	{"d", "deci", "d", 1e-1},
	{"c", "centi", "c", 1e-2},
	{"m", "milli", "m", 1e-3},
	{"µ", "micro", "µ", 1e-6},
	{"μ", "", "µ", 1e-6},
	{"u", "", "µ", 1e-6},
	{"n", "nano", "n", 1e-9},
	{"p", "pico", "p", 1e-12},
	{"f", "femto", "f", 1e-15},
	{"a", "atto", "a", 1e-18},
	{"z", "zepto", "z", 1e-21},
	{"y", "yocto", "y", 1e-24},
	{"r", "ronto", "r", 1e-27},
	{"q", "quecto", "q", 1e-30},
}

type entry struct {
	unit *Unit
	long bool
}

// Registry maps unit names to definitions. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	names map[string]entry
	units []*Unit
}

// NewRegistry returns a registry holding the built-in SI units.
func NewRegistry() *Registry {
	r := &Registry{names: make(map[string]entry)}

	for _, b := range builtin {
		u := b
		r.add(&u, false)
	}

	return r
}

// Lookup resolves name to a unit. Exact names win over prefixed forms;
// short prefixes combine with symbols and long prefixes with long names.
func (r *Registry) Lookup(name string) (Unit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.names[name]; ok {
		u := *e.unit
		u.Aliases = nil

		return u, true
	}

	for _, p := range prefixes {
		if p.long != "" {
			if u, ok := r.prefixed(name, p.long, p.symbol, p.scale, true); ok {
				return u, true
			}
		}

		if u, ok := r.prefixed(name, p.short, p.symbol, p.scale, false); ok {
			return u, true
		}
	}

	return Unit{}, false
}

func (r *Registry) prefixed(
	name, pre, symbol string,
	scale float64,
	long bool,
) (Unit, bool) {
	rest, ok := strings.CutPrefix(name, pre)
	if !ok || rest == "" {
		return Unit{}, false
	}

	e, ok := r.names[rest]
	if !ok || !e.unit.Prefixable || e.long != long {
		return Unit{}, false
	}

	return Unit{
		Name:  symbol + e.unit.Name,
		Scale: scale * e.unit.Scale,
		Dim:   e.unit.Dim,
	}, true
}

// Define adds a unit equal to q under name. Aliases are registered as
// additional names for the same unit.
func (r *Registry) Define(
	name string,
	q Quantity,
	prefixable bool,
	aliases ...string,
) (Unit, error) {
	for _, n := range append([]string{name}, aliases...) {
		if !ValidName(n) {
			return Unit{}, ErrUnitName.With(slog.String("name", n))
		}
	}

	scale := q.Base()
	if scale == 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return Unit{}, ErrUnitName.With(
			slog.String("name", name),
			slog.Float64("scale", scale),
		)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range append([]string{name}, aliases...) {
		if _, ok := r.names[n]; ok {
			return Unit{}, ErrDefined.With(slog.String("name", n))
		}
	}

	u := &Unit{
		Name:       name,
		Aliases:    aliases,
		Scale:      scale,
		Dim:        q.Dim(),
		Prefixable: prefixable,
	}
	r.add(u, false)

	return *u, nil
}

// add registers u under its name and aliases. Alias spellings made only of
// letters and longer than three characters are treated as long names.
func (r *Registry) add(u *Unit, long bool) {
	r.units = append(r.units, u)
	r.names[u.Name] = entry{unit: u, long: long}

	for _, a := range u.Aliases {
		r.names[a] = entry{unit: u, long: len(a) > 3 && isWord(a)}
	}
}

// Units returns every defined unit in definition order.
func (r *Registry) Units() []Unit {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Unit, len(r.units))
	for i, u := range r.units {
		out[i] = *u
		out[i].Aliases = append([]string(nil), u.Aliases...)
	}

	return out
}

// Names returns every exact unit name and alias, unordered.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.names))
	for n := range r.names {
		out = append(out, n)
	}

	return out
}

// ValidName reports whether s can name a unit or variable: a letter or
// underscore followed by letters, digits, or underscores. The symbols
// °, Ω, and µ count as letters.
func ValidName(s string) bool {
	if s == "" {
		return false
	}

	for i, c := range s {
		switch {
		case IsNameRune(c) && !unicode.IsDigit(c):
		case i > 0 && unicode.IsDigit(c):
		default:
			return false
		}
	}

	return true
}

// IsNameRune reports whether c may appear in a name.
func IsNameRune(c rune) bool {
	return c == '_' || c == '°' || c == 'Ω' || c == 'µ' ||
		unicode.IsLetter(c) || unicode.IsDigit(c)
}

func isWord(s string) bool {
	for _, c := range s {
		if c < 'a' || c > 'z' {
			return false
		}
	}

	return true
}
