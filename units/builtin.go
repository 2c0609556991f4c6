package units

import "math"

// Elementary charge in coulombs, exact since the 2019 SI redefinition.
const elementaryCharge = 1.602176634e-19

var (
	dimEnergy  = Dim(Length, 2, Mass, 1, Time, -2)
	dimPower   = Dim(Length, 2, Mass, 1, Time, -3)
	dimVoltage = Dim(Length, 2, Mass, 1, Time, -3, Current, -1)
)

func plural(names ...string) []string {
	out := make([]string, 0, 2*len(names))
	for _, n := range names {
		out = append(out, n, n+"s")
	}

	return out
}

var builtin = []Unit{
	// base
	{Name: "m", Aliases: plural("meter", "metre"), Scale: 1, Dim: Dim(Length, 1), Prefixable: true},
	{Name: "g", Aliases: plural("gram", "gramme"), Scale: 1e-3, Dim: Dim(Mass, 1), Prefixable: true},
	{Name: "s", Aliases: append(plural("second"), "sec"), Scale: 1, Dim: Dim(Time, 1), Prefixable: true},
	{Name: "A", Aliases: plural("ampere", "amp"), Scale: 1, Dim: Dim(Current, 1), Prefixable: true},
	{Name: "K", Aliases: plural("kelvin"), Scale: 1, Dim: Dim(Temperature, 1), Prefixable: true},
	{Name: "mol", Aliases: plural("mole"), Scale: 1, Dim: Dim(Amount, 1), Prefixable: true},
	{Name: "cd", Aliases: plural("candela"), Scale: 1, Dim: Dim(Luminosity, 1), Prefixable: true},

	// derived
	{Name: "Hz", Aliases: []string{"hertz"}, Scale: 1, Dim: Dim(Time, -1), Prefixable: true},
	{Name: "N", Aliases: plural("newton"), Scale: 1, Dim: Dim(Length, 1, Mass, 1, Time, -2), Prefixable: true},
	{Name: "Pa", Aliases: plural("pascal"), Scale: 1, Dim: Dim(Length, -1, Mass, 1, Time, -2), Prefixable: true},
	{Name: "J", Aliases: plural("joule"), Scale: 1, Dim: dimEnergy, Prefixable: true},
	{Name: "W", Aliases: plural("watt"), Scale: 1, Dim: dimPower, Prefixable: true},
	{Name: "C", Aliases: plural("coulomb"), Scale: 1, Dim: Dim(Time, 1, Current, 1), Prefixable: true},
	{Name: "V", Aliases: plural("volt"), Scale: 1, Dim: dimVoltage, Prefixable: true},
	{Name: "F", Aliases: plural("farad"), Scale: 1, Dim: Dim(Length, -2, Mass, -1, Time, 4, Current, 2), Prefixable: true},
	{Name: "Ω", Aliases: plural("ohm"), Scale: 1, Dim: Dim(Length, 2, Mass, 1, Time, -3, Current, -2), Prefixable: true},
	{Name: "S", Aliases: []string{"siemens"}, Scale: 1, Dim: Dim(Length, -2, Mass, -1, Time, 3, Current, 2), Prefixable: true},
	{Name: "Wb", Aliases: plural("weber"), Scale: 1, Dim: Dim(Length, 2, Mass, 1, Time, -2, Current, -1), Prefixable: true},
	{Name: "T", Aliases: plural("tesla"), Scale: 1, Dim: Dim(Mass, 1, Time, -2, Current, -1), Prefixable: true},
	{Name: "H", Aliases: []string{"henry", "henries", "henrys"}, Scale: 1, Dim: Dim(Length, 2, Mass, 1, Time, -2, Current, -2), Prefixable: true},

	// accepted for use with SI
	{Name: "L", Aliases: append(plural("liter", "litre"), "l"), Scale: 1e-3, Dim: Dim(Length, 3), Prefixable: true},
	{Name: "Wh", Scale: 3600, Dim: dimEnergy, Prefixable: true},
	{Name: "eV", Aliases: plural("electronvolt"), Scale: elementaryCharge, Dim: dimEnergy, Prefixable: true},
	{Name: "bar", Aliases: []string{"bars"}, Scale: 1e5, Dim: Dim(Length, -1, Mass, 1, Time, -2), Prefixable: true},
	{Name: "min", Aliases: plural("minute"), Scale: 60, Dim: Dim(Time, 1)},
	{Name: "h", Aliases: append(plural("hour"), "hr"), Scale: 3600, Dim: Dim(Time, 1)},
	{Name: "day", Aliases: []string{"days", "d"}, Scale: 86400, Dim: Dim(Time, 1)},
	{Name: "rad", Aliases: plural("radian"), Scale: 1, Prefixable: true},
	{Name: "deg", Aliases: append(plural("degree"), "°"), Scale: math.Pi / 180},
}
