package units

import "github.com/ardnew/litcalc/pkg"

var (
	ErrDimension   = pkg.NewError("incompatible dimensions")
	ErrExponent    = pkg.NewError("invalid exponent")
	ErrUnknownUnit = pkg.NewError("unknown unit")
	ErrDefined     = pkg.NewError("unit already defined")
	ErrUnitName    = pkg.NewError("invalid unit name")
)
