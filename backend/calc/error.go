package calc

import "github.com/ardnew/litcalc/pkg"

var (
	ErrSyntax         = pkg.NewError("syntax error")
	ErrUnknownName    = pkg.NewError("unknown name")
	ErrDimension      = pkg.NewError("dimension mismatch")
	ErrMath           = pkg.NewError("invalid operation")
	ErrBinding        = pkg.NewError("invalid binding")
	ErrModuleNotFound = pkg.NewError("module not found")
	ErrModule         = pkg.NewError("module failed")
	ErrNotDisplayable = pkg.NewError("value cannot be displayed")
)
