package starlark

import "github.com/ardnew/litcalc/pkg"

var (
	ErrSyntax         = pkg.NewError("syntax error")
	ErrExec           = pkg.NewError("execution failed")
	ErrModuleNotFound = pkg.NewError("module not found")
)
