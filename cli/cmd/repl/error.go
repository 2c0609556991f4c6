package repl

import "github.com/ardnew/litcalc/pkg"

var (
	ErrNotTerminal = pkg.NewError("standard input is not a terminal")
	ErrHistory     = pkg.NewError("history")
	ErrOutOfBounds = pkg.NewError("index out of range")
)
