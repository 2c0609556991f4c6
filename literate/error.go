package literate

import "github.com/ardnew/litcalc/pkg"

var (
	ErrSource       = pkg.NewError("read input")
	ErrBootstrap    = pkg.NewError("bootstrap")
	ErrEvaluate     = pkg.NewError("evaluate")
	ErrRender       = pkg.NewError("render result")
	ErrUnterminated = pkg.NewError("statement not closed by marker")
	ErrWrite        = pkg.NewError("write output")
)
