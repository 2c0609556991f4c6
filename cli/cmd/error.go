package cmd

import "github.com/ardnew/litcalc/pkg"

var (
	ErrBackend     = pkg.NewError("unknown backend")
	ErrEncode      = pkg.NewError("encode output")
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
	ErrNoContext   = pkg.NewError("command context unavailable")
)
