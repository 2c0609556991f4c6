package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

type (
	contextKey struct{}
	stdioKey   struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Stdio holds the streams a command reads and writes. Nil fields fall back
// to the process streams.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// WithStdio returns a new context.Context carrying s.
func WithStdio(ctx context.Context, s Stdio) context.Context {
	return context.WithValue(ctx, stdioKey{}, s)
}

// StdioFrom returns the streams stored by [WithStdio], with unset fields
// replaced by os.Stdin, os.Stdout, and os.Stderr.
func StdioFrom(ctx context.Context) Stdio {
	s, _ := ctx.Value(stdioKey{}).(Stdio)

	if s.In == nil {
		s.In = os.Stdin
	}

	if s.Out == nil {
		s.Out = os.Stdout
	}

	if s.Err == nil {
		s.Err = os.Stderr
	}

	return s
}
