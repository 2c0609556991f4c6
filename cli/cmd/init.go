package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/litcalc/log"
	"github.com/ardnew/litcalc/profile"
)

// Init writes a configuration file holding the current global flag values.
type Init struct {
	Force bool `help:"Overwrite an existing configuration file." short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrNoContext
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		return ErrNoContext.With(slog.String("var", ConfigIdentifier))
	}

	fail := func(err error) error {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	if _, err := os.Stat(confPath); err == nil && !i.Force {
		return fail(ErrFileExists)
	}

	out, err := yaml.Marshal(configValues(ktx))
	if err != nil {
		return fail(err)
	}

	if err := os.MkdirAll(filepath.Dir(confPath), 0o700); err != nil {
		return fail(err)
	}

	if err := os.WriteFile(confPath, out, 0o600); err != nil {
		return fail(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// configValues returns the application-level flags and their current
// values in declaration order. Help, version, and profiling flags are
// skipped, as are unset strings and empty lists.
func configValues(ktx *kong.Context) yaml.MapSlice {
	skip := []string{"help", "version", profile.Tag}

	var values yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(skip, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		v := configValue(ktx.FlagValue(flag))
		if v == nil {
			continue
		}

		values = append(values, yaml.MapItem{Key: flag.Name, Value: v})
	}

	return values
}

func configValue(v any) any {
	switch v := v.(type) {
	case nil:
		return nil

	case string:
		if v == "" {
			return nil
		}

	case []string:
		if len(v) == 0 {
			return nil
		}
	}

	return v
}
