package cli

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/ardnew/litcalc/cli/cmd"
	"github.com/ardnew/litcalc/log"
	"github.com/ardnew/litcalc/pkg"
)

// CLI is the top-level command-line interface for litcalc.
type CLI struct {
	Log     logConfig   `embed:"" group:"log"     prefix:"log-"`
	Pprof   pprofConfig `embed:"" group:"pprof"   prefix:"pprof-"`
	Session cmd.Session `embed:"" group:"session"`

	Eval    cmd.Eval    `cmd:"" default:"withargs" help:"Evaluate marked lines of documents"`
	Repl    cmd.Repl    `cmd:""                   help:"Start an interactive session"`
	Units   cmd.Units   `cmd:""                   help:"List known units"`
	Init    cmd.Init    `cmd:""                   help:"Initialize configuration file"`
	Version cmd.Version `cmd:""                   help:"Print version"`
}

// Run executes the litcalc CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
// Streams stored in ctx with [cmd.WithStdio] replace the process streams.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	stdio := cmd.StdioFrom(ctx)

	log.Config(log.WithOutput(stdio.Err))

	configFilePath := configPath(baseConfig + ".yaml")

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
	}.
		CloneWith(cli.Log.vars(stdio.Err)).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Logger flags are applied before kong parses so that parse errors are
	// logged with the requested settings.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(stdio.Out, stdio.Err),
		kong.ExplicitGroups([]kong.Group{
			cli.Log.group(),
			cli.Pprof.group(),
			sessionGroup(),
		}),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			Summary:             true,
			Tree:                true,
			NoExpandSubcommands: true,
		}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolveYAML, configFilePath),
		kong.Bind(&cli.Session),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ktx.BindTo(ctx, (*context.Context)(nil))

	cli.Log.start(ctx, stdio.Err)

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run()
}

func sessionGroup() kong.Group {
	return kong.Group{Key: "session", Title: "Session options"}
}
