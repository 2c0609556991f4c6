// Package cli contains the command line interface for litcalc.
//
// # Usage
//
//	litcalc [flags] [FILE|-]...     evaluate documents (default command)
//	litcalc repl                    interactive session
//	litcalc units [--format=json]   list units
//	litcalc init [--force]          write the configuration file
//	litcalc version
//
// With no files, eval reads standard input. Each document is echoed to
// standard output with the result of every marked statement filled in:
//
//	$ printf 'let v = 1 V + 1 V -> mV\nv#=\n' | litcalc
//	let v = 1 V + 1 V -> mV
//	v#= 2000 mV
//
// # Session Options
//
//   - --backend: calc (units and dimensions) or starlark
//   - --prelude, --no-prelude: load the prelude module first
//   - --module-path: directories searched by "use", before $LITCALC_PATH
//     and the embedded modules
//   - --keyword: prefix of binding statements (default "let ")
//
// # Configuration
//
// Flag defaults are read from $XDG_CONFIG_HOME/litcalc/config.yaml and
// config.json. Flags given on the command line take precedence. The init
// command writes config.yaml from the current global flags.
//
// # Logging Options
//
//   - --log-level: trace, debug, info, warn, error
//   - --log-format: text, json
//   - --log-time-layout: RFC3339, Kitchen, ..., or none
//   - --log-caller: include caller information
//   - --log-pretty: colorize text output (default when stderr is a terminal)
//
// # Profiling Options
//
// Only available when built with the pprof tag:
//
//	go build -tags pprof .
//	litcalc --pprof-mode=cpu --pprof-dir=/tmp/profiles doc.md
package cli
