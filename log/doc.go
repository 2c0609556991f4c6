// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// Settings are applied with functional options when a [Logger] is made and
// never change afterwards, so a Logger value may be copied and shared.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("kitchen"),
//		log.WithCaller(true))
//	logger.Debug("flush", slog.Int("fragments", 3))
//
// # Package Logger
//
// The package-level functions ([Info], [DebugContext], ...) write through a
// default logger that targets standard error, because standard output is
// reserved for the rendered document. [Config] replaces its settings.
//
// # Levels
//
// [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn], and [LevelError].
// Trace records are rendered as "TRACE" rather than slog's "DEBUG-4".
//
// # Formats
//
// [FormatText] (default) and [FormatJSON]. Text output may be colorized
// with [WithPretty].
package log
