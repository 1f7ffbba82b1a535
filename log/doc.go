// Package log provides a simplified structured logging interface based on
// [log/slog].
//
// Loggers are immutable values configured at creation time with functional
// options. The zero value [Logger] discards every message, so library code
// can hold a Logger field without nil checks.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("evaluation finished", slog.String("path", path))
//
// # Configuration
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithCaller(true),
//	)
//
// # Adding Attributes
//
// Attributes can be added to a logger to be included in all subsequent
// log messages using the [Logger.With] method:
//
//	logger = logger.With(slog.String("component", "interp"))
//
// # Context-Aware Logging
//
// Each logging level has both a context-aware and context-unaware variant.
// Context-unaware functions call their context-aware counterparts using
// [DefaultContextProvider], which returns [context.TODO] by default.
//
// # Default Logger
//
// A process-wide default logger is available through [Default] and the
// package-level [Debug], [Info], [Warn], and [Error] functions; [Config]
// reconfigures it in place.
package log
