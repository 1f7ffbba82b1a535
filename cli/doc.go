// Package cli contains the command line interface for zov.
//
// # Usage
//
// The CLI evaluates zov source files and prints the merged configuration
// tree:
//
//	zov eval config.zov
//	zov eval --precise --format yaml config.zov
//	zov parse config.zov
//	zov fmt config.zov
//
// # Configuration Loader
//
// The package includes a Kong configuration loader ([resolve]) that reads a
// config file written in the zov language itself and converts the items of
// its "config" category to Kong flag values. The file lives at
// ~/.config/zov/config.zov and can be generated with "zov init".
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, StampMilli, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/zov/pprof)
package cli
