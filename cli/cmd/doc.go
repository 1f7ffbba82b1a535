// Package cmd implements the zov subcommands: eval, parse, fmt, and init.
package cmd
