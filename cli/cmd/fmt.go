package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/zovlang/zov/lang"
)

// Fmt parses a source file and reprints it as canonical syntax.
// Include directives are preserved rather than resolved.
type Fmt struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin" name:"source"`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	src, name, err := readSource(f.Source)
	if err != nil {
		return err
	}

	doc, err := lang.ParseSource(src)
	if err != nil {
		renderError(os.Stderr, err, src)

		return lang.WrapError(err).
			With(
				slog.String("command", "fmt"),
				slog.String("source", name),
			)
	}

	return doc.Format(os.Stdout)
}
