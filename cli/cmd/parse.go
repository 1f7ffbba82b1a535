package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/zovlang/zov/lang"
)

// Parse parses a source file and prints its syntax tree.
type Parse struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin" name:"source"`

	NestingDepth int `default:"200" help:"Maximum expression nesting depth"`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	src, name, err := readSource(p.Source)
	if err != nil {
		return err
	}

	opts := []lang.Option{
		lang.WithMaxNestingDepth(p.NestingDepth),
	}

	var doc *lang.Document
	if p.Source == stdinSource {
		doc, err = lang.ParseString(src, opts...)
	} else {
		doc, err = lang.ParseFile(p.Source, opts...)
	}

	if err != nil {
		renderError(os.Stderr, err, src)

		return lang.WrapError(err).
			With(
				slog.String("command", "parse"),
				slog.String("source", name),
			)
	}

	return doc.Print(os.Stdout)
}
