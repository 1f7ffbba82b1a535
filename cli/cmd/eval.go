package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/zovlang/zov/lang"
	"github.com/zovlang/zov/log"
)

// Eval evaluates a source file and prints the merged configuration tree.
type Eval struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin" name:"source"`

	Format  string `default:"json"  enum:"json,yaml" help:"Output format"                 short:"o"`
	Precise bool   `                                 help:"Use precise decimal arithmetic"`

	IncludeDepth int `default:"32"  help:"Maximum include chain depth"`
	NestingDepth int `default:"200" help:"Maximum expression nesting depth"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	src, name, err := readSource(e.Source)
	if err != nil {
		return err
	}

	opts := []lang.Option{
		lang.WithPrecise(e.Precise),
		lang.WithMaxIncludeDepth(e.IncludeDepth),
		lang.WithMaxNestingDepth(e.NestingDepth),
		lang.WithLogger(log.Default()),
	}

	var result map[string]any
	if e.Source == stdinSource {
		result, err = lang.LoadString(src, opts...)
	} else {
		result, err = lang.Load(e.Source, opts...)
	}

	if err != nil {
		renderError(os.Stderr, err, src)

		return lang.WrapError(err).
			With(
				slog.String("command", "eval"),
				slog.String("source", name),
			)
	}

	return e.write(os.Stdout, result)
}

func (e *Eval) write(w *os.File, result map[string]any) error {
	switch e.Format {
	case "yaml":
		if err := lang.EncodeYAML(w, result); err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		return nil

	default:
		if err := lang.EncodeJSON(w, result); err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		return nil
	}
}
