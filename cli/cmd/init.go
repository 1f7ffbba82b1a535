package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/zovlang/zov/log"
	"github.com/zovlang/zov/profile"
)

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	_, err = file.WriteString(i.buildSource(ctx))
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// buildSource renders the current flag values as a config category in the
// language itself, one item per flag. Flag names use underscores so the
// identifiers lex cleanly.
func (i *Init) buildSource(ctx context.Context) string {
	ktx := kongContextFrom(ctx)

	var sb strings.Builder

	sb.WriteString("# Generated by zov init.\n")
	sb.WriteString("config {\n")

	prefixIgnore := []string{"help", "version", "force", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(prefixIgnore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		value, ok := i.flagValue(ctx, flag.Name)
		if !ok {
			continue
		}

		name := strings.ReplaceAll(flag.Name, "-", "_")
		fmt.Fprintf(&sb, "    %s = %s;\n", name, value)
	}

	sb.WriteString("}\n")

	return sb.String()
}

// flagValue returns the source rendering of a CLI flag value, or false if
// the flag is unset or has no useful rendering.
func (i *Init) flagValue(ctx context.Context, name string) (string, bool) {
	ktx := kongContextFrom(ctx)

	idx := slices.IndexFunc(ktx.Model.Flags, func(flag *kong.Flag) bool {
		return flag.Name == name
	})
	if idx == -1 {
		return "", false
	}

	val := ktx.FlagValue(ktx.Model.Flags[idx])
	if val == nil {
		return "", false
	}

	switch v := val.(type) {
	case bool:
		return strconv.FormatBool(v), true

	case string:
		if v == "" {
			return "", false
		}

		return strconv.Quote(v), true

	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return fmt.Sprint(v), true

	case fmt.Stringer:
		return strconv.Quote(v.String()), true

	default:
		return strconv.Quote(fmt.Sprint(v)), true
	}
}
