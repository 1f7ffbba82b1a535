package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the default configuration file.
	ConfigIdentifier = "config"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// readSource reads the given source file, or stdin if path is "-".
// It returns the source text along with a display name for diagnostics.
func readSource(path string) (src, name string, err error) {
	if path == stdinSource {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", ErrReadSource.
				With(slog.String("source", "stdin")).
				Wrap(err)
		}

		return string(data), "<stdin>", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", ErrReadSource.
			With(slog.String("source", path)).
			Wrap(err)
	}

	return string(data), path, nil
}
