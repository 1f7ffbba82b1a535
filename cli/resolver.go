package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/zovlang/zov/lang"
)

// resolve returns a [kong.ConfigurationLoader] that parses config files
// written in the zov language and exposes the items of the named top-level
// category as flag values.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve("config"), "/path/to/config.zov")
//
// The zov structure is converted as follows:
//   - Each item of the named category becomes one flag value
//   - Flag names with hyphens (e.g., "log-level") may use underscores
//     in the config file (e.g., "log_level")
//   - Single-value items are unwrapped; multi-value items become arrays
//   - Subcategories are ignored
//
// Example zov config file:
//
//	config {
//	    log_level = "debug";
//	    log_format = "json";
//	    log_pretty = true;
//	}
//
// This configuration will be applied to Kong flags:
//
//	--log-level=debug
//	--log-format=json
//	--log-pretty=true
//
// Command-line flags override config file values.
func resolve(name string) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		src, err := io.ReadAll(r)
		if err != nil {
			return config{}, nil
		}

		tree, err := lang.LoadString(string(src))
		if err != nil {
			// Malformed config files are ignored rather than fatal.
			return config{}, nil
		}

		section, ok := tree[name].(map[string]any)
		if !ok {
			return config{}, nil
		}

		return config(flattenItems(section)), nil
	}
}

// config implements [kong.Resolver] for zov language configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but zov identifiers
	// use underscores. Try both forms.
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	// Not found. Return nil to let Kong use defaults.
	return nil, nil
}

// flattenItems converts an evaluated category into flag values. Item values
// arrive as arrays; single elements are unwrapped. Nested categories are
// dropped since flags are flat.
func flattenItems(section map[string]any) map[string]any {
	result := make(map[string]any, len(section))

	for key, value := range section {
		switch v := value.(type) {
		case map[string]any:
			continue

		case []any:
			if len(v) == 1 {
				result[key] = flagValue(v[0])
			} else {
				result[key] = v
			}

		default:
			result[key] = flagValue(v)
		}
	}

	return result
}

// flagValue converts an evaluated scalar to a form Kong can parse.
// Kong requires numbers as strings.
func flagValue(v any) any {
	switch n := v.(type) {
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return v
	}
}
