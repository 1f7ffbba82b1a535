package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func flag(name string) *kong.Flag {
	return &kong.Flag{Value: &kong.Value{Name: name}}
}

func TestResolve(t *testing.T) {
	src := `
		config {
			log_level = "debug";
			log_format = "json";
			log_pretty = true;
			include_depth = 16;
			nested { ignored = 1; }
		}
		other { skipped = 1; }
	`

	resolver, err := resolve("config")(strings.NewReader(src))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		// Hyphenated flag names match underscore config keys.
		{"log-level", "debug"},
		{"log-format", "json"},
		{"log-pretty", true},
		{"include-depth", "16"}, // numbers resolve as strings for kong
		{"absent", nil},
		{"nested", nil},
		{"skipped", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			got, err := resolver.Resolve(nil, nil, flag(tt.flag))
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", tt.flag, err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%q) = %v (%T), want %v",
					tt.flag, got, got, tt.want)
			}
		})
	}
}

func TestResolveMultiValueItem(t *testing.T) {
	src := `config { tags = "a", "b"; }`

	resolver, err := resolve("config")(strings.NewReader(src))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	got, err := resolver.Resolve(nil, nil, flag("tags"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	values, ok := got.([]any)
	if !ok || len(values) != 2 {
		t.Fatalf("Resolve = %v (%T), want two-element list", got, got)
	}
}

// A config file that does not parse must not break flag handling; defaults
// apply instead.
func TestResolveTolerant(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"malformed", "config {"},
		{"missing section", "other { a = 1; }"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver, err := resolve("config")(strings.NewReader(tt.src))
			if err != nil {
				t.Fatalf("resolve failed: %v", err)
			}

			got, err := resolver.Resolve(nil, nil, flag("log-level"))
			if err != nil || got != nil {
				t.Errorf("Resolve = %v, %v; want nil, nil", got, err)
			}
		})
	}
}
