package lang

import (
	"reflect"
	"strings"
	"testing"
)

func TestFormatRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"item", "app {\n  port = 8080;\n}\n"},
		{"value list", "app {\n  ports = 8080, 8081;\n}\n"},
		{"string", "app {\n  name = \"demo\";\n}\n"},
		{"variable", "$timeout = 30s;\n"},
		{"include", "include \"common.zov\";\n"},
		{"nested", "a {\n  b {\n    x = true;\n  }\n}\n"},
		{"function", "c {\n  home = env(\"HOME\", \"/tmp\");\n}\n"},
		{"interpolated", "$n = 1;\nc {\n  msg = \"got $n and ${n + 1}\";\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseSource(tt.src)
			if err != nil {
				t.Fatalf("ParseSource failed: %v", err)
			}

			var out strings.Builder
			if err := doc.Format(&out); err != nil {
				t.Fatalf("Format failed: %v", err)
			}

			// Formatted output must parse back to an equivalent tree.
			again, err := ParseSource(out.String())
			if err != nil {
				t.Fatalf("reparse of %q failed: %v", out.String(), err)
			}

			var final strings.Builder
			if err := again.Format(&final); err != nil {
				t.Fatalf("second format failed: %v", err)
			}

			// Formatting is a fixed point after one pass.
			if final.String() != out.String() {
				t.Errorf("format not stable:\nfirst:  %q\nsecond: %q",
					out.String(), final.String())
			}
		})
	}
}

func TestFormatQuotesStrings(t *testing.T) {
	doc, err := ParseSource(`c { a = "two words"; b = bare; }`)
	if err != nil {
		t.Fatalf("ParseSource failed: %v", err)
	}

	var out strings.Builder
	if err := doc.Format(&out); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	if !strings.Contains(out.String(), `a = "two words";`) {
		t.Errorf("string value not quoted in %q", out.String())
	}

	// Bare identifiers stay bare.
	if !strings.Contains(out.String(), "b = bare;") {
		t.Errorf("identifier value quoted in %q", out.String())
	}
}

func TestFormatParenthesizesExpressions(t *testing.T) {
	doc, err := ParseSource("c { a = 1 + 2 * 3; }")
	if err != nil {
		t.Fatalf("ParseSource failed: %v", err)
	}

	var out strings.Builder
	if err := doc.Format(&out); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	// Explicit grouping preserves evaluation order across the round trip.
	if !strings.Contains(out.String(), "(1 + (2 * 3))") {
		t.Errorf("expression rendering = %q", out.String())
	}
}

func TestPrint(t *testing.T) {
	doc, err := ParseSource(`
		$v = 1;
		app {
			port = 8080;
		}
		include "x.zov";
	`)
	if err != nil {
		t.Fatalf("ParseSource failed: %v", err)
	}

	var out strings.Builder
	if err := doc.Print(&out); err != nil {
		t.Fatalf("Print failed: %v", err)
	}

	for _, want := range []string{
		"Document",
		"Variable: $v = 1;",
		"Category: app {",
		"Item: port = 8080;",
		`Include: "x.zov";`,
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Print output %q missing %q", out.String(), want)
		}
	}
}

func TestFormatPreservesSemantics(t *testing.T) {
	src := `
		$base = 10;
		app {
			n = $base * (2 + 3);
			tags = "a", "b";
		}
	`

	doc, err := ParseSource(src)
	if err != nil {
		t.Fatalf("ParseSource failed: %v", err)
	}

	var out strings.Builder
	if err := doc.Format(&out); err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	before, err := LoadString(src)
	if err != nil {
		t.Fatalf("LoadString(original) failed: %v", err)
	}

	after, err := LoadString(out.String())
	if err != nil {
		t.Fatalf("LoadString(formatted) failed: %v", err)
	}

	if !reflect.DeepEqual(before, after) {
		t.Errorf("formatted output evaluates to %#v, want %#v", after, before)
	}
}
