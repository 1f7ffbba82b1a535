package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/zovlang/zov/lang"
)

func TestRenderErrorPlain(t *testing.T) {
	var out strings.Builder

	renderError(&out, errors.New("boom"), "")

	if !strings.Contains(out.String(), "boom") {
		t.Errorf("output = %q, want message", out.String())
	}
}

func TestRenderErrorSnippet(t *testing.T) {
	src := "app {\n  port = ;\n}\n"

	_, err := lang.ParseSource(src)
	if err == nil {
		t.Fatal("want parse error")
	}

	var out strings.Builder
	renderError(&out, err, src)

	got := out.String()

	if !strings.Contains(got, "unexpected token") {
		t.Errorf("output = %q, want error message", got)
	}

	// The offending line appears with its gutter, followed by a caret.
	if !strings.Contains(got, "port = ;") {
		t.Errorf("output = %q, want source line", got)
	}

	if !strings.Contains(got, "^") {
		t.Errorf("output = %q, want caret marker", got)
	}
}

func TestRenderErrorNoPosition(t *testing.T) {
	var out strings.Builder

	renderError(&out, lang.NewError("bare"), "anything")

	got := out.String()

	if !strings.Contains(got, "bare") {
		t.Errorf("output = %q, want message", got)
	}

	// No position means no snippet lines.
	if strings.Contains(got, "|") {
		t.Errorf("output = %q, want no gutter", got)
	}
}
