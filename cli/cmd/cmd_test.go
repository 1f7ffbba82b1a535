package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func TestReadSourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.zov")
	if err := os.WriteFile(path, []byte("app { a = 1; }"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	src, name, err := readSource(path)
	if err != nil {
		t.Fatalf("readSource failed: %v", err)
	}

	if src != "app { a = 1; }" || name != path {
		t.Errorf("readSource = %q, %q", src, name)
	}
}

func TestReadSourceMissing(t *testing.T) {
	_, _, err := readSource(filepath.Join(t.TempDir(), "ghost.zov"))
	if !errors.Is(err, ErrReadSource) {
		t.Errorf("error = %v, want %v", err, ErrReadSource)
	}
}

func TestKongContextRoundTrip(t *testing.T) {
	var grammar struct {
		Noop struct{} `cmd:""`
	}

	parser, err := kong.New(&grammar)
	if err != nil {
		t.Fatalf("kong.New failed: %v", err)
	}

	ktx, err := parser.Parse([]string{"noop"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	ctx := WithContext(context.Background(), ktx)
	if got := kongContextFrom(ctx); got != ktx {
		t.Errorf("kongContextFrom = %v, want %v", got, ktx)
	}

	if got := kongContextFrom(context.Background()); got != nil {
		t.Errorf("kongContextFrom(empty) = %v, want nil", got)
	}
}

func TestInitBuildSource(t *testing.T) {
	var grammar struct {
		LogLevel  string `default:"info"`
		LogPretty bool   `default:"true" negatable:""`
		Depth     int    `default:"32"`
		Force     bool   `short:"f"`
	}

	parser, err := kong.New(&grammar)
	if err != nil {
		t.Fatalf("kong.New failed: %v", err)
	}

	ktx, err := parser.Parse([]string{"--log-level=debug"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	ctx := WithContext(context.Background(), ktx)

	src := (&Init{}).buildSource(ctx)

	for _, want := range []string{
		"config {",
		`log_level = "debug";`,
		"log_pretty = true;",
		"depth = 32;",
		"}",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("source %q missing %q", src, want)
		}
	}

	// Excluded flags never leak into the generated file.
	for _, reject := range []string{"help", "force"} {
		if strings.Contains(src, reject) {
			t.Errorf("source %q contains excluded flag %q", src, reject)
		}
	}
}
