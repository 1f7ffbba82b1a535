package lang

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}

	return path
}

func TestIncludeSplice(t *testing.T) {
	t.Cleanup(ClearCache)

	dir := t.TempDir()
	writeFile(t, dir, "common.zov", "common { retries = 3; }\n")
	main := writeFile(t, dir, "main.zov", `
		before { a = 1; }
		include "common.zov";
		after { b = 2; }
	`)

	doc, err := ParseFile(main)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}

	// Included members replace the directive in place.
	names := make([]string, 0, len(doc.Members))
	for _, m := range doc.Members {
		cat, ok := m.(*Category)
		if !ok {
			t.Fatalf("unresolved member %T in %v", m, doc.Members)
		}

		names = append(names, cat.Name)
	}

	want := []string{"before", "common", "after"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("member order = %v, want %v", names, want)
		}
	}
}

func TestIncludeEvaluates(t *testing.T) {
	t.Cleanup(ClearCache)

	dir := t.TempDir()
	writeFile(t, dir, "vars.zov", "$port = 8080;\n")
	main := writeFile(t, dir, "main.zov", `
		include "vars.zov";
		app { port = $port; }
	`)

	tree, err := Load(main)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := item(t, tree, "app", "port"); got[0] != int64(8080) {
		t.Errorf("port = %v, want 8080", got)
	}
}

func TestIncludeNested(t *testing.T) {
	t.Cleanup(ClearCache)

	dir := t.TempDir()
	writeFile(t, dir, "sub/inner.zov", "inner { x = 1; }\n")
	writeFile(t, dir, "sub/mid.zov", `include "inner.zov";`+"\n")
	main := writeFile(t, dir, "main.zov", `include "sub/mid.zov";`+"\n")

	tree, err := Load(main)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := item(t, tree, "inner", "x"); got[0] != int64(1) {
		t.Errorf("inner.x = %v, want 1", got)
	}
}

// A diamond graph includes the same file along two unrelated branches;
// only a cycle along one chain is an error.
func TestIncludeDiamond(t *testing.T) {
	t.Cleanup(ClearCache)

	dir := t.TempDir()
	writeFile(t, dir, "shared.zov", "$n = 1;\n")
	writeFile(t, dir, "left.zov", `include "shared.zov";`+"\n")
	writeFile(t, dir, "right.zov", `include "shared.zov";`+"\n")
	main := writeFile(t, dir, "main.zov", `
		include "left.zov";
		include "right.zov";
		c { n = $n; }
	`)

	if _, err := Load(main); err != nil {
		t.Fatalf("diamond include failed: %v", err)
	}
}

func TestIncludeCycle(t *testing.T) {
	t.Cleanup(ClearCache)

	dir := t.TempDir()
	writeFile(t, dir, "a.zov", `include "b.zov";`+"\n")
	writeFile(t, dir, "b.zov", `include "a.zov";`+"\n")

	_, err := ParseFile(filepath.Join(dir, "a.zov"))
	if !errors.Is(err, ErrCircularInclude) {
		t.Errorf("error = %v, want %v", err, ErrCircularInclude)
	}
}

func TestIncludeSelfCycle(t *testing.T) {
	t.Cleanup(ClearCache)

	dir := t.TempDir()
	self := writeFile(t, dir, "self.zov", `include "self.zov";`+"\n")

	_, err := ParseFile(self)
	if !errors.Is(err, ErrCircularInclude) {
		t.Errorf("error = %v, want %v", err, ErrCircularInclude)
	}
}

func TestIncludePathTraversal(t *testing.T) {
	t.Cleanup(ClearCache)

	tests := []string{
		"../outside.zov",
		"../../etc/passwd",
		"sub/../../outside.zov",
	}

	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			dir := t.TempDir()

			// The target exists one level up, so only the traversal check
			// can reject it.
			writeFile(t, filepath.Dir(dir), "outside.zov", "x { a = 1; }\n")
			main := writeFile(t, dir, "main.zov", `include "`+path+`";`+"\n")

			_, err := ParseFile(main)
			if !errors.Is(err, ErrPathTraversal) {
				t.Errorf("error = %v, want %v", err, ErrPathTraversal)
			}
		})
	}
}

func TestIncludeNotFound(t *testing.T) {
	t.Cleanup(ClearCache)

	dir := t.TempDir()
	main := writeFile(t, dir, "main.zov", `include "ghost.zov";`+"\n")

	_, err := ParseFile(main)
	if !errors.Is(err, ErrIncludeNotFound) {
		t.Errorf("error = %v, want %v", err, ErrIncludeNotFound)
	}
}

func TestIncludeDepthLimit(t *testing.T) {
	t.Cleanup(ClearCache)

	dir := t.TempDir()

	// f0 includes f1 includes f2 ... f5 holds the payload.
	writeFile(t, dir, "f5.zov", "deep { ok = true; }\n")
	for i := 4; i >= 0; i-- {
		writeFile(t, dir, "f"+strconv.Itoa(i)+".zov",
			`include "f`+strconv.Itoa(i+1)+`.zov";`+"\n")
	}

	main := filepath.Join(dir, "f0.zov")

	if _, err := ParseFile(main); err != nil {
		t.Fatalf("within limit: %v", err)
	}

	_, err := ParseFile(main, WithMaxIncludeDepth(3))
	if !errors.Is(err, ErrMaxIncludeDepth) {
		t.Errorf("error = %v, want %v", err, ErrMaxIncludeDepth)
	}
}

func TestIncludeErrorCarriesPath(t *testing.T) {
	t.Cleanup(ClearCache)

	dir := t.TempDir()
	writeFile(t, dir, "bad.zov", "broken {\n")
	main := writeFile(t, dir, "main.zov", `include "bad.zov";`+"\n")

	_, err := ParseFile(main)
	if !errors.Is(err, ErrUnexpectedEOF) {
		t.Errorf("error = %v, want %v", err, ErrUnexpectedEOF)
	}
}

// Editing a file between loads must invalidate its cached parse.
func TestIncludeCacheInvalidation(t *testing.T) {
	t.Cleanup(ClearCache)

	dir := t.TempDir()
	inc := writeFile(t, dir, "inc.zov", "c { v = 1; }\n")
	main := writeFile(t, dir, "main.zov", `include "inc.zov";`+"\n")

	tree, err := Load(main)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}

	if got := item(t, tree, "c", "v"); got[0] != int64(1) {
		t.Fatalf("v = %v, want 1", got)
	}

	writeFile(t, dir, filepath.Base(inc), "c { v = 2; }\n")

	tree, err = Load(main)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}

	if got := item(t, tree, "c", "v"); got[0] != int64(2) {
		t.Errorf("v = %v, want 2 after rewrite", got)
	}
}

func TestIncludeInsideCategory(t *testing.T) {
	t.Cleanup(ClearCache)

	dir := t.TempDir()
	writeFile(t, dir, "net.zov", `net { host = "localhost"; }`+"\n")

	// An include inside a category splices the included file's members into
	// that category, so the spliced category nests under it.
	main := writeFile(t, dir, "main.zov", `
		server {
			include "net.zov";
			port = 8080;
		}
	`)

	tree, err := Load(main)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := item(t, tree, "server", "net", "host"); got[0] != "localhost" {
		t.Errorf("host = %v, want localhost", got)
	}

	if got := item(t, tree, "server", "port"); got[0] != int64(8080) {
		t.Errorf("port = %v, want 8080", got)
	}
}
