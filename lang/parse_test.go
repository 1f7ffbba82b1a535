package lang

import (
	"errors"
	"strings"
	"testing"
)

func parse(t *testing.T, src string) *Document {
	t.Helper()

	doc, err := ParseSource(src)
	if err != nil {
		t.Fatalf("ParseSource(%q) failed: %v", src, err)
	}

	return doc
}

func TestParseCategory(t *testing.T) {
	doc := parse(t, `
		app {
			name = "demo";
			server {
				port = 8080;
			}
		}
	`)

	if len(doc.Members) != 1 {
		t.Fatalf("got %d top-level members, want 1", len(doc.Members))
	}

	cat, ok := doc.Members[0].(*Category)
	if !ok {
		t.Fatalf("member is %T, want *Category", doc.Members[0])
	}

	if cat.Name != "app" || len(cat.Members) != 2 {
		t.Fatalf("category = %q with %d members, want app with 2",
			cat.Name, len(cat.Members))
	}

	if item, ok := cat.Members[0].(*Item); !ok || item.Name != "name" {
		t.Errorf("first member = %#v, want item name", cat.Members[0])
	}

	sub, ok := cat.Members[1].(*Category)
	if !ok || sub.Name != "server" {
		t.Fatalf("second member = %#v, want category server", cat.Members[1])
	}
}

func TestParseItemValueList(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want int
	}{
		{"single", "c { a = 1; }", 1},
		{"multiple", "c { a = 1, 2, 3; }", 3},
		{"trailing comma", "c { a = 1, 2, ; }", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parse(t, tt.src)

			item := doc.Members[0].(*Category).Members[0].(*Item)
			if len(item.Values) != tt.want {
				t.Errorf("got %d values, want %d", len(item.Values), tt.want)
			}
		})
	}
}

func TestParsePrecedence(t *testing.T) {
	doc := parse(t, "c { a = 1 + 2 * 3; }")

	expr := doc.Members[0].(*Category).Members[0].(*Item).Values[0]

	root, ok := expr.(*BinaryExpr)
	if !ok || root.Op != Plus {
		t.Fatalf("root = %#v, want '+' expression", expr)
	}

	right, ok := root.Right.(*BinaryExpr)
	if !ok || right.Op != Star {
		t.Fatalf("right = %#v, want '*' expression", root.Right)
	}
}

func TestParseLeftAssociative(t *testing.T) {
	doc := parse(t, "c { a = 10 - 4 - 3; }")

	// ((10 - 4) - 3)
	root := doc.Members[0].(*Category).Members[0].(*Item).Values[0].(*BinaryExpr)
	if root.Op != Minus {
		t.Fatalf("root op = %v, want '-'", root.Op)
	}

	left, ok := root.Left.(*BinaryExpr)
	if !ok || left.Op != Minus {
		t.Fatalf("left = %#v, want nested '-' expression", root.Left)
	}

	if lit := root.Right.(*Literal); lit.Value != IntValue(3) {
		t.Errorf("right literal = %+v, want 3", lit.Value)
	}
}

func TestParseParenthesized(t *testing.T) {
	doc := parse(t, "c { a = (1 + 2) * 3; }")

	root := doc.Members[0].(*Category).Members[0].(*Item).Values[0].(*BinaryExpr)
	if root.Op != Star {
		t.Fatalf("root op = %v, want '*'", root.Op)
	}

	if left, ok := root.Left.(*BinaryExpr); !ok || left.Op != Plus {
		t.Fatalf("left = %#v, want '+' expression", root.Left)
	}
}

func TestParseFunctionCall(t *testing.T) {
	doc := parse(t, `c { a = env("HOME", "/tmp"); b = concat(); }`)

	members := doc.Members[0].(*Category).Members

	call := members[0].(*Item).Values[0].(*FunctionCall)
	if call.Name != "env" || len(call.Args) != 2 {
		t.Errorf("call = %q with %d args, want env with 2", call.Name, len(call.Args))
	}

	empty := members[1].(*Item).Values[0].(*FunctionCall)
	if empty.Name != "concat" || len(empty.Args) != 0 {
		t.Errorf("call = %q with %d args, want concat with 0", empty.Name, len(empty.Args))
	}
}

func TestParseVariableDef(t *testing.T) {
	doc := parse(t, "$timeout = 30s;")

	def, ok := doc.Members[0].(*VariableDef)
	if !ok {
		t.Fatalf("member is %T, want *VariableDef", doc.Members[0])
	}

	// The sigil stays part of the name.
	if def.Name != "$timeout" {
		t.Errorf("name = %q, want %q", def.Name, "$timeout")
	}
}

func TestParseIncludeStmt(t *testing.T) {
	doc := parse(t, `include "common.zov";`)

	inc, ok := doc.Members[0].(*IncludeStmt)
	if !ok {
		t.Fatalf("member is %T, want *IncludeStmt", doc.Members[0])
	}

	if inc.Path != "common.zov" {
		t.Errorf("path = %q, want %q", inc.Path, "common.zov")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"missing semicolon", "c { a = 1 }", ErrUnexpectedToken},
		{"missing value", "c { a = ; }", ErrUnexpectedToken},
		{"missing close brace", "c { a = 1;", ErrUnexpectedEOF},
		{"truncated expression", "c { a = 1 +", ErrUnexpectedEOF},
		{"item at top level", "a = 1;", ErrUnexpectedToken},
		{"include without path", "include ;", ErrUnexpectedToken},
		{"unclosed call", "c { a = env(; }", ErrUnexpectedToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSource(tt.src)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseSource(%q) error = %v, want %v", tt.src, err, tt.want)
			}
		})
	}
}

func TestParseNestingLimit(t *testing.T) {
	const depth = 12

	var src strings.Builder
	for range depth {
		src.WriteString("c { ")
	}
	src.WriteString("a = 1; ")
	for range depth {
		src.WriteString("} ")
	}

	if _, err := ParseSource(src.String()); err != nil {
		t.Fatalf("within limit: %v", err)
	}

	_, err := ParseSource(src.String(), WithMaxNestingDepth(depth-1))
	if !errors.Is(err, ErrMaxNestingDepth) {
		t.Errorf("error = %v, want %v", err, ErrMaxNestingDepth)
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := ParseSource("c {\n  a = 1\n}")

	var ee *Error
	if !errors.As(err, &ee) {
		t.Fatalf("error is %T, want *Error", err)
	}

	// The '}' that arrived instead of ';' sits on line 3.
	if ee.Line != 3 {
		t.Errorf("line = %d, want 3", ee.Line)
	}

	if snip := ee.Snippet("c {\n  a = 1\n}"); !strings.Contains(snip, "3 | }") {
		t.Errorf("snippet = %q, want line 3 rendering", snip)
	}
}
