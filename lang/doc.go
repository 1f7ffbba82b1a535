// Package lang implements the ZOV configuration language: a lexer, a
// hand-written recursive descent parser with eager include resolution, and a
// tree-walking interpreter producing a merged nested key/value tree.
//
// # Grammar
//
// Informal EBNF:
//
//	Document    → (Variable | Include | Category)* EOF
//	Category    → Identifier '{' (Variable | Include | Category | Item)* '}'
//	Item        → Identifier '=' Expression (',' Expression)* ';'
//	Variable    → '$' Identifier '=' Expression ';'
//	Include     → 'include' String ';'
//	Expression  → Term (('+' | '-') Term)*
//	Term        → Primary (('*' | '/' | '%') Primary)*
//	Primary     → Literal | Variable | Identifier | Function | '(' Expression ')'
//	Function    → Identifier '(' (Expression (',' Expression)*)? ')'
//
// Identifiers accept ASCII letters, digits, underscores, and Cyrillic
// letters. Comments run from '#' to end of line.
//
// # Literals
//
// Beyond null, booleans, numbers, and strings, the lexer recognizes tagged
// scalar forms:
//
//	2026-08-29              date
//	2026-08-29T14:30:00     datetime
//	14:30:05                time
//	250ms, 1.5h, 2w         duration
//	512MB, 4GiB             size
//
// Double-quoted strings may interpolate variables ($name) and arbitrary
// expressions (${expr}); interpolated expressions are lexed and parsed with
// the same machinery as top-level expressions.
//
// # Example
//
//	$port = 8000 + 80;
//
//	app {
//	    name = "demo";
//	    port = $port;
//	    timeout = 30s;
//	    url = "http://localhost:${$port}";
//	}
//
// # Evaluation
//
// Members evaluate in document order. Variables live in a single global
// scope where the last assignment wins; reading an unassigned variable is an
// error. Categories nest by dotted path and may be reopened, but an item name
// may not collide with a subcategory name and duplicate items within a
// category are rejected. Output assembles categories in lexicographic path
// order into nested maps, deep-merging where paths overlap.
//
// Arithmetic defaults to host int64/float64 semantics; WithPrecise switches
// every operation to decimal arithmetic over the operands' printed forms.
package lang
