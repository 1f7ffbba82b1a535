package lang

// Syntax tree node definitions. Nodes are passive data: the parser builds
// them, the include resolver splices them, and the interpreter walks them.
// Every node carries the source position of the token that introduced it.
// The tree is acyclic and owned top-down; no node is shared between
// subtrees.

// Node is implemented by every syntax tree node.
type Node interface {
	// Pos returns the node's source position (1-based line, 0-based column).
	Pos() (line, column int)
}

// Member is a node that can appear in the body of a Document or Category.
type Member interface {
	Node
	member()
}

// Expr is a node that can appear in value position.
type Expr interface {
	Node
	expr()
}

type pos struct {
	Line   int
	Column int
}

func (p pos) Pos() (int, int) { return p.Line, p.Column }

// Document is the root of a parsed file: an ordered sequence of top-level
// members. After include resolution, no IncludeStmt members remain.
type Document struct {
	Members []Member
}

// Category is a named, nestable grouping of items, subcategories, and
// variable assignments.
type Category struct {
	pos

	Name    string
	Members []Member
}

// Item is a named, ordered list of value expressions attached to a category.
type Item struct {
	pos

	Name   string
	Values []Expr
}

// VariableDef assigns a value to a global variable. Name includes the
// leading '$' sigil.
type VariableDef struct {
	pos

	Name  string
	Value Expr
}

// IncludeStmt is an include directive. It exists only between parsing and
// include resolution; resolved trees contain none.
type IncludeStmt struct {
	pos

	Path string
}

// BinaryExpr is a binary arithmetic or concatenation expression.
type BinaryExpr struct {
	pos

	Op    Kind // Plus, Minus, Star, Slash, or Percent
	Left  Expr
	Right Expr
}

// FunctionCall invokes a builtin function with ordered arguments.
type FunctionCall struct {
	pos

	Name string
	Args []Expr
}

// PartKind tags one segment of an interpolated string.
type PartKind int

const (
	// PartText is a literal text run with escapes already processed.
	PartText PartKind = iota

	// PartVar is a bare variable reference; Text includes the '$' sigil.
	PartVar

	// PartExpr is an embedded expression; Text is the raw source between
	// '${' and '}', captured verbatim and unparsed.
	PartExpr
)

// StringPart is one ordered segment of an interpolated string.
type StringPart struct {
	Kind PartKind
	Text string
}

// InterpolatedString is a string literal containing variable references or
// embedded expressions resolved at evaluation time.
type InterpolatedString struct {
	pos

	Parts []StringPart
}

// Literal is a plain or tagged literal value.
type Literal struct {
	pos

	Value Value
}

// VariableRef is a sigil-prefixed variable used in value position. Name
// includes the leading '$'.
type VariableRef struct {
	pos

	Name string
}

// IdentifierRef is a bare word used in value position, distinct from a
// quoted string.
type IdentifierRef struct {
	pos

	Name string
}

func (*Category) member()    {}
func (*Item) member()        {}
func (*VariableDef) member() {}
func (*IncludeStmt) member() {}

func (*BinaryExpr) expr()         {}
func (*FunctionCall) expr()       {}
func (*InterpolatedString) expr() {}
func (*Literal) expr()            {}
func (*VariableRef) expr()        {}
func (*IdentifierRef) expr()      {}
