package lang

import "fmt"

// Kind identifies the lexical class of a token.
type Kind int

const (
	// EOF marks the end of the token stream.
	EOF Kind = iota

	// Literals (payload decoded at lex time).
	Null
	Bool
	Duration
	Size
	Datetime
	Date
	Time
	Number
	String
	InterpString

	// Keywords.
	Include

	// Punctuation.
	LBrace
	RBrace
	LParen
	RParen
	Semicolon
	Comma
	Equals

	// Operators.
	Plus
	Minus
	Star
	Slash
	Percent

	// References and names.
	Variable
	Function
	Ident
)

// String returns a human-readable name for the kind, used in diagnostics.
func (k Kind) String() string {
	switch k {
	case EOF:
		return "end of file"
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Duration:
		return "duration"
	case Size:
		return "size"
	case Datetime:
		return "datetime"
	case Date:
		return "date"
	case Time:
		return "time"
	case Number:
		return "number"
	case String:
		return "string"
	case InterpString:
		return "interpolated string"
	case Include:
		return "include"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case Semicolon:
		return "';'"
	case Comma:
		return "','"
	case Equals:
		return "'='"
	case Plus:
		return "'+'"
	case Minus:
		return "'-'"
	case Star:
		return "'*'"
	case Slash:
		return "'/'"
	case Percent:
		return "'%'"
	case Variable:
		return "variable"
	case Function:
		return "function"
	case Ident:
		return "identifier"
	default:
		return "unknown"
	}
}

// Token is one lexical unit of ZOV source text.
//
// Value carries the decoded payload: a [Value] for literal kinds (String
// included, with escapes already processed), a []StringPart for InterpString,
// and the raw text for Ident, Variable, and Function. Positions are 1-based
// lines and 0-based columns, matching the coordinates in diagnostics.
type Token struct {
	Kind   Kind
	Value  any
	Line   int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%v) at %d:%d", t.Kind, t.Value, t.Line, t.Column)
}
