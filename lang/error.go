package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
//
// Every failure the pipeline can surface derives from one of these via
// [Error.With], [Error.Wrap], or [Error.At], so callers can classify with
// errors.Is regardless of the attached detail.
var (
	// Lexical errors.
	ErrUnexpectedChar     = NewError("unexpected character")
	ErrUnterminatedInterp = NewError("unterminated interpolation")
	ErrInvalidNumber      = NewError("invalid number format")

	// Syntax errors.
	ErrUnexpectedToken = NewError("unexpected token")
	ErrUnexpectedEOF   = NewError("unexpected end of file")

	// Include resolution errors.
	ErrPathTraversal   = NewError("include path escapes base directory")
	ErrIncludeNotFound = NewError("include file not found")
	ErrCircularInclude = NewError("circular include detected")

	// Resource limits.
	ErrMaxIncludeDepth = NewError("maximum include depth exceeded")
	ErrMaxNestingDepth = NewError("maximum nesting depth exceeded")

	// Semantic errors.
	ErrUndefinedVariable  = NewError("undefined variable")
	ErrDuplicateItem      = NewError("duplicate item")
	ErrNameCollision      = NewError("name collision between item and category")
	ErrUnknownFunction    = NewError("unknown function")
	ErrArityMismatch      = NewError("wrong number of arguments")
	ErrEnvNotSet          = NewError("environment variable not set")
	ErrIdentifierOperand  = NewError("cannot perform arithmetic on identifier")
	ErrNonNumericOperand  = NewError("cannot perform arithmetic on non-numeric value")
	ErrDivisionByZero     = NewError("division by zero")
	ErrModuloByZero       = NewError("modulo by zero")
	ErrUnknownOperator    = NewError("unknown operator")
	ErrStructureConflict  = NewError("output structure conflict")
)

// Error represents a language error with optional structured logging
// attributes and an optional source position. It implements both error and
// slog.LogValuer.
type Error struct {
	msg   string
	base  *Error      // Sentinel identity, preserved through derivation
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging

	// Line and Column locate the error in source text when derived from a
	// token (1-based line, 0-based column). Zero Line means no position.
	Line   int
	Column int
}

// NewError creates a new sentinel Error with a message.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.base = e

	return e
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 3)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	s := strings.Join(part, ": ")

	if e.Line > 0 {
		s += " at line " + strconv.Itoa(e.Line) +
			", column " + strconv.Itoa(e.Column)
	}

	return s
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel this error derives from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.base != nil && e.base == t.base
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.Line > 0 {
		attrs = append(attrs,
			slog.Int("line", e.Line),
			slog.Int("column", e.Column),
		)
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:    e.msg,
		base:   e.base,
		err:    err,
		attrs:  e.attrs, // Share attrs
		Line:   e.Line,
		Column: e.Column,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:    e.msg,
		base:   e.base,
		err:    e.err,
		attrs:  newAttrs,
		Line:   e.Line,
		Column: e.Column,
	}
}

// At attaches a source position to the error.
// This creates a new Error instance to maintain immutability.
func (e *Error) At(line, column int) *Error {
	return &Error{
		msg:    e.msg,
		base:   e.base,
		err:    e.err,
		attrs:  e.attrs,
		Line:   line,
		Column: column,
	}
}

// atToken attaches the position of tok to the error.
func (e *Error) atToken(tok Token) *Error {
	return e.At(tok.Line, tok.Column)
}

// Snippet renders the source line containing the error with a caret marker
// under the offending column:
//
//	  3 | port = 80x;
//	              ^
//
// It returns "" when the error carries no position or the position is
// outside the source.
func (e *Error) Snippet(source string) string {
	if e.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if e.Line > len(lines) {
		return ""
	}

	var src strings.Builder

	line := lines[e.Line-1]

	// Print the line with line number
	src.WriteString("  ")
	src.WriteString(strconv.Itoa(e.Line))
	src.WriteString(" | ")
	src.WriteString(line)
	src.WriteRune('\n')

	// Print marker pointing to the column
	// Calculate the width needed for line number display
	lineNumWidth := len(strconv.Itoa(e.Line))
	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	padding := strings.Repeat(" ", lineNumWidth+5)

	// Columns are 0-based
	if e.Column > 0 {
		padding += strings.Repeat(" ", e.Column)
	}

	src.WriteString(padding + "^\n")

	return src.String()
}
