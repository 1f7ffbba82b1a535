package lang

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Lex scans ZOV source text into an ordered token slice. It is a pure
// function: no state survives the call, so it can be re-entered while an
// interpolation sub-expression is being evaluated.
//
// At each input position the token patterns are tried in a fixed priority
// order, not longest-match: keyword literals (null, bool, include) before
// identifiers; duration, size, datetime, date, and time before the bare
// number pattern; an identifier immediately followed by '(' becomes a
// function name. Whitespace and '#' comments are discarded; newlines advance
// the line counter but produce no token.
func Lex(src string) ([]Token, error) {
	lx := lexer{src: src, line: 1}

	return lx.run()
}

type lexer struct {
	src       string
	pos       int
	line      int
	lineStart int

	toks []Token
}

func (lx *lexer) run() ([]Token, error) {
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]

		switch {
		case c == '\n':
			lx.pos++
			lx.line++
			lx.lineStart = lx.pos

		case c == ' ' || c == '\t' || c == '\r':
			lx.pos++

		case c == '#':
			for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
				lx.pos++
			}

		case c == '"':
			if err := lx.scanString(); err != nil {
				return nil, err
			}

		case c >= '0' && c <= '9':
			if err := lx.scanNumeric(false); err != nil {
				return nil, err
			}

		case c == '-' && lx.pos+1 < len(lx.src) && isDigit(lx.src[lx.pos+1]):
			// A leading '-' is part of a number literal, never a prefix
			// operator.
			lx.pos++

			if err := lx.scanNumeric(true); err != nil {
				return nil, err
			}

		case c == '$':
			if err := lx.scanVariable(); err != nil {
				return nil, err
			}

		default:
			r, _ := utf8.DecodeRuneInString(lx.src[lx.pos:])
			if isIdentStart(r) {
				lx.scanWord()

				continue
			}

			if kind, ok := punctKind(c); ok {
				lx.emit(kind, string(c), lx.column())
				lx.pos++

				continue
			}

			return nil, ErrUnexpectedChar.
				With(slog.String("character", string(r))).
				At(lx.line, lx.column())
		}
	}

	lx.emit(EOF, nil, lx.column())

	return lx.toks, nil
}

func (lx *lexer) column() int { return lx.pos - lx.lineStart }

func (lx *lexer) emit(kind Kind, value any, column int) {
	lx.emitAt(kind, value, lx.line, column)
}

func (lx *lexer) emitAt(kind Kind, value any, line, column int) {
	lx.toks = append(lx.toks, Token{
		Kind:   kind,
		Value:  value,
		Line:   line,
		Column: column,
	})
}

func punctKind(c byte) (Kind, bool) {
	switch c {
	case '{':
		return LBrace, true
	case '}':
		return RBrace, true
	case '(':
		return LParen, true
	case ')':
		return RParen, true
	case ';':
		return Semicolon, true
	case ',':
		return Comma, true
	case '=':
		return Equals, true
	case '+':
		return Plus, true
	case '-':
		return Minus, true
	case '*':
		return Star, true
	case '/':
		return Slash, true
	case '%':
		return Percent, true
	default:
		return EOF, false
	}
}

// scanWord scans an identifier and classifies it as a keyword literal,
// include keyword, function name (lookahead '(' without consuming it), or
// plain identifier.
func (lx *lexer) scanWord() {
	col := lx.column()
	start := lx.pos

	for lx.pos < len(lx.src) {
		r, w := utf8.DecodeRuneInString(lx.src[lx.pos:])
		if !isIdentContinue(r) {
			break
		}

		lx.pos += w
	}

	word := lx.src[start:lx.pos]

	switch word {
	case "null", "none":
		lx.emit(Null, NullValue(), col)
	case "true", "false":
		lx.emit(Bool, BoolValue(word == "true"), col)
	case "include":
		lx.emit(Include, word, col)
	default:
		if lx.pos < len(lx.src) && lx.src[lx.pos] == '(' {
			lx.emit(Function, word, col)

			return
		}

		lx.emit(Ident, word, col)
	}
}

// scanVariable scans a '$'-prefixed variable reference.
func (lx *lexer) scanVariable() error {
	col := lx.column()
	start := lx.pos
	lx.pos++ // '$'

	r, _ := utf8.DecodeRuneInString(lx.src[lx.pos:])
	if lx.pos >= len(lx.src) || !isIdentStart(r) {
		lx.pos = start

		return ErrUnexpectedChar.
			With(slog.String("character", "$")).
			At(lx.line, col)
	}

	for lx.pos < len(lx.src) {
		r, w := utf8.DecodeRuneInString(lx.src[lx.pos:])
		if !isIdentContinue(r) {
			break
		}

		lx.pos += w
	}

	lx.emit(Variable, lx.src[start:lx.pos], col)

	return nil
}

// scanNumeric scans a token starting with a digit. Suffix literals
// (duration, size) and date/time patterns take priority over the bare
// number pattern. A negated value is always a plain number.
func (lx *lexer) scanNumeric(negated bool) error {
	col := lx.column()
	if negated {
		col--
	}

	rest := lx.src[lx.pos:]

	if !negated {
		if n, unit := matchUnitSuffix(rest, durationUnits); n > 0 {
			lx.emit(Duration, TaggedValue(KindDuration, rest[:n-len(unit)], unit), col)
			lx.pos += n

			return nil
		}

		if n, unit := matchUnitSuffix(rest, sizeUnits); n > 0 {
			lx.emit(Size, TaggedValue(KindSize, rest[:n-len(unit)], unit), col)
			lx.pos += n

			return nil
		}

		if n := matchDatetime(rest); n > 0 {
			lx.emit(Datetime, TaggedValue(KindDatetime, rest[:n], ""), col)
			lx.pos += n

			return nil
		}

		if n := matchDate(rest); n > 0 {
			lx.emit(Date, TaggedValue(KindDate, rest[:n], ""), col)
			lx.pos += n

			return nil
		}

		if n := matchTime(rest); n > 0 {
			lx.emit(Time, TaggedValue(KindTime, rest[:n], ""), col)
			lx.pos += n

			return nil
		}
	}

	n, isFloat := matchNumber(rest)
	text := rest[:n]
	lx.pos += n

	if negated {
		text = "-" + text
	}

	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return ErrInvalidNumber.Wrap(err).
				With(slog.String("literal", text)).
				At(lx.line, col)
		}

		lx.emit(Number, FloatValue(f), col)

		return nil
	}

	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return ErrInvalidNumber.Wrap(err).
			With(slog.String("literal", text)).
			At(lx.line, col)
	}

	lx.emit(Number, IntValue(i), col)

	return nil
}

// Unit alternatives are tried in declaration order, matching the original
// grammar's alternation.
var (
	durationUnits = []string{"ms", "s", "m", "h", "d", "w"}
	sizeUnits     = []string{"B", "KB", "MB", "GB", "TB", "KiB", "MiB", "GiB", "TiB"}
)

// matchNumber matches digits with an optional fraction. It assumes the
// input starts with a digit.
func matchNumber(s string) (n int, isFloat bool) {
	for n < len(s) && isDigit(s[n]) {
		n++
	}

	if n+1 < len(s) && s[n] == '.' && isDigit(s[n+1]) {
		isFloat = true
		n++

		for n < len(s) && isDigit(s[n]) {
			n++
		}
	}

	return n, isFloat
}

// matchUnitSuffix matches a number immediately followed by one of units.
// It returns the total matched length and the unit, or (0, "").
func matchUnitSuffix(s string, units []string) (int, string) {
	n, _ := matchNumber(s)
	if n == 0 {
		return 0, ""
	}

	for _, unit := range units {
		if strings.HasPrefix(s[n:], unit) {
			return n + len(unit), unit
		}
	}

	return 0, ""
}

func matchDigits(s string, count int) bool {
	if len(s) < count {
		return false
	}

	for i := range count {
		if !isDigit(s[i]) {
			return false
		}
	}

	return true
}

// matchDatetime matches YYYY-MM-DDTHH:MM:SS.
func matchDatetime(s string) int {
	const n = 19

	if len(s) < n {
		return 0
	}

	if matchDigits(s, 4) && s[4] == '-' &&
		matchDigits(s[5:], 2) && s[7] == '-' &&
		matchDigits(s[8:], 2) && s[10] == 'T' &&
		matchDigits(s[11:], 2) && s[13] == ':' &&
		matchDigits(s[14:], 2) && s[16] == ':' &&
		matchDigits(s[17:], 2) {
		return n
	}

	return 0
}

// matchDate matches YYYY-MM-DD.
func matchDate(s string) int {
	const n = 10

	if len(s) < n {
		return 0
	}

	if matchDigits(s, 4) && s[4] == '-' &&
		matchDigits(s[5:], 2) && s[7] == '-' &&
		matchDigits(s[8:], 2) {
		return n
	}

	return 0
}

// matchTime matches HH:MM with an optional :SS.
func matchTime(s string) int {
	if len(s) < 5 {
		return 0
	}

	if !(matchDigits(s, 2) && s[2] == ':' && matchDigits(s[3:], 2)) {
		return 0
	}

	if len(s) >= 8 && s[5] == ':' && matchDigits(s[6:], 2) {
		return 8
	}

	return 5
}

// scanString scans a quoted string. Strings containing an unescaped
// '$name' or '${...}' decode as interpolated strings; escapes are processed
// only within literal text runs, never inside '${...}'.
func (lx *lexer) scanString() error {
	col := lx.column()
	startLine := lx.line
	lx.pos++ // opening quote

	start := lx.pos

	for {
		if lx.pos >= len(lx.src) {
			return ErrUnexpectedChar.
				With(slog.String("character", `"`)).
				At(startLine, col)
		}

		switch lx.src[lx.pos] {
		case '"':
			raw := lx.src[start:lx.pos]
			lx.pos++

			return lx.emitString(raw, startLine, col)

		case '\\':
			lx.pos += 2

		case '\n':
			lx.line++
			lx.lineStart = lx.pos + 1
			lx.pos++

		default:
			lx.pos++
		}
	}
}

// emitString decodes the raw (unquoted) string content into either a plain
// String token or an InterpString token.
func (lx *lexer) emitString(raw string, line, col int) error {
	parts, err := splitInterpolation(raw)
	if err != nil {
		return WrapError(err).At(line, col)
	}

	if len(parts) == 1 && parts[0].Kind == PartText {
		lx.emitAt(String, StringValue(parts[0].Text), line, col)

		return nil
	}

	if len(parts) == 0 {
		lx.emitAt(String, StringValue(""), line, col)

		return nil
	}

	lx.emitAt(InterpString, parts, line, col)

	return nil
}

// splitInterpolation splits raw string content into ordered parts: literal
// text runs, bare variable references, and embedded expression sources.
// Expression sources between '${' and '}' are captured verbatim, unparsed.
func splitInterpolation(raw string) ([]StringPart, error) {
	var (
		parts []StringPart
		text  strings.Builder
	)

	flush := func() {
		if text.Len() > 0 {
			parts = append(parts, StringPart{Kind: PartText, Text: text.String()})
			text.Reset()
		}
	}

	i := 0
	for i < len(raw) {
		c := raw[i]

		switch {
		case c == '\\' && i+1 < len(raw):
			text.WriteByte(decodeEscape(raw[i+1]))

			i += 2

		case c == '$' && i+1 < len(raw) && raw[i+1] == '{':
			end := strings.IndexByte(raw[i+2:], '}')
			if end < 0 {
				return nil, ErrUnterminatedInterp
			}

			flush()
			parts = append(parts, StringPart{
				Kind: PartExpr,
				Text: raw[i+2 : i+2+end],
			})

			i += 2 + end + 1

		case c == '$':
			r, w := utf8.DecodeRuneInString(raw[i+1:])
			if i+1 >= len(raw) || !isIdentStart(r) {
				text.WriteByte('$')
				i++

				continue
			}

			j := i + 1 + w

			for j < len(raw) {
				r, w := utf8.DecodeRuneInString(raw[j:])
				if !isIdentContinue(r) {
					break
				}

				j += w
			}

			flush()
			parts = append(parts, StringPart{Kind: PartVar, Text: raw[i:j]})

			i = j

		default:
			text.WriteByte(c)
			i++
		}
	}

	flush()

	return parts, nil
}

// decodeEscape maps an escape character to its decoded byte. Unrecognized
// escapes pass the character through unchanged.
func decodeEscape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	default:
		return c
	}
}

// Character classification. The identifier alphabet includes the Cyrillic
// range U+0400..U+04FF.

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= 0x0400 && r <= 0x04FF)
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}
