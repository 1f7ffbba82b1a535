package lang

import (
	"log/slog"
)

// DefaultMaxNestingDepth bounds category and expression nesting so that
// pathological inputs fail with a resource-limit error instead of
// exhausting the call stack.
const DefaultMaxNestingDepth = 200

// parser consumes a token slice by recursive descent. It is grammar-only:
// include directives become IncludeStmt members, and the file-system
// concern lives entirely in the include resolution pass.
type parser struct {
	toks     []Token
	pos      int
	depth    int
	maxDepth int
}

func newParser(toks []Token, maxDepth int) *parser {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxNestingDepth
	}

	return &parser{toks: toks, maxDepth: maxDepth}
}

func (p *parser) peek() Token {
	if p.pos >= len(p.toks) {
		return Token{Kind: EOF}
	}

	return p.toks[p.pos]
}

func (p *parser) peekNext() Token {
	if p.pos+1 >= len(p.toks) {
		return Token{Kind: EOF}
	}

	return p.toks[p.pos+1]
}

func (p *parser) advance() { p.pos++ }

func (p *parser) expect(kind Kind) (Token, error) {
	tok := p.peek()
	if tok.Kind == kind {
		p.advance()

		return tok, nil
	}

	if tok.Kind == EOF {
		return tok, ErrUnexpectedEOF.
			With(slog.String("expected", kind.String()))
	}

	return tok, ErrUnexpectedToken.
		With(
			slog.String("expected", kind.String()),
			slog.String("found", tok.Kind.String()),
		).
		atToken(tok)
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return ErrMaxNestingDepth.
			With(slog.Int("max_depth", p.maxDepth)).
			atToken(p.peek())
	}

	return nil
}

func (p *parser) leave() { p.depth-- }

// parseDocument parses: (Variable | Include | Category)* EOF.
func (p *parser) parseDocument() (*Document, error) {
	doc := &Document{}

	for {
		tok := p.peek()

		switch tok.Kind {
		case EOF:
			return doc, nil

		case Variable:
			v, err := p.parseVariable()
			if err != nil {
				return nil, err
			}

			doc.Members = append(doc.Members, v)

		case Include:
			inc, err := p.parseInclude()
			if err != nil {
				return nil, err
			}

			doc.Members = append(doc.Members, inc)

		default:
			cat, err := p.parseCategory()
			if err != nil {
				return nil, err
			}

			doc.Members = append(doc.Members, cat)
		}
	}
}

// parseCategory parses: ID '{' (Variable | Include | Item | Category)* '}'.
func (p *parser) parseCategory() (*Category, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	nameTok, err := p.expect(Ident)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(LBrace); err != nil {
		return nil, err
	}

	cat := &Category{
		pos:  pos{Line: nameTok.Line, Column: nameTok.Column},
		Name: nameTok.Value.(string),
	}

	for {
		tok := p.peek()

		switch tok.Kind {
		case RBrace:
			p.advance()

			return cat, nil

		case EOF:
			return nil, ErrUnexpectedEOF.
				With(slog.String("expected", RBrace.String()))

		case Ident:
			var m Member

			if p.peekNext().Kind == LBrace {
				m, err = p.parseCategory()
			} else {
				m, err = p.parseItem()
			}

			if err != nil {
				return nil, err
			}

			cat.Members = append(cat.Members, m)

		case Include:
			inc, err := p.parseInclude()
			if err != nil {
				return nil, err
			}

			cat.Members = append(cat.Members, inc)

		case Variable:
			v, err := p.parseVariable()
			if err != nil {
				return nil, err
			}

			cat.Members = append(cat.Members, v)

		default:
			return nil, ErrUnexpectedToken.
				With(
					slog.String("expected", "identifier, variable, or include"),
					slog.String("found", tok.Kind.String()),
				).
				atToken(tok)
		}
	}
}

// parseItem parses: ID '=' Expr (',' Expr)* ';'.
// A trailing comma before the semicolon is tolerated.
func (p *parser) parseItem() (*Item, error) {
	nameTok, err := p.expect(Ident)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(Equals); err != nil {
		return nil, err
	}

	item := &Item{
		pos:  pos{Line: nameTok.Line, Column: nameTok.Column},
		Name: nameTok.Value.(string),
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	item.Values = append(item.Values, value)

	for p.peek().Kind == Comma {
		p.advance()

		if p.peek().Kind == Semicolon {
			break
		}

		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		item.Values = append(item.Values, value)
	}

	if _, err := p.expect(Semicolon); err != nil {
		return nil, err
	}

	return item, nil
}

// parseVariable parses: VARREF '=' Expr ';'.
func (p *parser) parseVariable() (*VariableDef, error) {
	varTok, err := p.expect(Variable)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(Equals); err != nil {
		return nil, err
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(Semicolon); err != nil {
		return nil, err
	}

	return &VariableDef{
		pos:   pos{Line: varTok.Line, Column: varTok.Column},
		Name:  varTok.Value.(string),
		Value: value,
	}, nil
}

// parseInclude parses: 'include' STRING ';'.
func (p *parser) parseInclude() (*IncludeStmt, error) {
	incTok, err := p.expect(Include)
	if err != nil {
		return nil, err
	}

	pathTok, err := p.expect(String)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(Semicolon); err != nil {
		return nil, err
	}

	return &IncludeStmt{
		pos:  pos{Line: incTok.Line, Column: incTok.Column},
		Path: pathTok.Value.(Value).S,
	}, nil
}

// parseExpression parses an expression with '+' and '-' binding loosest.
// All binary operators are left-associative; there are no unary operators.
func (p *parser) parseExpression() (Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for {
		op := p.peek()
		if op.Kind != Plus && op.Kind != Minus {
			return left, nil
		}

		p.advance()

		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}

		left = &BinaryExpr{
			pos:   pos{Line: op.Line, Column: op.Column},
			Op:    op.Kind,
			Left:  left,
			Right: right,
		}
	}
}

// parseMultiplicative parses '*', '/', and '%' chains.
func (p *parser) parseMultiplicative() (Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		op := p.peek()
		if op.Kind != Star && op.Kind != Slash && op.Kind != Percent {
			return left, nil
		}

		p.advance()

		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}

		left = &BinaryExpr{
			pos:   pos{Line: op.Line, Column: op.Column},
			Op:    op.Kind,
			Left:  left,
			Right: right,
		}
	}
}

// parsePrimary parses a parenthesized expression, function call,
// interpolated string, literal, variable reference, or bare identifier.
func (p *parser) parsePrimary() (Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case EOF:
		return nil, ErrUnexpectedEOF.
			With(slog.String("expected", "value"))

	case LParen:
		p.advance()

		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(RParen); err != nil {
			return nil, err
		}

		return expr, nil

	case Function:
		return p.parseFunctionCall()

	case InterpString:
		p.advance()

		return &InterpolatedString{
			pos:   pos{Line: tok.Line, Column: tok.Column},
			Parts: tok.Value.([]StringPart),
		}, nil

	case Number, String, Bool, Null, Date, Datetime, Time, Duration, Size:
		p.advance()

		return &Literal{
			pos:   pos{Line: tok.Line, Column: tok.Column},
			Value: tok.Value.(Value),
		}, nil

	case Variable:
		p.advance()

		return &VariableRef{
			pos:  pos{Line: tok.Line, Column: tok.Column},
			Name: tok.Value.(string),
		}, nil

	case Ident:
		p.advance()

		return &IdentifierRef{
			pos:  pos{Line: tok.Line, Column: tok.Column},
			Name: tok.Value.(string),
		}, nil

	default:
		return nil, ErrUnexpectedToken.
			With(
				slog.String("expected", "value"),
				slog.String("found", tok.Kind.String()),
			).
			atToken(tok)
	}
}

// parseFunctionCall parses: FUNC '(' (Expr (',' Expr)*)? ')'.
func (p *parser) parseFunctionCall() (*FunctionCall, error) {
	funcTok, err := p.expect(Function)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(LParen); err != nil {
		return nil, err
	}

	call := &FunctionCall{
		pos:  pos{Line: funcTok.Line, Column: funcTok.Column},
		Name: funcTok.Value.(string),
	}

	for p.peek().Kind != RParen {
		if p.peek().Kind == EOF {
			return nil, ErrUnexpectedEOF.
				With(slog.String("expected", RParen.String()))
		}

		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		call.Args = append(call.Args, arg)

		switch p.peek().Kind {
		case Comma:
			p.advance()
		case RParen:
		default:
			return nil, ErrUnexpectedToken.
				With(
					slog.String("expected", "',' or ')' in argument list"),
					slog.String("found", p.peek().Kind.String()),
				).
				atToken(p.peek())
		}
	}

	p.advance() // ')'

	return call, nil
}

// parseExpressionString lexes and parses src as a standalone expression.
// It is used to evaluate embedded interpolation sources; tokens past the
// expression are ignored, matching the directive grammar.
func parseExpressionString(src string, maxDepth int) (Expr, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}

	return newParser(toks, maxDepth).parseExpression()
}
