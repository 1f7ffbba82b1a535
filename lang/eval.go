package lang

import (
	"log/slog"
	"math"

	"github.com/zovlang/zov/log"
)

// Interp evaluates a fully-resolved Document (no includes remain) into a
// merged key/value tree. It owns two tables mutated during the single
// evaluation pass: the flat variable mapping and the dotted-path category
// store. Neither is shared across invocations; construct a fresh Interp per
// evaluation.
type Interp struct {
	vars       map[string]Value
	data       map[string]*categoryData
	precise    bool
	lookupEnv  func(string) (string, bool)
	maxNesting int
	logger     log.Logger
}

type categoryData struct {
	items   map[string][]Value
	subcats map[string]struct{}
}

// NewInterp constructs an interpreter from the given configuration.
func NewInterp(opts ...Option) *Interp {
	cfg := makeConfig(opts...)

	return &Interp{
		vars:       make(map[string]Value),
		data:       make(map[string]*categoryData),
		precise:    cfg.precise,
		lookupEnv:  cfg.lookupEnv,
		maxNesting: cfg.maxNesting,
		logger:     cfg.logger,
	}
}

// Eval walks the document strictly in member order. Variables assigned
// anywhere are visible everywhere evaluated afterward; there is no lexical
// scoping, and reading a variable before its assignment is an error.
func (in *Interp) Eval(doc *Document) error {
	for _, m := range doc.Members {
		switch m := m.(type) {
		case *VariableDef:
			if err := in.evalVariable(m); err != nil {
				return err
			}

		case *Category:
			if err := in.evalCategory(m, ""); err != nil {
				return err
			}

		default:
			// Items cannot appear at top level, and includes are resolved
			// away before evaluation.
			line, col := m.Pos()

			return ErrUnexpectedToken.
				With(slog.String("found", "unexpected document member")).
				At(line, col)
		}
	}

	return nil
}

// Category returns the evaluated items stored at a dotted category path.
func (in *Interp) Category(path string) map[string][]Value {
	if entry, ok := in.data[path]; ok {
		return entry.items
	}

	return nil
}

// Item returns the evaluated value list of one item at a dotted category
// path, or nil if absent.
func (in *Interp) Item(path, name string) []Value {
	return in.Category(path)[name]
}

func (in *Interp) evalVariable(v *VariableDef) error {
	value, err := in.evalExpr(v.Value)
	if err != nil {
		return err
	}

	// Last assignment wins; the table is flat and global.
	in.vars[v.Name] = value

	in.logger.Debug("variable assigned",
		slog.String("name", v.Name),
		slog.String("value", value.Display()),
	)

	return nil
}

func (in *Interp) evalCategory(cat *Category, parentPath string) error {
	path := cat.Name
	if parentPath != "" {
		path = parentPath + "." + cat.Name
	}

	entry, ok := in.data[path]
	if !ok {
		// Re-entering the same path accumulates into the same entry.
		entry = &categoryData{
			items:   make(map[string][]Value),
			subcats: make(map[string]struct{}),
		}
		in.data[path] = entry
	}

	for _, m := range cat.Members {
		switch m := m.(type) {
		case *VariableDef:
			if err := in.evalVariable(m); err != nil {
				return err
			}

		case *Category:
			// An item and a subcategory may not share a name at the same
			// path, in either declaration order.
			if _, exists := entry.items[m.Name]; exists {
				line, col := m.Pos()

				return ErrNameCollision.
					With(
						slog.String("name", m.Name),
						slog.String("category", path),
					).
					At(line, col)
			}

			entry.subcats[m.Name] = struct{}{}

			if err := in.evalCategory(m, path); err != nil {
				return err
			}

		case *Item:
			if err := in.evalItem(m, path, entry); err != nil {
				return err
			}
		}
	}

	return nil
}

func (in *Interp) evalItem(item *Item, path string, entry *categoryData) error {
	line, col := item.Pos()

	if _, exists := entry.items[item.Name]; exists {
		return ErrDuplicateItem.
			With(
				slog.String("name", item.Name),
				slog.String("category", path),
			).
			At(line, col)
	}

	if _, exists := entry.subcats[item.Name]; exists {
		return ErrNameCollision.
			With(
				slog.String("name", item.Name),
				slog.String("category", path),
			).
			At(line, col)
	}

	// Each value is evaluated against the current environment state, not
	// deferred.
	values := make([]Value, 0, len(item.Values))

	for _, expr := range item.Values {
		v, err := in.evalExpr(expr)
		if err != nil {
			return err
		}

		values = append(values, v)
	}

	entry.items[item.Name] = values

	return nil
}

func (in *Interp) evalExpr(expr Expr) (Value, error) {
	switch e := expr.(type) {
	case *Literal:
		return e.Value, nil

	case *IdentifierRef:
		return IdentValue(e.Name), nil

	case *VariableRef:
		value, ok := in.vars[e.Name]
		if !ok {
			line, col := e.Pos()

			return Value{}, ErrUndefinedVariable.
				With(in.suggestVariable(e.Name)...).
				At(line, col)
		}

		return value, nil

	case *BinaryExpr:
		return in.evalBinary(e)

	case *FunctionCall:
		return in.evalFunction(e)

	case *InterpolatedString:
		return in.evalInterpolated(e)

	default:
		line, col := expr.Pos()

		return Value{}, ErrUnknownOperator.
			With(slog.String("found", "unsupported expression")).
			At(line, col)
	}
}

func (in *Interp) evalBinary(e *BinaryExpr) (Value, error) {
	left, err := in.evalExpr(e.Left)
	if err != nil {
		return Value{}, err
	}

	right, err := in.evalExpr(e.Right)
	if err != nil {
		return Value{}, err
	}

	line, col := e.Pos()

	// '+' is overloaded: if either operand is textual, concatenate the
	// display renderings.
	if e.Op == Plus && (left.IsText() || right.IsText()) {
		return StringValue(left.Display() + right.Display()), nil
	}

	for _, operand := range []Value{left, right} {
		if operand.Kind == KindIdentifier {
			return Value{}, ErrIdentifierOperand.
				With(slog.String("identifier", operand.S)).
				At(line, col)
		}
	}

	if !left.IsNumeric() || !right.IsNumeric() {
		offender := left
		if left.IsNumeric() {
			offender = right
		}

		return Value{}, ErrNonNumericOperand.
			With(slog.String("value_type", offender.Kind.String())).
			At(line, col)
	}

	if in.precise {
		return in.evalDecimal(e.Op, left, right, line, col)
	}

	return in.evalNumeric(e.Op, left, right, line, col)
}

// evalNumeric performs native arithmetic: integer when both operands are
// integers, floating-point otherwise. Division always normalizes a
// zero-fraction quotient back to an integer.
func (in *Interp) evalNumeric(op Kind, left, right Value, line, col int) (Value, error) {
	if left.Kind == KindInt && right.Kind == KindInt && op != Slash {
		switch op {
		case Plus:
			return IntValue(left.I + right.I), nil
		case Minus:
			return IntValue(left.I - right.I), nil
		case Star:
			return IntValue(left.I * right.I), nil
		case Percent:
			if right.I == 0 {
				return Value{}, ErrModuloByZero.At(line, col)
			}

			return IntValue(left.I % right.I), nil
		default:
			return Value{}, ErrUnknownOperator.
				With(slog.String("operator", op.String())).
				At(line, col)
		}
	}

	lf, rf := left.Float(), right.Float()

	switch op {
	case Plus:
		return FloatValue(lf + rf), nil
	case Minus:
		return FloatValue(lf - rf), nil
	case Star:
		return FloatValue(lf * rf), nil
	case Percent:
		if rf == 0 {
			return Value{}, ErrModuloByZero.At(line, col)
		}

		return FloatValue(math.Mod(lf, rf)), nil
	case Slash:
		if rf == 0 {
			return Value{}, ErrDivisionByZero.At(line, col)
		}

		quot := lf / rf
		if quot == math.Trunc(quot) && math.Abs(quot) < math.MaxInt64 {
			return IntValue(int64(quot)), nil
		}

		return FloatValue(quot), nil
	default:
		return Value{}, ErrUnknownOperator.
			With(slog.String("operator", op.String())).
			At(line, col)
	}
}

// evalDecimal performs precise-mode arithmetic. Operands promote to
// arbitrary-precision decimals constructed from their printed form, and
// results stay decimal until output simplification renders them as their
// nearest floating-point equivalent.
func (in *Interp) evalDecimal(op Kind, left, right Value, line, col int) (Value, error) {
	ld, rd := left.Decimal(), right.Decimal()

	switch op {
	case Plus:
		return DecimalValue(ld.Add(rd)), nil
	case Minus:
		return DecimalValue(ld.Sub(rd)), nil
	case Star:
		return DecimalValue(ld.Mul(rd)), nil
	case Slash:
		if rd.IsZero() {
			return Value{}, ErrDivisionByZero.At(line, col)
		}

		return DecimalValue(ld.Div(rd)), nil
	case Percent:
		if rd.IsZero() {
			return Value{}, ErrModuloByZero.At(line, col)
		}

		return DecimalValue(ld.Mod(rd)), nil
	default:
		return Value{}, ErrUnknownOperator.
			With(slog.String("operator", op.String())).
			At(line, col)
	}
}

// evalInterpolated renders each part in order: text verbatim, variable
// references through the flat environment, and embedded expression sources
// re-lexed and re-parsed against the current environment.
func (in *Interp) evalInterpolated(s *InterpolatedString) (Value, error) {
	line, col := s.Pos()

	var out []byte

	for _, part := range s.Parts {
		switch part.Kind {
		case PartText:
			out = append(out, part.Text...)

		case PartVar:
			value, ok := in.vars[part.Text]
			if !ok {
				return Value{}, ErrUndefinedVariable.
					With(in.suggestVariable(part.Text)...).
					At(line, col)
			}

			out = append(out, value.Display()...)

		case PartExpr:
			expr, err := parseExpressionString(part.Text, in.maxNesting)
			if err != nil {
				return Value{}, err
			}

			value, err := in.evalExpr(expr)
			if err != nil {
				return Value{}, err
			}

			// A bare identifier result is retried as a sigil-prefixed
			// variable, falling back to the bare text. Legacy behavior,
			// kept for compatibility.
			if value.Kind == KindIdentifier {
				if bound, ok := in.vars["$"+value.S]; ok {
					value = bound
				}
			}

			out = append(out, value.Display()...)
		}
	}

	return StringValue(string(out)), nil
}

// suggestVariable builds structured attributes for an undefined-variable
// error, including a fuzzy-matched suggestion when one is close.
func (in *Interp) suggestVariable(name string) []slog.Attr {
	attrs := []slog.Attr{slog.String("variable", name)}

	if hint := closestMatch(name, sortedKeys(in.vars)); hint != "" {
		attrs = append(attrs, slog.String("did_you_mean", hint))
	}

	return attrs
}
