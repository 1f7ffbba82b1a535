package lang

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// ValueKind identifies the runtime type of an evaluated value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindBool
	KindInt
	KindFloat
	KindDecimal
	KindString
	KindDate
	KindDatetime
	KindTime
	KindDuration
	KindSize
	KindIdentifier
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDecimal:
		return "decimal"
	case KindString:
		return "string"
	case KindDate:
		return "date"
	case KindDatetime:
		return "datetime"
	case KindTime:
		return "time"
	case KindDuration:
		return "duration"
	case KindSize:
		return "size"
	case KindIdentifier:
		return "identifier"
	default:
		return "invalid"
	}
}

// Value is the uniform runtime representation of every evaluated result.
// Only the fields relevant to Kind are meaningful: B for booleans, I for
// integers, F for floats, D for precise decimals, S for every text-backed
// kind, and Unit for the suffix of duration and size literals.
//
// Tagged scalar kinds (date, datetime, time, duration, size) keep their
// source text in S; they are opaque to arithmetic and compose only through
// string concatenation and interpolation.
type Value struct {
	Kind ValueKind

	B    bool
	I    int64
	F    float64
	D    decimal.Decimal
	S    string
	Unit string
}

func NullValue() Value { return Value{Kind: KindNull} }

func BoolValue(b bool) Value { return Value{Kind: KindBool, B: b} }

func IntValue(i int64) Value { return Value{Kind: KindInt, I: i} }

func FloatValue(f float64) Value { return Value{Kind: KindFloat, F: f} }

func StringValue(s string) Value { return Value{Kind: KindString, S: s} }

func IdentValue(s string) Value { return Value{Kind: KindIdentifier, S: s} }

func DecimalValue(d decimal.Decimal) Value { return Value{Kind: KindDecimal, D: d} }

// TaggedValue constructs a tagged scalar from its source text. For duration
// and size kinds, text is the numeric portion and unit the suffix; the
// date, datetime, and time kinds carry their full text with an empty unit.
func TaggedValue(kind ValueKind, text, unit string) Value {
	return Value{Kind: kind, S: text, Unit: unit}
}

// IsNumeric reports whether the value participates in arithmetic.
func (v Value) IsNumeric() bool {
	return v.Kind == KindInt || v.Kind == KindFloat || v.Kind == KindDecimal
}

// IsText reports whether the value is a plain string. Tagged scalars are
// not text: they trigger no '+' concatenation overload on their own.
func (v Value) IsText() bool { return v.Kind == KindString }

// Float returns the value as a float64. Only meaningful for numeric kinds.
func (v Value) Float() float64 {
	switch v.Kind {
	case KindInt:
		return float64(v.I)
	case KindDecimal:
		return v.D.InexactFloat64()
	default:
		return v.F
	}
}

// Decimal returns the value as an arbitrary-precision decimal constructed
// from its printed form, so 0.1 converts as the literal "0.1" rather than
// its binary approximation.
func (v Value) Decimal() decimal.Decimal {
	switch v.Kind {
	case KindDecimal:
		return v.D

	case KindInt:
		return decimal.NewFromInt(v.I)

	default:
		d, err := decimal.NewFromString(formatFloat(v.F))
		if err != nil {
			return decimal.NewFromFloat(v.F)
		}

		return d
	}
}

// Display returns the rendering used for string concatenation and
// interpolation.
func (v Value) Display() string {
	switch v.Kind {
	case KindNull:
		return "null"

	case KindBool:
		return strconv.FormatBool(v.B)

	case KindInt:
		return strconv.FormatInt(v.I, 10)

	case KindFloat:
		return formatFloat(v.F)

	case KindDecimal:
		return v.D.String()

	case KindDuration, KindSize:
		return v.S + v.Unit

	default:
		// Strings, tagged date/time scalars, and identifiers all carry
		// their text in S.
		return v.S
	}
}

// Simplify converts the value to its native Go representation for the
// output tree: nil, bool, int64, float64, or string.
func (v Value) Simplify() any {
	switch v.Kind {
	case KindNull:
		return nil

	case KindBool:
		return v.B

	case KindInt:
		return v.I

	case KindFloat:
		return v.F

	case KindDecimal:
		// Integral decimals simplify to integers so precise and native
		// arithmetic agree on the output type.
		if v.D.IsInteger() {
			return v.D.IntPart()
		}

		return v.D.InexactFloat64()

	default:
		return v.Display()
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
