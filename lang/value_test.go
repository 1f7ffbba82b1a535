package lang

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestValueDisplay(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"null", NullValue(), "null"},
		{"true", BoolValue(true), "true"},
		{"false", BoolValue(false), "false"},
		{"int", IntValue(42), "42"},
		{"negative int", IntValue(-7), "-7"},
		{"float", FloatValue(2.5), "2.5"},
		{"integral float", FloatValue(4), "4"},
		{"string", StringValue("hi"), "hi"},
		{"identifier", IdentValue("fast"), "fast"},
		{"duration", TaggedValue(KindDuration, "30", "s"), "30s"},
		{"size", TaggedValue(KindSize, "512", "MB"), "512MB"},
		{"date", TaggedValue(KindDate, "2024-01-15", ""), "2024-01-15"},
		{"decimal", DecimalValue(decimal.RequireFromString("0.3")), "0.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Display(); got != tt.want {
				t.Errorf("Display() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValueSimplify(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  any
	}{
		{"null", NullValue(), nil},
		{"bool", BoolValue(true), true},
		{"int", IntValue(7), int64(7)},
		{"float", FloatValue(2.5), 2.5},
		{"string", StringValue("x"), "x"},
		{"identifier", IdentValue("bare"), "bare"},
		{"duration", TaggedValue(KindDuration, "30", "s"), "30s"},
		{"integral decimal", DecimalValue(decimal.RequireFromString("5")), int64(5)},
		{"fractional decimal", DecimalValue(decimal.RequireFromString("0.3")), 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.value.Simplify(); got != tt.want {
				t.Errorf("Simplify() = %v (%T), want %v (%T)",
					got, got, tt.want, tt.want)
			}
		})
	}
}

func TestValueDecimalFromPrintedForm(t *testing.T) {
	// 0.1 as a float64 is not exactly 0.1; the decimal conversion must go
	// through the printed form so it is.
	d := FloatValue(0.1).Decimal()

	if !d.Equal(decimal.RequireFromString("0.1")) {
		t.Errorf("Decimal() = %s, want 0.1", d)
	}

	if got := IntValue(7).Decimal(); !got.Equal(decimal.NewFromInt(7)) {
		t.Errorf("Decimal() = %s, want 7", got)
	}
}

func TestValueClassification(t *testing.T) {
	numeric := []Value{IntValue(1), FloatValue(1.5), DecimalValue(decimal.NewFromInt(1))}
	for _, v := range numeric {
		if !v.IsNumeric() {
			t.Errorf("%v.IsNumeric() = false, want true", v.Kind)
		}
	}

	other := []Value{
		NullValue(),
		BoolValue(true),
		StringValue("x"),
		IdentValue("x"),
		TaggedValue(KindDuration, "1", "s"),
	}
	for _, v := range other {
		if v.IsNumeric() {
			t.Errorf("%v.IsNumeric() = true, want false", v.Kind)
		}
	}

	if !StringValue("x").IsText() {
		t.Error("string IsText() = false, want true")
	}

	// Identifiers and tagged scalars render as text but are not text.
	if IdentValue("x").IsText() || TaggedValue(KindDate, "2024-01-15", "").IsText() {
		t.Error("non-string value reports IsText()")
	}
}
