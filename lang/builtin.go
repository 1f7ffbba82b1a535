package lang

import (
	"log/slog"
	"strconv"
	"strings"
)

// builtinNames lists every function the language dispatches by name.
// Used for diagnostics; there is no extension mechanism.
var builtinNames = []string{"concat", "env", "join", "lower", "upper"}

// evalFunction evaluates arguments left to right against the current
// environment, then dispatches by name.
func (in *Interp) evalFunction(call *FunctionCall) (Value, error) {
	line, col := call.Pos()

	args := make([]Value, 0, len(call.Args))

	for _, arg := range call.Args {
		v, err := in.evalExpr(arg)
		if err != nil {
			return Value{}, err
		}

		args = append(args, v)
	}

	switch call.Name {
	case "env":
		return in.builtinEnv(args, line, col)

	case "concat":
		var out strings.Builder

		for _, arg := range args {
			out.WriteString(arg.Display())
		}

		return StringValue(out.String()), nil

	case "join":
		if len(args) < 2 {
			return Value{}, ErrArityMismatch.
				With(
					slog.String("function", "join"),
					slog.String("expected", "at least 2 (separator, items...)"),
					slog.Int("got", len(args)),
				).
				At(line, col)
		}

		parts := make([]string, 0, len(args)-1)
		for _, arg := range args[1:] {
			parts = append(parts, arg.Display())
		}

		return StringValue(strings.Join(parts, args[0].Display())), nil

	case "upper":
		if len(args) != 1 {
			return Value{}, arityError("upper", 1, len(args), line, col)
		}

		return StringValue(strings.ToUpper(args[0].Display())), nil

	case "lower":
		if len(args) != 1 {
			return Value{}, arityError("lower", 1, len(args), line, col)
		}

		return StringValue(strings.ToLower(args[0].Display())), nil

	default:
		attrs := []slog.Attr{slog.String("function", call.Name)}

		if hint := closestMatch(call.Name, builtinNames); hint != "" {
			attrs = append(attrs, slog.String("did_you_mean", hint))
		}

		return Value{}, ErrUnknownFunction.With(attrs...).At(line, col)
	}
}

// builtinEnv reads a process environment variable. With a default argument,
// an absent variable yields the default unresolved; without one it is an
// error.
func (in *Interp) builtinEnv(args []Value, line, col int) (Value, error) {
	if len(args) < 1 || len(args) > 2 {
		return Value{}, ErrArityMismatch.
			With(
				slog.String("function", "env"),
				slog.String("expected", "1 or 2"),
				slog.Int("got", len(args)),
			).
			At(line, col)
	}

	name := args[0].Display()

	if value, ok := in.lookupEnv(name); ok {
		return StringValue(value), nil
	}

	if len(args) == 2 {
		return args[1], nil
	}

	return Value{}, ErrEnvNotSet.
		With(slog.String("name", name)).
		At(line, col)
}

func arityError(name string, want, got, line, col int) *Error {
	return ErrArityMismatch.
		With(
			slog.String("function", name),
			slog.String("expected", strconv.Itoa(want)),
			slog.Int("got", got),
		).
		At(line, col)
}
