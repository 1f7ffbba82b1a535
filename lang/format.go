package lang

import (
	"fmt"
	"io"
	"strings"
)

// Print writes an indented representation of the resolved tree to w, one
// node per line. Item values are rendered in source syntax.
func (doc *Document) Print(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Document"); err != nil {
		return err
	}

	return printMembers(w, doc.Members, 1)
}

func printMembers(w io.Writer, members []Member, indent int) error {
	prefix := strings.Repeat("  ", indent)

	for _, m := range members {
		switch m := m.(type) {
		case *Category:
			if _, err := fmt.Fprintf(w, "%sCategory: %s {\n", prefix, m.Name); err != nil {
				return err
			}

			if err := printMembers(w, m.Members, indent+1); err != nil {
				return err
			}

			if _, err := fmt.Fprintf(w, "%s}\n", prefix); err != nil {
				return err
			}

		case *Item:
			values := make([]string, 0, len(m.Values))
			for _, v := range m.Values {
				values = append(values, formatExpr(v))
			}

			if _, err := fmt.Fprintf(w, "%sItem: %s = %s;\n",
				prefix, m.Name, strings.Join(values, ", ")); err != nil {
				return err
			}

		case *VariableDef:
			if _, err := fmt.Fprintf(w, "%sVariable: %s = %s;\n",
				prefix, m.Name, formatExpr(m.Value)); err != nil {
				return err
			}

		case *IncludeStmt:
			if _, err := fmt.Fprintf(w, "%sInclude: %q;\n", prefix, m.Path); err != nil {
				return err
			}
		}
	}

	return nil
}

// Format writes the document back out as canonical source, one member per
// line with two-space indentation.
func (doc *Document) Format(w io.Writer) error {
	return formatMembers(w, doc.Members, 0)
}

func formatMembers(w io.Writer, members []Member, indent int) error {
	prefix := strings.Repeat("  ", indent)

	for _, m := range members {
		switch m := m.(type) {
		case *Category:
			if _, err := fmt.Fprintf(w, "%s%s {\n", prefix, m.Name); err != nil {
				return err
			}

			if err := formatMembers(w, m.Members, indent+1); err != nil {
				return err
			}

			if _, err := fmt.Fprintf(w, "%s}\n", prefix); err != nil {
				return err
			}

		case *Item:
			values := make([]string, 0, len(m.Values))
			for _, v := range m.Values {
				values = append(values, formatExpr(v))
			}

			if _, err := fmt.Fprintf(w, "%s%s = %s;\n",
				prefix, m.Name, strings.Join(values, ", ")); err != nil {
				return err
			}

		case *VariableDef:
			if _, err := fmt.Fprintf(w, "%s%s = %s;\n",
				prefix, m.Name, formatExpr(m.Value)); err != nil {
				return err
			}

		case *IncludeStmt:
			if _, err := fmt.Fprintf(w, "%sinclude %q;\n", prefix, m.Path); err != nil {
				return err
			}
		}
	}

	return nil
}

// formatExpr renders an expression in source syntax.
func formatExpr(expr Expr) string {
	switch e := expr.(type) {
	case *Literal:
		return formatValue(e.Value)

	case *VariableRef:
		return e.Name

	case *IdentifierRef:
		return e.Name

	case *BinaryExpr:
		return "(" + formatExpr(e.Left) + " " + opText(e.Op) + " " +
			formatExpr(e.Right) + ")"

	case *FunctionCall:
		args := make([]string, 0, len(e.Args))
		for _, arg := range e.Args {
			args = append(args, formatExpr(arg))
		}

		return e.Name + "(" + strings.Join(args, ", ") + ")"

	case *InterpolatedString:
		var out strings.Builder

		out.WriteByte('"')

		for _, part := range e.Parts {
			switch part.Kind {
			case PartText:
				out.WriteString(part.Text)
			case PartVar:
				out.WriteString(part.Text)
			case PartExpr:
				out.WriteString("${" + part.Text + "}")
			}
		}

		out.WriteByte('"')

		return out.String()

	default:
		return ""
	}
}

// formatValue renders a literal value in source syntax. Strings are always
// quoted so the output re-parses unambiguously.
func formatValue(v Value) string {
	if v.Kind == KindString {
		return fmt.Sprintf("%q", v.S)
	}

	return v.Display()
}

func opText(op Kind) string {
	switch op {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	case Percent:
		return "%"
	default:
		return "?"
	}
}
