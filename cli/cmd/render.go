package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zovlang/zov/lang"
)

var (
	styleErrMsg  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleGutter  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleCaret   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleContext = lipgloss.NewStyle()
)

// renderError writes a human-readable rendering of err to w. For language
// errors carrying a source position, the offending line is shown with a
// caret marker beneath it.
func renderError(w io.Writer, err error, source string) {
	var langErr *lang.Error
	if !errors.As(err, &langErr) {
		fmt.Fprintln(w, styleErrMsg.Render(err.Error()))

		return
	}

	fmt.Fprintln(w, styleErrMsg.Render(langErr.Error()))

	snippet := langErr.Snippet(source)
	if snippet == "" {
		return
	}

	for line := range strings.Lines(snippet) {
		line = strings.TrimSuffix(line, "\n")

		switch {
		case strings.HasSuffix(strings.TrimSpace(line), "^"):
			fmt.Fprintln(w, styleCaret.Render(line))

		case strings.Contains(line, "|"):
			gutter, text, found := strings.Cut(line, "|")
			if found {
				fmt.Fprintln(w,
					styleGutter.Render(gutter+"|")+styleContext.Render(text))
			} else {
				fmt.Fprintln(w, line)
			}

		default:
			fmt.Fprintln(w, styleGutter.Render(line))
		}
	}
}
