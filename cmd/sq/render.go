package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dhamidi/sq/lint"
	"github.com/dhamidi/sq/parser"
)

var noColor bool

var (
	fatalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	codeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	markerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
)

func severityStyle(s lint.Severity) lipgloss.Style {
	switch s {
	case lint.Fatal:
		return fatalStyle
	case lint.Error:
		return errorStyle
	default:
		return warningStyle
	}
}

func paint(st lipgloss.Style, s string) string {
	if noColor {
		return s
	}
	return st.Render(s)
}

// renderMessages prints each diagnostic with the offending part of the query
// underlined. Multi-line inputs show the line the first position falls on.
func renderMessages(w io.Writer, input string, msgs []lint.Message) {
	for _, m := range msgs {
		fmt.Fprintf(w, "%s %s %s\n",
			paint(severityStyle(m.Severity), m.Severity.String()),
			paint(codeStyle, "["+string(m.Code)+" "+m.Label+"]"),
			m.Details)

		span := m.FirstSpan()
		if span.IsSynthetic() || span.Start >= len(input) {
			continue
		}
		line, col := parser.LineColumn(input, span.Start)
		text := lineAt(input, line)
		width := span.Len()
		if col+width > len(text) {
			width = len(text) - col
		}
		if width < 1 {
			width = 1
		}
		fmt.Fprintf(w, "  %s\n", text)
		fmt.Fprintf(w, "  %s%s\n",
			strings.Repeat(" ", col),
			paint(markerStyle, strings.Repeat("^", width)))
	}
}

func lineAt(input string, line int) string {
	lines := strings.Split(input, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}
	return lines[line]
}
