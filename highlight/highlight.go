// Package highlight renders JSON text with a color per token kind.
package highlight

import (
	"strings"

	"charm.land/jsonfix/scanner"
	"github.com/charmbracelet/lipgloss/v2"
)

// Theme maps token kinds to styles. Kinds without a style are written as is.
type Theme map[scanner.Kind]lipgloss.Style

func style(fg string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg)).
		TabWidth(lipgloss.NoTabConversion)
}

// DefaultTheme returns the theme used by the command line tool.
func DefaultTheme() Theme {
	return Theme{
		scanner.Key:         style("#6CB6FF").Bold(true),
		scanner.StringValue: style("#8DDB8C"),
		scanner.Number:      style("#F69D50"),
		scanner.Boolean:     style("#DCBDFB"),
		scanner.Null:        style("#F47067"),
		scanner.Punctuation: style("#768390"),
		scanner.Other:       style("#FF0000").Underline(true),
	}
}

// Render returns text with every token styled by theme. Stripping the
// escape sequences from the result gives back text.
func Render(text string, theme Theme) string {
	var b strings.Builder
	b.Grow(len(text) * 2)
	for tok := range scanner.Tokens(text) {
		st, ok := theme[tok.Kind]
		if !ok || tok.Kind == scanner.Whitespace {
			b.WriteString(tok.Text)
			continue
		}
		// Styles pad multi-line input to a block, so lines go one at a time.
		for i, line := range strings.Split(tok.Text, "\n") {
			if i > 0 {
				b.WriteByte('\n')
			}
			if line != "" {
				b.WriteString(st.Render(line))
			}
		}
	}
	return b.String()
}
