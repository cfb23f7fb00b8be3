package highlight

import (
	"strings"
	"testing"

	"charm.land/jsonfix/scanner"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	inputs := map[string]string{
		"object":              `{"a": 1, "b": [true, false, null]}`,
		"pretty":              "{\n  \"a\": \"x\",\n\t\"b\": -1.5e3\n}",
		"multi line string":   "[\"one\ntwo\", 3]",
		"unterminated string": `{"a": "open`,
		"other characters":    `{a: 'b'} @`,
		"empty":               "",
	}
	for name, text := range inputs {
		t.Run(name, func(t *testing.T) {
			out := Render(text, DefaultTheme())
			require.Equal(t, text, ansi.Strip(out))
		})
	}
}

func TestRenderStyles(t *testing.T) {
	theme := DefaultTheme()
	out := Render(`{"k": 1}`, theme)
	require.Contains(t, out, theme[scanner.Key].Render(`"k"`))
	require.Contains(t, out, theme[scanner.Number].Render("1"))
	require.NotEqual(t, `{"k": 1}`, out)
}

func TestRenderEmptyTheme(t *testing.T) {
	text := "[1,\n 2]"
	require.Equal(t, text, Render(text, Theme{}))
}

func TestRenderKeepsLines(t *testing.T) {
	theme := Theme{scanner.StringValue: lipgloss.NewStyle().Bold(true)}
	out := Render("[\"a\nbbbb\"]", theme)
	lines := strings.Split(ansi.Strip(out), "\n")
	require.Equal(t, []string{`["a`, `bbbb"]`}, lines)
}
