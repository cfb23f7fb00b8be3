package position

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		offset int
		want   Position
	}{
		{name: "start", text: "a\nbc\nd", offset: 0, want: Position{Line: 1, Column: 1}},
		{name: "after_first_newline", text: "a\nbc\nd", offset: 2, want: Position{Line: 2, Column: 1}},
		{name: "second_column", text: "a\nbc\nd", offset: 3, want: Position{Line: 2, Column: 2}},
		{name: "last_line", text: "a\nbc\nd", offset: 5, want: Position{Line: 3, Column: 1}},
		{name: "on_newline", text: "a\nbc\nd", offset: 1, want: Position{Line: 1, Column: 2}},
		{name: "past_end_clamps", text: "a\nbc\nd", offset: 6, want: Position{Line: 3, Column: 1}},
		{name: "far_past_end", text: "ab", offset: 100, want: Position{Line: 1, Column: 2}},
		{name: "negative", text: "ab", offset: -3, want: Position{Line: 1, Column: 1}},
		{name: "empty", text: "", offset: 0, want: Position{Line: 1, Column: 1}},
		{name: "multibyte", text: "é\né", offset: 2, want: Position{Line: 2, Column: 1}},
		{name: "crlf_counts_lf_only", text: "a\r\nb", offset: 3, want: Position{Line: 2, Column: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Resolve(tc.text, tc.offset))
		})
	}
}

func TestCharOffset(t *testing.T) {
	require.Equal(t, 0, CharOffset("abc", -1))
	require.Equal(t, 2, CharOffset("abc", 2))
	require.Equal(t, 3, CharOffset("abc", 10))
	require.Equal(t, 1, CharOffset("éa", 2))
	require.Equal(t, 2, CharOffset("éa", 3))
}
