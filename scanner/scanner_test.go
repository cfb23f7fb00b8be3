package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// significant drops whitespace tokens, whose granularity is not fixed.
func significant(tokens []Token) []Token {
	var out []Token
	for _, tok := range tokens {
		if tok.Kind != Whitespace {
			out = append(out, tok)
		}
	}
	return out
}

func join(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

func TestScan(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []Token
	}{
		{
			name:  "object",
			input: `{"a": 1, "b": [true, false, null]}`,
			want: []Token{
				{Punctuation, "{"},
				{Key, `"a"`},
				{Punctuation, ":"},
				{Number, "1"},
				{Punctuation, ","},
				{Key, `"b"`},
				{Punctuation, ":"},
				{Punctuation, "["},
				{Boolean, "true"},
				{Punctuation, ","},
				{Boolean, "false"},
				{Punctuation, ","},
				{Null, "null"},
				{Punctuation, "]"},
				{Punctuation, "}"},
			},
		},
		{
			name:  "key_with_space_before_colon",
			input: "{\"k\" \n : \"v\"}",
			want: []Token{
				{Punctuation, "{"},
				{Key, `"k"`},
				{Punctuation, ":"},
				{StringValue, `"v"`},
				{Punctuation, "}"},
			},
		},
		{
			name:  "escaped_quote",
			input: `["a\"b", "c\\"]`,
			want: []Token{
				{Punctuation, "["},
				{StringValue, `"a\"b"`},
				{Punctuation, ","},
				{StringValue, `"c\\"`},
				{Punctuation, "]"},
			},
		},
		{
			name:  "unterminated_string",
			input: `{"a": "bc`,
			want: []Token{
				{Punctuation, "{"},
				{Key, `"a"`},
				{Punctuation, ":"},
				{StringValue, `"bc`},
			},
		},
		{
			name:  "loose_number",
			input: "-1.2e+3.4e",
			want:  []Token{{Number, "-1.2e+3.4e"}},
		},
		{
			name:  "literal_prefix",
			input: "trueish",
			want: []Token{
				{Boolean, "true"},
				{Other, "i"},
				{Other, "s"},
				{Other, "h"},
			},
		},
		{
			name:  "unrecognized",
			input: "{a:'é'}",
			want: []Token{
				{Punctuation, "{"},
				{Other, "a"},
				{Punctuation, ":"},
				{Other, "'"},
				{Other, "é"},
				{Other, "'"},
				{Punctuation, "}"},
			},
		},
		{
			name:  "case_sensitive_literals",
			input: "True",
			want: []Token{
				{Other, "T"},
				{Other, "r"},
				{Other, "u"},
				{Other, "e"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Scan(tc.input)
			require.Equal(t, tc.want, significant(got))
			require.Equal(t, tc.input, join(got))
		})
	}
}

func TestScanLossless(t *testing.T) {
	inputs := []string{
		"",
		" ",
		"\t\r\n",
		`{"a":1,"b":[1,2,3]}`,
		"{a:'b', c:1,}",
		`"\`,
		`"\\`,
		`"abc\"`,
		"\xff\xfe{",
		"// comment\n{\"x\": /* y */ 2}",
		"{{{",
		"nul",
		"-",
		"日本語: \"値\"",
	}
	for _, input := range inputs {
		require.Equal(t, input, join(Scan(input)), "input %q", input)
	}
}

func TestTokensStopsEarly(t *testing.T) {
	count := 0
	for range Tokens(`[1, 2, 3, 4]`) {
		count++
		if count == 2 {
			break
		}
	}
	require.Equal(t, 2, count)
}

func TestKindString(t *testing.T) {
	require.Equal(t, "key", Key.String())
	require.Equal(t, "string", StringValue.String())
	require.Equal(t, "unknown", Kind(42).String())

	text, err := Number.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "number", string(text))
}
