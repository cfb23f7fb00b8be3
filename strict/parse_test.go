package strict

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseValid(t *testing.T) {
	res := Parse(`{"a":1,"b":[1,2,3],"c":{"d":null,"e":true},"f":"x"}`)
	require.True(t, res.Valid())
	require.Nil(t, res.Err)

	obj, ok := res.Value.(*Object)
	require.True(t, ok)
	require.Equal(t, []string{"a", "b", "c", "f"}, obj.Keys())

	a, _ := obj.Get("a")
	require.Equal(t, json.Number("1"), a)

	b, _ := obj.Get("b")
	require.Equal(t, []any{json.Number("1"), json.Number("2"), json.Number("3")}, b)

	c, _ := obj.Get("c")
	inner := c.(*Object)
	require.Equal(t, []string{"d", "e"}, inner.Keys())
	d, ok := inner.Get("d")
	require.True(t, ok)
	require.Nil(t, d)
}

func TestParseScalars(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  any
	}{
		{name: "null", input: "null", want: nil},
		{name: "true", input: " true ", want: true},
		{name: "string", input: `"hi\n"`, want: "hi\n"},
		{name: "big_number", input: "12345678901234567890", want: json.Number("12345678901234567890")},
		{name: "float", input: "-1.5e10", want: json.Number("-1.5e10")},
		{name: "empty_array", input: "[]", want: []any{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Parse(tc.input)
			require.True(t, res.Valid())
			require.Equal(t, tc.want, res.Value)
		})
	}
}

func TestParseKeepsOrderAndDeduplicates(t *testing.T) {
	res := Parse(`{"z":1,"a":2,"z":3}`)
	require.True(t, res.Valid())
	obj := res.Value.(*Object)
	require.Equal(t, []string{"z", "a"}, obj.Keys())
	z, _ := obj.Get("z")
	require.Equal(t, json.Number("3"), z)
}

func TestParseInvalid(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		position int
	}{
		{name: "missing_value", input: `{"a":}`, position: 5},
		{name: "trailing_comma", input: `[1,2,]`, position: 5},
		{name: "single_quotes", input: `{'a':1}`, position: 1},
		{name: "unexpected_end", input: `{"a":1`, position: 6},
		{name: "trailing_data", input: `{} x`, position: 3},
		{name: "multibyte_prefix", input: `["é",]`, position: 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := Parse(tc.input)
			require.False(t, res.Valid())
			require.Nil(t, res.Value)
			require.NotEmpty(t, res.Err.Message)
			require.NotNil(t, res.Err.Position)
			require.Equal(t, tc.position, *res.Err.Position)
		})
	}
}

func TestParseMissingValueMessage(t *testing.T) {
	res := Parse(`{"a":}`)
	require.False(t, res.Valid())
	require.Contains(t, res.Err.Message, "'}'")
	require.Contains(t, res.Err.Message, "value")
}

func TestJSONTextEngine(t *testing.T) {
	p := Parser{Engine: JSONText{}}

	res := p.Parse(`{"a":[1,2],"a":3}`)
	require.True(t, res.Valid())
	obj := res.Value.(*Object)
	require.Equal(t, []string{"a"}, obj.Keys())

	res = p.Parse(`{"a":}`)
	require.False(t, res.Valid())
	require.NotEmpty(t, res.Err.Message)
	require.NotNil(t, res.Err.Position)

	res = p.Parse(`[1] [2]`)
	require.False(t, res.Valid())
}

func TestEngineByName(t *testing.T) {
	e, err := EngineByName("")
	require.NoError(t, err)
	require.Equal(t, EngineStdlib, e.Name())

	e, err = EngineByName("JSONText")
	require.NoError(t, err)
	require.Equal(t, EngineJSONText, e.Name())

	_, err = EngineByName("yaml")
	require.ErrorIs(t, err, ErrUnknownEngine)
}

func TestValid(t *testing.T) {
	require.True(t, Valid(`[1, 2]`))
	require.False(t, Valid(`[1, 2`))
	require.False(t, Valid(``))
}

func TestObjectZeroValue(t *testing.T) {
	var obj Object
	obj.Set("a", 1)
	obj.Set("a", 2)
	require.Equal(t, 1, obj.Len())
	v, ok := obj.Get("a")
	require.True(t, ok)
	require.Equal(t, 2, v)
	_, ok = obj.Get("b")
	require.False(t, ok)
}
