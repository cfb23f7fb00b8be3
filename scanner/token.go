// Package scanner splits raw JSON text into a lossless sequence of
// classified tokens for presentation.
//
// The scanner is lenient by design: it never fails, and its number grammar is
// looser than JSON's. It must not be used to decide validity.
package scanner

// Kind classifies a token.
type Kind int

// Token kinds.
const (
	Whitespace Kind = iota
	Key
	StringValue
	Number
	Boolean
	Null
	Punctuation
	Other
)

var kindNames = [...]string{
	Whitespace:  "whitespace",
	Key:         "key",
	StringValue: "string",
	Number:      "number",
	Boolean:     "boolean",
	Null:        "null",
	Punctuation: "punctuation",
	Other:       "other",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Token is a classified slice of the input.
type Token struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}
