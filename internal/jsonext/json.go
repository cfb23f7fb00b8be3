// Package jsonext holds JSON helpers shared by the formatter and the repair
// engine.
package jsonext

import (
	"bytes"
	"strconv"
	"strings"

	xjson "github.com/charmbracelet/x/json"
)

// IsValidJSON reports whether data is a single well-formed JSON value.
func IsValidJSON[T string | []byte](data T) bool {
	if len(data) == 0 { // hot path
		return false
	}
	return xjson.IsValid(string(data))
}

// AppendString writes s as a double-quoted JSON string. Control characters,
// quotes and backslashes are escaped; everything else is written as is.
// Invalid UTF-8 is replaced with U+FFFD.
func AppendString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			buf.WriteString(`\\`)
		case '"':
			buf.WriteString(`\"`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				buf.WriteString(`\u`)
				buf.WriteString(hex4(r))
				continue
			}
			buf.WriteRune(r)
		}
	}
	buf.WriteByte('"')
}

func hex4(r rune) string {
	result := strconv.FormatInt(int64(r), 16)
	return strings.Repeat("0", 4-len(result)) + result
}
