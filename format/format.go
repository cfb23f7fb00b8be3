// Package format serializes parsed JSON values in canonical pretty and
// minified forms.
package format

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"charm.land/jsonfix/internal/jsonext"
	"charm.land/jsonfix/strict"
)

// Indent is the per-level indentation used by Pretty.
const Indent = "  "

// Pretty renders v with one member or element per line, indented two spaces
// per level. Empty objects and arrays stay on one line.
func Pretty(v any) string {
	var buf bytes.Buffer
	w := writer{buf: &buf, indent: Indent}
	w.value(v, 0)
	return buf.String()
}

// Minify renders v without insignificant whitespace.
func Minify(v any) string {
	var buf bytes.Buffer
	w := writer{buf: &buf}
	w.value(v, 0)
	return buf.String()
}

type writer struct {
	buf    *bytes.Buffer
	indent string
}

func (w writer) newline(depth int) {
	if w.indent == "" {
		return
	}
	w.buf.WriteByte('\n')
	w.buf.WriteString(strings.Repeat(w.indent, depth))
}

func (w writer) value(v any, depth int) {
	switch v := v.(type) {
	case nil:
		w.buf.WriteString("null")
	case bool:
		w.buf.WriteString(strconv.FormatBool(v))
	case string:
		jsonext.AppendString(w.buf, v)
	case json.Number:
		w.buf.WriteString(v.String())
	case float64:
		w.buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case int:
		w.buf.WriteString(strconv.Itoa(v))
	case int64:
		w.buf.WriteString(strconv.FormatInt(v, 10))
	case []any:
		if len(v) == 0 {
			w.buf.WriteString("[]")
			return
		}
		w.buf.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			w.newline(depth + 1)
			w.value(item, depth+1)
		}
		w.newline(depth)
		w.buf.WriteByte(']')
	case *strict.Object:
		if v == nil {
			w.buf.WriteString("null")
			return
		}
		if v.Len() == 0 {
			w.buf.WriteString("{}")
			return
		}
		w.buf.WriteByte('{')
		for i, m := range v.Members {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			w.newline(depth + 1)
			jsonext.AppendString(w.buf, m.Key)
			w.buf.WriteByte(':')
			if w.indent != "" {
				w.buf.WriteByte(' ')
			}
			w.value(m.Value, depth+1)
		}
		w.newline(depth)
		w.buf.WriteByte('}')
	default:
		w.buf.WriteString("null")
	}
}
