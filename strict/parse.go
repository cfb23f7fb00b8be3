// Package strict validates JSON text with a standards-compliant grammar and
// decodes it into an order-preserving value tree.
//
// Values are *Object, []any, string, json.Number, bool or nil.
package strict

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"charm.land/jsonfix/diag"
)

// Result is the outcome of Parse. Err is nil exactly when the text was valid;
// Value may then be nil for a JSON null.
type Result struct {
	Value any
	Err   *diag.Error
}

// Valid reports whether the text parsed.
func (r Result) Valid() bool {
	return r.Err == nil
}

// Parser couples an engine with the adapter that reads its diagnostics.
type Parser struct {
	Engine  Engine
	Adapter diag.Adapter
}

// Default parses with encoding/json.
var Default = Parser{Engine: Stdlib{}, Adapter: diag.Patterns}

// Parse parses text with the Default parser.
func Parse(text string) Result {
	return Default.Parse(text)
}

// Valid reports whether text is valid JSON according to the Default parser.
func Valid(text string) bool {
	return Default.Engine.Check(text) == nil
}

// Parse checks text and decodes it. Callers handle blank input themselves;
// here it is simply invalid.
func (p Parser) Parse(text string) Result {
	engine, adapter := p.Engine, p.Adapter
	if engine == nil {
		engine = Stdlib{}
	}
	if adapter == nil {
		adapter = diag.Patterns
	}

	if raw := engine.Check(text); raw != nil {
		e := adapter.Normalize(*raw)
		return Result{Err: &e}
	}

	value, err := decode(text)
	if err != nil {
		e := adapter.Normalize(diag.Raw{Message: err.Error()})
		return Result{Err: &e}
	}
	return Result{Value: value}
}

func decode(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	value, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid character after top-level value")
	}
	return value, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected object key %v", keyTok)
				}
				value, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		case '[':
			arr := []any{}
			for dec.More() {
				value, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, value)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	default:
		return tok, nil
	}
}
