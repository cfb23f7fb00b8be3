package strict

import (
	"encoding/json"
	"errors"
	"strings"

	"charm.land/jsonfix/diag"
	"charm.land/jsonfix/position"
	jsonv2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Engine is a strict JSON grammar check.
type Engine interface {
	// Name identifies the engine in configuration and logs.
	Name() string
	// Check returns nil when text holds exactly one well-formed JSON value,
	// and the engine's own diagnostic otherwise.
	Check(text string) *diag.Raw
}

// Engine names accepted by EngineByName.
const (
	EngineStdlib   = "encoding/json"
	EngineJSONText = "jsontext"
)

// ErrUnknownEngine is returned by EngineByName.
var ErrUnknownEngine = errors.New("unknown strict engine")

// EngineByName returns the engine registered under name. An empty name selects
// Stdlib.
func EngineByName(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EngineStdlib, "stdlib":
		return Stdlib{}, nil
	case EngineJSONText, "json/v2":
		return JSONText{}, nil
	default:
		return nil, ErrUnknownEngine
	}
}

// Stdlib checks text with encoding/json.
type Stdlib struct{}

// Name implements Engine.
func (Stdlib) Name() string { return EngineStdlib }

// Check implements Engine.
func (Stdlib) Check(text string) *diag.Raw {
	var raw json.RawMessage
	err := json.Unmarshal([]byte(text), &raw)
	if err == nil {
		return nil
	}
	var serr *json.SyntaxError
	if !errors.As(err, &serr) {
		return &diag.Raw{Message: err.Error()}
	}
	// Offset counts the bytes read including the offending one, except at
	// end of input where nothing was read past the data.
	offset := int(serr.Offset)
	if offset > 0 && offset <= len(text) && !strings.Contains(serr.Error(), "unexpected end") {
		offset--
	}
	return &diag.Raw{
		Message:   serr.Error(),
		Offset:    position.CharOffset(text, offset),
		HasOffset: true,
	}
}

// JSONText checks text with the go-json-experiment jsontext grammar.
// Duplicate names and invalid UTF-8 are accepted to match Stdlib.
type JSONText struct{}

// Name implements Engine.
func (JSONText) Name() string { return EngineJSONText }

// Check implements Engine.
func (JSONText) Check(text string) *diag.Raw {
	var v jsontext.Value
	err := jsonv2.Unmarshal([]byte(text), &v,
		jsontext.AllowDuplicateNames(true),
		jsontext.AllowInvalidUTF8(true),
	)
	if err == nil {
		return nil
	}
	var serr *jsontext.SyntacticError
	if !errors.As(err, &serr) {
		return &diag.Raw{Message: err.Error()}
	}
	return &diag.Raw{
		Message:   serr.Error(),
		Offset:    position.CharOffset(text, int(serr.ByteOffset)),
		HasOffset: true,
	}
}
