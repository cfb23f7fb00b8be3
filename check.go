package jsonfix

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"charm.land/jsonfix/diag"
	"charm.land/jsonfix/format"
	"charm.land/jsonfix/jsonrepair"
	"charm.land/jsonfix/scanner"
	"charm.land/jsonfix/strict"
)

// State represents the state of a checked document.
type State string

const (
	// StateEmpty means the input was blank. It is neither valid nor invalid.
	StateEmpty State = "empty"

	// StateValid means the input parsed as is.
	StateValid State = "valid"

	// StateRepaired means the input parsed after repair.
	StateRepaired State = "repaired"

	// StateInvalid means the input did not parse.
	StateInvalid State = "invalid"
)

var (
	// ErrEmptyInput is reported for blank documents.
	ErrEmptyInput = errors.New("no input")

	// ErrNotValid is returned when formatting a document that did not parse.
	ErrNotValid = errors.New("document is not valid JSON")
)

// Option is a function that configures checking and repair.
type Option func(*options)

type options struct {
	parser   strict.Parser
	fallback bool
	maxDepth int
}

func applyOptions(opts []Option) options {
	cfg := options{parser: strict.Default}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithEngine selects the strict grammar used for checking and for accepting
// repairs.
func WithEngine(engine strict.Engine) Option {
	return func(o *options) {
		if engine != nil {
			o.parser.Engine = engine
		}
	}
}

// WithAdapter selects how engine diagnostics are normalized.
func WithAdapter(adapter diag.Adapter) Option {
	return func(o *options) {
		if adapter != nil {
			o.parser.Adapter = adapter
		}
	}
}

// WithFallback enables the fallback repair rule set.
func WithFallback(enabled bool) Option {
	return func(o *options) {
		o.fallback = enabled
	}
}

// WithMaxDepth limits how deeply nested a document may be repaired.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

func (o options) repairOptions() []jsonrepair.Option {
	engine := o.parser.Engine
	if engine == nil {
		engine = strict.Stdlib{}
	}
	ropts := []jsonrepair.Option{
		jsonrepair.WithValidator(func(text string) bool {
			return engine.Check(text) == nil
		}),
		jsonrepair.WithMaxDepth(o.maxDepth),
	}
	if o.fallback {
		ropts = append(ropts, jsonrepair.WithFallback())
	}
	return ropts
}

// Document pairs an input text with the result of checking it. Documents are
// values: editing or repairing produces a new Document.
type Document struct {
	Input  string
	State  State
	Result strict.Result
}

// Check parses text. Blank text yields a StateEmpty document without invoking
// the parser.
func Check(text string, opts ...Option) Document {
	if strings.TrimSpace(text) == "" {
		return Document{Input: text, State: StateEmpty}
	}
	cfg := applyOptions(opts)
	res := cfg.parser.Parse(text)
	state := StateValid
	if !res.Valid() {
		state = StateInvalid
	}
	return Document{Input: text, State: state, Result: res}
}

// Valid reports whether the document parsed.
func (d Document) Valid() bool {
	return d.State == StateValid || d.State == StateRepaired
}

// Diagnostic returns the parse error with line and column resolved against
// the input, or nil for documents that are not invalid.
func (d Document) Diagnostic() *diag.Error {
	if d.State != StateInvalid || d.Result.Err == nil {
		return nil
	}
	e := d.Result.Err.Locate(d.Input)
	return &e
}

// Err returns ErrEmptyInput, the located diagnostic, or nil.
func (d Document) Err() error {
	switch d.State {
	case StateEmpty:
		return ErrEmptyInput
	case StateInvalid:
		if e := d.Diagnostic(); e != nil {
			return e
		}
		return ErrNotValid
	default:
		return nil
	}
}

// Tokens splits the input into display tokens.
func (d Document) Tokens() []scanner.Token {
	return scanner.Scan(d.Input)
}

// Pretty renders the parsed value with two-space indentation.
func (d Document) Pretty() (string, error) {
	if !d.Valid() {
		return "", fmt.Errorf("pretty print: %w", ErrNotValid)
	}
	return format.Pretty(d.Result.Value), nil
}

// Minify renders the parsed value without insignificant whitespace.
func (d Document) Minify() (string, error) {
	if !d.Valid() {
		return "", fmt.Errorf("minify: %w", ErrNotValid)
	}
	return format.Minify(d.Result.Value), nil
}

// Repair attempts to repair an invalid document. Valid and empty documents
// are returned as is. When no safe repair exists the same document is
// returned, still carrying its original diagnostic.
func (d Document) Repair(opts ...Option) Document {
	if d.State != StateInvalid {
		return d
	}
	cfg := applyOptions(opts)
	repaired, logs, err := jsonrepair.RepairJSONWithLog(d.Input, cfg.repairOptions()...)
	if err != nil || repaired == d.Input {
		slog.Debug("repair found no safe transformation", "error", err)
		return d
	}
	slog.Debug("repaired document", "rules", len(logs), "engine", cfg.parser.Engine.Name())

	next := Check(repaired, opts...)
	if next.State == StateValid {
		next.State = StateRepaired
	}
	return next
}
