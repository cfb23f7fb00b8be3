// Package jsonrepair turns malformed JSON into valid JSON.
//
// Repair is fail-closed: the result is either valid JSON or the input
// unchanged. Valid input is always returned unchanged, so repairing twice is
// the same as repairing once.
package jsonrepair

import (
	"errors"
	"fmt"
	"log/slog"

	"charm.land/jsonfix/internal/jsonext"
	"charm.land/jsonfix/scanner"
	ralrepair "github.com/RealAlexandreAI/json-repair"
)

// DefaultMaxDepth matches the nesting limit of encoding/json.
const DefaultMaxDepth = 10000

var (
	// ErrUnrepairable is returned when no rule set produced valid JSON.
	ErrUnrepairable = errors.New("json could not be repaired")

	// ErrTooDeep is returned when the input nests deeper than the limit.
	ErrTooDeep = errors.New("json nesting too deep to repair")
)

// Error reports where and why the repair grammar gave up.
type Error struct {
	Offset int // character offset in the input
	Reason string
	err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s at position %d", e.Reason, e.Offset)
}

// Unwrap returns ErrUnrepairable and, for depth failures, ErrTooDeep.
func (e *Error) Unwrap() []error {
	if e.err != nil {
		return []error{ErrUnrepairable, e.err}
	}
	return []error{ErrUnrepairable}
}

// Option is a function that configures the JSON repairer.
type Option func(*options)

type options struct {
	maxDepth int
	valid    func(string) bool
	fallback bool
}

func applyOptions(opts []Option) options {
	cfg := options{
		maxDepth: DefaultMaxDepth,
		valid:    jsonext.IsValidJSON[string],
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithMaxDepth limits how deeply nested the input may be.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// WithValidator replaces the check that decides whether text is valid JSON.
// It is applied to the input and to every candidate repair.
func WithValidator(valid func(string) bool) Option {
	return func(o *options) {
		if valid != nil {
			o.valid = valid
		}
	}
}

// WithFallback enables a second, more aggressive rule set that is tried when
// the built-in grammar gives up. Its output is only accepted when it is valid
// and keeps every container and scalar of the input.
func WithFallback() Option {
	return func(o *options) {
		o.fallback = true
	}
}

// LogEntry describes one applied recovery rule.
type LogEntry struct {
	Rule    Rule   `json:"rule"`
	Offset  int    `json:"offset"`
	Context string `json:"context"`
	Text    string `json:"text"`
}

type logger struct {
	src     []rune
	entries []LogEntry
}

func (l *logger) add(rule Rule, offset int, text string) {
	window := 10
	start := max(offset-window, 0)
	end := min(offset+window, len(l.src))
	if start > end {
		start = end
	}
	l.entries = append(l.entries, LogEntry{
		Rule:    rule,
		Offset:  offset,
		Context: string(l.src[start:end]),
		Text:    text,
	})
}

// Repair returns input turned into valid JSON, or input unchanged when that
// is not possible.
func Repair(input string, opts ...Option) string {
	out, _, _ := RepairJSONWithLog(input, opts...)
	return out
}

// RepairJSON is like Repair but reports why a repair failed. On failure the
// returned string is input unchanged.
func RepairJSON(input string, opts ...Option) (string, error) {
	out, _, err := RepairJSONWithLog(input, opts...)
	return out, err
}

// RepairJSONWithLog is like RepairJSON and also returns the rules that were
// applied. Valid input yields an empty log.
func RepairJSONWithLog(input string, opts ...Option) (string, []LogEntry, error) {
	cfg := applyOptions(opts)
	if cfg.valid(input) {
		return input, []LogEntry{}, nil
	}

	out, logs, err := repair(input, cfg)
	if err == nil {
		if cfg.valid(out) {
			return out, logs, nil
		}
		err = &Error{Offset: 0, Reason: "repaired text is still invalid"}
	}
	slog.Debug("jsonrepair: grammar gave up", "error", err)

	if cfg.fallback && !errors.Is(err, ErrTooDeep) {
		if out, ok := fallback(input, cfg); ok {
			return out, []LogEntry{{Rule: RuleFallback, Text: "Repaired with the fallback rule set"}}, nil
		}
	}
	return input, []LogEntry{}, err
}

func repair(input string, cfg options) (string, []LogEntry, error) {
	src := []rune(input)
	log := &logger{src: src}
	p := &parser{
		tokens:   tokenize(src, log),
		maxDepth: cfg.maxDepth,
		log:      log,
	}
	if err := p.document(); err != nil {
		return "", nil, err
	}
	if log.entries == nil {
		log.entries = []LogEntry{}
	}
	return p.out.String(), log.entries, nil
}

func fallback(input string, cfg options) (out string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("jsonrepair: fallback panicked", "panic", r)
			out, ok = "", false
		}
	}()
	out, err := ralrepair.RepairJSON(input)
	if err != nil || out == input || !cfg.valid(out) {
		slog.Debug("jsonrepair: fallback rejected", "error", err)
		return "", false
	}
	want := shapeOfInput(input)
	got := shapeOfJSON(out)
	if got.containers != want.containers || got.scalars < want.scalars {
		slog.Debug("jsonrepair: fallback dropped content",
			"containers", got.containers, "want_containers", want.containers,
			"scalars", got.scalars, "want_scalars", want.scalars)
		return "", false
	}
	return out, true
}

type shape struct {
	containers int
	scalars    int
}

// shapeOfInput counts containers and scalars the way the repair lexer sees
// them, so quoting style and comments do not matter.
func shapeOfInput(input string) shape {
	var s shape
	for _, tok := range tokenize([]rune(input), &logger{}) {
		switch tok.kind {
		case tokLBrace, tokLBracket:
			s.containers++
		case tokString, tokBare:
			s.scalars++
		}
	}
	return s
}

func shapeOfJSON(text string) shape {
	var s shape
	for tok := range scanner.Tokens(text) {
		switch tok.Kind {
		case scanner.Punctuation:
			if tok.Text == "{" || tok.Text == "[" {
				s.containers++
			}
		case scanner.Key, scanner.StringValue, scanner.Number, scanner.Boolean, scanner.Null:
			s.scalars++
		}
	}
	return s
}
