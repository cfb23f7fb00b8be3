package diag

import (
	"regexp"
	"strconv"
)

// Raw is the diagnostic reported by a strict engine: its message verbatim
// and, when the engine reports one, a 0-based character offset.
type Raw struct {
	Message   string
	Offset    int
	HasOffset bool
}

// Adapter maps an engine's raw diagnostic to an Error.
type Adapter interface {
	Normalize(raw Raw) Error
}

// AdapterFunc adapts a function to the Adapter interface.
type AdapterFunc func(raw Raw) Error

// Normalize calls f(raw).
func (f AdapterFunc) Normalize(raw Raw) Error {
	return f(raw)
}

// Patterns extracts locations from the message first and falls back to the
// engine's offset.
var Patterns Adapter = AdapterFunc(func(raw Raw) Error {
	e := Classify(raw.Message)
	if !e.HasLineColumn() && e.Position == nil && raw.HasOffset {
		e.Position = At(raw.Offset)
	}
	return e
})

var (
	lineColumnPattern = regexp.MustCompile(`(?i)\bline (\d+),? column (\d+)`)
	positionPattern   = regexp.MustCompile(`(?i)\bposition (\d+)`)
)

// Classify extracts a "line N column M" or "position N" location from a
// diagnostic message. The message is kept verbatim. A position found alone
// leaves Line and Column empty; callers resolve them with Locate.
func Classify(message string) Error {
	e := Error{Message: message}
	if m := lineColumnPattern.FindStringSubmatch(message); m != nil {
		line, lerr := strconv.Atoi(m[1])
		column, cerr := strconv.Atoi(m[2])
		if lerr == nil && cerr == nil && line > 0 && column > 0 {
			e.Line = line
			e.Column = column
			return e
		}
	}
	if m := positionPattern.FindStringSubmatch(message); m != nil {
		if offset, err := strconv.Atoi(m[1]); err == nil {
			e.Position = At(offset)
		}
	}
	return e
}
