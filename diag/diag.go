// Package diag normalizes the diagnostics of strict JSON engines into a
// single error descriptor.
package diag

import (
	"fmt"

	"charm.land/jsonfix/position"
)

// Error describes why a text is not valid JSON.
//
// Line and Column are 1-based and zero when unknown. Position is a 0-based
// character offset and nil when unknown. When both are known, Line and Column
// take precedence for display.
type Error struct {
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
	Position *int   `json:"position,omitempty"`
}

// Error implements the error interface.
func (e Error) Error() string {
	switch {
	case e.HasLineColumn():
		return fmt.Sprintf("%s (line %d, column %d)", e.Message, e.Line, e.Column)
	case e.Position != nil:
		return fmt.Sprintf("%s (position %d)", e.Message, *e.Position)
	default:
		return e.Message
	}
}

// HasLineColumn reports whether both Line and Column are known.
func (e Error) HasLineColumn() bool {
	return e.Line > 0 && e.Column > 0
}

// Locate returns a copy of e with Line and Column resolved from Position
// against text. Errors that already carry a line and column, or carry no
// position, are returned unchanged.
func (e Error) Locate(text string) Error {
	if e.HasLineColumn() || e.Position == nil {
		return e
	}
	pos := position.Resolve(text, *e.Position)
	e.Line = pos.Line
	e.Column = pos.Column
	return e
}

// At returns a pointer to offset, for filling Position.
func At(offset int) *int {
	return &offset
}
