// Package position maps character offsets in a text to 1-based line and
// column pairs.
package position

import "unicode/utf8"

// Position is a 1-based line and column.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Resolve maps a 0-based character offset in text to a line and column.
// Offsets at or past the end of text resolve to the last character.
// Only '\n' separates lines.
func Resolve(text string, offset int) Position {
	n := utf8.RuneCountInString(text)
	if offset >= n {
		offset = n - 1
	}
	if offset < 0 {
		offset = 0
	}

	line := 1
	lastNewline := -1
	i := 0
	for _, r := range text {
		if i >= offset {
			break
		}
		if r == '\n' {
			line++
			lastNewline = i
		}
		i++
	}
	return Position{Line: line, Column: offset - lastNewline}
}

// CharOffset converts a byte offset into text to a character offset.
// The byte offset is clamped to the bounds of text.
func CharOffset(text string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(text) {
		byteOffset = len(text)
	}
	return utf8.RuneCountInString(text[:byteOffset])
}
