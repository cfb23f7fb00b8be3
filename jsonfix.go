// Package jsonfix checks, locates errors in, repairs and formats JSON text.
//
// Every function is pure and safe for concurrent use. Malformed input is an
// ordinary outcome reported through values, never through panics.
package jsonfix

import (
	"charm.land/jsonfix/diag"
	"charm.land/jsonfix/format"
	"charm.land/jsonfix/jsonrepair"
	"charm.land/jsonfix/position"
	"charm.land/jsonfix/scanner"
	"charm.land/jsonfix/strict"
)

// Scan splits text into classified tokens for display.
func Scan(text string) []scanner.Token {
	return scanner.Scan(text)
}

// Parse parses text with the default strict engine. Callers treat blank text
// as "no input" before calling Parse; see Check.
func Parse(text string) strict.Result {
	return strict.Parse(text)
}

// ResolvePosition maps a 0-based character offset to a 1-based line and
// column.
func ResolvePosition(text string, offset int) position.Position {
	return position.Resolve(text, offset)
}

// ClassifyError extracts location information from a strict parser message.
func ClassifyError(rawMessage string) diag.Error {
	return diag.Classify(rawMessage)
}

// Repair returns text turned into valid JSON, or text unchanged when no safe
// repair exists. The result must be re-checked before it is trusted.
func Repair(text string) string {
	return jsonrepair.Repair(text, jsonrepair.WithValidator(strict.Valid))
}

// PrettyPrint renders a parsed value with two-space indentation.
func PrettyPrint(value any) string {
	return format.Pretty(value)
}

// Minify renders a parsed value without insignificant whitespace.
func Minify(value any) string {
	return format.Minify(value)
}
