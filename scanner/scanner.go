package scanner

import (
	"iter"
	"slices"
	"strings"
	"unicode/utf8"
)

var literals = []struct {
	text string
	kind Kind
}{
	{"true", Boolean},
	{"false", Boolean},
	{"null", Null},
}

// Tokens returns a lazy sequence of tokens covering text. Concatenating the
// Text of every token yields text exactly.
func Tokens(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		s := &scanner{src: text}
		for s.pos < len(s.src) {
			if !yield(s.next()) {
				return
			}
		}
	}
}

// Scan collects Tokens into a slice.
func Scan(text string) []Token {
	return slices.Collect(Tokens(text))
}

type scanner struct {
	src string
	pos int
}

func (s *scanner) next() Token {
	start := s.pos
	c := s.src[s.pos]

	switch {
	case isSpace(c):
		for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
			s.pos++
		}
		return s.emit(Whitespace, start)
	case c == '"':
		s.skipString()
		if s.peekColon() {
			return s.emit(Key, start)
		}
		return s.emit(StringValue, start)
	case c == '-' || isDigit(c):
		for s.pos < len(s.src) && isNumberByte(s.src[s.pos]) {
			s.pos++
		}
		return s.emit(Number, start)
	}

	for _, lit := range literals {
		if strings.HasPrefix(s.src[s.pos:], lit.text) {
			s.pos += len(lit.text)
			return s.emit(lit.kind, start)
		}
	}

	switch c {
	case '{', '}', '[', ']', ',', ':':
		s.pos++
		return s.emit(Punctuation, start)
	}

	_, size := utf8.DecodeRuneInString(s.src[s.pos:])
	s.pos += size
	return s.emit(Other, start)
}

func (s *scanner) emit(kind Kind, start int) Token {
	return Token{Kind: kind, Text: s.src[start:s.pos]}
}

// skipString consumes a string starting at the opening quote. An
// unterminated string runs to the end of input.
func (s *scanner) skipString() {
	s.pos++
	escaped := false
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		s.pos++
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			return
		}
	}
}

// peekColon reports whether the next non-whitespace byte is a colon. It does
// not advance.
func (s *scanner) peekColon() bool {
	for i := s.pos; i < len(s.src); i++ {
		if !isSpace(s.src[i]) {
			return s.src[i] == ':'
		}
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNumberByte(c byte) bool {
	return isDigit(c) || c == '-' || c == '.' || c == 'e' || c == 'E' || c == '+'
}
