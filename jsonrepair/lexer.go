package jsonrepair

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLBrace
	tokRBrace
	tokLBracket
	tokRBracket
	tokColon
	tokComma
	tokPlus
	tokString // quoted; text holds the decoded value
	tokBare   // unquoted run; text holds it verbatim
)

type token struct {
	kind tokenKind
	text string
	pos  int // rune offset of the first character
}

// lexer splits the input into tokens, dropping comments and code fences and
// decoding quoted strings. It never fails.
type lexer struct {
	src []rune
	pos int
	log *logger
}

func tokenize(src []rune, log *logger) []token {
	l := &lexer{src: src, log: log}
	var tokens []token
	for {
		tok := l.next()
		tokens = append(tokens, tok)
		if tok.kind == tokEOF {
			return tokens
		}
	}
}

func (l *lexer) peek(offset int) (rune, bool) {
	idx := l.pos + offset
	if idx < 0 || idx >= len(l.src) {
		return 0, false
	}
	return l.src[idx], true
}

func (l *lexer) hasPrefix(prefix string) bool {
	i := l.pos
	for _, r := range prefix {
		if i >= len(l.src) || l.src[i] != r {
			return false
		}
		i++
	}
	return true
}

func (l *lexer) next() token {
	for {
		for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
			l.pos++
		}
		if l.pos >= len(l.src) {
			return token{kind: tokEOF, pos: l.pos}
		}
		if !l.skipComment() {
			break
		}
	}

	start := l.pos
	c := l.src[l.pos]
	single := func(kind tokenKind) token {
		l.pos++
		return token{kind: kind, pos: start}
	}
	switch c {
	case '{':
		return single(tokLBrace)
	case '}':
		return single(tokRBrace)
	case '[':
		return single(tokLBracket)
	case ']':
		return single(tokRBracket)
	case ':':
		return single(tokColon)
	case ',':
		return single(tokComma)
	case '+':
		if next, ok := l.peek(1); !ok || !(unicode.IsDigit(next) || next == '.' || next == 'I') {
			return single(tokPlus)
		}
	case '"', '\'', '“', '‘':
		return l.quoted()
	}
	return l.bare()
}

// skipComment consumes one comment or code fence at the current position.
func (l *lexer) skipComment() bool {
	c := l.src[l.pos]
	next, _ := l.peek(1)
	switch {
	case c == '/' && next == '/', c == '#' && l.hashComment():
		start := l.pos
		for l.pos < len(l.src) && l.src[l.pos] != '\n' && l.src[l.pos] != '\r' {
			l.pos++
		}
		l.log.add(RuleStripComment, start, "Found line comment, ignoring it")
		return true
	case c == '/' && next == '*':
		start := l.pos
		l.pos += 2
		for l.pos < len(l.src) && !l.hasPrefix("*/") {
			l.pos++
		}
		if l.pos < len(l.src) {
			l.pos += 2
		}
		l.log.add(RuleStripComment, start, "Found block comment, ignoring it")
		return true
	case c == '`' && l.hasPrefix("```") && l.codeFence():
		start := l.pos
		l.pos += 3
		// An info string such as "json" belongs to the fence only when
		// whitespace follows it.
		end := l.pos
		for end < len(l.src) && (unicode.IsLetter(l.src[end]) || unicode.IsDigit(l.src[end])) {
			end++
		}
		if end == len(l.src) || unicode.IsSpace(l.src[end]) {
			l.pos = end
		}
		l.log.add(RuleStripCodeFence, start, "Found a markdown code fence, ignoring it")
		return true
	}
	return false
}

// atLineStart reports whether only whitespace precedes the current position
// on its line.
func (l *lexer) atLineStart() bool {
	for i := l.pos - 1; i >= 0; i-- {
		switch c := l.src[i]; {
		case c == '\n' || c == '\r':
			return true
		case !unicode.IsSpace(c):
			return false
		}
	}
	return true
}

// codeFence reports whether the ``` at the current position is a markdown
// fence: it opens a line or closes the input.
func (l *lexer) codeFence() bool {
	if l.atLineStart() {
		return true
	}
	for _, r := range l.src[l.pos+3:] {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// hashComment reports whether the '#' at the current position starts a
// comment rather than a value such as #fff.
func (l *lexer) hashComment() bool {
	next, ok := l.peek(1)
	return !ok || unicode.IsSpace(next) || l.atLineStart()
}

func isDelimiter(src []rune, i int) bool {
	c := src[i]
	if unicode.IsSpace(c) {
		return true
	}
	switch c {
	case '{', '}', '[', ']', ',', ':', '"', '\'', '“', '”', '‘', '’':
		return true
	case '/':
		return i+1 < len(src) && (src[i+1] == '/' || src[i+1] == '*')
	}
	return false
}

// bare consumes an unquoted run such as a number, a literal or a key.
func (l *lexer) bare() token {
	start := l.pos
	for l.pos < len(l.src) && !isDelimiter(l.src, l.pos) {
		l.pos++
	}
	if l.pos == start {
		l.pos++
	}
	return token{kind: tokBare, text: string(l.src[start:l.pos]), pos: start}
}

func closingQuote(open rune) rune {
	switch open {
	case '“':
		return '”'
	case '‘':
		return '’'
	default:
		return open
	}
}

// quoted consumes a string delimited by double, single or typographic quotes.
// An unterminated string runs to the end of input.
func (l *lexer) quoted() token {
	start := l.pos
	open := l.src[l.pos]
	closer := closingQuote(open)
	if open != '"' {
		l.log.add(RuleNormalizeQuotes, start, "Found a string with non-standard quotes, using double quotes")
	}
	l.pos++

	var sb strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == closer:
			l.pos++
			return token{kind: tokString, text: sb.String(), pos: start}
		case c == '\\':
			l.escape(&sb, closer)
		default:
			if c < 0x20 {
				l.log.add(RuleEscapeControl, l.pos, "Found an unescaped control character in a string, escaping it")
			}
			sb.WriteRune(c)
			l.pos++
		}
	}
	l.log.add(RuleCloseString, start, "While parsing a string we reached the end of input, closing it")
	return token{kind: tokString, text: sb.String(), pos: start}
}

var simpleEscapes = map[rune]rune{
	'"':  '"',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// escape decodes the escape sequence at the current backslash. Sequences
// that are not valid JSON keep their backslash as a literal character.
func (l *lexer) escape(sb *strings.Builder, closer rune) {
	e, ok := l.peek(1)
	if !ok {
		l.log.add(RuleKeepInvalidEscape, l.pos, "Found a trailing backslash, keeping it")
		sb.WriteRune('\\')
		l.pos++
		return
	}
	if r, ok := simpleEscapes[e]; ok {
		sb.WriteRune(r)
		l.pos += 2
		return
	}
	if e == closer {
		sb.WriteRune(e)
		l.pos += 2
		return
	}
	if e == 'u' {
		if r, ok := l.hexAt(l.pos + 2); ok {
			l.pos += 6
			if utf16.IsSurrogate(r) {
				if l.hasPrefix(`\u`) {
					if r2, ok := l.hexAt(l.pos + 2); ok {
						if dec := utf16.DecodeRune(r, r2); dec != unicode.ReplacementChar {
							l.pos += 6
							sb.WriteRune(dec)
							return
						}
					}
				}
				r = unicode.ReplacementChar
			}
			sb.WriteRune(r)
			return
		}
	}
	l.log.add(RuleKeepInvalidEscape, l.pos, "Found an invalid escape sequence, keeping the backslash")
	sb.WriteRune('\\')
	l.pos++
}

func (l *lexer) hexAt(i int) (rune, bool) {
	if i+4 > len(l.src) {
		return 0, false
	}
	v, err := strconv.ParseUint(string(l.src[i:i+4]), 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}
