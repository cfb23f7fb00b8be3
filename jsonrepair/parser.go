package jsonrepair

import (
	"bytes"
	"regexp"
	"strings"

	"charm.land/jsonfix/internal/jsonext"
	"github.com/charmbracelet/x/exp/slice"
)

var numberPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// parser is a tolerant recursive-descent grammar over the lexer's tokens. It
// writes compact JSON to out and stops at the first construct it cannot
// repair safely.
type parser struct {
	tokens   []token
	index    int
	out      bytes.Buffer
	stack    []tokenKind // open containers, innermost last
	maxDepth int
	log      *logger
}

func (p *parser) cur() token {
	return p.tokens[p.index]
}

func (p *parser) peek(offset int) token {
	idx := min(p.index+offset, len(p.tokens)-1)
	return p.tokens[idx]
}

func (p *parser) advance() {
	if p.index < len(p.tokens)-1 {
		p.index++
	}
}

func (p *parser) fail(reason string) error {
	return &Error{Offset: p.cur().pos, Reason: reason}
}

func (p *parser) push(kind tokenKind) error {
	if len(p.stack) >= p.maxDepth {
		return &Error{Offset: p.cur().pos, Reason: "nesting too deep", err: ErrTooDeep}
	}
	p.stack = append(p.stack, kind)
	return nil
}

func (p *parser) pop() {
	_, p.stack, _ = slice.Pop(p.stack)
}

// enclosedBy reports whether an outer container of the given kind is open
// around the innermost one.
func (p *parser) enclosedBy(kind tokenKind) bool {
	if len(p.stack) < 2 {
		return false
	}
	for _, k := range p.stack[:len(p.stack)-1] {
		if k == kind {
			return true
		}
	}
	return false
}

func startsValue(kind tokenKind) bool {
	switch kind {
	case tokLBrace, tokLBracket, tokString, tokBare:
		return true
	}
	return false
}

// document parses the whole input. Several top-level values are wrapped in an
// array.
func (p *parser) document() error {
	if p.cur().kind == tokEOF {
		return p.fail("no JSON value found")
	}
	var values [][]byte
	for {
		if err := p.value(); err != nil {
			return err
		}
		values = append(values, bytes.Clone(p.out.Bytes()))
		p.out.Reset()

		for {
			switch p.cur().kind {
			case tokRBrace, tokRBracket:
				p.log.add(RuleRemoveBracket, p.cur().pos, "Found a closing bracket without a matching opening one, removing it")
				p.advance()
				continue
			case tokComma:
				p.log.add(RuleRemoveComma, p.cur().pos, "Found a comma after a top-level value, removing it")
				p.advance()
				continue
			}
			break
		}
		if p.cur().kind == tokEOF {
			break
		}
		if !startsValue(p.cur().kind) {
			return p.fail("unexpected token after top-level value")
		}
	}

	if len(values) == 1 {
		p.out.Write(values[0])
		return nil
	}
	p.log.add(RuleWrapValues, 0, "Found several top-level values, wrapping them in an array")
	p.out.WriteByte('[')
	p.out.Write(bytes.Join(values, []byte{','}))
	p.out.WriteByte(']')
	return nil
}

func (p *parser) value() error {
	switch tok := p.cur(); tok.kind {
	case tokLBrace:
		return p.object()
	case tokLBracket:
		return p.array()
	case tokString:
		p.stringValue()
		return nil
	case tokBare:
		p.bareValue(tok)
		p.advance()
		return nil
	default:
		return p.fail("expected a value")
	}
}

// stringValue writes the current string, joining any strings that follow it
// with '+'.
func (p *parser) stringValue() {
	var sb strings.Builder
	sb.WriteString(p.cur().text)
	p.advance()
	for p.cur().kind == tokPlus && p.peek(1).kind == tokString {
		p.log.add(RuleConcatStrings, p.cur().pos, "Found concatenated strings, joining them")
		p.advance()
		sb.WriteString(p.cur().text)
		p.advance()
	}
	jsonext.AppendString(&p.out, sb.String())
}

func (p *parser) bareValue(tok token) {
	if lit, ok := literalValues[tok.text]; ok {
		if lit != tok.text {
			p.log.add(RuleMapLiteral, tok.pos, "Found literal "+tok.text+", mapping it to "+lit)
		}
		p.out.WriteString(lit)
		return
	}
	if num, ok := normalizeNumber(tok.text); ok {
		if num != tok.text {
			p.log.add(RuleNormalizeNumber, tok.pos, "Found malformed number "+tok.text+", normalizing it to "+num)
		}
		p.out.WriteString(num)
		return
	}
	p.log.add(RuleQuoteValue, tok.pos, "Found an unquoted value, quoting it")
	jsonext.AppendString(&p.out, tok.text)
}

// normalizeNumber returns the JSON form of a number-like run.
func normalizeNumber(raw string) (string, bool) {
	if numberPattern.MatchString(raw) {
		return raw, true
	}
	s := strings.TrimPrefix(raw, "+")
	neg := strings.HasPrefix(s, "-")
	body := strings.TrimPrefix(s, "-")
	if strings.HasPrefix(body, ".") {
		body = "0" + body
	}
	body = strings.TrimSuffix(body, ".")
	body = strings.Replace(body, ".e", "e", 1)
	body = strings.Replace(body, ".E", "E", 1)
	if neg {
		body = "-" + body
	}
	if numberPattern.MatchString(body) {
		return body, true
	}
	return "", false
}

// skipCommas drops commas that separate nothing. It reports whether any
// comma was seen.
func (p *parser) skipCommas(pending bool) bool {
	for p.cur().kind == tokComma {
		if pending {
			p.log.add(RuleRemoveComma, p.cur().pos, "Found a redundant comma, removing it")
		}
		pending = true
		p.advance()
	}
	return pending
}

func (p *parser) object() error {
	if err := p.push(tokLBrace); err != nil {
		return err
	}
	defer p.pop()
	p.advance()
	p.out.WriteByte('{')

	members := 0
	comma := false
	for {
		if members == 0 && p.cur().kind == tokComma {
			p.log.add(RuleRemoveComma, p.cur().pos, "Found a leading comma in an object, removing it")
			p.skipCommas(false)
		}
		comma = p.skipCommas(comma)

		switch tok := p.cur(); tok.kind {
		case tokRBrace:
			p.trailingComma(comma && members > 0, tok)
			p.advance()
			p.out.WriteByte('}')
			return nil
		case tokEOF:
			p.trailingComma(comma && members > 0, tok)
			p.log.add(RuleCloseBracket, tok.pos, "While parsing an object we reached the end of input, closing it")
			p.out.WriteByte('}')
			return nil
		case tokRBracket:
			if !p.enclosedBy(tokLBracket) {
				return p.fail("unmatched ']' inside an object")
			}
			p.trailingComma(comma && members > 0, tok)
			p.log.add(RuleCloseBracket, tok.pos, "While parsing an object we found ']', closing the object first")
			p.out.WriteByte('}')
			return nil
		}

		if members > 0 {
			if !comma {
				p.log.add(RuleInsertComma, p.cur().pos, "While parsing an object we missed a comma between members, inserting it")
			}
			p.out.WriteByte(',')
		}
		if err := p.key(); err != nil {
			return err
		}

		switch tok := p.cur(); {
		case tok.kind == tokColon:
			p.advance()
		case startsValue(tok.kind):
			p.log.add(RuleInsertColon, tok.pos, "While parsing an object we missed a ':' after a key, inserting it")
		default:
			return p.fail("expected ':' after object key")
		}
		p.out.WriteByte(':')

		switch tok := p.cur(); tok.kind {
		case tokComma, tokRBrace, tokRBracket, tokEOF:
			p.log.add(RuleInsertNull, tok.pos, "While parsing an object value we found nothing, using null")
			p.out.WriteString("null")
		default:
			if err := p.value(); err != nil {
				return err
			}
		}
		members++

		comma = false
		switch tok := p.cur(); {
		case tok.kind == tokComma:
			comma = true
			p.advance()
		case tok.kind == tokRBrace, tok.kind == tokRBracket, tok.kind == tokEOF, startsValue(tok.kind):
		default:
			return p.fail("unexpected token after object value")
		}
	}
}

func (p *parser) key() error {
	tok := p.cur()
	switch tok.kind {
	case tokString:
		jsonext.AppendString(&p.out, tok.text)
	case tokBare:
		p.log.add(RuleQuoteKey, tok.pos, "Found an unquoted key, quoting it")
		jsonext.AppendString(&p.out, tok.text)
	default:
		return p.fail("expected an object key")
	}
	p.advance()
	return nil
}

func (p *parser) trailingComma(found bool, at token) {
	if found {
		p.log.add(RuleRemoveTrailingComma, at.pos, "Found a trailing comma, removing it")
	}
}

func (p *parser) array() error {
	if err := p.push(tokLBracket); err != nil {
		return err
	}
	defer p.pop()
	p.advance()
	p.out.WriteByte('[')

	elements := 0
	comma := false
	for {
		if elements == 0 && p.cur().kind == tokComma {
			p.log.add(RuleRemoveComma, p.cur().pos, "Found a leading comma in an array, removing it")
			p.skipCommas(false)
		}
		comma = p.skipCommas(comma)

		switch tok := p.cur(); tok.kind {
		case tokRBracket:
			p.trailingComma(comma && elements > 0, tok)
			p.advance()
			p.out.WriteByte(']')
			return nil
		case tokEOF:
			p.trailingComma(comma && elements > 0, tok)
			p.log.add(RuleCloseBracket, tok.pos, "While parsing an array we reached the end of input, closing it")
			p.out.WriteByte(']')
			return nil
		case tokRBrace:
			if !p.enclosedBy(tokLBrace) {
				return p.fail("unmatched '}' inside an array")
			}
			p.trailingComma(comma && elements > 0, tok)
			p.log.add(RuleCloseBracket, tok.pos, "While parsing an array we found '}', closing the array first")
			p.out.WriteByte(']')
			return nil
		}

		if elements > 0 {
			if !comma {
				p.log.add(RuleInsertComma, p.cur().pos, "While parsing an array we missed a comma between elements, inserting it")
			}
			p.out.WriteByte(',')
		}
		if err := p.value(); err != nil {
			return err
		}
		elements++

		comma = false
		switch tok := p.cur(); {
		case tok.kind == tokComma:
			comma = true
			p.advance()
		case tok.kind == tokRBracket, tok.kind == tokRBrace, tok.kind == tokEOF, startsValue(tok.kind):
		default:
			return p.fail("unexpected token after array element")
		}
	}
}
