// Package json parses JSON text directly into a flatdoc.FlatDocument,
// writing each key and primitive value token into the pretty text in
// lockstep with row construction instead of building an intermediate value
// tree. Braces, brackets, commas and ": " separators are not written to the
// pretty text; tokens are packed back-to-back.
//
// The scanner classifies input bytes the way mcvoid-json's table-driven
// parser does (explicit character classes for whitespace, structural
// punctuation, and number components), but the parser itself is ordinary
// recursive descent: flatdoc rows nest by construction, so there is no need
// for mcvoid-json's explicit mode/value stack.
package json

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/trygveh/sdp/internal/errs"
	"github.com/trygveh/sdp/internal/flatdoc"
)

// charClass mirrors the "columns" of a hand-rolled JSON lexer's classifier:
// value dispatch and structural punctuation go through classify, while the
// number, string and literal scanners compare raw bytes directly.
type charClass int8

const (
	classOther charClass = iota
	classSpace
	classQuote
	classBackslash
	classLCurly
	classRCurly
	classLSquare
	classRSquare
	classColon
	classComma
	classDigit
	classMinus
	classEOF
)

func classify(b byte) charClass {
	switch {
	case b == ' ' || b == '\t' || b == '\n' || b == '\r':
		return classSpace
	case b == '"':
		return classQuote
	case b == '\\':
		return classBackslash
	case b == '{':
		return classLCurly
	case b == '}':
		return classRCurly
	case b == '[':
		return classLSquare
	case b == ']':
		return classRSquare
	case b == ':':
		return classColon
	case b == ',':
		return classComma
	case b == '-':
		return classMinus
	case b >= '0' && b <= '9':
		return classDigit
	default:
		return classOther
	}
}

// Parse reads newline-delimited JSON top-level values from src and returns
// the resulting flat document. Multiple top-level values are accepted, per
// the same convention jq and jless use for streaming JSON logs.
func Parse(src string) (*flatdoc.FlatDocument, error) {
	p := &parser{src: src, b: flatdoc.NewBuilder()}
	p.skipWhitespace()
	if p.atEOF() {
		return nil, errs.NewParse(1, 1, "empty input")
	}
	for !p.atEOF() {
		if err := p.parseValue(nil); err != nil {
			return nil, err
		}
		p.skipWhitespace()
	}
	return p.b.Build(), nil
}

type parser struct {
	src string
	pos int
	b   *flatdoc.Builder

	line int
	col  int
}

func (p *parser) atEOF() bool { return p.pos >= len(p.src) }

func (p *parser) peek() byte {
	if p.atEOF() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) advance() byte {
	c := p.src[p.pos]
	p.pos++
	if c == '\n' {
		p.line++
		p.col = 0
	} else {
		p.col++
	}
	return c
}

func (p *parser) skipWhitespace() {
	for !p.atEOF() && classify(p.peek()) == classSpace {
		p.advance()
	}
}

func (p *parser) errorf(format string, args ...any) *errs.Err {
	return errs.NewParse(p.line+1, p.col+1, format, args...)
}

// parseValue parses one JSON value starting at the current position. key is
// nil for array elements and top-level values.
func (p *parser) parseValue(key *flatdoc.Key) error {
	p.skipWhitespace()
	if p.atEOF() {
		return p.errorf("unexpected end of input, expected a value")
	}
	switch classify(p.peek()) {
	case classLCurly:
		return p.parseObject(key)
	case classLSquare:
		return p.parseArray(key)
	case classQuote:
		return p.parseString(key)
	case classMinus:
		return p.parseNumber(key)
	case classDigit:
		return p.parseNumber(key)
	default:
		return p.parseLiteral(key)
	}
}

func (p *parser) parseObject(key *flatdoc.Key) error {
	p.advance() // '{'
	p.skipWhitespace()

	if classify(p.peek()) == classRCurly {
		p.advance()
		p.b.EmptyContainer(flatdoc.Object, key)
		return nil
	}

	p.b.OpenContainer(flatdoc.Object, key)
	for {
		p.skipWhitespace()
		if classify(p.peek()) != classQuote {
			return p.errorf("expected a string key")
		}
		childKey, err := p.parseKeyString()
		if err != nil {
			return err
		}
		p.skipWhitespace()
		if p.atEOF() || classify(p.peek()) != classColon {
			return p.errorf("expected ':' after object key")
		}
		p.advance()
		p.skipWhitespace()
		if err := p.parseValue(childKey); err != nil {
			return err
		}
		p.skipWhitespace()
		switch classify(p.peek()) {
		case classComma:
			p.advance()
			continue
		case classRCurly:
			p.advance()
			p.b.CloseContainer()
			return nil
		default:
			return p.errorf("expected ',' or '}' in object")
		}
	}
}

func (p *parser) parseArray(key *flatdoc.Key) error {
	p.advance() // '['
	p.skipWhitespace()

	if classify(p.peek()) == classRSquare {
		p.advance()
		p.b.EmptyContainer(flatdoc.Array, key)
		return nil
	}

	p.b.OpenContainer(flatdoc.Array, key)
	for {
		p.skipWhitespace()
		if err := p.parseValue(nil); err != nil {
			return err
		}
		p.skipWhitespace()
		switch classify(p.peek()) {
		case classComma:
			p.advance()
			continue
		case classRSquare:
			p.advance()
			p.b.CloseContainer()
			return nil
		default:
			return p.errorf("expected ',' or ']' in array")
		}
	}
}

// parseKeyString parses a "..." token used as an object key. The re-quoted
// key text is appended to the pretty-text arena so Key.Range can back a
// search match the same way a value's ValueRange does.
func (p *parser) parseKeyString() (*flatdoc.Key, error) {
	start := p.b.Pos()
	raw, quoted, err := p.scanString()
	if err != nil {
		return nil, err
	}
	p.b.WriteString(quoted)
	return &flatdoc.Key{Raw: raw, Range: p.b.Span(start)}, nil
}

func (p *parser) parseString(key *flatdoc.Key) error {
	start := p.b.Pos()
	_, quoted, err := p.scanString()
	if err != nil {
		return err
	}
	p.b.WriteString(quoted)
	idx := p.b.Primitive(flatdoc.String, key)
	p.b.SetValueRange(idx, p.b.Span(start))
	return nil
}

// scanString consumes a `"..."` token (the current byte must be a quote)
// and returns both the decoded value and the canonical re-quoted form.
func (p *parser) scanString() (decoded string, quoted string, err error) {
	p.advance() // opening quote
	var sb strings.Builder
	for {
		if p.atEOF() {
			return "", "", p.errorf("unterminated string")
		}
		c := p.peek()
		if c == '"' {
			p.advance()
			break
		}
		if c == '\\' {
			p.advance()
			if p.atEOF() {
				return "", "", p.errorf("unterminated escape sequence")
			}
			esc := p.advance()
			switch esc {
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case '/':
				sb.WriteByte('/')
			case 'b':
				sb.WriteByte('\b')
			case 'f':
				sb.WriteByte('\f')
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'u':
				r, err := p.scanUnicodeEscape()
				if err != nil {
					return "", "", err
				}
				sb.WriteRune(r)
			default:
				return "", "", p.errorf("invalid escape character %q", esc)
			}
			continue
		}
		if c < 0x20 {
			return "", "", p.errorf("control character in string")
		}
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		for i := 0; i < size; i++ {
			p.advance()
		}
		sb.WriteRune(r)
	}
	decoded = sb.String()
	return decoded, strconv.Quote(decoded), nil
}

// scanUnicodeEscape consumes 4 hex digits right after "\u" and handles
// surrogate pairs split across two consecutive \uXXXX escapes.
func (p *parser) scanUnicodeEscape() (rune, error) {
	hi, err := p.scanHex4()
	if err != nil {
		return 0, err
	}
	if utf16.IsSurrogate(rune(hi)) {
		if p.pos+1 < len(p.src) && p.src[p.pos] == '\\' && p.src[p.pos+1] == 'u' {
			save := p.pos
			p.advance()
			p.advance()
			lo, err := p.scanHex4()
			if err != nil {
				p.pos = save
				return utf8.RuneError, nil
			}
			r := utf16.DecodeRune(rune(hi), rune(lo))
			if r != utf8.RuneError {
				return r, nil
			}
		}
		return utf8.RuneError, nil
	}
	return rune(hi), nil
}

func (p *parser) scanHex4() (uint32, error) {
	var v uint32
	for i := 0; i < 4; i++ {
		if p.atEOF() {
			return 0, p.errorf("incomplete \\u escape")
		}
		c := p.advance()
		var digit uint32
		switch {
		case c >= '0' && c <= '9':
			digit = uint32(c - '0')
		case c >= 'a' && c <= 'f':
			digit = uint32(c-'a') + 10
		case c >= 'A' && c <= 'F':
			digit = uint32(c-'A') + 10
		default:
			return 0, p.errorf("invalid hex digit %q in \\u escape", c)
		}
		v = v*16 + digit
	}
	return v, nil
}

func (p *parser) parseNumber(key *flatdoc.Key) error {
	start := p.b.Pos()
	tokStart := p.pos

	if p.peek() == '-' {
		p.advance()
	}
	if p.atEOF() || classify(p.peek()) != classDigit {
		return p.errorf("expected digit after '-'")
	}
	if p.peek() == '0' {
		p.advance()
	} else {
		for !p.atEOF() && classify(p.peek()) == classDigit {
			p.advance()
		}
	}
	if !p.atEOF() && p.peek() == '.' {
		p.advance()
		if p.atEOF() || classify(p.peek()) != classDigit {
			return p.errorf("expected digit after decimal point")
		}
		for !p.atEOF() && classify(p.peek()) == classDigit {
			p.advance()
		}
	}
	if !p.atEOF() && (p.peek() == 'e' || p.peek() == 'E') {
		p.advance()
		if !p.atEOF() && (p.peek() == '+' || p.peek() == '-') {
			p.advance()
		}
		if p.atEOF() || classify(p.peek()) != classDigit {
			return p.errorf("expected digit in exponent")
		}
		for !p.atEOF() && classify(p.peek()) == classDigit {
			p.advance()
		}
	}

	tok := p.src[tokStart:p.pos]
	p.b.WriteString(tok)
	idx := p.b.Primitive(flatdoc.Number, key)
	p.b.SetValueRange(idx, p.b.Span(start))
	return nil
}

func (p *parser) parseLiteral(key *flatdoc.Key) error {
	for _, lit := range []struct {
		text string
		kind flatdoc.Kind
	}{
		{"null", flatdoc.Null},
		{"true", flatdoc.Boolean},
		{"false", flatdoc.Boolean},
	} {
		if strings.HasPrefix(p.src[p.pos:], lit.text) {
			start := p.b.Pos()
			for range lit.text {
				p.advance()
			}
			p.b.WriteString(lit.text)
			idx := p.b.Primitive(lit.kind, key)
			p.b.SetValueRange(idx, p.b.Span(start))
			return nil
		}
	}
	return p.errorf("unexpected character %q", describeByte(p.peek()))
}

func describeByte(b byte) string {
	if b == 0 {
		return "<eof>"
	}
	return fmt.Sprintf("%c", b)
}
