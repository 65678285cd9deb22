// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jgrid

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// A Scanner reads lexical tokens from an in-memory JSON text. Each call to
// Next advances the scanner to the next token, or reports an error.
//
// Offsets reported by a Scanner are byte offsets into the text passed to
// NewScanner, so a token's Span can be used to slice the original text.
type Scanner struct {
	src mem.RO
	tok Token
	err error

	pos, end int // start and end offsets of current token

	// Apparent line and column offsets (0-based)
	pline, pcol int
	eline, ecol int
}

// NewScanner constructs a new lexical scanner that consumes text.
func NewScanner(text string) *Scanner { return &Scanner{src: mem.S(text)} }

// Next advances s to the next token of the input, or reports an error.
// At the end of the input, Next returns io.EOF. Any other error has concrete
// type *ParseError.
func (s *Scanner) Next() error {
	s.err = nil
	s.tok = Invalid

	for s.end < s.src.Len() && isSpace(s.src.At(s.end)) {
		s.step(1)
	}
	s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
	if s.end >= s.src.Len() {
		s.err = io.EOF
		return s.err
	}

	ch := s.src.At(s.end)
	if t, ok := selfDelim(ch); ok {
		s.step(1)
		s.tok = t
		return nil
	}
	switch {
	case ch == '-' || isDigit(ch):
		return s.scanNumber()
	case ch == '"':
		return s.scanString()
	case ch == 't':
		return s.scanName(True, "true")
	case ch == 'f':
		return s.scanName(False, "false")
	case ch == 'n':
		return s.scanName(Null, "null")
	}
	r, _ := mem.DecodeRune(s.src.SliceFrom(s.end))
	return s.failf("unexpected %q", r)
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns a view of the undecoded text of the current token.
func (s *Scanner) Text() mem.RO { return s.src.Slice(s.pos, s.end) }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol},
	}
}

// step advances the read position by n bytes, none of which may be a
// newline unless n == 1.
func (s *Scanner) step(n int) {
	if n == 1 && s.src.At(s.end) == '\n' {
		s.eline++
		s.ecol = 0
	} else {
		s.ecol += n
	}
	s.end += n
}

// peek returns the byte at the read position and whether there is one.
func (s *Scanner) peek() (byte, bool) {
	if s.end >= s.src.Len() {
		return 0, false
	}
	return s.src.At(s.end), true
}

func (s *Scanner) scanString() error {
	s.step(1) // open quote
	for {
		ch, ok := s.peek()
		if !ok {
			return s.failf("unterminated string")
		}
		switch {
		case ch == '"':
			s.step(1)
			s.tok = String
			return nil
		case ch == '\\':
			s.step(1)
			if err := s.scanEscape(); err != nil {
				return err
			}
		case ch < ' ':
			return s.failf("unescaped control %q", rune(ch))
		case ch >= utf8.RuneSelf:
			r, n := mem.DecodeRune(s.src.SliceFrom(s.end))
			if r == utf8.RuneError && n <= 1 {
				return s.failf("invalid UTF-8 in string")
			}
			s.step(n)
		default:
			s.step(1)
		}
	}
}

// scanEscape consumes the remainder of an escape sequence whose backslash has
// already been read.
func (s *Scanner) scanEscape() error {
	ch, ok := s.peek()
	if !ok {
		return s.failf("unterminated string")
	}
	switch ch {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		s.step(1)
		return nil
	case 'u':
		s.step(1)
		for i := 0; i < 4; i++ {
			ch, ok := s.peek()
			if !ok || !isHexDigit(ch) {
				return s.failf("invalid Unicode escape")
			}
			s.step(1)
		}
		return nil
	default:
		return s.failf("invalid %q after escape", rune(ch))
	}
}

func (s *Scanner) scanNumber() error {
	if ch, _ := s.peek(); ch == '-' {
		s.step(1)
	}

	// Integer part: a single zero, or a nonzero digit followed by digits.
	ch, ok := s.peek()
	if !ok || !isDigit(ch) {
		return s.failf("want digit after sign")
	}
	s.step(1)
	if ch == '0' {
		if next, ok := s.peek(); ok && isDigit(next) {
			return s.failf("extra leading zeroes")
		}
	} else {
		s.skipDigits()
	}
	s.tok = Integer

	// If a decimal point follows, consume a fractional part.
	if ch, ok := s.peek(); ok && ch == '.' {
		s.step(1)
		if s.skipDigits() == 0 {
			return s.failf("no digits after decimal point")
		}
		s.tok = Number
	}

	// If an exponent follows, consume it.
	if ch, ok := s.peek(); ok && (ch == 'e' || ch == 'E') {
		s.step(1)
		if ch, ok := s.peek(); ok && (ch == '+' || ch == '-') {
			s.step(1)
		}
		if s.skipDigits() == 0 {
			return s.failf("missing exponent digits")
		}
		s.tok = Number
	}
	return nil
}

// skipDigits consumes decimal digits and reports how many it consumed.
func (s *Scanner) skipDigits() int {
	var nd int
	for {
		ch, ok := s.peek()
		if !ok || !isDigit(ch) {
			return nd
		}
		s.step(1)
		nd++
	}
}

// scanName consumes a run of lowercase letters and checks that it spells
// the constant want, whose token type is tok.
func (s *Scanner) scanName(tok Token, want string) error {
	start := s.end
	for {
		ch, ok := s.peek()
		if !ok || !isNameByte(ch) {
			break
		}
		s.step(1)
	}
	if got := s.src.Slice(start, s.end); !got.EqualString(want) {
		return s.failf("unknown constant %q", got.StringCopy())
	}
	s.tok = tok
	return nil
}

func (s *Scanner) failf(msg string, args ...any) error {
	s.tok = Invalid
	s.err = &ParseError{
		Offset:   s.end,
		Location: LineCol{Line: s.eline + 1, Column: s.ecol},
		Message:  fmt.Sprintf(msg, args...),
	}
	return s.err
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }
func isNameByte(ch byte) bool { return ch >= 'a' && ch <= 'z' }

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch byte) (Token, bool) {
	i := strings.IndexByte("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
