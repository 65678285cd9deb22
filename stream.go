// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jgrid

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"go4.org/mem"
)

// MaxDepth is the deepest nesting of arrays and objects a Stream accepts.
const MaxDepth = 10000

// An Anchor represents a location in source text. The methods of an Anchor
// will report the location, token type, and contents of the anchor.
type Anchor interface {
	Token() Token       // Returns the token type of the anchor
	Text() mem.RO       // Returns a view of the raw (undecoded) text of the anchor
	Span() Span         // Returns the byte span of the anchor
	Location() Location // Returns the full location of the anchor
}

// A Handler handles events from parsing an input text. If a method reports
// an error, parsing stops and that error is returned to the caller.
// The parser ensures objects and arrays are correctly balanced.
//
// The Anchor argument to a Handler method is only valid for the duration of
// that method call. If the method needs to retain information about the
// location after it returns, it must copy the relevant data.
type Handler interface {
	// Begin a new object, whose open brace is at loc.
	BeginObject(loc Anchor) error

	// End the most-recently-opened object, whose close brace is at loc.
	EndObject(loc Anchor) error

	// Begin a new array, whose open bracket is at loc.
	BeginArray(loc Anchor) error

	// End the most-recently-opened array, whose close bracket is at loc.
	EndArray(loc Anchor) error

	// Begin a new object member, whose key is at loc. The text of the key is
	// still quoted; the handler is responsible for unquoting it.
	BeginMember(loc Anchor) error

	// End the current object member giving the location and type of the token
	// that terminated the member (either Comma or RBrace).
	EndMember(loc Anchor) error

	// Report a data value at the given location. The type of the value can be
	// recovered from the token. String tokens are quoted.
	Value(loc Anchor) error
}

// Stream is a parser that consumes a complete JSON text and delivers events
// to a Handler corresponding with the structure of the input.
type Stream struct {
	s     *Scanner
	depth int
}

// NewStream constructs a new Stream that consumes text.
func NewStream(text string) *Stream { return &Stream{s: NewScanner(text)} }

// Parse parses exactly one JSON value from the input and delivers events to
// h. The value may be surrounded by whitespace, but any other input after it
// is an error. If the input contains only whitespace, Parse returns io.EOF.
// In case of a syntax error, the returned error has type [*ParseError].
func (s *Stream) Parse(h Handler) (err error) {
	defer s.recoverParseError(&err)

	if err := s.s.Next(); err == io.EOF {
		return err
	} else if err != nil {
		return err
	}
	s.parseElement(h)

	if err := s.s.Next(); err == nil {
		s.syntaxError("unexpected %v after end of value", s.s.Token())
	} else if err != io.EOF {
		return err
	}
	return nil
}

func (s *Stream) recoverParseError(errp *error) {
	if serr := recover(); serr != nil {
		switch err := serr.(type) {
		case *ParseError:
			*errp = err
		case handlerError:
			*errp = err.error
		default:
			panic(serr)
		}
	}
}

// parseElement consumes a single value of any type.
// Precondition: token != Invalid.
func (s *Stream) parseElement(h Handler) {
	switch tok := s.s.Token(); tok {
	case LBrace:
		s.push()
		s.checkError(h.BeginObject(s.s))
		s.parseMembers(h)
		s.checkError(h.EndObject(s.s))
		s.depth--
	case LSquare:
		s.push()
		s.checkError(h.BeginArray(s.s))
		s.parseElements(h)
		s.checkError(h.EndArray(s.s))
		s.depth--
	case Integer, Number, String, True, False, Null:
		s.checkError(h.Value(s.s))
	default:
		s.syntaxError("unexpected %v", tok)
	}
}

// parseMembers consumes zero or more key:value object members.
// Precondition: token == LBrace.
// Postcondition: token == RBrace.
func (s *Stream) parseMembers(h Handler) {
	tok := s.advance(RBrace, String)
	if tok == RBrace {
		return // end of object
	}
	for {
		// Parse a single member: "key": value
		s.checkError(h.BeginMember(s.s))
		s.advance(Colon)
		s.advance()
		s.parseElement(h)

		// Check whether we have more members (",") or are done ("}").
		tok := s.advance(RBrace, Comma)
		s.checkError(h.EndMember(s.s))
		if tok == RBrace {
			return // end of object
		}
		s.advance(String) // advance to next key
	}
}

// parseElements consumes zero or more comma-separated array values.
// Precondition: token == LSquare.
// Postcondition: token == RSquare.
func (s *Stream) parseElements(h Handler) {
	if tok := s.advance(); tok == RSquare {
		return // end of array
	}
	s.parseElement(h)
	for {
		if tok := s.advance(RSquare, Comma); tok == RSquare {
			return // end of array
		}
		s.advance()
		s.parseElement(h)
	}
}

func (s *Stream) push() {
	s.depth++
	if s.depth > MaxDepth {
		s.syntaxError("nesting depth exceeds %d", MaxDepth)
	}
}

// advance reads the next token, which must be one of tokens if any are
// given, and returns its type.
func (s *Stream) advance(tokens ...Token) Token {
	if err := s.s.Next(); err == io.EOF {
		s.syntaxError("unexpected end of input, %s", tokLabel(tokens, "nothing"))
	} else if err != nil {
		panic(err) // already a *ParseError
	}
	tok := s.s.Token()
	if len(tokens) != 0 && !slices.Contains(tokens, tok) {
		s.syntaxError("%s", tokLabel(tokens, tok))
	}
	return tok
}

func (s *Stream) syntaxError(msg string, args ...any) {
	loc := s.s.Location()
	panic(&ParseError{
		Offset:   loc.Pos,
		Location: loc.First,
		Message:  fmt.Sprintf(msg, args...),
	})
}

func (s *Stream) checkError(err error) {
	if err != nil {
		panic(handlerError{err})
	}
}

type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }

// tokLabel makes a human-readable summary string for the given token types.
func tokLabel(tokens []Token, got any) string {
	if len(tokens) == 0 {
		return fmt.Sprintf("expected a value, got %v", got)
	}
	var exp string
	if len(tokens) == 1 {
		exp = tokens[0].String()
	} else {
		last := len(tokens) - 1
		ss := make([]string, last)
		for i, tok := range tokens[:last] {
			ss[i] = tok.String()
		}
		exp = strings.Join(ss, ", ") + " or " + tokens[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}

// ParseError is the concrete type of errors reported by the scanner and the
// stream parser. Its message is meant to be shown to the user verbatim.
type ParseError struct {
	Offset   int     // byte offset of the error in the input, 0-based
	Location LineCol // line and column of the error; Line == 0 if unknown
	Message  string

	err error
}

// NewParseError constructs a *ParseError with no known location that wraps
// err, using the text of err as its message.
func NewParseError(err error) *ParseError {
	return &ParseError{Message: err.Error(), err: err}
}

// Error satisfies the error interface.
func (e *ParseError) Error() string {
	if e.Location.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("at %s: %s", e.Location, e.Message)
}

// Unwrap supports error wrapping.
func (e *ParseError) Unwrap() error { return e.err }

// IsParseError reports whether err is or wraps a *ParseError.
func IsParseError(err error) bool {
	var perr *ParseError
	return errors.As(err, &perr)
}
