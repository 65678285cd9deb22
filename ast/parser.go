// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/creachadair/jgrid"
	"github.com/tailscale/hujson"
)

// Parse parses a single JSON value from text. If text is empty or contains
// only whitespace, there is no document and Parse returns nil, nil. Here
// whitespace includes Unicode spaces and the byte order mark, not only the
// four JSON whitespace characters.
// Otherwise text must contain exactly one value, and any syntax error is
// reported as a *jgrid.ParseError.
//
// If an object has more than one member with the same key, the result has a
// single member at the position of the first, holding the last value.
func Parse(text string) (Value, error) {
	if isBlank(text) {
		return nil, nil
	}
	h := new(parseHandler)
	if err := jgrid.NewStream(text).Parse(h); err == io.EOF {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return h.val, nil
}

// ParseLenient parses a single value from text like Parse, but also accepts
// comments and trailing commas. A syntax error in text is reported as a
// *jgrid.ParseError whose location is unknown.
func ParseLenient(text string) (Value, error) {
	if isBlank(text) {
		return nil, nil
	}
	std, err := hujson.Standardize([]byte(text))
	if err != nil {
		return nil, jgrid.NewParseError(err)
	}
	return Parse(string(std))
}

// isBlank reports whether text contains only whitespace and byte order marks.
func isBlank(text string) bool {
	return strings.TrimFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\ufeff'
	}) == ""
}

// A parseHandler implements the jgrid.Handler interface to construct values
// from the events of a jgrid.Stream.
type parseHandler struct {
	stk []*frame
	val Value // the completed value
}

// A frame is an array or object under construction.
type frame struct {
	arr Array
	obj Object
	key string // key of the member being parsed (objects)

	isObj bool
	index map[string]int // key → offset in obj
}

func (h *parseHandler) top() *frame { return h.stk[len(h.stk)-1] }

func (h *parseHandler) pop() *frame {
	last := h.top()
	h.stk = h.stk[:len(h.stk)-1]
	return last
}

func (h *parseHandler) push(f *frame) { h.stk = append(h.stk, f) }

// reduce adds a completed value to the enclosing array or object, or records
// it as the result if there is none.
func (h *parseHandler) reduce(v Value) {
	if len(h.stk) == 0 {
		h.val = v
		return
	}
	f := h.top()
	if !f.isObj {
		f.arr = append(f.arr, v)
		return
	}
	if i, ok := f.index[f.key]; ok {
		f.obj[i] = Field(f.key, v)
		return
	}
	f.index[f.key] = len(f.obj)
	f.obj = append(f.obj, Field(f.key, v))
}

func (h *parseHandler) BeginObject(loc jgrid.Anchor) error {
	h.push(&frame{obj: Object{}, isObj: true, index: make(map[string]int)})
	return nil
}

func (h *parseHandler) EndObject(loc jgrid.Anchor) error {
	h.reduce(h.pop().obj)
	return nil
}

func (h *parseHandler) BeginArray(loc jgrid.Anchor) error {
	h.push(&frame{arr: Array{}})
	return nil
}

func (h *parseHandler) EndArray(loc jgrid.Anchor) error {
	h.reduce(h.pop().arr)
	return nil
}

func (h *parseHandler) BeginMember(loc jgrid.Anchor) error {
	key, err := jgrid.Unquote(loc.Text().StringCopy())
	if err != nil {
		return fmt.Errorf("invalid key: %w", err)
	}
	h.top().key = key
	return nil
}

func (h *parseHandler) EndMember(loc jgrid.Anchor) error { return nil }

func (h *parseHandler) Value(loc jgrid.Anchor) error {
	text := loc.Text().StringCopy()
	switch tok := loc.Token(); tok {
	case jgrid.String:
		s, err := jgrid.Unquote(text)
		if err != nil {
			return fmt.Errorf("invalid string: %w", err)
		}
		h.reduce(String(s))
	case jgrid.Integer, jgrid.Number:
		h.reduce(numberFromToken(tok, text))
	case jgrid.True, jgrid.False:
		h.reduce(Bool(tok == jgrid.True))
	case jgrid.Null:
		h.reduce(Null)
	default:
		return fmt.Errorf("unknown value %v", tok)
	}
	return nil
}
