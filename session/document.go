// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package session

import (
	"fmt"

	"github.com/creachadair/jgrid/ast"
	"github.com/creachadair/jgrid/grid"
)

// A Phase is a stage in the lifecycle of a document. Every edit starts over
// from Parsing; there is no terminal phase.
//
//	Empty → Parsing → Valid   → ProjectionReady
//	                          → ProjectionUnavailable
//	                → Invalid
type Phase int

// The document phases.
const (
	Empty Phase = iota
	Parsing
	Valid
	Invalid
	ProjectionReady
	ProjectionUnavailable
)

var phaseStr = [...]string{
	Empty:                 "empty",
	Parsing:               "parsing",
	Valid:                 "valid",
	Invalid:               "invalid",
	ProjectionReady:       "projection ready",
	ProjectionUnavailable: "projection unavailable",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseStr) {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseStr[p]
}

// A Document is a text and the outcome of parsing and projecting it.
// A Document is not modified after construction; an edit replaces it.
type Document struct {
	Text    string
	Lenient bool // whether Text was parsed with comments allowed

	Value     ast.Value  // the parsed value, or nil
	Err       error      // the parse error, if any
	Canonical string     // the canonical text of Value
	Grid      *grid.Grid // the grid projection of Value, or nil
	GridErr   error      // why there is no projection, if Value != nil

	phase Phase
}

// NewDocument parses text and, if it holds a value, projects it onto a grid.
// If lenient is true, comments and trailing commas are allowed.
func NewDocument(text string, lenient bool) *Document {
	d := &Document{Text: text, Lenient: lenient, phase: Parsing}
	parse := ast.Parse
	if lenient {
		parse = ast.ParseLenient
	}
	d.Value, d.Err = parse(text)
	switch {
	case d.Err != nil:
		d.phase = Invalid
		return d
	case d.Value == nil:
		d.phase = Empty
		return d
	}
	d.phase = Valid
	d.Canonical = ast.Format(d.Value)

	d.Grid, d.GridErr = grid.Project(d.Value)
	if d.GridErr != nil {
		d.phase = ProjectionUnavailable
	} else {
		d.phase = ProjectionReady
	}
	return d
}

// Phase reports the phase of d.
func (d *Document) Phase() Phase {
	if d == nil {
		return Empty
	}
	return d.phase
}

// IsCanonical reports whether the text of d is its canonical text. When it
// is not, spans located in the canonical text do not refer to the same bytes
// of the text.
func (d *Document) IsCanonical() bool { return d.Value != nil && d.Text == d.Canonical }

// RowCount reports the number of elements of d's value, if it is an array.
func (d *Document) RowCount() (int, bool) {
	arr, ok := d.Value.(ast.Array)
	return len(arr), ok
}

// Placeholder text shown in place of the grid when a value is not tabular.
const (
	PlaceholderTitle = "JSON data is not an array or is empty"
	PlaceholderHint  = "Grid view works best with array of objects"
)

// Sample is the document shown when a session starts with no text.
const Sample = `[
  {
    "id": 1,
    "name": "John Doe",
    "email": "john@example.com",
    "age": 30,
    "city": "New York",
    "active": true
  },
  {
    "id": 2,
    "name": "Jane Smith",
    "email": "jane@example.com",
    "age": 25,
    "city": "Los Angeles",
    "active": false
  },
  {
    "id": 3,
    "name": "Bob Johnson",
    "email": "bob@example.com",
    "age": 35,
    "city": "Chicago",
    "active": true
  }
]`
