// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package grid projects JSON values shaped as arrays of records onto a
// table of rows and columns, and maps table cells back to the spans of
// canonical text they came from.
//
// A value is tabular if it is a non-empty array whose first element is an
// object. The columns of the table are the keys of that first object, in
// order. Every row is rendered with exactly those columns: a key missing from
// a row yields an empty cell, and keys a row has beyond the columns are not
// shown. A row that is not an object has no cells at all.
package grid

import (
	"errors"
	"fmt"

	"github.com/creachadair/jgrid/ast"
	"github.com/creachadair/mds/mapset"
)

// ErrNotTabular is reported by Project for a value that is not a non-empty
// array whose first element is an object.
var ErrNotTabular = errors.New("value is not tabular")

// A Grid is the tabular projection of an array of records.
type Grid struct {
	Columns []string    // the keys of the first record, in order
	Rows    []ast.Value // the elements of the array, in order
}

// Project constructs the grid projection of v. If v is not tabular, Project
// reports an error wrapping ErrNotTabular.
func Project(v ast.Value) (*Grid, error) {
	arr, ok := v.(ast.Array)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not an array", ErrNotTabular, Kind(v))
	} else if len(arr) == 0 {
		return nil, fmt.Errorf("%w: array is empty", ErrNotTabular)
	}
	first, ok := arr[0].(ast.Object)
	if !ok {
		return nil, fmt.Errorf("%w: first element is %s, not an object", ErrNotTabular, Kind(arr[0]))
	}
	return &Grid{Columns: first.Keys(), Rows: arr}, nil
}

// Len reports the number of rows in g.
func (g *Grid) Len() int { return len(g.Rows) }

// Cell returns the value of the given column in the given row, or nil if
// the row has no such key, the row is not an object, or the row is out of
// range.
func (g *Grid) Cell(row int, col string) ast.Value {
	if row < 0 || row >= len(g.Rows) {
		return nil
	}
	obj, ok := g.Rows[row].(ast.Object)
	if !ok {
		return nil
	}
	if m := obj.Find(col); m != nil {
		return m.Value
	}
	return nil
}

// Text returns the display text of the given cell.
func (g *Grid) Text(row int, col string) string { return RenderCell(g.Cell(row, col)) }

// Record returns the display text of every column in the given row.
func (g *Grid) Record(row int) []string {
	out := make([]string, len(g.Columns))
	for i, col := range g.Columns {
		out[i] = g.Text(row, col)
	}
	return out
}

// ExtraKeys returns the keys that appear in some row but are not columns of
// g, in order of first appearance. These keys are not displayed.
func (g *Grid) ExtraKeys() []string {
	seen := mapset.New(g.Columns...)
	var extra []string
	for _, row := range g.Rows {
		obj, ok := row.(ast.Object)
		if !ok {
			continue
		}
		for _, m := range obj {
			if !seen.Has(m.Key) {
				seen.Add(m.Key)
				extra = append(extra, m.Key)
			}
		}
	}
	return extra
}

const (
	// CheckMark is the display text of a true cell.
	CheckMark = "✓"

	// CrossMark is the display text of a false cell.
	CrossMark = "✗"
)

// RenderCell returns the display text of a cell value. Booleans render as
// CheckMark and CrossMark, null or a missing value (nil) as the empty string,
// strings as their unquoted text, numbers in canonical form, and arrays and
// objects as compact JSON.
func RenderCell(v ast.Value) string {
	switch t := v.(type) {
	case nil:
		return ""
	case ast.Bool:
		if t {
			return CheckMark
		}
		return CrossMark
	case ast.Quoted:
		return t.Unquote()
	default:
		if ast.IsNull(v) {
			return ""
		}
		return v.JSON()
	}
}

// Kind returns a short description of the JSON type of v.
func Kind(v ast.Value) string {
	switch t := v.(type) {
	case nil:
		return "nothing"
	case ast.Bool:
		return "a boolean"
	case ast.Number:
		return "a number"
	case ast.Quoted:
		return "a string"
	case ast.Array:
		return "an array"
	case ast.Object:
		return "an object"
	default:
		if ast.IsNull(t) {
			return "null"
		}
		return fmt.Sprintf("%T", v)
	}
}
