// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package export

import (
	"io"
	"strings"

	"github.com/creachadair/jgrid/ast"
	"github.com/creachadair/jgrid/grid"
)

// WriteCSV writes the rows of g to w as comma-separated text.
//
// The first line holds the column keys. Each following line holds the cells
// of one row, in column order. A string cell is wrapped in double quotes; any
// other cell is written as its literal text (see CSVField). Lines are joined
// by "\n", and there is no final newline.
//
// No escaping is done: a key or string containing a quote, comma, or
// newline is written as-is, and the result may not read back as the same
// table.
func WriteCSV(w io.Writer, g *grid.Grid) error {
	lines := make([]string, 0, g.Len()+1)
	lines = append(lines, strings.Join(g.Columns, ","))
	for row := range g.Len() {
		fields := make([]string, len(g.Columns))
		for i, col := range g.Columns {
			fields[i] = CSVField(g.Cell(row, col))
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

// CSVField returns the CSV text of a cell value: a string in double quotes,
// null or a missing value (nil) as the empty string, a boolean as true or
// false, a number in canonical form, and an array or object as compact JSON.
func CSVField(v ast.Value) string {
	switch t := v.(type) {
	case nil:
		return ""
	case ast.Quoted:
		return `"` + t.Unquote() + `"`
	default:
		if ast.IsNull(v) {
			return ""
		}
		return v.JSON()
	}
}
