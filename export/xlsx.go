// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package export

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/creachadair/jgrid/ast"
	"github.com/creachadair/jgrid/grid"
	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes the rows of g to w as a workbook with a single sheet.
// The first row holds the column keys in bold. Numbers and booleans are
// stored as typed cells, arrays and objects as their compact JSON text, and
// null or missing cells are left empty.
func WriteXLSX(w io.Writer, g *grid.Grid, opts Options) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	sheet := opts.sheet()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	header := make([]any, len(g.Columns))
	for i, col := range g.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if len(g.Columns) != 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("create style: %w", err)
		}
		last, _ := excelize.CoordinatesToCellName(len(g.Columns), 1)
		if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
			return fmt.Errorf("style header: %w", err)
		}
	}

	for row := range g.Len() {
		for i, col := range g.Columns {
			val, ok := cellValue(g.Cell(row, col))
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(i+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}
	return f.Write(w)
}

// cellValue returns the workbook value of v, or false if the cell should be
// left empty.
func cellValue(v ast.Value) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case ast.Bool:
		return bool(t), true
	case ast.Number:
		if z, err := strconv.ParseInt(t.Text(), 10, 64); err == nil {
			return z, true
		}
		if f := t.Float64(); !math.IsInf(f, 0) && !math.IsNaN(f) {
			return f, true
		}
		return t.Text(), true
	case ast.Quoted:
		return t.Unquote(), true
	default:
		if ast.IsNull(v) {
			return nil, false
		}
		return v.JSON(), true
	}
}
