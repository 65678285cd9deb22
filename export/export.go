// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package export writes the rows of a grid projection to CSV, XLSX, and
// plain-text table formats.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/jgrid/grid"
)

// A Format names an export file format.
type Format string

// The supported export formats.
const (
	CSV   Format = "csv"
	XLSX  Format = "xlsx"
	Table Format = "table"
)

// Formats lists the supported export formats.
var Formats = []Format{CSV, XLSX, Table}

// ParseFormat returns the Format named by s, ignoring case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case CSV, XLSX, Table:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// DefaultName returns the default file name for an export in format f.
// A table has no default file name.
func (f Format) DefaultName() string {
	switch f {
	case CSV:
		return "data.csv"
	case XLSX:
		return "data.xlsx"
	}
	return ""
}

// Options are settings for an export. A zero value is ready for use and
// selects the defaults.
type Options struct {
	// Sheet is the name of the worksheet in an XLSX export.
	// If empty, DefaultSheet is used.
	Sheet string

	// MaxWidth, if positive, limits the display width of each cell in a table.
	MaxWidth int

	// HeaderCase selects how column keys are shown in a table.
	HeaderCase grid.HeaderCase
}

// DefaultSheet is the worksheet name used when Options.Sheet is empty.
const DefaultSheet = "data"

func (o Options) sheet() string {
	if o.Sheet == "" {
		return DefaultSheet
	}
	return o.Sheet
}

// Write writes the rows of g to w in format f.
func Write(w io.Writer, f Format, g *grid.Grid, opts Options) error {
	switch f {
	case CSV:
		return WriteCSV(w, g)
	case XLSX:
		return WriteXLSX(w, g, opts)
	case Table:
		return WriteTable(w, g, opts)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}
