// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/jgrid/grid"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteTable writes the rows of g to w as a boxed text table of display
// text, as rendered by grid.RenderCell, with a caption giving the row count.
func WriteTable(w io.Writer, g *grid.Grid, opts Options) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{Left: tw.On, Right: tw.On, Top: tw.On, Bottom: tw.On},
			Settings: tw.Settings{
				Separators: tw.Separators{BetweenColumns: tw.On},
			},
		}),
	)

	headers := g.Headers(opts.HeaderCase)
	for i, h := range headers {
		headers[i] = Truncate(h, opts.MaxWidth)
	}
	table.Header(headers)

	for row := range g.Len() {
		rec := g.Record(row)
		for i, s := range rec {
			rec[i] = Truncate(s, opts.MaxWidth)
		}
		if err := table.Append(rec); err != nil {
			return fmt.Errorf("row %d: %w", row, err)
		}
	}
	table.Caption(tw.Caption{Text: RowCount(g.Len())})
	return table.Render()
}

// RowCount returns a description of a row count, as in "3 rows".
func RowCount(n int) string {
	if n == 1 {
		return "1 row"
	}
	return fmt.Sprintf("%d rows", n)
}

// Truncate flattens s to a single line and, if width > 0, shortens it to at
// most width display columns, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
