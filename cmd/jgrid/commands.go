// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/creachadair/jgrid"
	"github.com/creachadair/jgrid/export"
	"github.com/creachadair/jgrid/grid"
	"github.com/creachadair/jgrid/session"
	"github.com/creachadair/jgrid/tui"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"
)

type checkCmd struct {
	File string `arg:"" optional:"" help:"Input file (default: stdin)."`
}

func (c *checkCmd) Run(e *env) error {
	st, err := e.load(c.File)
	if err != nil {
		return err
	}
	doc := st.Doc
	switch doc.Phase() {
	case session.Empty:
		fmt.Fprintln(e.stdout, "empty document")
	case session.ProjectionReady:
		fmt.Fprintf(e.stdout, "valid JSON: %s, %d columns\n",
			export.RowCount(doc.Grid.Len()), len(doc.Grid.Columns))
		if extra := doc.Grid.ExtraKeys(); len(extra) != 0 {
			fmt.Fprintf(e.stdout, "keys not shown as columns: %q\n", extra)
		}
	default:
		fmt.Fprintf(e.stdout, "valid JSON, no grid: %v\n", doc.GridErr)
	}
	return nil
}

type formatCmd struct {
	File   string `arg:"" optional:"" help:"Input file (default: stdin)."`
	Output string `short:"o" help:"Output file (default: stdout)." placeholder:"FILE"`
}

func (c *formatCmd) Run(e *env) error {
	st, err := e.load(c.File)
	if err != nil {
		return err
	}
	if st.Doc.Value == nil {
		return nil
	}
	text := st.Doc.Canonical + "\n"
	if c.Output == "" || c.Output == "-" {
		_, err := io.WriteString(e.stdout, text)
		return err
	}
	if err := os.WriteFile(c.Output, []byte(text), 0644); err != nil {
		return newError(ErrorTypeOutput, fmt.Sprintf("failed to write %q", c.Output), err)
	}
	return nil
}

type gridCmd struct {
	File  string `arg:"" optional:"" help:"Input file (default: stdin)."`
	Width int    `short:"w" default:"-1" help:"Maximum display width of a cell; 0 means unlimited (default: from configuration, or to fit the terminal)."`
	Case  string `name:"case" help:"How to show column keys: raw, snake, kebab, camel, lower_camel, or screaming." placeholder:"CASE"`
}

func (c *gridCmd) Run(e *env) error {
	st, err := e.loadGrid(c.File)
	if err != nil {
		return err
	}
	opts := e.cfg.ExportOptions()
	if c.Case != "" {
		hc, err := grid.ParseHeaderCase(c.Case)
		if err != nil {
			return newError(ErrorTypeInput, err.Error(), err)
		}
		opts.HeaderCase = hc
	}
	switch {
	case c.Width >= 0:
		opts.MaxWidth = c.Width
	case opts.MaxWidth == 0:
		opts.MaxWidth = fitWidth(e.stdout, len(st.Doc.Grid.Columns))
	}
	e.log.Printf("table cell width %d", opts.MaxWidth)
	if _, err := st.Export(e.stdout, export.Table, opts); err != nil {
		return newError(ErrorTypeOutput, "failed to write table", err)
	}
	return nil
}

// fitWidth returns a cell width that fits ncols columns in the width of the
// terminal w is attached to, or 0 if w is not a terminal.
func fitWidth(w io.Writer, ncols int) int {
	f, ok := w.(*os.File)
	if !ok || ncols == 0 || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	// Each column has a border and a space on either side.
	return max((width-1)/ncols-3, 4)
}

type locateCmd struct {
	File   string `arg:"" optional:"" help:"Input file (default: stdin)."`
	Column string `short:"c" required:"" help:"Column key of the cell."`
	Row    int    `short:"r" default:"0" help:"Row index of the cell, from 0."`
	Header bool   `help:"Locate the column header rather than a cell."`
}

func (c *locateCmd) Run(e *env) error {
	st, err := e.loadGrid(c.File)
	if err != nil {
		return err
	}
	row := c.Row
	if c.Header {
		row = -1
	}
	st = st.Select(row, c.Column)
	sel := st.Selection
	if sel == nil {
		return newError(ErrorTypeLocate, st.Notice, ErrNotFound)
	} else if !sel.Found {
		return newError(ErrorTypeLocate,
			fmt.Sprintf("row %d, column %q does not appear in the text", row, c.Column), ErrNotFound)
	}
	canon := st.Doc.Canonical
	loc := jgrid.Locate(canon, sel.Span)
	fmt.Fprintf(e.stdout, "%s (bytes %s)\n%s\n", loc, sel.Span, sel.Span.Text(canon))
	if !st.Doc.IsCanonical() {
		fmt.Fprintln(e.stderr, "note: positions refer to the formatted text; see jgrid format")
	}
	return nil
}

type exportCmd struct {
	File   string `arg:"" optional:"" help:"Input file (default: stdin)."`
	Format string `short:"f" default:"csv" enum:"csv,xlsx,table" help:"Export format: csv, xlsx, or table."`
	Output string `short:"o" help:"Output file, or - for stdout (default: from configuration)." placeholder:"FILE"`
}

func (c *exportCmd) Run(e *env) error {
	st, err := e.loadGrid(c.File)
	if err != nil {
		return err
	}
	f, err := export.ParseFormat(c.Format)
	if err != nil {
		return newError(ErrorTypeInput, err.Error(), err)
	}
	name := c.Output
	if name == "" {
		name = e.cfg.FileName(f)
	}

	var w io.Writer = e.stdout
	var out *os.File
	if name == "" || name == "-" {
		name = "stdout"
	} else {
		out, err = os.Create(name)
		if err != nil {
			return newError(ErrorTypeOutput, fmt.Sprintf("failed to create %q", name), err)
		}
		w = out
	}
	st, err = st.Export(w, f, e.cfg.ExportOptions())
	if out != nil {
		if cerr := out.Close(); err == nil && cerr != nil {
			return newError(ErrorTypeOutput, fmt.Sprintf("failed to write %q", name), cerr)
		}
	}
	if err != nil {
		return newError(ErrorTypeOutput, st.Notice, err)
	}
	fmt.Fprintf(e.stderr, "%s to %s\n", st.Notice, name)
	return nil
}

type viewCmd struct {
	File string `arg:"" optional:"" help:"Input file (default: stdin, or a sample document)."`
}

func (c *viewCmd) Run(e *env) error {
	text := session.Sample
	if c.File != "" || !isTerminal(e.stdin) {
		var err error
		text, err = e.readInput(c.File)
		if err != nil {
			return err
		}
	}

	// The viewer owns the terminal, so diagnostics go to a file or nowhere.
	logger := e.log
	logger.SetOutput(io.Discard)
	if e.logFile != "" {
		f, err := os.OpenFile(e.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return newError(ErrorTypeViewer, "cannot open log file", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return newError(ErrorTypeViewer, "cannot open terminal", err)
	}
	app := tui.New(screen, e.newSession(text), tui.Options{
		LightStyle: e.cfg.Viewer.LightStyle,
		DarkStyle:  e.cfg.Viewer.DarkStyle,
		Export:     e.cfg.ExportOptions(),
		FileName:   e.cfg.FileName,
		Logger:     logger,
	})
	if err := app.Run(); err != nil {
		return newError(ErrorTypeViewer, "terminal failed", err)
	}
	return nil
}

type versionCmd struct{}

func (versionCmd) Run(e *env) error {
	fmt.Fprintf(e.stdout, "jgrid version %s\n", Version)
	return nil
}
