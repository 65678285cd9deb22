// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package session holds the state of a viewing session: the current
// document, the selected cell, and the display flags of the viewer.
//
// A State is a value. Each event handler takes a State and returns a new one;
// nothing is shared between the old and new states except the immutable
// documents they refer to. Every edit synchronously parses the new text and
// projects it, so a State never shows a grid for text other than its own.
package session

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/creachadair/jgrid"
	"github.com/creachadair/jgrid/ast"
	"github.com/creachadair/jgrid/export"
	"github.com/creachadair/jgrid/grid"
)

// ErrNoDocument is reported by an action that needs a valid value when the
// current document has none.
var ErrNoDocument = errors.New("no valid document")

// A View is the layout of the text and grid panels.
type View int

const (
	Split View = iota // text and grid side by side
	Tabs              // one panel at a time, selected by Tab
)

func (v View) String() string {
	if v == Tabs {
		return "tab"
	}
	return "split"
}

// A Tab selects the panel shown in the Tabs view.
type Tab int

const (
	TextTab Tab = iota
	GridTab
)

func (t Tab) String() string {
	if t == GridTab {
		return "grid"
	}
	return "json"
}

// A Theme is a color scheme of the viewer.
type Theme int

const (
	Light Theme = iota
	Dark
)

func (t Theme) String() string {
	if t == Dark {
		return "dark"
	}
	return "light"
}

// A Selection records the most recently selected grid cell.
type Selection struct {
	Row    int       // row index, or -1 for a column header (see Select)
	Column string    // column key
	Value  ast.Value // cell value; nil for a header or missing cell

	Span  jgrid.Span // location in the canonical text, if Found
	Found bool
}

// IsHeader reports whether s selects a column header.
func (s *Selection) IsHeader() bool { return s.Row < 0 }

// State is the complete state of a session.
type State struct {
	Doc       *Document
	Selection *Selection // nil if no cell is selected

	View        View
	Tab         Tab
	Theme       Theme
	LineNumbers bool
	Fullscreen  bool // grid panel fills the screen
	Lenient     bool // parse with comments and trailing commas allowed

	// Notice is a message for the user about the last action, or "".
	Notice string
}

// New returns the initial state of a session editing text. The display
// flags are taken from base.
func New(text string, base State) State {
	base.Doc = NewDocument(text, base.Lenient)
	base.Selection = nil
	base.Notice = ""
	return base
}

// Edit returns a state for the new text. The selection is cleared.
func (s State) Edit(text string) State {
	s.Doc = NewDocument(text, s.Lenient)
	s.Selection = nil
	s.Notice = ""
	return s
}

// SetLenient returns a state that parses with or without comments allowed,
// reparsing the current text.
func (s State) SetLenient(lenient bool) State {
	s.Lenient = lenient
	return s.Edit(s.text())
}

func (s State) text() string {
	if s.Doc == nil {
		return ""
	}
	return s.Doc.Text
}

// Select returns a state with the given grid cell selected, and its span in
// the canonical text located. A row of -1 selects the header of column col,
// which is located by key alone: the span is the first `"col":` in the text,
// not a `"col": "col"` pair, so a header always jumps to the first member
// with that key. If there is no grid, or row or col are out
// of range, the selection is unchanged and a notice is set.
func (s State) Select(row int, col string) State {
	g := s.grid()
	if g == nil {
		s.Notice = "No grid to select from"
		return s
	}
	if row < -1 || row >= g.Len() || !slices.Contains(g.Columns, col) {
		s.Notice = fmt.Sprintf("No cell at row %d, column %q", row, col)
		return s
	}
	sel := &Selection{Row: row, Column: col}
	if row < 0 {
		sel.Span, sel.Found = grid.LocateKey(s.Doc.Canonical, col)
	} else {
		sel.Value = g.Cell(row, col)
		sel.Span, sel.Found = grid.Locate(s.Doc.Canonical, col, sel.Value)
	}
	s.Selection = sel
	s.Notice = ""
	return s
}

// ClearSelection returns a state with no selected cell.
func (s State) ClearSelection() State { s.Selection = nil; return s }

// Format returns a state whose text is replaced by its canonical text.
// If there is no valid value, the state is unchanged, a notice is set, and
// Format reports ErrNoDocument.
func (s State) Format() (State, error) {
	if s.Doc == nil || s.Doc.Value == nil {
		s.Notice = "Invalid JSON format"
		return s, ErrNoDocument
	}
	sel := s.Selection
	s = s.Edit(s.Doc.Canonical)
	if sel != nil {
		s = s.Select(sel.Row, sel.Column)
	}
	return s, nil
}

// Export writes the grid to w in format f. If there is no grid, nothing is
// written, a notice is set, and Export reports an error wrapping
// grid.ErrNotTabular.
func (s State) Export(w io.Writer, f export.Format, opts export.Options) (State, error) {
	g := s.grid()
	if g == nil {
		s.Notice = "No valid array data to export"
		if s.Doc != nil && s.Doc.GridErr != nil {
			return s, s.Doc.GridErr
		}
		return s, fmt.Errorf("%w: no value", grid.ErrNotTabular)
	}
	if err := export.Write(w, f, g, opts); err != nil {
		s.Notice = fmt.Sprintf("Export failed: %v", err)
		return s, err
	}
	s.Notice = fmt.Sprintf("Exported %s", export.RowCount(g.Len()))
	return s, nil
}

// Copy passes the current text to write, as for a clipboard.
func (s State) Copy(write func(string) error) (State, error) {
	if err := write(s.text()); err != nil {
		s.Notice = fmt.Sprintf("Copy failed: %v", err)
		return s, err
	}
	s.Notice = "JSON copied to clipboard!"
	return s, nil
}

// ToggleView returns a state with the other view layout.
func (s State) ToggleView() State {
	if s.View == Split {
		s.View = Tabs
	} else {
		s.View = Split
	}
	return s
}

// SelectTab returns a state with tab t active.
func (s State) SelectTab(t Tab) State { s.Tab = t; return s }

// NextTab returns a state with the other tab active.
func (s State) NextTab() State {
	if s.Tab == TextTab {
		return s.SelectTab(GridTab)
	}
	return s.SelectTab(TextTab)
}

// ToggleTheme returns a state with the other theme.
func (s State) ToggleTheme() State {
	if s.Theme == Light {
		s.Theme = Dark
	} else {
		s.Theme = Light
	}
	return s
}

// ToggleLineNumbers returns a state with line numbers shown or hidden.
func (s State) ToggleLineNumbers() State { s.LineNumbers = !s.LineNumbers; return s }

// ToggleFullscreen returns a state with the grid panel filling the screen,
// or not.
func (s State) ToggleFullscreen() State { s.Fullscreen = !s.Fullscreen; return s }

// WithNotice returns a state with the given notice.
func (s State) WithNotice(msg string) State { s.Notice = msg; return s }

func (s State) grid() *grid.Grid {
	if s.Doc == nil {
		return nil
	}
	return s.Doc.Grid
}
