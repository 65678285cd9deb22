// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package tui implements a terminal viewer for JSON documents. The screen
// shows an editable text panel and the grid projection of its value, side
// by side or one at a time. Selecting a grid cell with the mouse or the
// arrow keys highlights the text it came from.
package tui

import (
	"fmt"
	"io"
	"log"
	"os"
	"slices"

	"github.com/atotto/clipboard"
	"github.com/creachadair/jgrid"
	"github.com/creachadair/jgrid/export"
	"github.com/creachadair/jgrid/session"
	"github.com/gdamore/tcell/v2"
)

// Options are settings for an App. A zero value is ready for use.
type Options struct {
	// Names of the chroma styles used to highlight text in each theme.
	// If empty, a default style is used.
	LightStyle, DarkStyle string

	// Settings for exports and for the display of the grid.
	Export export.Options

	// FileName returns the name of the file to write an export to.
	// If nil, the default name of the format is used.
	FileName func(export.Format) string

	// Create opens a file for an export. If nil, os.Create is used.
	Create func(name string) (io.WriteCloser, error)

	// Clipboard writes text to the system clipboard. If nil, the
	// clipboard of the host is used.
	Clipboard func(string) error

	// Logger receives diagnostic messages. If nil, they are discarded.
	// It must not write to the terminal the App is drawn on.
	Logger *log.Logger
}

// An App is a terminal viewer session.
type App struct {
	screen tcell.Screen
	state  session.State
	ed     *editor
	opts   Options
	log    *log.Logger
	pal    map[session.Theme]*palette

	// Set by Draw.
	textRect, gridRect rect
	sepX               int
	hits               []hit
	gridRows           int

	gridTop int
	buttons tcell.ButtonMask
}

// New constructs an App that draws on screen, starting from state st.
// The screen must be initialized before the App is drawn; Run does this.
func New(screen tcell.Screen, st session.State, opts Options) *App {
	if st.Doc == nil {
		st = session.New("", st)
	}
	if opts.FileName == nil {
		opts.FileName = export.Format.DefaultName
	}
	if opts.Create == nil {
		opts.Create = func(name string) (io.WriteCloser, error) { return os.Create(name) }
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &App{
		screen: screen,
		state:  st,
		ed:     newEditor(st.Doc.Text),
		opts:   opts,
		log:    logger,
		pal:    make(map[session.Theme]*palette),
	}
}

// State returns the current session state of a.
func (a *App) State() session.State { return a.state }

// Text returns the current contents of the text panel.
func (a *App) Text() string { return a.ed.String() }

// Run initializes the screen and processes events until the user quits.
// The screen is finalized before Run returns.
func (a *App) Run() error {
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("initialize screen: %w", err)
	}
	defer a.screen.Fini()
	a.screen.EnableMouse()
	a.log.Printf("viewer started: %s, %s view", a.state.Doc.Phase(), a.state.View)

	a.Draw()
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil // screen finalized
		}
		if !a.HandleEvent(ev) {
			a.log.Print("viewer stopped")
			return nil
		}
		a.Draw()
	}
}

func (a *App) palette() *palette {
	p, ok := a.pal[a.state.Theme]
	if !ok {
		name := a.opts.LightStyle
		if a.state.Theme == session.Dark {
			name = a.opts.DarkStyle
		}
		p = newPalette(name, a.state.Theme == session.Dark)
		a.pal[a.state.Theme] = p
	}
	return p
}

// gridFocused reports whether keys go to the grid rather than the text.
func (a *App) gridFocused() bool {
	return a.state.Fullscreen || a.state.Tab == session.GridTab
}

// HandleEvent updates a for ev. It reports false if the user asked to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		a.state = a.state.ClearSelection().WithNotice("")
		a.ed.clearMark()
	case tcell.KeyCtrlF:
		a.format()
	case tcell.KeyCtrlS:
		a.export(export.CSV)
	case tcell.KeyCtrlX:
		a.export(export.XLSX)
	case tcell.KeyCtrlY:
		a.state, _ = a.state.Copy(a.opts.Clipboard)
	case tcell.KeyCtrlT:
		a.state = a.state.ToggleTheme()
	case tcell.KeyCtrlL:
		a.state = a.state.ToggleLineNumbers()
	case tcell.KeyCtrlW:
		a.state = a.state.ToggleView()
	case tcell.KeyCtrlE:
		a.state = a.state.ToggleFullscreen()
	case tcell.KeyCtrlO:
		a.state = a.state.SetLenient(!a.state.Lenient)
		a.ed.clearMark()
		if a.state.Lenient {
			a.state = a.state.WithNotice("Comments and trailing commas allowed")
		} else {
			a.state = a.state.WithNotice("Strict JSON")
		}
	case tcell.KeyTab:
		a.state = a.state.NextTab()
	default:
		if a.gridFocused() {
			a.gridKey(ev)
		} else {
			a.textKey(ev)
		}
	}
	return true
}

func (a *App) textKey(ev *tcell.EventKey) {
	e := a.ed
	switch ev.Key() {
	case tcell.KeyRune:
		e.insert(ev.Rune())
		a.edited()
	case tcell.KeyEnter:
		e.insert('\n')
		a.edited()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if e.backspace() {
			a.edited()
		}
	case tcell.KeyDelete:
		if e.delete() {
			a.edited()
		}
	case tcell.KeyLeft:
		e.left()
	case tcell.KeyRight:
		e.right()
	case tcell.KeyUp:
		e.up(1)
	case tcell.KeyDown:
		e.down(1)
	case tcell.KeyHome:
		e.home()
	case tcell.KeyEnd:
		e.end()
	case tcell.KeyPgUp:
		e.up(max(a.textRect.h-1, 1))
	case tcell.KeyPgDn:
		e.down(max(a.textRect.h-1, 1))
	default:
		return
	}
	e.scrollTo(a.textRect.h)
}

func (a *App) gridKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		a.moveSelection(-1, 0)
	case tcell.KeyDown:
		a.moveSelection(1, 0)
	case tcell.KeyLeft:
		a.moveSelection(0, -1)
	case tcell.KeyRight:
		a.moveSelection(0, 1)
	case tcell.KeyPgUp:
		a.gridTop = max(a.gridTop-max(a.gridRows, 1), 0)
	case tcell.KeyPgDn:
		a.gridTop += max(a.gridRows, 1)
	}
}

// edited updates the session for a change to the text panel.
func (a *App) edited() {
	a.state = a.state.Edit(a.ed.String())
	a.ed.clearMark()
}

// moveSelection moves the selected cell by the given number of rows and
// columns. With no selection, the first cell is selected.
func (a *App) moveSelection(drow, dcol int) {
	g := a.state.Doc.Grid
	if g == nil || len(g.Columns) == 0 {
		return
	}
	row, ci := 0, 0
	if sel := a.state.Selection; sel != nil {
		row = sel.Row + drow
		ci = slices.Index(g.Columns, sel.Column) + dcol
	}
	row = min(max(row, -1), g.Len()-1)
	ci = min(max(ci, 0), len(g.Columns)-1)
	a.selectCell(row, g.Columns[ci])
}

// selectCell selects a grid cell and highlights its span of text.
func (a *App) selectCell(row int, col string) {
	a.state = a.state.Select(row, col)
	a.scrollGridTo(row)
	sel := a.state.Selection
	if sel == nil || !sel.Found {
		return
	}
	canon := a.state.Doc.Canonical
	a.ed.setMark(sel.Span.Runes(canon))
	a.ed.scrollTo(a.textRect.h)
	if !a.state.Doc.IsCanonical() {
		a.state = a.state.WithNotice("Text is not formatted; press ^F to align the highlight")
	}
	a.log.Printf("select row %d column %q at %v", row, col, jgrid.Locate(canon, sel.Span))
}

func (a *App) scrollGridTo(row int) {
	if row < 0 || a.gridRows <= 0 {
		return
	}
	if row < a.gridTop {
		a.gridTop = row
	} else if row >= a.gridTop+a.gridRows {
		a.gridTop = row - a.gridRows + 1
	}
}

func (a *App) format() {
	st, err := a.state.Format()
	a.state = st
	if err != nil {
		return
	}
	a.ed.setText(st.Doc.Text)
	if sel := st.Selection; sel != nil && sel.Found {
		a.ed.setMark(sel.Span.Runes(st.Doc.Canonical))
	}
	a.ed.scrollTo(a.textRect.h)
}

func (a *App) export(f export.Format) {
	if a.state.Doc.Grid == nil {
		a.state, _ = a.state.Export(io.Discard, f, a.opts.Export)
		return
	}
	name := a.opts.FileName(f)
	w, err := a.opts.Create(name)
	if err != nil {
		a.log.Printf("export %s: %v", f, err)
		a.state = a.state.WithNotice(fmt.Sprintf("Export failed: %v", err))
		return
	}
	st, err := a.state.Export(w, f, a.opts.Export)
	if cerr := w.Close(); err == nil && cerr != nil {
		err = cerr
		st = st.WithNotice(fmt.Sprintf("Export failed: %v", err))
	}
	if err != nil {
		a.log.Printf("export %s to %q: %v", f, name, err)
	} else {
		st = st.WithNotice(st.Notice + " to " + name)
		a.log.Printf("exported %s to %q", f, name)
	}
	a.state = st
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	btn := ev.Buttons()
	pressed := btn&tcell.Button1 != 0 && a.buttons&tcell.Button1 == 0
	a.buttons = btn

	switch {
	case btn&tcell.WheelUp != 0:
		a.scroll(x, y, -3)
	case btn&tcell.WheelDown != 0:
		a.scroll(x, y, 3)
	case pressed:
		if h, ok := a.hitAt(x, y); ok {
			a.state = a.state.SelectTab(session.GridTab)
			a.selectCell(h.row, h.col)
		} else if a.textRect.contains(x, y) {
			a.state = a.state.SelectTab(session.TextTab)
			a.ed.cursor = a.textOffset(x, y)
		}
	}
}

func (a *App) scroll(x, y, n int) {
	switch {
	case a.textRect.contains(x, y):
		a.ed.scroll(n)
	case a.gridRect.contains(x, y):
		a.gridTop = max(a.gridTop+n, 0)
	}
}
