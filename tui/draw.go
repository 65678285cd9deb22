// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/jgrid/export"
	"github.com/creachadair/jgrid/session"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// A rect is a region of the screen.
type rect struct{ x, y, w, h int }

func (r rect) empty() bool { return r.w <= 0 || r.h <= 0 }

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// A hit is a clickable grid cell or column header on the screen.
type hit struct {
	x0, x1, y int
	row       int // -1 for a header
	col       string
}

// Separator drawn between grid columns.
const colSep = " │ "

// layout assigns screen regions to the panels for a screen of w×h cells.
// Row 0 is the title bar and the last row is the status bar.
func (a *App) layout(w, h int) {
	body := rect{0, 1, w, h - 2}
	a.textRect, a.gridRect, a.sepX = rect{}, rect{}, -1
	switch {
	case a.state.Fullscreen:
		a.gridRect = body
	case a.state.View == session.Tabs:
		if a.state.Tab == session.GridTab {
			a.gridRect = body
		} else {
			a.textRect = body
		}
	default:
		half := w / 2
		a.textRect = rect{0, 1, half, h - 2}
		a.sepX = half
		a.gridRect = rect{half + 1, 1, w - half - 1, h - 2}
	}
}

// put draws s at (x, y), stopping before column limit. It returns the
// column following the last cell drawn.
func (a *App) put(x, y, limit int, s string, st tcell.Style) int {
	for _, ch := range s {
		cw := runewidth.RuneWidth(ch)
		if cw == 0 {
			continue
		}
		if x+cw > limit {
			break
		}
		a.screen.SetContent(x, y, ch, nil, st)
		x += cw
	}
	return x
}

// fill draws blanks from x up to limit.
func (a *App) fill(x, y, limit int, st tcell.Style) {
	for ; x < limit; x++ {
		a.screen.SetContent(x, y, ' ', nil, st)
	}
}

// Draw renders the current state to the screen.
func (a *App) Draw() {
	p := a.palette()
	w, h := a.screen.Size()
	a.screen.SetStyle(p.base)
	a.screen.Fill(' ', p.base)
	a.screen.HideCursor()
	a.hits = a.hits[:0]
	if w <= 0 || h < 3 {
		a.screen.Show()
		return
	}
	a.layout(w, h)
	a.drawTitle(w, p)
	a.drawStatus(w, h-1, p)
	if !a.textRect.empty() {
		a.drawText(a.textRect, p)
	}
	if a.sepX >= 0 {
		for y := 1; y < h-1; y++ {
			a.screen.SetContent(a.sepX, y, '│', nil, p.gutter)
		}
	}
	if !a.gridRect.empty() {
		a.drawGrid(a.gridRect, p)
	}
	a.screen.Show()
}

func (a *App) drawTitle(w int, p *palette) {
	a.fill(0, 0, w, p.status)
	x := a.put(0, 0, w, " jgrid ", p.status.Bold(true))
	if a.state.View == session.Tabs && !a.state.Fullscreen {
		for _, t := range []session.Tab{session.TextTab, session.GridTab} {
			label := " " + strings.ToUpper(t.String()) + " "
			st := p.status
			if t == a.state.Tab {
				st = st.Reverse(true)
			}
			x = a.put(x+1, 0, w, label, st)
		}
	}

	var right []string
	if n, ok := a.state.Doc.RowCount(); ok {
		right = append(right, export.RowCount(n))
	}
	if a.state.Lenient {
		right = append(right, "lenient")
	}
	right = append(right, a.state.View.String(), a.state.Theme.String())
	s := strings.Join(right, " │ ") + " "
	a.put(max(x+1, w-runewidth.StringWidth(s)), 0, w, s, p.status)
}

func (a *App) drawStatus(w, y int, p *palette) {
	a.fill(0, y, w, p.status)
	switch {
	case a.state.Notice != "":
		a.put(1, y, w, a.state.Notice, p.status)
	case a.state.Doc.Err != nil:
		a.put(1, y, w, "Error: "+a.state.Doc.Err.Error(), p.error)
	default:
		a.put(1, y, w, helpText, p.status)
	}
}

const helpText = "^F format  ^S csv  ^X xlsx  ^Y copy  Tab focus  ^W view  ^E full  ^T theme  ^L lines  ^O lenient  ^Q quit"

func (a *App) gutterWidth() int {
	if !a.state.LineNumbers {
		return 0
	}
	return len(strconv.Itoa(a.ed.lines())) + 1
}

func (a *App) drawText(r rect, p *palette) {
	e := a.ed
	gw := a.gutterWidth()
	styles := p.colorize(e.text)
	limit := r.x + r.w
	focused := !a.gridFocused()

	for row := 0; row < r.h; row++ {
		ln := e.top + row
		if ln >= e.lines() {
			break
		}
		y := r.y + row
		if gw > 0 {
			a.put(r.x, y, limit, fmt.Sprintf("%*d ", gw-1, ln+1), p.gutter)
		}
		x := r.x + gw
		start := e.starts[ln]
		line := e.line(ln)
		for i, ch := range line {
			pos := start + i
			if focused && pos == e.cursor {
				a.screen.ShowCursor(x, y)
			}
			st := styles[pos]
			if e.marked(pos) {
				st = p.mark
			}
			cw := runewidth.RuneWidth(ch)
			if ch == '\t' {
				ch, cw = ' ', 1
			}
			if cw == 0 {
				continue
			}
			if x+cw > limit {
				break
			}
			a.screen.SetContent(x, y, ch, nil, st)
			x += cw
		}
		end := start + len(line)
		if x < limit {
			if e.marked(end) {
				a.screen.SetContent(x, y, ' ', nil, p.mark)
			}
			if focused && e.cursor == end {
				a.screen.ShowCursor(x, y)
			}
		}
	}
}

func (a *App) drawGrid(r rect, p *palette) {
	g := a.state.Doc.Grid
	limit := r.x + r.w
	if g == nil {
		mid := r.y + r.h/2
		for i, s := range []string{session.PlaceholderTitle, session.PlaceholderHint} {
			x := r.x + max((r.w-runewidth.StringWidth(s))/2, 0)
			st := p.gutter
			if i == 0 {
				st = p.base.Bold(true)
			}
			a.put(x, mid-1+2*i, limit, s, st)
		}
		return
	}

	headers := g.Headers(a.opts.Export.HeaderCase)
	cells := make([][]string, g.Len())
	widths := make([]int, len(g.Columns))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for row := range cells {
		cells[row] = make([]string, len(g.Columns))
		for i, col := range g.Columns {
			s := export.Truncate(g.Text(row, col), a.opts.Export.MaxWidth)
			cells[row][i] = s
			widths[i] = max(widths[i], runewidth.StringWidth(s))
		}
	}

	sel := a.state.Selection
	isSelected := func(row int, col string) bool {
		return sel != nil && sel.Row == row && sel.Column == col
	}
	drawRow := func(y, row int, texts []string, base tcell.Style) {
		x := r.x
		for i, col := range g.Columns {
			if x >= limit {
				break
			}
			st := base
			if isSelected(row, col) {
				st = p.mark
			}
			end := min(x+widths[i], limit)
			a.put(x, y, end, texts[i], st)
			a.fill(x+runewidth.StringWidth(texts[i]), y, end, st)
			a.hits = append(a.hits, hit{x0: x, x1: end, y: y, row: row, col: col})
			x = a.put(end, y, limit, colSep, p.gutter)
		}
	}

	drawRow(r.y, -1, headers, p.header)
	if r.h > 1 {
		a.put(r.x, r.y+1, limit, strings.Repeat("─", r.w), p.gutter)
	}
	a.gridRows = max(r.h-2, 0)
	a.gridTop = min(a.gridTop, max(g.Len()-1, 0))
	for i := 0; i < a.gridRows; i++ {
		row := a.gridTop + i
		if row >= g.Len() {
			break
		}
		drawRow(r.y+2+i, row, cells[row], p.base)
	}
}

// hitAt returns the grid cell or header drawn at (x, y), if any.
func (a *App) hitAt(x, y int) (hit, bool) {
	for _, h := range a.hits {
		if y == h.y && x >= h.x0 && x < h.x1 {
			return h, true
		}
	}
	return hit{}, false
}

// textOffset returns the buffer offset drawn nearest to (x, y) in the text
// panel.
func (a *App) textOffset(x, y int) int {
	e := a.ed
	ln := e.top + (y - a.textRect.y)
	if ln >= e.lines() {
		return len(e.text)
	}
	want := x - a.textRect.x - a.gutterWidth()
	col, at := 0, 0
	for _, ch := range e.line(ln) {
		cw := max(runewidth.RuneWidth(ch), 1)
		if at+cw > want {
			break
		}
		at += cw
		col++
	}
	return e.offset(ln, col)
}
