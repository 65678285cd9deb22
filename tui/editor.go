// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package tui

import (
	"slices"

	"github.com/creachadair/jgrid"
)

// An editor is a plain-text buffer with a cursor. Offsets are in runes.
type editor struct {
	text   []rune
	cursor int
	top    int // first visible line
	starts []int

	// mark is the highlighted range of the buffer, if any.
	mark    jgrid.Span
	hasMark bool
}

func newEditor(text string) *editor {
	e := new(editor)
	e.setText(text)
	return e
}

func (e *editor) String() string { return string(e.text) }

// setText replaces the contents of e. The cursor is clamped and the mark is
// cleared.
func (e *editor) setText(text string) {
	e.text = []rune(text)
	e.cursor = min(e.cursor, len(e.text))
	e.hasMark = false
	e.index()
}

// index recomputes the offsets of line starts.
func (e *editor) index() {
	e.starts = append(e.starts[:0], 0)
	for i, r := range e.text {
		if r == '\n' {
			e.starts = append(e.starts, i+1)
		}
	}
}

// lines reports the number of lines in the buffer.
func (e *editor) lines() int { return len(e.starts) }

// line returns the text of line i, not including its newline.
func (e *editor) line(i int) []rune {
	if i < 0 || i >= len(e.starts) {
		return nil
	}
	end := len(e.text)
	if i+1 < len(e.starts) {
		end = e.starts[i+1] - 1
	}
	return e.text[e.starts[i]:end]
}

// position reports the line and column of rune offset pos.
func (e *editor) position(pos int) (line, col int) {
	i, ok := slices.BinarySearch(e.starts, pos)
	if !ok {
		i--
	}
	return i, pos - e.starts[i]
}

// offset returns the rune offset of the given line and column, clamped to
// the end of the line.
func (e *editor) offset(line, col int) int {
	line = min(max(line, 0), len(e.starts)-1)
	return e.starts[line] + min(max(col, 0), len(e.line(line)))
}

func (e *editor) insert(r rune) {
	e.text = slices.Insert(e.text, e.cursor, r)
	e.cursor++
	e.index()
}

func (e *editor) backspace() bool {
	if e.cursor == 0 {
		return false
	}
	e.text = slices.Delete(e.text, e.cursor-1, e.cursor)
	e.cursor--
	e.index()
	return true
}

func (e *editor) delete() bool {
	if e.cursor >= len(e.text) {
		return false
	}
	e.text = slices.Delete(e.text, e.cursor, e.cursor+1)
	e.index()
	return true
}

func (e *editor) left()  { e.cursor = max(e.cursor-1, 0) }
func (e *editor) right() { e.cursor = min(e.cursor+1, len(e.text)) }

func (e *editor) up(n int) {
	line, col := e.position(e.cursor)
	e.cursor = e.offset(line-n, col)
}

func (e *editor) down(n int) {
	line, col := e.position(e.cursor)
	e.cursor = e.offset(line+n, col)
}

func (e *editor) home() {
	line, _ := e.position(e.cursor)
	e.cursor = e.starts[line]
}

func (e *editor) end() {
	line, _ := e.position(e.cursor)
	e.cursor = e.offset(line, len(e.line(line)))
}

// setMark highlights span s and moves the cursor to its start.
func (e *editor) setMark(s jgrid.Span) {
	s.Pos = min(max(s.Pos, 0), len(e.text))
	s.End = min(max(s.End, s.Pos), len(e.text))
	e.mark, e.hasMark = s, true
	e.cursor = s.Pos
}

func (e *editor) clearMark() { e.hasMark = false }

func (e *editor) marked(pos int) bool {
	return e.hasMark && pos >= e.mark.Pos && pos < e.mark.End
}

// scrollTo adjusts the first visible line so that the cursor is visible in
// a window of the given height.
func (e *editor) scrollTo(height int) {
	if height <= 0 {
		return
	}
	line, _ := e.position(e.cursor)
	if line < e.top {
		e.top = line
	} else if line >= e.top+height {
		e.top = line - height + 1
	}
	e.top = min(max(e.top, 0), max(e.lines()-1, 0))
}

// scroll moves the first visible line by n, keeping it in range.
func (e *editor) scroll(n int) {
	e.top = min(max(e.top+n, 0), max(e.lines()-1, 0))
}
