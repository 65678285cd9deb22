// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package tui

import (
	"testing"

	"github.com/creachadair/jgrid"
	"github.com/google/go-cmp/cmp"
)

func TestEditorLines(t *testing.T) {
	e := newEditor("ab\n\ncdé\n")
	if got, want := e.lines(), 4; got != want {
		t.Errorf("lines: got %d, want %d", got, want)
	}
	var got []string
	for i := range e.lines() {
		got = append(got, string(e.line(i)))
	}
	if diff := cmp.Diff([]string{"ab", "", "cdé", ""}, got); diff != "" {
		t.Errorf("Lines (-want, +got):\n%s", diff)
	}

	tests := []struct {
		pos, line, col int
	}{
		{0, 0, 0}, {2, 0, 2}, {3, 1, 0}, {4, 2, 0}, {6, 2, 2}, {7, 2, 3}, {8, 3, 0},
	}
	for _, tc := range tests {
		line, col := e.position(tc.pos)
		if line != tc.line || col != tc.col {
			t.Errorf("position(%d): got %d:%d, want %d:%d", tc.pos, line, col, tc.line, tc.col)
		}
		if got := e.offset(tc.line, tc.col); got != tc.pos {
			t.Errorf("offset(%d, %d): got %d, want %d", tc.line, tc.col, got, tc.pos)
		}
	}

	// Out-of-range positions are clamped.
	if got := e.offset(0, 10); got != 2 {
		t.Errorf("offset(0, 10): got %d, want 2", got)
	}
	if got := e.offset(9, 0); got != 8 {
		t.Errorf("offset(9, 0): got %d, want 8", got)
	}
}

func TestEditorEdit(t *testing.T) {
	e := newEditor("{}")
	e.right()
	for _, r := range `"a":1` {
		e.insert(r)
	}
	if got, want := e.String(), `{"a":1}`; got != want {
		t.Errorf("Insert: got %q, want %q", got, want)
	}
	e.insert('\n')
	if got := e.lines(); got != 2 {
		t.Errorf("Insert newline: got %d lines, want 2", got)
	}
	if !e.backspace() {
		t.Error("Backspace reported no change")
	}
	e.home()
	if !e.delete() {
		t.Error("Delete reported no change")
	}
	if got, want := e.String(), `"a":1}`; got != want {
		t.Errorf("Delete: got %q, want %q", got, want)
	}
	e.end()
	if e.delete() {
		t.Error("Delete at end reported a change")
	}
	e.cursor = 0
	if e.backspace() {
		t.Error("Backspace at start reported a change")
	}
}

func TestEditorMove(t *testing.T) {
	e := newEditor("abcdef\nxy\nlmnop")
	e.cursor = 4 // "e"
	e.down(1)
	if got := e.cursor; got != 9 { // end of "xy"
		t.Errorf("Down: got %d, want 9", got)
	}
	e.down(1)
	if got := e.cursor; got != 12 { // "n"
		t.Errorf("Down: got %d, want 12", got)
	}
	e.up(5)
	if got := e.cursor; got != 2 {
		t.Errorf("Up: got %d, want 2", got)
	}
	e.left()
	e.left()
	e.left()
	if got := e.cursor; got != 0 {
		t.Errorf("Left: got %d, want 0", got)
	}
}

func TestEditorMark(t *testing.T) {
	e := newEditor("[1, 2]")
	e.setMark(jgrid.Span{Pos: 4, End: 10})
	if diff := cmp.Diff(jgrid.Span{Pos: 4, End: 6}, e.mark); diff != "" {
		t.Errorf("Mark (-want, +got):\n%s", diff)
	}
	if e.cursor != 4 {
		t.Errorf("Cursor: got %d, want 4", e.cursor)
	}
	if e.marked(3) || !e.marked(4) || !e.marked(5) || e.marked(6) {
		t.Error("Marked positions are wrong")
	}
	e.setText("[]")
	if e.hasMark {
		t.Error("Mark survived a new text")
	}
}

func TestEditorScroll(t *testing.T) {
	e := newEditor("0\n1\n2\n3\n4\n5\n6\n7\n8\n9")
	e.cursor = e.offset(7, 0)
	e.scrollTo(3)
	if e.top != 5 {
		t.Errorf("scrollTo: got top %d, want 5", e.top)
	}
	e.cursor = 0
	e.scrollTo(3)
	if e.top != 0 {
		t.Errorf("scrollTo: got top %d, want 0", e.top)
	}
	e.scroll(100)
	if e.top != 9 {
		t.Errorf("scroll: got top %d, want 9", e.top)
	}
	e.scroll(-100)
	if e.top != 0 {
		t.Errorf("scroll: got top %d, want 0", e.top)
	}
}
