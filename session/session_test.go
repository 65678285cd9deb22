// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package session_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/creachadair/jgrid"
	"github.com/creachadair/jgrid/ast"
	"github.com/creachadair/jgrid/export"
	"github.com/creachadair/jgrid/grid"
	"github.com/creachadair/jgrid/session"
	"github.com/google/go-cmp/cmp"
)

func TestDocumentPhase(t *testing.T) {
	tests := []struct {
		input string
		want  session.Phase
	}{
		{"", session.Empty},
		{"  \n\t", session.Empty},
		{"\u00a0", session.Empty},
		{" \ufeff\n", session.Empty},
		{"\u2028", session.Empty},
		{"\u00a0[1]", session.Invalid},
		{`{"a":}`, session.Invalid},
		{`[1`, session.Invalid},
		{`{"a":1}`, session.ProjectionUnavailable},
		{`[]`, session.ProjectionUnavailable},
		{`[1, 2]`, session.ProjectionUnavailable},
		{`[{"a":1}]`, session.ProjectionReady},
		{session.Sample, session.ProjectionReady},
	}
	for _, tc := range tests {
		d := session.NewDocument(tc.input, false)
		if got := d.Phase(); got != tc.want {
			t.Errorf("Phase %#q: got %v, want %v", tc.input, got, tc.want)
		}
		switch tc.want {
		case session.Empty:
			if d.Value != nil || d.Err != nil || d.Grid != nil {
				t.Errorf("Empty %#q: got value %v, error %v, grid %v", tc.input, d.Value, d.Err, d.Grid)
			}
		case session.Invalid:
			if !jgrid.IsParseError(d.Err) {
				t.Errorf("Invalid %#q: got error %v, want *ParseError", tc.input, d.Err)
			}
			if d.Value != nil || d.Grid != nil {
				t.Errorf("Invalid %#q: got value %v, grid %v", tc.input, d.Value, d.Grid)
			}
		case session.ProjectionUnavailable:
			if !errors.Is(d.GridErr, grid.ErrNotTabular) || d.Grid != nil {
				t.Errorf("Unavailable %#q: got grid %v, error %v", tc.input, d.Grid, d.GridErr)
			}
		case session.ProjectionReady:
			if d.Grid == nil || d.GridErr != nil {
				t.Errorf("Ready %#q: got grid %v, error %v", tc.input, d.Grid, d.GridErr)
			}
		}
	}
}

func TestDocument(t *testing.T) {
	d := session.NewDocument(session.Sample, false)
	if !d.IsCanonical() {
		t.Error("Sample document is not canonical")
	}
	if n, ok := d.RowCount(); !ok || n != 3 {
		t.Errorf("RowCount: got (%d, %v), want (3, true)", n, ok)
	}
	want := []string{"id", "name", "email", "age", "city", "active"}
	if diff := cmp.Diff(want, d.Grid.Columns); diff != "" {
		t.Errorf("Columns (-want, +got):\n%s", diff)
	}

	d = session.NewDocument(`{"a": 1}`, false)
	if d.IsCanonical() {
		t.Error("Compact document is reported canonical")
	}
	if n, ok := d.RowCount(); ok {
		t.Errorf("RowCount of object: got (%d, %v), want false", n, ok)
	}

	// Comments are allowed only in lenient documents.
	const commented = "[{\"a\": 1}, // one\n]"
	if d := session.NewDocument(commented, false); d.Phase() != session.Invalid {
		t.Errorf("Strict commented document: got phase %v, want invalid", d.Phase())
	}
	if d := session.NewDocument(commented, true); d.Phase() != session.ProjectionReady {
		t.Errorf("Lenient commented document: got phase %v (%v), want ready", d.Phase(), d.Err)
	}
}

func TestEdit(t *testing.T) {
	s := session.New(session.Sample, session.State{LineNumbers: true})
	s = s.Select(0, "name")
	if s.Selection == nil {
		t.Fatal("Select: no selection")
	}

	// An edit replaces the document and clears the selection, but keeps the
	// display flags.
	old := s.Doc
	s2 := s.Edit(`{"a":}`)
	if s2.Doc == old {
		t.Error("Edit did not replace the document")
	}
	if s2.Selection != nil {
		t.Errorf("Edit kept selection %+v", s2.Selection)
	}
	if !s2.LineNumbers {
		t.Error("Edit lost display flags")
	}
	if s2.Doc.Grid != nil {
		t.Error("Invalid document has a grid")
	}

	// The previous state is unaffected.
	if s.Doc != old || s.Selection == nil {
		t.Error("Edit modified the previous state")
	}
}

func TestSelect(t *testing.T) {
	s := session.New(`[{"id":1,"name":"a"},{"id":2},{"id":1,"name":"b"}]`, session.State{})
	canon := s.Doc.Canonical

	tests := []struct {
		row   int
		col   string
		value ast.Value
		text  string
		found bool
	}{
		{0, "id", ast.Int(1), `"id": 1`, true},
		{1, "id", ast.Int(2), `"id": 2`, true},
		{2, "name", ast.String("b"), `"name": "b"`, true},
		{1, "name", nil, "", false},
		{-1, "name", nil, `"name":`, true},
	}
	for _, tc := range tests {
		got := s.Select(tc.row, tc.col)
		sel := got.Selection
		if sel == nil {
			t.Errorf("Select(%d, %q): no selection", tc.row, tc.col)
			continue
		}
		if sel.Row != tc.row || sel.Column != tc.col || !ast.Equal(sel.Value, tc.value) {
			t.Errorf("Select(%d, %q): got %+v", tc.row, tc.col, sel)
		}
		if sel.Found != tc.found {
			t.Errorf("Select(%d, %q): got found %v, want %v", tc.row, tc.col, sel.Found, tc.found)
		} else if sel.Found {
			if txt := sel.Span.Text(canon); txt != tc.text {
				t.Errorf("Select(%d, %q): span text %q, want %q", tc.row, tc.col, txt, tc.text)
			}
		}
		if sel.IsHeader() != (tc.row < 0) {
			t.Errorf("Select(%d, %q): IsHeader is %v", tc.row, tc.col, sel.IsHeader())
		}
	}

	// A duplicate pair selects the first occurrence.
	first := s.Select(0, "id").Selection
	dup := s.Select(2, "id").Selection
	if first.Span != dup.Span {
		t.Errorf("Duplicate pair: got span %v, want %v", dup.Span, first.Span)
	}

	// Out-of-range selections leave the state unchanged with a notice.
	for _, bad := range []struct {
		row int
		col string
	}{{3, "id"}, {-2, "id"}, {0, "nonesuch"}} {
		got := s.Select(0, "id").Select(bad.row, bad.col)
		if got.Selection == nil || got.Selection.Row != 0 {
			t.Errorf("Select(%d, %q): selection changed to %+v", bad.row, bad.col, got.Selection)
		}
		if got.Notice == "" {
			t.Errorf("Select(%d, %q): no notice", bad.row, bad.col)
		}
	}

	// There is nothing to select without a grid.
	if got := session.New(`{"a":1}`, session.State{}).Select(0, "a"); got.Selection != nil || got.Notice == "" {
		t.Errorf("Select without grid: got %+v, notice %q", got.Selection, got.Notice)
	}
}

func TestFormat(t *testing.T) {
	s := session.New(`[{"id":1,"tags":["x"]}]`, session.State{})
	s = s.Select(0, "tags")

	got, err := s.Format()
	if err != nil {
		t.Fatalf("Format: unexpected error: %v", err)
	}
	want := "[\n  {\n    \"id\": 1,\n    \"tags\": [\n      \"x\"\n    ]\n  }\n]"
	if diff := cmp.Diff(want, got.Doc.Text); diff != "" {
		t.Errorf("Format (-want, +got):\n%s", diff)
	}
	if !got.Doc.IsCanonical() {
		t.Error("Formatted document is not canonical")
	}
	if sel := got.Selection; sel == nil || !sel.Found || sel.Column != "tags" {
		t.Errorf("Format: selection not kept: %+v", sel)
	} else if txt := sel.Span.Text(got.Doc.Text); txt != "\"tags\": [\n      \"x\"\n    ]" {
		t.Errorf("Format: selection span text %q", txt)
	}

	for _, input := range []string{"", `{"a":}`} {
		s := session.New(input, session.State{})
		got, err := s.Format()
		if !errors.Is(err, session.ErrNoDocument) {
			t.Errorf("Format %#q: got %v, want %v", input, err, session.ErrNoDocument)
		}
		if got.Doc.Text != input {
			t.Errorf("Format %#q: text changed to %q", input, got.Doc.Text)
		}
		if got.Notice != "Invalid JSON format" {
			t.Errorf("Format %#q: got notice %q", input, got.Notice)
		}
	}
}

func TestExport(t *testing.T) {
	s := session.New(`[{"name":"Jo,e","age":5}]`, session.State{})
	var buf bytes.Buffer
	got, err := s.Export(&buf, export.CSV, export.Options{})
	if err != nil {
		t.Fatalf("Export: unexpected error: %v", err)
	}
	if diff := cmp.Diff("name,age\n\"Jo,e\",5", buf.String()); diff != "" {
		t.Errorf("Export (-want, +got):\n%s", diff)
	}
	if got.Notice != "Exported 1 row" {
		t.Errorf("Export: got notice %q", got.Notice)
	}

	for _, input := range []string{"", `{"a":}`, `{"a":1}`, `[]`} {
		buf.Reset()
		got, err := session.New(input, session.State{}).Export(&buf, export.CSV, export.Options{})
		if !errors.Is(err, grid.ErrNotTabular) {
			t.Errorf("Export %#q: got %v, want %v", input, err, grid.ErrNotTabular)
		}
		if buf.Len() != 0 {
			t.Errorf("Export %#q: wrote %q", input, buf.String())
		}
		if got.Notice != "No valid array data to export" {
			t.Errorf("Export %#q: got notice %q", input, got.Notice)
		}
	}
}

func TestCopy(t *testing.T) {
	s := session.New(`[1]`, session.State{})
	var copied string
	got, err := s.Copy(func(text string) error { copied = text; return nil })
	if err != nil {
		t.Fatalf("Copy: unexpected error: %v", err)
	}
	if copied != `[1]` {
		t.Errorf("Copy: got %q, want %q", copied, `[1]`)
	}
	if got.Notice == "" {
		t.Error("Copy: no notice")
	}

	errFail := errors.New("no clipboard")
	if _, err := s.Copy(func(string) error { return errFail }); !errors.Is(err, errFail) {
		t.Errorf("Copy: got %v, want %v", err, errFail)
	}
}

func TestToggles(t *testing.T) {
	s := session.New("", session.State{LineNumbers: true})
	if s.View != session.Split || s.Tab != session.TextTab || s.Theme != session.Light {
		t.Fatalf("Initial state: %v %v %v", s.View, s.Tab, s.Theme)
	}

	s = s.ToggleView()
	if s.View != session.Tabs {
		t.Errorf("ToggleView: got %v, want tab", s.View)
	}
	if s = s.ToggleView(); s.View != session.Split {
		t.Errorf("ToggleView: got %v, want split", s.View)
	}
	if s = s.NextTab(); s.Tab != session.GridTab {
		t.Errorf("NextTab: got %v, want grid", s.Tab)
	}
	if s = s.SelectTab(session.TextTab); s.Tab != session.TextTab {
		t.Errorf("SelectTab: got %v, want json", s.Tab)
	}
	if s = s.ToggleTheme(); s.Theme != session.Dark {
		t.Errorf("ToggleTheme: got %v, want dark", s.Theme)
	}
	if s = s.ToggleLineNumbers(); s.LineNumbers {
		t.Error("ToggleLineNumbers: still on")
	}
	if s = s.ToggleFullscreen(); !s.Fullscreen {
		t.Error("ToggleFullscreen: still off")
	}

	const commented = "[{\"a\": 1}, /* c */]"
	s = s.Edit(commented)
	if s.Doc.Phase() != session.Invalid {
		t.Errorf("Strict: got phase %v", s.Doc.Phase())
	}
	if s = s.SetLenient(true); s.Doc.Phase() != session.ProjectionReady || s.Doc.Text != commented {
		t.Errorf("Lenient: got phase %v, text %q", s.Doc.Phase(), s.Doc.Text)
	}
}
