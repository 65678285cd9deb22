// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jgrid

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// Len reports the length of s in bytes.
func (s Span) Len() int { return s.End - s.Pos }

func (s Span) String() string { return fmt.Sprintf("%d-%d", s.Pos, s.End) }

// Runes converts s, a span of byte offsets into text, into the corresponding
// span of rune offsets. Text surfaces that count characters rather than
// bytes should use the converted span. Offsets beyond the end of text are
// clamped.
func (s Span) Runes(text string) Span {
	pos := min(max(s.Pos, 0), len(text))
	end := min(max(s.End, pos), len(text))
	p := utf8.RuneCountInString(text[:pos])
	return Span{Pos: p, End: p + utf8.RuneCountInString(text[pos:end])}
}

// Text returns the substring of text covered by s, or "" if s does not lie
// within text.
func (s Span) Text(text string) string {
	if s.Pos < 0 || s.End > len(text) || s.Pos > s.End {
		return ""
	}
	return text[s.Pos:s.End]
}

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Location describes the complete location of a range of source text,
// including line and column offsets.
type Location struct {
	Span
	First, Last LineCol
}

func (loc Location) String() string {
	if loc.First.Line == loc.Last.Line {
		return fmt.Sprintf("%s-%d", loc.First, loc.Last.Column)
	}
	return fmt.Sprintf("%s-%s", loc.First, loc.Last)
}

// Locate returns the complete location of span s within text.
func Locate(text string, s Span) Location {
	return Location{Span: s, First: lineCol(text, s.Pos), Last: lineCol(text, s.End)}
}

func lineCol(text string, pos int) LineCol {
	pos = min(max(pos, 0), len(text))
	head := text[:pos]
	line := strings.Count(head, "\n")
	col := pos
	if i := strings.LastIndexByte(head, '\n'); i >= 0 {
		col = pos - i - 1
	}
	return LineCol{Line: line + 1, Column: col}
}
