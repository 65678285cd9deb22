// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package tui

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"
)

// A palette is the set of display styles for one theme.
type palette struct {
	base   tcell.Style // panel text
	gutter tcell.Style // line numbers
	header tcell.Style // grid column headers
	mark   tcell.Style // highlighted span and selected cell
	status tcell.Style // status bar
	error  tcell.Style // error messages

	syntax *chroma.Style
}

func newPalette(styleName string, dark bool) *palette {
	cs := styles.Get(styleName) // falls back to a default style
	bg := cs.Get(chroma.Background)
	base := tcell.StyleDefault
	if bg.Background.IsSet() {
		base = base.Background(colour(bg.Background))
	}
	if bg.Colour.IsSet() {
		base = base.Foreground(colour(bg.Colour))
	}
	status := tcell.StyleDefault.Background(tcell.ColorSilver).Foreground(tcell.ColorBlack)
	if dark {
		status = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	}
	return &palette{
		base:   base,
		gutter: base.Foreground(tcell.ColorGray),
		header: base.Bold(true).Underline(true),
		mark:   base.Reverse(true),
		status: status,
		error:  status.Foreground(tcell.ColorRed).Bold(true),
		syntax: cs,
	}
}

func colour(c chroma.Colour) tcell.Color {
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}

// colorize returns the display style of each rune of text, as highlighted
// for JSON. If the text cannot be tokenized, every rune has the base style.
func (p *palette) colorize(text []rune) []tcell.Style {
	out := make([]tcell.Style, len(text))
	for i := range out {
		out[i] = p.base
	}
	lexer := lexers.Get("json")
	if lexer == nil {
		return out
	}
	tokens, err := chroma.Tokenise(chroma.Coalesce(lexer), nil, string(text))
	if err != nil {
		return out
	}
	pos := 0
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		st := p.tokenStyle(tok.Type)
		for range tok.Value {
			if pos >= len(out) {
				return out
			}
			out[pos] = st
			pos++
		}
	}
	return out
}

func (p *palette) tokenStyle(tt chroma.TokenType) tcell.Style {
	entry := p.syntax.Get(tt)
	st := p.base
	if entry.Colour.IsSet() {
		st = st.Foreground(colour(entry.Colour))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	return st
}
