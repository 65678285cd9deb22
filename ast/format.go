// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"io"
	"strings"

	"github.com/creachadair/jgrid"
)

// A Formatter carries the settings for pretty-printing values.
// A zero value is ready for use with default settings.
type Formatter struct {
	// Indent is the string used for each level of indentation.
	// If empty, two spaces are used.
	Indent string
}

func (f Formatter) indent() string {
	if f.Indent == "" {
		return "  "
	}
	return f.Indent
}

// Format renders the canonical text of v: arrays and objects are broken
// across lines and indented by two spaces per level, members keep their
// order and are written as "key": value, and empty arrays and objects are
// written as [] and {}. The result has no trailing whitespace and does not
// end with a newline. Format returns "" if v == nil.
func Format(v Value) string { return FormatDepth(v, 0) }

// FormatDepth renders v the way it appears when nested depth levels deep in
// the canonical text of an enclosing value: lines after the first are
// indented to match the enclosing structure.
func FormatDepth(v Value, depth int) string {
	var f Formatter
	return f.FormatDepth(v, depth)
}

// FormatDepth is as the package function, but uses the settings from f.
func (f Formatter) FormatDepth(v Value, depth int) string {
	if v == nil {
		return ""
	}
	var sb strings.Builder
	f.formatValue(&sb, v, strings.Repeat(f.indent(), depth))
	return sb.String()
}

// Format writes the pretty-printed text of v to w using the settings from f.
func (f Formatter) Format(w io.Writer, v Value) error {
	_, err := io.WriteString(w, f.FormatDepth(v, 0))
	return err
}

func (f Formatter) formatValue(sb *strings.Builder, v Value, indent string) {
	switch t := v.(type) {
	case Array:
		if len(t) == 0 {
			sb.WriteString("[]")
			return
		}
		inner := indent + f.indent()
		sb.WriteString("[\n")
		for i, elt := range t {
			if i > 0 {
				sb.WriteString(",\n")
			}
			sb.WriteString(inner)
			f.formatValue(sb, elt, inner)
		}
		sb.WriteString("\n")
		sb.WriteString(indent)
		sb.WriteString("]")
	case Object:
		if len(t) == 0 {
			sb.WriteString("{}")
			return
		}
		inner := indent + f.indent()
		sb.WriteString("{\n")
		for i, m := range t {
			if i > 0 {
				sb.WriteString(",\n")
			}
			sb.WriteString(inner)
			sb.WriteString(jgrid.Quote(m.Key))
			sb.WriteString(": ")
			f.formatValue(sb, m.Value, inner)
		}
		sb.WriteString("\n")
		sb.WriteString(indent)
		sb.WriteString("}")
	default:
		sb.WriteString(jsonOf(v))
	}
}
