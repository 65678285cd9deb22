// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package grid

import (
	"fmt"
	"slices"

	"github.com/iancoleman/strcase"
)

// A HeaderCase selects how column keys are displayed in a header row.
// Keys are always located and exported by their original text.
type HeaderCase string

// The supported header cases.
const (
	Raw        HeaderCase = "raw"
	Snake      HeaderCase = "snake"
	Kebab      HeaderCase = "kebab"
	Camel      HeaderCase = "camel"
	LowerCamel HeaderCase = "lower_camel"
	Screaming  HeaderCase = "screaming"
)

// HeaderCases lists the valid HeaderCase values.
var HeaderCases = []HeaderCase{Raw, Snake, Kebab, Camel, LowerCamel, Screaming}

// ParseHeaderCase returns the HeaderCase named by s. The empty string
// selects Raw.
func ParseHeaderCase(s string) (HeaderCase, error) {
	if s == "" {
		return Raw, nil
	}
	if hc := HeaderCase(s); slices.Contains(HeaderCases, hc) {
		return hc, nil
	}
	return "", fmt.Errorf("unknown header case %q", s)
}

// Apply returns key as displayed in case c.
func (c HeaderCase) Apply(key string) string {
	switch c {
	case Snake:
		return strcase.ToSnake(key)
	case Kebab:
		return strcase.ToKebab(key)
	case Camel:
		return strcase.ToCamel(key)
	case LowerCamel:
		return strcase.ToLowerCamel(key)
	case Screaming:
		return strcase.ToScreamingSnake(key)
	default:
		return key
	}
}

// Headers returns the column keys of g as displayed in case c.
func (g *Grid) Headers(c HeaderCase) []string {
	out := make([]string, len(g.Columns))
	for i, col := range g.Columns {
		out[i] = c.Apply(col)
	}
	return out
}
