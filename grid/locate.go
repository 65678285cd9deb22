// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package grid

import (
	"strings"

	"github.com/creachadair/jgrid"
	"github.com/creachadair/jgrid/ast"
)

// memberDepth is the nesting depth of record members in the canonical text
// of an array of records.
const memberDepth = 2

// Fragment returns the text of a member with the given key and value as it
// appears in the canonical text of an array of records. A nested array or
// object value is indented to the depth of a record member.
func Fragment(key string, v ast.Value) string {
	return jgrid.Quote(key) + ": " + ast.FormatDepth(v, memberDepth)
}

// Locate returns the span of the first occurrence in canonical of the member
// fragment for key and v, and reports whether one was found. A nil value
// (a missing cell) is never found.
//
// Only the first occurrence is reported. If several rows hold the same key
// and value, every one of them locates to the first row. The search is a
// plain substring match, so a fragment may also be found as the prefix of a
// longer one: "id": 1 is found inside "id": 10 if that comes first.
func Locate(canonical, key string, v ast.Value) (jgrid.Span, bool) {
	if v == nil {
		return jgrid.Span{}, false
	}
	return find(canonical, Fragment(key, v))
}

// LocateKey returns the span of the first occurrence in canonical of key as
// a member name, including its colon, and reports whether one was found.
func LocateKey(canonical, key string) (jgrid.Span, bool) {
	return find(canonical, jgrid.Quote(key)+":")
}

func find(text, needle string) (jgrid.Span, bool) {
	i := strings.Index(text, needle)
	if i < 0 {
		return jgrid.Span{}, false
	}
	return jgrid.Span{Pos: i, End: i + len(needle)}, true
}
