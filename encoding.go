// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jgrid

import (
	"errors"
	"strings"

	"github.com/creachadair/jgrid/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped the way
// canonical text escapes them, and double quotation marks are added.
func Quote(src string) string {
	body := escape.Quote(mem.S(src))
	var sb strings.Builder
	sb.Grow(len(body) + 2)
	sb.WriteByte('"')
	sb.Write(body)
	sb.WriteByte('"')
	return sb.String()
}

// Unquote decodes a JSON string value. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Invalid escapes are replaced by the Unicode replacement rune. Unquote
// reports an error for an incomplete escape sequence.
func Unquote(src string) (string, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return "", errors.New("missing quotations")
	}
	dec, err := escape.Unquote(mem.S(src[1 : len(src)-1]))
	if err != nil {
		return "", err
	}
	return string(dec), nil
}
