// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes src as the body of a JSON string, without the enclosing
// quotation marks. Only the quotation mark, the backslash, and control
// characters are escaped; all other runes are copied through unchanged.
// Bytes that are not valid UTF-8 are encoded as \ufffd.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len())
	putByte := func(bs ...byte) { buf = append(buf, bs...) }

	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		if r < utf8.RuneSelf {
			if r < ' ' {
				if b := controlEsc[r]; b != 0 {
					putByte('\\', b)
				} else {
					putByte('\\', 'u', '0', '0', hexDigit[int(r>>4)], hexDigit[int(r&15)])
				}
			} else if r == '\\' || r == '"' {
				putByte('\\', byte(r))
			} else {
				putByte(byte(r))
			}
		} else if r == utf8.RuneError && n <= 1 {
			buf = append(buf, `\ufffd`...)
			n = 1
		} else {
			buf = utf8.AppendRune(buf, r)
		}
		src = src.SliceFrom(n)
	}
	return buf
}
