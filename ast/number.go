// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"strconv"
	"strings"

	"github.com/creachadair/jgrid"
)

// numberFromToken constructs a Number from the text of a numeric token.
//
// Integer literals keep their digits, so large integers do not lose
// precision; only negative zero is normalized. Other numbers are rendered in
// the shortest form that round-trips. A literal out of range for a float64
// is kept as written.
func numberFromToken(tok jgrid.Token, text string) Number {
	if tok == jgrid.Integer {
		if text == "-0" {
			return Number{text: "0"}
		}
		return Number{text: text}
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Number{text: text}
	}
	return Number{text: formatFloat(f)}
}

// formatFloat renders f in the shortest decimal form that round-trips.
// Values whose magnitude is below 1e-6 or at least 1e21 use exponent
// notation, written as e+N or e-N with no leading zeroes.
func formatFloat(f float64) string {
	if f == 0 {
		return "0" // including negative zero
	}
	s := strconv.FormatFloat(f, 'e', -1, 64) // d.ddde±XX
	neg := s[0] == '-'
	if neg {
		s = s[1:]
	}
	mant, exp, _ := strings.Cut(s, "e")
	digits := strings.Replace(mant, ".", "", 1)
	e, _ := strconv.Atoi(exp)

	// The value is 0.digits × 10^n.
	n, k := e+1, len(digits)

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	switch {
	case k <= n && n <= 21:
		sb.WriteString(digits)
		sb.WriteString(strings.Repeat("0", n-k))
	case 0 < n && n <= 21:
		sb.WriteString(digits[:n])
		sb.WriteByte('.')
		sb.WriteString(digits[n:])
	case -6 < n && n <= 0:
		sb.WriteString("0.")
		sb.WriteString(strings.Repeat("0", -n))
		sb.WriteString(digits)
	default:
		sb.WriteString(digits[:1])
		if k > 1 {
			sb.WriteByte('.')
			sb.WriteString(digits[1:])
		}
		if n-1 >= 0 {
			sb.WriteString("e+")
		} else {
			sb.WriteString("e-")
		}
		sb.WriteString(strconv.Itoa(abs(n - 1)))
	}
	return sb.String()
}

func abs(z int) int {
	if z < 0 {
		return -z
	}
	return z
}
