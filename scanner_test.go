// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jgrid_test

import (
	"errors"
	"io"
	"testing"

	"github.com/creachadair/jgrid"
	"github.com/google/go-cmp/cmp"
)

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []jgrid.Token
	}{
		// Empty inputs
		{"", nil},
		{"  ", nil},
		{"\n\n  \n", nil},
		{"\t  \r\n \t  \r\n", nil},

		// Constants
		{"true false null", []jgrid.Token{jgrid.True, jgrid.False, jgrid.Null}},

		// Punctuation
		{"{ [ ] } , :", []jgrid.Token{
			jgrid.LBrace, jgrid.LSquare, jgrid.RSquare, jgrid.RBrace, jgrid.Comma, jgrid.Colon,
		}},

		// Strings
		{`"" "a b c" "a\nb\tc"`, []jgrid.Token{jgrid.String, jgrid.String, jgrid.String}},
		{`"\"\\\/\b\f\n\r\t"`, []jgrid.Token{jgrid.String}},
		{`"\u0000\u01fc\uAA9c"`, []jgrid.Token{jgrid.String}},
		{`"héllo wörld"`, []jgrid.Token{jgrid.String}},

		// Numbers
		{`0 -1 5139 2.3 5e+9 3.6E+4 -0.001E-100 1e5`, []jgrid.Token{
			jgrid.Integer, jgrid.Integer, jgrid.Integer,
			jgrid.Number, jgrid.Number, jgrid.Number, jgrid.Number, jgrid.Number,
		}},

		// Mixed types
		{`{true,"false":-15 null[]}`, []jgrid.Token{
			jgrid.LBrace, jgrid.True, jgrid.Comma, jgrid.String, jgrid.Colon,
			jgrid.Integer, jgrid.Null, jgrid.LSquare, jgrid.RSquare, jgrid.RBrace,
		}},
		{`{"a": true, "b":[null, 1, 0.5]}`, []jgrid.Token{
			jgrid.LBrace,
			jgrid.String, jgrid.Colon, jgrid.True, jgrid.Comma,
			jgrid.String, jgrid.Colon,
			jgrid.LSquare,
			jgrid.Null, jgrid.Comma, jgrid.Integer, jgrid.Comma, jgrid.Number,
			jgrid.RSquare,
			jgrid.RBrace,
		}},
	}

	for _, test := range tests {
		var got []jgrid.Token
		s := jgrid.NewScanner(test.input)
		for s.Next() == nil {
			got = append(got, s.Token())
		}
		if s.Err() != io.EOF {
			t.Errorf("Next failed: %v", s.Err())
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScannerErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`01`, `at 1:1: extra leading zeroes`},
		{`-`, `at 1:1: want digit after sign`},
		{`1.`, `at 1:2: no digits after decimal point`},
		{`2e+`, `at 1:3: missing exponent digits`},
		{`tru`, `at 1:3: unknown constant "tru"`},
		{`nil`, `at 1:3: unknown constant "nil"`},
		{`"abc`, `at 1:4: unterminated string`},
		{"\"a\tb\"", `at 1:2: unescaped control '\t'`},
		{`"\x"`, `at 1:2: invalid 'x' after escape`},
		{`"\u12g4"`, `at 1:5: invalid Unicode escape`},
		{"\n  @", `at 2:2: unexpected '@'`},
		{"\"\xff\"", `at 1:1: invalid UTF-8 in string`},
	}
	for _, test := range tests {
		s := jgrid.NewScanner(test.input)
		var err error
		for err == nil {
			err = s.Next()
		}
		var perr *jgrid.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Input %#q: got error %v, want *ParseError", test.input, err)
			continue
		}
		if got := err.Error(); got != test.want {
			t.Errorf("Input %#q: got error %q, want %q", test.input, got, test.want)
		}
		if s.Token() != jgrid.Invalid {
			t.Errorf("Input %#q: token after error is %v, want invalid", test.input, s.Token())
		}
	}
}

func TestScannerText(t *testing.T) {
	const input = `{"a\tb": -3.5e2}`
	s := jgrid.NewScanner(input)
	var got []string
	for s.Next() == nil {
		got = append(got, s.Text().StringCopy())
		if sp := s.Span(); sp.Text(input) != s.Text().StringCopy() {
			t.Errorf("Span %v text %q does not match token %q", sp, sp.Text(input), s.Text().StringCopy())
		}
	}
	want := []string{"{", `"a\tb"`, ":", "-3.5e2", "}"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Token text (-want, +got):\n%s", diff)
	}
}

func TestScannerLoc(t *testing.T) {
	type tokPos struct {
		Tok jgrid.Token
		Pos string
	}
	tests := []struct {
		input string
		want  []tokPos
	}{
		{"", nil},
		{"{ }", []tokPos{{jgrid.LBrace, "1:0-1"}, {jgrid.RBrace, "1:2-3"}}},
		{`"foo" 12`, []tokPos{{jgrid.String, "1:0-5"}, {jgrid.Integer, "1:6-8"}}},
		{"\ntrue\n false\n", []tokPos{{jgrid.True, "2:0-4"}, {jgrid.False, "3:1-6"}}},
		{"[1,\n 2\n]", []tokPos{
			{jgrid.LSquare, "1:0-1"}, {jgrid.Integer, "1:1-2"}, {jgrid.Comma, "1:2-3"},
			{jgrid.Integer, "2:1-2"}, {jgrid.RSquare, "3:0-1"},
		}},
	}
	for _, tc := range tests {
		var got []tokPos
		s := jgrid.NewScanner(tc.input)
		for s.Next() == nil {
			got = append(got, tokPos{s.Token(), s.Location().String()})
		}
		if s.Err() != io.EOF {
			t.Errorf("Next failed: %v", s.Err())
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", tc.input, diff)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `""`},
		{" ", `" "`},
		{"a\t\nb", `"a\t\nb"`},
		{"\x00\x01\x02", `"\u0000\u0001\u0002"`},
		{`a "b c\" d"`, `"a \"b c\\\" d\""`},
		{`\ufffd`, `"\\ufffd"`},
		{"\u2028 é ✓", "\"\u2028 é ✓\""},
		{"a/b", `"a/b"`},
		{"This is the end\v", `"This is the end\u000b"`},
		{"<\x1e>", `"<\u001e>"`},
		{"bad \xff byte", `"bad \ufffd byte"`},
	}
	for _, test := range tests {
		got := jgrid.Quote(test.input)
		if got != test.want {
			t.Errorf("Input: %#q\nGot:  %#q\nWant: %#q", test.input, got, test.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
		fail  bool
	}{
		{``, ``, true},                                   // missing quotes
		{`"missing quote`, ``, true},                     // missing quotes
		{`missing quote"`, ``, true},                     // missing quotes
		{`""`, ``, false},                                // ok
		{`"ok go"`, "ok go", false},                      // ok
		{`"abc\ndef"`, "abc\ndef", false},                // C escapes
		{`"\b\f\n\r\t"`, "\b\f\n\r\t", false},            // C escapes
		{`"a \u0026 b"`, "a & b", false},                // short Unicode escape
		{`"\u"`, ``, true},                              // incomplete Unicode escape
		{`"\u00"`, ``, true},                            // incomplete Unicode escape
		{`"\u00x9"`, "\ufffd", false},                  // invalid Unicode escape
		{`"\u019 "`, "\ufffd", false},                  // invalid Unicode escape
		{`"\ud83d\ude00"`, "\U0001f600", false},        // surrogate pair
		{`"\ud83d"`, "\ufffd", false},                  // unpaired high surrogate
		{`"\ud83dx"`, "\ufffdx", false},                // unpaired high surrogate
		{`"\ude00\ud83d\ude00"`, "\ufffd\U0001f600", false}, // stray low surrogate
		{`"a\"b"`, `a"b`, false},                         // ok
		{`"a\\b\\cd"`, `a\b\cd`, false},                  // ok
		{`"a\/b"`, `a/b`, false},                         // ok
		{`"trailing\"`, ``, true},                        // incomplete escape
	}

	for _, test := range tests {
		got, err := jgrid.Unquote(test.input)
		if err != nil {
			if !test.fail {
				t.Errorf("Unquote(%#q): got %v, want no error", test.input, err)
			} else {
				t.Logf("Unquote(%#q): got expected error: %v", test.input, err)
			}
		} else if test.fail {
			t.Errorf("Unquote(%#q): got nil, want error", test.input)
		}
		if got != test.want {
			t.Errorf("Unquote(%#q): got %#q, want %#q", test.input, got, test.want)
		}
	}
}
