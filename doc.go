// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jgrid implements the text layer of a JSON grid viewer: a scanner
// and parser for JSON text that track the byte span of every token, and the
// span and location types used to point back into source text.
//
// The structured value tree lives in package ast, the tabular projection and
// the cell-to-source locator in package grid, and the session state that ties
// them together in package session.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON text held in memory.
// Construct a scanner from a string and call its Next method to iterate over
// the tokens. Next advances to the next input token and returns nil, or
// reports an error:
//
//	s := jgrid.NewScanner(text)
//	for s.Next() == nil {
//	   log.Printf("Next token: %v at %v", s.Token(), s.Span())
//	}
//
// Next returns io.EOF when the input has been fully consumed. Any other error
// is a *ParseError describing a lexical error in the input.
//
// # Parsing
//
// The Stream type implements an event-driven parser for a single JSON value.
// The parser works by calling methods on a Handler value to report the
// structure of the input. In case of error, parsing is terminated and an
// error of concrete type *jgrid.ParseError is returned.
//
//	s := jgrid.NewStream(text)
//	if err := s.Parse(handler); err == io.EOF {
//	   log.Print("No document")
//	} else if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// # Handlers
//
// The Handler interface accepts parser events from a Stream. The methods of
// a handler correspond to the syntax of JSON values:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | BeginMember, EndMember    | "key": value
//	value      | Value                     | true, false, null, number, string
//
// Each method is passed an Anchor value that can be used to retrieve location
// and type information. The Anchor passed to a handler method is only valid
// for the duration of that method call; the handler must copy any data it
// needs to retain beyond the lifetime of the call.
//
// # Spans
//
// A Span is a pair of byte offsets. Use Span.Runes to convert a span to
// character offsets, and Locate to compute its line and column positions.
package jgrid
