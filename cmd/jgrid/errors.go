// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/creachadair/jgrid/grid"
	"github.com/creachadair/jgrid/session"
)

// Errors reported by the commands.
var (
	ErrNoInput      = errors.New("no input provided: name a file or pipe JSON data to stdin")
	ErrFileNotFound = errors.New("file not found")
	ErrNotFound     = errors.New("cell not found in text")
)

// An ErrorType is the category of a command error.
type ErrorType string

const (
	ErrorTypeInput   ErrorType = "input"
	ErrorTypeParsing ErrorType = "parsing"
	ErrorTypeGrid    ErrorType = "grid"
	ErrorTypeLocate  ErrorType = "locate"
	ErrorTypeOutput  ErrorType = "output"
	ErrorTypeConfig  ErrorType = "config"
	ErrorTypeViewer  ErrorType = "viewer"
)

// AppError is a command error with a category and a message for the user.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// Is reports whether target is an *AppError of the same type.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Type == t.Type
}

// detail returns the underlying error text of e, or its message if it has
// no underlying error.
func (e *AppError) detail() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func newError(t ErrorType, msg string, err error) *AppError {
	return &AppError{Type: t, Message: msg, Err: err}
}

// UserFriendlyError returns a message describing err for the user.
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("JSON parsing error: %s", appErr.detail())
		case ErrorTypeGrid:
			if errors.Is(appErr.Err, grid.ErrNotTabular) {
				return fmt.Sprintf("Grid error: %s (%s)", appErr.detail(), session.PlaceholderHint)
			}
			return fmt.Sprintf("Grid error: %s", appErr.detail())
		case ErrorTypeLocate:
			return fmt.Sprintf("Locate error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s: %v", appErr.Message, appErr.Err)
		case ErrorTypeViewer:
			return fmt.Sprintf("Viewer error: %s: %v", appErr.Message, appErr.Err)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Name a file or pipe JSON data to stdin."
	}
	return fmt.Sprintf("Error: %v", err)
}
