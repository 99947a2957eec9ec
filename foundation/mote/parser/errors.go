// File: errors.go
// Title: Lexer and Parser Errors
// Description: Structured errors for the first malformed construct found in the
//              source. Both carry the byte offset of the problem.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-12 v0.1.0: Initial error types
// - 2026-10-16 v0.1.1: Parse error kinds

package parser

import (
	"fmt"
)

// LexError reports a character that cannot start any token
type LexError struct {
	Offset int
	Char   rune

	// Unterminated is set when a string literal opened at Offset never closes
	Unterminated bool
}

func (e *LexError) Error() string {
	if e.Unterminated {
		return fmt.Sprintf("lex error at offset %d: unterminated string literal", e.Offset)
	}
	return fmt.Sprintf("lex error at offset %d: unexpected character %q", e.Offset, e.Char)
}

// ParseErrorKind classifies parse errors
type ParseErrorKind int

const (
	UnexpectedToken ParseErrorKind = iota
	UnexpectedEOF
	UnknownKeyword
	InvalidNumber
)

func (k ParseErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case UnexpectedEOF:
		return "unexpected end of input"
	case UnknownKeyword:
		return "unknown keyword"
	case InvalidNumber:
		return "invalid numeric literal"
	default:
		return "parse error"
	}
}

// ParseError reports the first token the grammar could not accept.
// Position is the index of that token in the stream (len(tokens) at end of
// input), Found describes it and Context names what was being parsed.
type ParseError struct {
	Kind     ParseErrorKind
	Offset   int
	Position int
	Found    string
	Context  string
}

func (e *ParseError) Error() string {
	if e.Kind == UnexpectedEOF {
		return fmt.Sprintf("parse error at offset %d: %s in %s", e.Offset, e.Kind, e.Context)
	}
	return fmt.Sprintf("parse error at offset %d: %s %s in %s", e.Offset, e.Kind, e.Found, e.Context)
}
