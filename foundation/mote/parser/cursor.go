// File: cursor.go
// Title: Token Cursor
// Description: Forward-only cursor over a borrowed token slice. The parser
//              passes it by pointer through its recursive functions; peek and
//              consume are the only ways to move through the tokens.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation

package parser

// Cursor is an index into a token slice
type Cursor struct {
	tokens []Token
	pos    int
	end    int
}

// NewCursor creates a cursor positioned at the first token
func NewCursor(tokens []Token) *Cursor {
	c := &Cursor{tokens: tokens}
	if n := len(tokens); n > 0 {
		c.end = tokens[n-1].End()
	}
	return c
}

// Peek returns the current token without consuming it
func (c *Cursor) Peek() (Token, bool) {
	if c.pos >= len(c.tokens) {
		return Token{}, false
	}
	return c.tokens[c.pos], true
}

// Consume returns the current token and advances past it
func (c *Cursor) Consume() (Token, bool) {
	tok, ok := c.Peek()
	if ok {
		c.pos++
	}
	return tok, ok
}

// AtEnd reports whether all tokens have been consumed
func (c *Cursor) AtEnd() bool {
	return c.pos >= len(c.tokens)
}

// Position returns the index of the current token
func (c *Cursor) Position() int {
	return c.pos
}

// errorHere builds a ParseError for the current token, or for the end of
// input when none is left
func (c *Cursor) errorHere(kind ParseErrorKind, context string) *ParseError {
	tok, ok := c.Peek()
	if !ok {
		return &ParseError{
			Kind:     UnexpectedEOF,
			Offset:   c.end,
			Position: c.pos,
			Found:    "end of input",
			Context:  context,
		}
	}
	return &ParseError{
		Kind:     kind,
		Offset:   tok.Offset,
		Position: c.pos,
		Found:    tok.Display(),
		Context:  context,
	}
}

// check reports whether the current token has the given kind
func (c *Cursor) check(kind Kind) bool {
	tok, ok := c.Peek()
	return ok && tok.Kind == kind
}

// checkKeyword reports whether the current token is the given keyword
func (c *Cursor) checkKeyword(word string) bool {
	tok, ok := c.Peek()
	return ok && tok.Kind == Keyword && tok.Text == word
}

// expect consumes a token of the given kind or fails with context
func (c *Cursor) expect(kind Kind, context string) (Token, error) {
	if !c.check(kind) {
		return Token{}, c.errorHere(UnexpectedToken, context)
	}
	tok, _ := c.Consume()
	return tok, nil
}
