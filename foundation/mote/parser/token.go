// File: token.go
// Title: mote Token Model
// Description: Defines the lexical tokens handed from the lexer to the parser.
//              Literal, identifier and keyword tokens keep their raw text;
//              numeric conversion happens in the parser. Operator tokens point
//              at their entry in the operator table.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-12 v0.1.0: Initial token model
// - 2026-10-16 v0.1.1: Comma and float literal tokens

package parser

import (
	"fmt"
	"strconv"

	"github.com/msto63/mote/foundation/mote/operator"
)

// Kind represents the type of a lexical token
type Kind int

const (
	Semicolon     Kind = iota // ;
	ParenOpen                 // (
	ParenClose                // )
	BraceOpen                 // {
	BraceClose                // }
	Comma                     // ,
	IntLiteral                // 42
	FloatLiteral              // 4.2
	StringLiteral             // "text"
	Identifier                // name
	Keyword                   // return, if, else, true, false
	BinaryOp                  // + - * / % == != < > <= >= && ||
	UnaryOp                   // ! -
)

var kindNames = [...]string{
	Semicolon:     "Semicolon",
	ParenOpen:     "ParenOpen",
	ParenClose:    "ParenClose",
	BraceOpen:     "BraceOpen",
	BraceClose:    "BraceClose",
	Comma:         "Comma",
	IntLiteral:    "IntLiteral",
	FloatLiteral:  "FloatLiteral",
	StringLiteral: "StringLiteral",
	Identifier:    "Identifier",
	Keyword:       "Keyword",
	BinaryOp:      "BinaryOp",
	UnaryOp:       "UnaryOp",
}

// String returns the name of the token kind
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Keywords of the language
const (
	KeywordReturn = "return"
	KeywordIf     = "if"
	KeywordElse   = "else"
	KeywordTrue   = "true"
	KeywordFalse  = "false"
)

var keywords = map[string]bool{
	KeywordReturn: true,
	KeywordIf:     true,
	KeywordElse:   true,
	KeywordTrue:   true,
	KeywordFalse:  true,
}

// IsKeyword reports whether word is a reserved keyword
func IsKeyword(word string) bool {
	return keywords[word]
}

// Token represents a lexical token. Offset is the byte offset of the token
// in the source and is only used for error reporting.
type Token struct {
	Kind   Kind
	Text   string
	Op     *operator.Descriptor
	Offset int
}

// String returns a compact representation such as IntLiteral(42) or BinaryOp(+)
func (t Token) String() string {
	switch t.Kind {
	case IntLiteral, FloatLiteral, Identifier, Keyword, BinaryOp, UnaryOp:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
	case StringLiteral:
		return fmt.Sprintf("%s(%s)", t.Kind, strconv.Quote(t.Text))
	default:
		return t.Kind.String()
	}
}

// Display returns the token as it appeared in the source, quoted for messages
func (t Token) Display() string {
	switch t.Kind {
	case StringLiteral:
		return "string " + strconv.Quote(t.Text)
	case Keyword:
		return "keyword '" + t.Text + "'"
	case Identifier:
		return "identifier '" + t.Text + "'"
	default:
		return "'" + t.Text + "'"
	}
}

// Width returns the number of source bytes the token occupies
func (t Token) Width() int {
	if t.Kind == StringLiteral {
		return len(t.Text) + 2
	}
	return len(t.Text)
}

// End returns the offset just past the token
func (t Token) End() int {
	return t.Offset + t.Width()
}

// SameAs compares kind, text and operator, ignoring the source offset
func (t Token) SameAs(other Token) bool {
	return t.Kind == other.Kind && t.Text == other.Text && t.Op == other.Op
}

// endsOperand reports whether a token can close an operand, which makes a
// following '-' a subtraction rather than a negation
func (t Token) endsOperand() bool {
	switch t.Kind {
	case IntLiteral, FloatLiteral, StringLiteral, Identifier, ParenClose, BraceClose:
		return true
	case Keyword:
		return t.Text == KeywordTrue || t.Text == KeywordFalse
	}
	return false
}
