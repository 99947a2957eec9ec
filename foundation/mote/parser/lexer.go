// File: lexer.go
// Title: mote Lexical Analyzer (Tokenizer)
// Description: Converts source text into a token stream in a single forward
//              pass. Operators are recognized by longest match against the
//              operator table. The first character that cannot start a token
//              aborts tokenization with a LexError.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-12 v0.1.0: Initial lexer implementation
// - 2026-10-16 v0.1.1: Float literals, prefix operator classification

package parser

import (
	"unicode/utf8"

	"github.com/msto63/mote/foundation/mote/operator"
)

// Lexer performs lexical analysis of mote source text
type Lexer struct {
	input    string
	position int // current position in input (points to current char)
	readPos  int // current reading position (after current char)
	ch       byte

	prev    Token
	hasPrev bool
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// NextToken returns the next token. ok is false once the input is exhausted.
func (l *Lexer) NextToken() (tok Token, ok bool, err error) {
	l.skipWhitespace()

	if l.position >= len(l.input) {
		return Token{}, false, nil
	}

	pos := l.position

	switch {
	case isLetter(l.ch):
		text := l.readIdentifier()
		kind := Identifier
		if IsKeyword(text) {
			kind = Keyword
		}
		tok = Token{Kind: kind, Text: text, Offset: pos}

	case isDigit(l.ch):
		text, isFloat := l.readNumber()
		kind := IntLiteral
		if isFloat {
			kind = FloatLiteral
		}
		tok = Token{Kind: kind, Text: text, Offset: pos}

	case l.ch == '"':
		text, closed := l.readString()
		if !closed {
			return Token{}, false, &LexError{Offset: pos, Char: '"', Unterminated: true}
		}
		tok = Token{Kind: StringLiteral, Text: text, Offset: pos}

	default:
		if kind, single := punctuation[l.ch]; single {
			tok = Token{Kind: kind, Text: string(l.ch), Offset: pos}
			l.readChar()
			break
		}

		lexeme, found := operator.Match(l.input, pos)
		if !found {
			r, _ := utf8.DecodeRuneInString(l.input[pos:])
			return Token{}, false, &LexError{Offset: pos, Char: r}
		}
		tok = l.operatorToken(lexeme, pos)
		l.advance(len(lexeme))
	}

	l.prev, l.hasPrev = tok, true
	return tok, true, nil
}

// Tokenize returns all tokens of the input, or the first lexical error
func (l *Lexer) Tokenize() ([]Token, error) {
	tokens := []Token{}

	for {
		tok, ok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// Tokenize is a convenience function that tokenizes input and returns tokens or error
func Tokenize(input string) ([]Token, error) {
	return NewLexer(input).Tokenize()
}

var punctuation = map[byte]Kind{
	';': Semicolon,
	'(': ParenOpen,
	')': ParenClose,
	'{': BraceOpen,
	'}': BraceClose,
	',': Comma,
}

// operatorToken classifies a lexeme that has an infix form, a prefix form,
// or both. With both, the previous token decides: after an operand the
// lexeme is infix.
func (l *Lexer) operatorToken(lexeme string, pos int) Token {
	binary, isBinary := operator.LookupBinary(lexeme)
	prefix, isPrefix := operator.LookupPrefix(lexeme)

	if isBinary && (!isPrefix || (l.hasPrev && l.prev.endsOperand())) {
		return Token{Kind: BinaryOp, Text: lexeme, Op: binary, Offset: pos}
	}
	return Token{Kind: UnaryOp, Text: lexeme, Op: prefix, Offset: pos}
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.position = l.readPos
	l.readPos++
}

// peekChar returns the next character without advancing
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for l.position < len(l.input) && (isLetter(l.ch) || isDigit(l.ch)) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber reads a digit run and, when a '.' is followed by a digit, the
// fractional part
func (l *Lexer) readNumber() (string, bool) {
	start := l.position
	for l.position < len(l.input) && isDigit(l.ch) {
		l.readChar()
	}

	isFloat := false
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for l.position < len(l.input) && isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.position], isFloat
}

// readString reads a double-quoted literal verbatim. The returned text
// excludes the quotes; closed is false when the input ends first.
func (l *Lexer) readString() (string, bool) {
	l.readChar() // opening quote
	start := l.position
	for l.position < len(l.input) {
		if l.ch == '"' {
			text := l.input[start:l.position]
			l.readChar()
			return text, true
		}
		l.readChar()
	}
	return "", false
}

func (l *Lexer) skipWhitespace() {
	for l.position < len(l.input) && isSpace(l.ch) {
		l.readChar()
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\v' || ch == '\f'
}

// isLetter accepts ASCII letters only
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
