// File: parser.go
// Title: mote Recursive Descent Parser
// Description: Converts a token stream into a syntax tree. Statements and
//              blocks are parsed by mutually recursive functions, expressions
//              by precedence climbing over the operator table. The first
//              token that does not fit the grammar aborts with a ParseError
//              and no tree.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-12 v0.1.0: Initial parser implementation
// - 2026-10-16 v0.1.1: else-if chains, prefix operators, empty statements

package parser

import (
	"strconv"

	"github.com/msto63/mote/foundation/mote/ast"
	"github.com/msto63/mote/foundation/mote/operator"
)

// Parse parses a whole program. The root is always a Block holding the
// top-level statements.
func Parse(tokens []Token) (*ast.Node, error) {
	c := NewCursor(tokens)

	statements := []*ast.Node{}
	for !c.AtEnd() {
		if c.check(BraceClose) {
			return nil, c.errorHere(UnexpectedToken, "program: '}' without matching '{'")
		}
		stmt, err := parseStatement(c)
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			statements = append(statements, stmt)
		}
	}
	return ast.Block(statements...), nil
}

// ParseSource tokenizes and parses src
func ParseSource(src string) (*ast.Node, error) {
	tokens, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// parseBlock parses '{' statement* '}'
func parseBlock(c *Cursor) (*ast.Node, error) {
	if _, err := c.expect(BraceOpen, "block: expected '{'"); err != nil {
		return nil, err
	}

	statements := []*ast.Node{}
	for !c.check(BraceClose) {
		if c.AtEnd() {
			return nil, c.errorHere(UnexpectedEOF, "block: expected '}'")
		}
		stmt, err := parseStatement(c)
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			statements = append(statements, stmt)
		}
	}
	c.Consume()

	return ast.Block(statements...), nil
}

// parseStatement parses one statement. An empty statement yields nil.
func parseStatement(c *Cursor) (*ast.Node, error) {
	tok, _ := c.Peek()

	switch {
	case tok.Kind == Semicolon:
		c.Consume()
		return nil, nil

	case tok.Kind == Keyword && tok.Text == KeywordReturn:
		c.Consume()
		value, err := parseExpr(c, 0)
		if err != nil {
			return nil, err
		}
		if _, err := c.expect(Semicolon, "return statement: expected ';'"); err != nil {
			return nil, err
		}
		return ast.Return(value), nil

	case tok.Kind == Keyword && tok.Text == KeywordIf:
		return parseIf(c)
	}

	startsWithBrace := tok.Kind == BraceOpen
	expr, err := parseExpr(c, 0)
	if err != nil {
		return nil, err
	}

	// a nested block standing alone needs no terminator
	if startsWithBrace && expr.Kind == ast.KindBlock && !c.check(Semicolon) {
		return expr, nil
	}
	if _, err := c.expect(Semicolon, "expression statement: expected ';'"); err != nil {
		return nil, err
	}
	return expr, nil
}

// parseIf parses 'if' expr block ('else' (block | if))?
func parseIf(c *Cursor) (*ast.Node, error) {
	c.Consume() // if

	cond, err := parseExpr(c, 0)
	if err != nil {
		return nil, err
	}
	if !c.check(BraceOpen) {
		return nil, c.errorHere(UnexpectedToken, "if statement: expected '{' after condition")
	}
	then, err := parseBlock(c)
	if err != nil {
		return nil, err
	}

	if !c.checkKeyword(KeywordElse) {
		return ast.If(cond, then, nil), nil
	}
	c.Consume() // else

	var elseBranch *ast.Node
	switch {
	case c.checkKeyword(KeywordIf):
		elseBranch, err = parseIf(c)
	case c.check(BraceOpen):
		elseBranch, err = parseBlock(c)
	default:
		return nil, c.errorHere(UnexpectedToken, "else branch: expected '{' or 'if'")
	}
	if err != nil {
		return nil, err
	}
	return ast.If(cond, then, elseBranch), nil
}

// parseExpr parses a unary operand followed by every binary operator whose
// precedence is strictly greater than minPrecedence. The right operand of
// such an operator is parsed with the operator's own precedence, so an
// operator of equal precedence associates to the left.
func parseExpr(c *Cursor, minPrecedence int) (*ast.Node, error) {
	left, err := parseUnary(c)
	if err != nil {
		return nil, err
	}

	for {
		op := peekBinary(c)
		if op == nil || op.Precedence <= minPrecedence {
			return left, nil
		}
		c.Consume()

		right, err := parseExpr(c, op.Precedence)
		if err != nil {
			return nil, err
		}
		left = ast.Binary(op.Binary, left, right)
	}
}

// peekBinary returns the infix operator at the cursor, if any
func peekBinary(c *Cursor) *operator.Descriptor {
	tok, ok := c.Peek()
	if !ok || tok.Kind != BinaryOp {
		return nil
	}
	if tok.Op != nil && tok.Op.Fixity == operator.Infix {
		return tok.Op
	}
	op, _ := operator.LookupBinary(tok.Text)
	return op
}

// parseUnary parses prefixOp* atom
func parseUnary(c *Cursor) (*ast.Node, error) {
	tok, ok := c.Peek()
	if !ok {
		return nil, c.errorHere(UnexpectedEOF, "expression: expected an operand")
	}

	var prefix *operator.Descriptor
	switch tok.Kind {
	case UnaryOp:
		prefix = tok.Op
		if prefix == nil {
			prefix, _ = operator.LookupPrefix(tok.Text)
		}
	case BinaryOp:
		// streams built by hand may carry '-' in operand position as infix
		prefix, _ = operator.LookupPrefix(tok.Text)
		if prefix == nil {
			return nil, c.errorHere(UnexpectedToken, "expression: expected an operand")
		}
	}
	if prefix == nil || prefix.Fixity != operator.Prefix {
		if tok.Kind == UnaryOp {
			return nil, c.errorHere(UnexpectedToken, "expression: unknown prefix operator")
		}
		return parseAtom(c)
	}

	c.Consume()
	operand, err := parseUnary(c)
	if err != nil {
		return nil, err
	}
	return ast.Unary(prefix.Unary, operand), nil
}

// parseAtom parses literals, variables, calls, parenthesized expressions
// and blocks
func parseAtom(c *Cursor) (*ast.Node, error) {
	tok, _ := c.Peek()

	switch tok.Kind {
	case IntLiteral:
		v, err := strconv.ParseInt(tok.Text, 10, 32)
		if err != nil {
			return nil, c.errorHere(InvalidNumber, "integer literal: out of 32-bit range")
		}
		c.Consume()
		return ast.IntegerLiteral(int32(v)), nil

	case FloatLiteral:
		v, err := strconv.ParseFloat(tok.Text, 32)
		if err != nil {
			return nil, c.errorHere(InvalidNumber, "float literal: not a 32-bit float")
		}
		c.Consume()
		return ast.FloatLiteral(float32(v)), nil

	case StringLiteral:
		c.Consume()
		return ast.StringLiteral(tok.Text), nil

	case Keyword:
		switch tok.Text {
		case KeywordTrue:
			c.Consume()
			return ast.BooleanLiteral(true), nil
		case KeywordFalse:
			c.Consume()
			return ast.BooleanLiteral(false), nil
		}
		if !IsKeyword(tok.Text) {
			return nil, c.errorHere(UnknownKeyword, "expression")
		}
		return nil, c.errorHere(UnexpectedToken, "expression: keyword cannot start an expression")

	case Identifier:
		c.Consume()
		if !c.check(ParenOpen) {
			return ast.Variable(tok.Text), nil
		}
		args, err := parseArgs(c)
		if err != nil {
			return nil, err
		}
		return ast.Call(tok.Text, args...), nil

	case ParenOpen:
		c.Consume()
		inner, err := parseExpr(c, 0)
		if err != nil {
			return nil, err
		}
		if _, err := c.expect(ParenClose, "parenthesized expression: expected ')'"); err != nil {
			return nil, err
		}
		return inner, nil

	case BraceOpen:
		return parseBlock(c)
	}

	return nil, c.errorHere(UnexpectedToken, "expression: expected an operand")
}

// parseArgs parses '(' (expr (',' expr)*)? ')'
func parseArgs(c *Cursor) ([]*ast.Node, error) {
	c.Consume() // (

	args := []*ast.Node{}
	if c.check(ParenClose) {
		c.Consume()
		return args, nil
	}

	for {
		arg, err := parseExpr(c, 0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if c.check(Comma) {
			c.Consume()
			continue
		}
		if _, err := c.expect(ParenClose, "call arguments: expected ',' or ')'"); err != nil {
			return nil, err
		}
		return args, nil
	}
}
