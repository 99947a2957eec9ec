// File: parser_test.go
// Title: mote Parser Unit Tests
// Description: Tests for statements, precedence climbing, calls, conditionals
//              and parse errors.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-12 v0.1.0: Initial test suite
// - 2026-10-16 v0.1.1: else-if, prefix operators, error kinds

package parser

import (
	"errors"
	"testing"

	"github.com/msto63/mote/foundation/mote/ast"
)

func TestParser_Parse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *ast.Node
	}{
		{
			name:     "empty program",
			input:    "",
			expected: ast.Block(),
		},
		{
			name:     "return literal",
			input:    "return 1;",
			expected: ast.Block(ast.Return(ast.IntegerLiteral(1))),
		},
		{
			name:  "if else",
			input: "if true { return 1; } else { return 2; }",
			expected: ast.Block(ast.If(
				ast.BooleanLiteral(true),
				ast.Block(ast.Return(ast.IntegerLiteral(1))),
				ast.Block(ast.Return(ast.IntegerLiteral(2))),
			)),
		},
		{
			name:     "multiplicative binds tighter",
			input:    "1 + 2 * 3;",
			expected: ast.Block(ast.Binary(ast.Add, ast.IntegerLiteral(1), ast.Binary(ast.Multiply, ast.IntegerLiteral(2), ast.IntegerLiteral(3)))),
		},
		{
			name:     "multiplicative first",
			input:    "2 * 3 + 4;",
			expected: ast.Block(ast.Binary(ast.Add, ast.Binary(ast.Multiply, ast.IntegerLiteral(2), ast.IntegerLiteral(3)), ast.IntegerLiteral(4))),
		},
		{
			name:     "subtraction is left associative",
			input:    "1 - 2 - 3;",
			expected: ast.Block(ast.Binary(ast.Subtract, ast.Binary(ast.Subtract, ast.IntegerLiteral(1), ast.IntegerLiteral(2)), ast.IntegerLiteral(3))),
		},
		{
			name:  "division and modulo are left associative",
			input: "8 / 4 % 3 * 2;",
			expected: ast.Block(ast.Binary(ast.Multiply,
				ast.Binary(ast.Modulo, ast.Binary(ast.Divide, ast.IntegerLiteral(8), ast.IntegerLiteral(4)), ast.IntegerLiteral(3)),
				ast.IntegerLiteral(2))),
		},
		{
			name:     "parentheses override precedence",
			input:    "(1 + 2) * 3;",
			expected: ast.Block(ast.Binary(ast.Multiply, ast.Binary(ast.Add, ast.IntegerLiteral(1), ast.IntegerLiteral(2)), ast.IntegerLiteral(3))),
		},
		{
			name:  "logical and comparison operators",
			input: "a < b && c || !d;",
			expected: ast.Block(ast.Binary(ast.Or,
				ast.Binary(ast.And, ast.Binary(ast.LessThan, ast.Variable("a"), ast.Variable("b")), ast.Variable("c")),
				ast.Unary(ast.Not, ast.Variable("d")))),
		},
		{
			name:  "equality below relational",
			input: "x + 1 >= y == z != false;",
			expected: ast.Block(ast.Binary(ast.NotEqual,
				ast.Binary(ast.Equal,
					ast.Binary(ast.GreaterThanOrEqual, ast.Binary(ast.Add, ast.Variable("x"), ast.IntegerLiteral(1)), ast.Variable("y")),
					ast.Variable("z")),
				ast.BooleanLiteral(false))),
		},
		{
			name:     "negation binds tighter than multiplication",
			input:    "-x * y;",
			expected: ast.Block(ast.Binary(ast.Multiply, ast.Unary(ast.Negate, ast.Variable("x")), ast.Variable("y"))),
		},
		{
			name:     "stacked prefix operators",
			input:    "return !-1;",
			expected: ast.Block(ast.Return(ast.Unary(ast.Not, ast.Unary(ast.Negate, ast.IntegerLiteral(1))))),
		},
		{
			name:     "binary minus before negative literal",
			input:    "a - -1;",
			expected: ast.Block(ast.Binary(ast.Subtract, ast.Variable("a"), ast.Unary(ast.Negate, ast.IntegerLiteral(1)))),
		},
		{
			name:     "call with arguments",
			input:    `foo(1, "a");`,
			expected: ast.Block(ast.Call("foo", ast.IntegerLiteral(1), ast.StringLiteral("a"))),
		},
		{
			name:  "nested calls and expressions as arguments",
			input: "f(g(), 2 + 3, h(x));",
			expected: ast.Block(ast.Call("f",
				ast.Call("g"),
				ast.Binary(ast.Add, ast.IntegerLiteral(2), ast.IntegerLiteral(3)),
				ast.Call("h", ast.Variable("x")))),
		},
		{
			name:     "float literal",
			input:    "return 2.5 * r;",
			expected: ast.Block(ast.Return(ast.Binary(ast.Multiply, ast.FloatLiteral(2.5), ast.Variable("r")))),
		},
		{
			name:  "else if chain",
			input: "if a { x; } else if b { y; } else { z; }",
			expected: ast.Block(ast.If(
				ast.Variable("a"),
				ast.Block(ast.Variable("x")),
				ast.If(ast.Variable("b"), ast.Block(ast.Variable("y")), ast.Block(ast.Variable("z"))),
			)),
		},
		{
			name:     "if without else and call condition",
			input:    "if ready() { go(); }",
			expected: ast.Block(ast.If(ast.Call("ready"), ast.Block(ast.Call("go")), nil)),
		},
		{
			name:     "empty statements are skipped",
			input:    ";; return 1; ;",
			expected: ast.Block(ast.Return(ast.IntegerLiteral(1))),
		},
		{
			name:     "nested blocks with and without terminator",
			input:    "{ return 1; } { }; x;",
			expected: ast.Block(ast.Block(ast.Return(ast.IntegerLiteral(1))), ast.Block(), ast.Variable("x")),
		},
		{
			name:     "statement after if starting with minus",
			input:    "if a { } -1;",
			expected: ast.Block(ast.If(ast.Variable("a"), ast.Block(), nil), ast.Unary(ast.Negate, ast.IntegerLiteral(1))),
		},
		{
			name:     "largest int32",
			input:    "2147483647;",
			expected: ast.Block(ast.IntegerLiteral(2147483647)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSource(tt.input)
			if err != nil {
				t.Fatalf("ParseSource(%q) error = %v", tt.input, err)
			}
			if got.Kind != ast.KindBlock {
				t.Errorf("root kind = %v, want Block", got.Kind)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("ParseSource(%q)\n got  %s\n want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantKind     ParseErrorKind
		wantOffset   int
		wantPosition int
	}{
		{"if without body", "if true", UnexpectedEOF, 7, 2},
		{"if condition followed by semicolon", "if true;", UnexpectedToken, 7, 2},
		{"return without semicolon", "return 1", UnexpectedEOF, 8, 2},
		{"missing comma between arguments", "foo(1 2);", UnexpectedToken, 6, 3},
		{"unclosed call", "foo(1,", UnexpectedEOF, 6, 4},
		{"unclosed paren", "(1 + 2;", UnexpectedToken, 6, 4},
		{"dangling operator", "1 + ;", UnexpectedToken, 4, 2},
		{"stray closing brace", "}", UnexpectedToken, 0, 0},
		{"unclosed block", "{ return 1;", UnexpectedEOF, 11, 4},
		{"else without block", "if a { } else x;", UnexpectedToken, 14, 5},
		{"else at statement start", "else { }", UnexpectedToken, 0, 0},
		{"return as operand", "x + return;", UnexpectedToken, 4, 2},
		{"integer overflow", "2147483648;", InvalidNumber, 0, 0},
		{"negative overflow", "-2147483648;", InvalidNumber, 1, 1},
		{"expression without terminator", "a b;", UnexpectedToken, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := ParseSource(tt.input)
			if err == nil {
				t.Fatalf("ParseSource(%q) = %s, want error", tt.input, root)
			}
			if root != nil {
				t.Errorf("ParseSource() returned a tree alongside an error: %s", root)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T (%v) is not a *ParseError", err, err)
			}
			if pe.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v (%v)", pe.Kind, tt.wantKind, err)
			}
			if pe.Offset != tt.wantOffset {
				t.Errorf("Offset = %d, want %d (%v)", pe.Offset, tt.wantOffset, err)
			}
			if pe.Position != tt.wantPosition {
				t.Errorf("Position = %d, want %d (%v)", pe.Position, tt.wantPosition, err)
			}
			if pe.Context == "" || pe.Found == "" {
				t.Errorf("ParseError lacks context: %+v", pe)
			}
		})
	}
}

func TestParser_LexErrorPassesThrough(t *testing.T) {
	_, err := ParseSource("x = 1;")
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("ParseSource() error = %v, want *LexError", err)
	}
}

func TestParser_HandBuiltTokens(t *testing.T) {
	tests := []struct {
		name     string
		tokens   []Token
		expected *ast.Node
		wantKind ParseErrorKind
		wantErr  bool
	}{
		{
			name:     "nil token slice",
			tokens:   nil,
			expected: ast.Block(),
		},
		{
			name: "infix minus in operand position",
			tokens: []Token{
				{Kind: Keyword, Text: "return"},
				bin("-", 0),
				{Kind: IntLiteral, Text: "4"},
				{Kind: Semicolon, Text: ";"},
			},
			expected: ast.Block(ast.Return(ast.Unary(ast.Negate, ast.IntegerLiteral(4)))),
		},
		{
			name: "operator tokens without descriptors",
			tokens: []Token{
				{Kind: IntLiteral, Text: "1"},
				{Kind: BinaryOp, Text: "+"},
				{Kind: IntLiteral, Text: "2"},
				{Kind: BinaryOp, Text: "*"},
				{Kind: UnaryOp, Text: "-"},
				{Kind: IntLiteral, Text: "3"},
				{Kind: Semicolon, Text: ";"},
			},
			expected: ast.Block(ast.Binary(ast.Add, ast.IntegerLiteral(1), ast.Binary(ast.Multiply, ast.IntegerLiteral(2), ast.Unary(ast.Negate, ast.IntegerLiteral(3))))),
		},
		{
			name: "unknown keyword",
			tokens: []Token{
				{Kind: Keyword, Text: "while"},
				{Kind: Semicolon, Text: ";"},
			},
			wantErr:  true,
			wantKind: UnknownKeyword,
		},
		{
			name: "unknown prefix operator",
			tokens: []Token{
				{Kind: UnaryOp, Text: "+"},
				{Kind: IntLiteral, Text: "1"},
				{Kind: Semicolon, Text: ";"},
			},
			wantErr:  true,
			wantKind: UnexpectedToken,
		},
		{
			name: "malformed float text",
			tokens: []Token{
				{Kind: FloatLiteral, Text: "1.2.3"},
				{Kind: Semicolon, Text: ";"},
			},
			wantErr:  true,
			wantKind: InvalidNumber,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.tokens)
			if tt.wantErr {
				var pe *ParseError
				if !errors.As(err, &pe) {
					t.Fatalf("Parse() error = %v, want *ParseError", err)
				}
				if pe.Kind != tt.wantKind {
					t.Errorf("Kind = %v, want %v", pe.Kind, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("Parse() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestParser_InputIsNotModified(t *testing.T) {
	tokens, err := Tokenize("f(1, 2);")
	if err != nil {
		t.Fatal(err)
	}
	snapshot := append([]Token(nil), tokens...)

	if _, err := Parse(tokens); err != nil {
		t.Fatal(err)
	}
	for i := range tokens {
		if tokens[i] != snapshot[i] {
			t.Errorf("token %d changed from %v to %v", i, snapshot[i], tokens[i])
		}
	}
}

func TestParseError_Message(t *testing.T) {
	_, err := ParseSource("foo(1 2);")
	want := "parse error at offset 6: unexpected token '2' in call arguments: expected ',' or ')'"
	if err == nil || err.Error() != want {
		t.Errorf("Error() = %v, want %q", err, want)
	}

	_, err = ParseSource("if true")
	want = "parse error at offset 7: unexpected end of input in if statement: expected '{' after condition"
	if err == nil || err.Error() != want {
		t.Errorf("Error() = %v, want %q", err, want)
	}
}
