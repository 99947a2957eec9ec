// File: table.go
// Title: mote Operator Table
// Description: The fixed table of operator lexemes with their precedence and
//              meaning. The lexer uses it to recognize operators by longest
//              match, the parser to decide how tightly they bind.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-12 v0.1.0: Arithmetic operators
// - 2026-10-16 v0.1.1: Comparison, logical and prefix operators

package operator

import (
	"sort"
	"strings"

	"github.com/msto63/mote/foundation/mote/ast"
)

// Fixity tells whether an operator sits between or in front of its operands
type Fixity int

const (
	Infix Fixity = iota
	Prefix
)

func (f Fixity) String() string {
	if f == Prefix {
		return "prefix"
	}
	return "infix"
}

// Descriptor describes one operator. Binary is meaningful for Infix
// descriptors, Unary for Prefix descriptors.
type Descriptor struct {
	Lexeme     string
	Precedence int
	Fixity     Fixity
	Binary     ast.BinaryOp
	Unary      ast.UnaryOp
}

// Precedence levels, higher binds tighter
const (
	PrecedenceOr             = 2
	PrecedenceAnd            = 4
	PrecedenceEquality       = 6
	PrecedenceRelational     = 8
	PrecedenceAdditive       = 10
	PrecedenceMultiplicative = 20
	PrecedencePrefix         = 30
)

var binaries = []Descriptor{
	{Lexeme: "||", Precedence: PrecedenceOr, Binary: ast.Or},
	{Lexeme: "&&", Precedence: PrecedenceAnd, Binary: ast.And},
	{Lexeme: "==", Precedence: PrecedenceEquality, Binary: ast.Equal},
	{Lexeme: "!=", Precedence: PrecedenceEquality, Binary: ast.NotEqual},
	{Lexeme: "<=", Precedence: PrecedenceRelational, Binary: ast.LessThanOrEqual},
	{Lexeme: ">=", Precedence: PrecedenceRelational, Binary: ast.GreaterThanOrEqual},
	{Lexeme: "<", Precedence: PrecedenceRelational, Binary: ast.LessThan},
	{Lexeme: ">", Precedence: PrecedenceRelational, Binary: ast.GreaterThan},
	{Lexeme: "+", Precedence: PrecedenceAdditive, Binary: ast.Add},
	{Lexeme: "-", Precedence: PrecedenceAdditive, Binary: ast.Subtract},
	{Lexeme: "*", Precedence: PrecedenceMultiplicative, Binary: ast.Multiply},
	{Lexeme: "/", Precedence: PrecedenceMultiplicative, Binary: ast.Divide},
	{Lexeme: "%", Precedence: PrecedenceMultiplicative, Binary: ast.Modulo},
}

var prefixes = []Descriptor{
	{Lexeme: "!", Precedence: PrecedencePrefix, Fixity: Prefix, Unary: ast.Not},
	{Lexeme: "-", Precedence: PrecedencePrefix, Fixity: Prefix, Unary: ast.Negate},
}

var (
	// lexemes holds every distinct lexeme, longest first
	lexemes    []string
	byBinary   = make(map[string]*Descriptor)
	byPrefix   = make(map[string]*Descriptor)
	binaryKind = make(map[ast.BinaryOp]*Descriptor)
	unaryKind  = make(map[ast.UnaryOp]*Descriptor)
)

func init() {
	seen := make(map[string]bool)
	for i := range binaries {
		d := &binaries[i]
		byBinary[d.Lexeme] = d
		binaryKind[d.Binary] = d
		if !seen[d.Lexeme] {
			seen[d.Lexeme] = true
			lexemes = append(lexemes, d.Lexeme)
		}
	}
	for i := range prefixes {
		d := &prefixes[i]
		byPrefix[d.Lexeme] = d
		unaryKind[d.Unary] = d
		if !seen[d.Lexeme] {
			seen[d.Lexeme] = true
			lexemes = append(lexemes, d.Lexeme)
		}
	}
	sort.SliceStable(lexemes, func(i, j int) bool {
		return len(lexemes[i]) > len(lexemes[j])
	})
}

// Match returns the longest operator lexeme that starts at src[i:]
func Match(src string, i int) (string, bool) {
	if i < 0 || i >= len(src) {
		return "", false
	}
	rest := src[i:]
	for _, lexeme := range lexemes {
		if strings.HasPrefix(rest, lexeme) {
			return lexeme, true
		}
	}
	return "", false
}

// LookupBinary returns the infix descriptor for a lexeme
func LookupBinary(lexeme string) (*Descriptor, bool) {
	d, ok := byBinary[lexeme]
	return d, ok
}

// LookupPrefix returns the prefix descriptor for a lexeme
func LookupPrefix(lexeme string) (*Descriptor, bool) {
	d, ok := byPrefix[lexeme]
	return d, ok
}

// ForBinary returns the descriptor of a binary operator kind
func ForBinary(op ast.BinaryOp) (*Descriptor, bool) {
	d, ok := binaryKind[op]
	return d, ok
}

// ForUnary returns the descriptor of a unary operator kind
func ForUnary(op ast.UnaryOp) (*Descriptor, bool) {
	d, ok := unaryKind[op]
	return d, ok
}

// Binaries returns a copy of the infix operators in table order
func Binaries() []Descriptor {
	return append([]Descriptor(nil), binaries...)
}

// Prefixes returns a copy of the prefix operators in table order
func Prefixes() []Descriptor {
	return append([]Descriptor(nil), prefixes...)
}

// Lexemes returns all operator lexemes, longest first
func Lexemes() []string {
	return append([]string(nil), lexemes...)
}
