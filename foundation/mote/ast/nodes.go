// File: nodes.go
// Title: mote AST Node Definitions
// Description: Defines the syntax tree produced by the parser. A node is a
//              tagged struct: Kind selects which payload fields are meaningful,
//              and consumers switch on Kind instead of implementing visitors.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-12 v0.1.0: Initial node definitions
// - 2026-10-17 v0.1.1: Else branch may hold another If

package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the variant of a Node
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindString
	KindBoolean
	KindVariable
	KindBlock
	KindIf
	KindCall
	KindReturn
	KindBinary
	KindUnary
)

var kindNames = [...]string{
	KindInteger:  "IntegerLiteral",
	KindFloat:    "FloatLiteral",
	KindString:   "StringLiteral",
	KindBoolean:  "BooleanLiteral",
	KindVariable: "Variable",
	KindBlock:    "Block",
	KindIf:       "If",
	KindCall:     "Call",
	KindReturn:   "Return",
	KindBinary:   "BinaryExpr",
	KindUnary:    "UnaryExpr",
}

// String returns the variant name
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// ParseKind is the inverse of Kind.String
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

// BinaryOp is the operator of a BinaryExpr
type BinaryOp int

const (
	Or BinaryOp = iota
	And
	LessThan
	GreaterThan
	LessThanOrEqual
	GreaterThanOrEqual
	Equal
	NotEqual
	Add
	Subtract
	Multiply
	Divide
	Modulo
)

var binaryNames = [...]string{
	Or:                 "Or",
	And:                "And",
	LessThan:           "LessThan",
	GreaterThan:        "GreaterThan",
	LessThanOrEqual:    "LessThanOrEqual",
	GreaterThanOrEqual: "GreaterThanOrEqual",
	Equal:              "Equal",
	NotEqual:           "NotEqual",
	Add:                "Add",
	Subtract:           "Subtract",
	Multiply:           "Multiply",
	Divide:             "Divide",
	Modulo:             "Modulo",
}

func (op BinaryOp) String() string {
	if op >= 0 && int(op) < len(binaryNames) {
		return binaryNames[op]
	}
	return "BinaryOp(" + strconv.Itoa(int(op)) + ")"
}

// ParseBinaryOp is the inverse of BinaryOp.String
func ParseBinaryOp(name string) (BinaryOp, bool) {
	for op, n := range binaryNames {
		if n == name {
			return BinaryOp(op), true
		}
	}
	return 0, false
}

// UnaryOp is the operator of a UnaryExpr
type UnaryOp int

const (
	Not UnaryOp = iota
	Negate
)

func (op UnaryOp) String() string {
	switch op {
	case Not:
		return "Not"
	case Negate:
		return "Negate"
	default:
		return "UnaryOp(" + strconv.Itoa(int(op)) + ")"
	}
}

// ParseUnaryOp is the inverse of UnaryOp.String
func ParseUnaryOp(name string) (UnaryOp, bool) {
	switch name {
	case "Not":
		return Not, true
	case "Negate":
		return Negate, true
	}
	return 0, false
}

// Node is a syntax tree node. Only the fields belonging to Kind are set:
//
//	KindInteger   Int
//	KindFloat     Float
//	KindString    Str
//	KindBoolean   Bool
//	KindVariable  Name
//	KindBlock     Statements
//	KindIf        Cond, Then, Else (optional, a Block or another If)
//	KindCall      Name, Args
//	KindReturn    Value
//	KindBinary    BinaryOp, Left, Right
//	KindUnary     UnaryOp, Operand
//
// Each node owns its children exclusively.
type Node struct {
	Kind Kind

	Int   int32
	Float float32
	Str   string
	Bool  bool
	Name  string

	Statements []*Node

	Cond *Node
	Then *Node
	Else *Node

	Args []*Node

	Value *Node

	BinaryOp BinaryOp
	Left     *Node
	Right    *Node

	UnaryOp UnaryOp
	Operand *Node
}

// IntegerLiteral creates an integer literal node
func IntegerLiteral(v int32) *Node {
	return &Node{Kind: KindInteger, Int: v}
}

// FloatLiteral creates a float literal node
func FloatLiteral(v float32) *Node {
	return &Node{Kind: KindFloat, Float: v}
}

// StringLiteral creates a string literal node
func StringLiteral(s string) *Node {
	return &Node{Kind: KindString, Str: s}
}

// BooleanLiteral creates a boolean literal node
func BooleanLiteral(b bool) *Node {
	return &Node{Kind: KindBoolean, Bool: b}
}

// Variable creates a variable reference node
func Variable(name string) *Node {
	return &Node{Kind: KindVariable, Name: name}
}

// Block creates a block node. A nil statement list is stored as empty.
func Block(statements ...*Node) *Node {
	if statements == nil {
		statements = []*Node{}
	}
	return &Node{Kind: KindBlock, Statements: statements}
}

// If creates a conditional node; elseBranch may be nil
func If(cond, then, elseBranch *Node) *Node {
	return &Node{Kind: KindIf, Cond: cond, Then: then, Else: elseBranch}
}

// Call creates a call node. A nil argument list is stored as empty.
func Call(name string, args ...*Node) *Node {
	if args == nil {
		args = []*Node{}
	}
	return &Node{Kind: KindCall, Name: name, Args: args}
}

// Return creates a return statement node
func Return(value *Node) *Node {
	return &Node{Kind: KindReturn, Value: value}
}

// Binary creates a binary expression node
func Binary(op BinaryOp, left, right *Node) *Node {
	return &Node{Kind: KindBinary, BinaryOp: op, Left: left, Right: right}
}

// Unary creates a unary expression node
func Unary(op UnaryOp, operand *Node) *Node {
	return &Node{Kind: KindUnary, UnaryOp: op, Operand: operand}
}

// IsLiteral reports whether the node is one of the literal kinds
func (n *Node) IsLiteral() bool {
	switch n.Kind {
	case KindInteger, KindFloat, KindString, KindBoolean:
		return true
	}
	return false
}

// Children returns the direct children of the node in source order
func (n *Node) Children() []*Node {
	switch n.Kind {
	case KindBlock:
		return n.Statements
	case KindIf:
		if n.Else != nil {
			return []*Node{n.Cond, n.Then, n.Else}
		}
		return []*Node{n.Cond, n.Then}
	case KindCall:
		return n.Args
	case KindReturn:
		return []*Node{n.Value}
	case KindBinary:
		return []*Node{n.Left, n.Right}
	case KindUnary:
		return []*Node{n.Operand}
	default:
		return nil
	}
}

// Equal reports whether two trees are structurally identical
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Kind != other.Kind {
		return false
	}

	switch n.Kind {
	case KindInteger:
		return n.Int == other.Int
	case KindFloat:
		return n.Float == other.Float
	case KindString:
		return n.Str == other.Str
	case KindBoolean:
		return n.Bool == other.Bool
	case KindVariable:
		return n.Name == other.Name
	case KindBlock:
		return equalLists(n.Statements, other.Statements)
	case KindIf:
		return n.Cond.Equal(other.Cond) && n.Then.Equal(other.Then) && n.Else.Equal(other.Else)
	case KindCall:
		return n.Name == other.Name && equalLists(n.Args, other.Args)
	case KindReturn:
		return n.Value.Equal(other.Value)
	case KindBinary:
		return n.BinaryOp == other.BinaryOp && n.Left.Equal(other.Left) && n.Right.Equal(other.Right)
	case KindUnary:
		return n.UnaryOp == other.UnaryOp && n.Operand.Equal(other.Operand)
	}
	return false
}

func equalLists(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// String renders the node as an S-expression, e.g.
// (block (return (binary Add (int 1) (int 2))))
func (n *Node) String() string {
	var sb strings.Builder
	writeSexpr(&sb, n)
	return sb.String()
}

func writeSexpr(sb *strings.Builder, n *Node) {
	if n == nil {
		sb.WriteString("nil")
		return
	}

	switch n.Kind {
	case KindInteger:
		fmt.Fprintf(sb, "(int %d)", n.Int)
	case KindFloat:
		fmt.Fprintf(sb, "(float %s)", strconv.FormatFloat(float64(n.Float), 'g', -1, 32))
	case KindString:
		fmt.Fprintf(sb, "(string %s)", strconv.Quote(n.Str))
	case KindBoolean:
		fmt.Fprintf(sb, "(bool %t)", n.Bool)
	case KindVariable:
		fmt.Fprintf(sb, "(var %s)", n.Name)
	case KindBlock:
		sb.WriteString("(block")
		writeList(sb, n.Statements)
		sb.WriteString(")")
	case KindIf:
		sb.WriteString("(if ")
		writeSexpr(sb, n.Cond)
		sb.WriteString(" ")
		writeSexpr(sb, n.Then)
		if n.Else != nil {
			sb.WriteString(" ")
			writeSexpr(sb, n.Else)
		}
		sb.WriteString(")")
	case KindCall:
		sb.WriteString("(call " + n.Name)
		writeList(sb, n.Args)
		sb.WriteString(")")
	case KindReturn:
		sb.WriteString("(return ")
		writeSexpr(sb, n.Value)
		sb.WriteString(")")
	case KindBinary:
		sb.WriteString("(binary " + n.BinaryOp.String() + " ")
		writeSexpr(sb, n.Left)
		sb.WriteString(" ")
		writeSexpr(sb, n.Right)
		sb.WriteString(")")
	case KindUnary:
		sb.WriteString("(unary " + n.UnaryOp.String() + " ")
		writeSexpr(sb, n.Operand)
		sb.WriteString(")")
	default:
		sb.WriteString("(" + n.Kind.String() + ")")
	}
}

func writeList(sb *strings.Builder, nodes []*Node) {
	for _, child := range nodes {
		sb.WriteString(" ")
		writeSexpr(sb, child)
	}
}
