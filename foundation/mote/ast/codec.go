// File: codec.go
// Title: AST Map Codec
// Description: Converts trees to and from generic maps so they can be encoded
//              as JSON, YAML or protobuf Struct values without a dedicated schema.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-13
//
// Change History:
// - 2026-10-13 v0.1.0: Initial implementation

package ast

import (
	"fmt"
	"math"
)

// ToMap converts a tree into nested map[string]interface{} and []interface{}
// values. The "kind" key holds the Kind name.
func ToMap(n *Node) map[string]interface{} {
	if n == nil {
		return nil
	}

	m := map[string]interface{}{"kind": n.Kind.String()}
	switch n.Kind {
	case KindInteger:
		m["value"] = n.Int
	case KindFloat:
		m["value"] = n.Float
	case KindString:
		m["value"] = n.Str
	case KindBoolean:
		m["value"] = n.Bool
	case KindVariable:
		m["name"] = n.Name
	case KindBlock:
		m["statements"] = toList(n.Statements)
	case KindIf:
		m["cond"] = ToMap(n.Cond)
		m["then"] = ToMap(n.Then)
		if n.Else != nil {
			m["else"] = ToMap(n.Else)
		}
	case KindCall:
		m["name"] = n.Name
		m["args"] = toList(n.Args)
	case KindReturn:
		m["value"] = ToMap(n.Value)
	case KindBinary:
		m["op"] = n.BinaryOp.String()
		m["left"] = ToMap(n.Left)
		m["right"] = ToMap(n.Right)
	case KindUnary:
		m["op"] = n.UnaryOp.String()
		m["operand"] = ToMap(n.Operand)
	}
	return m
}

func toList(nodes []*Node) []interface{} {
	list := make([]interface{}, len(nodes))
	for i, n := range nodes {
		list[i] = ToMap(n)
	}
	return list
}

// FromMap rebuilds a tree from the representation produced by ToMap.
// Numbers may arrive as any Go numeric type, as they do after a JSON or
// protobuf round trip.
func FromMap(m map[string]interface{}) (*Node, error) {
	name, _ := m["kind"].(string)
	kind, ok := ParseKind(name)
	if !ok {
		return nil, fmt.Errorf("unknown node kind %q", name)
	}

	switch kind {
	case KindInteger:
		f, ok := number(m["value"])
		if !ok || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
			return nil, fmt.Errorf("%s: invalid value %v", kind, m["value"])
		}
		return IntegerLiteral(int32(f)), nil
	case KindFloat:
		f, ok := number(m["value"])
		if !ok {
			return nil, fmt.Errorf("%s: invalid value %v", kind, m["value"])
		}
		return FloatLiteral(float32(f)), nil
	case KindString:
		s, ok := m["value"].(string)
		if !ok {
			return nil, fmt.Errorf("%s: invalid value %v", kind, m["value"])
		}
		return StringLiteral(s), nil
	case KindBoolean:
		b, ok := m["value"].(bool)
		if !ok {
			return nil, fmt.Errorf("%s: invalid value %v", kind, m["value"])
		}
		return BooleanLiteral(b), nil
	case KindVariable:
		s, ok := m["name"].(string)
		if !ok || s == "" {
			return nil, fmt.Errorf("%s: missing name", kind)
		}
		return Variable(s), nil
	case KindBlock:
		statements, err := fromList(m["statements"])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		return Block(statements...), nil
	case KindIf:
		cond, err := child(m, "cond")
		if err != nil {
			return nil, err
		}
		then, err := child(m, "then")
		if err != nil {
			return nil, err
		}
		var elseBranch *Node
		if _, present := m["else"]; present {
			if elseBranch, err = child(m, "else"); err != nil {
				return nil, err
			}
		}
		return If(cond, then, elseBranch), nil
	case KindCall:
		s, ok := m["name"].(string)
		if !ok || s == "" {
			return nil, fmt.Errorf("%s: missing name", kind)
		}
		args, err := fromList(m["args"])
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", kind, s, err)
		}
		return Call(s, args...), nil
	case KindReturn:
		value, err := child(m, "value")
		if err != nil {
			return nil, err
		}
		return Return(value), nil
	case KindBinary:
		opName, _ := m["op"].(string)
		op, ok := ParseBinaryOp(opName)
		if !ok {
			return nil, fmt.Errorf("%s: unknown operator %q", kind, opName)
		}
		left, err := child(m, "left")
		if err != nil {
			return nil, err
		}
		right, err := child(m, "right")
		if err != nil {
			return nil, err
		}
		return Binary(op, left, right), nil
	default:
		opName, _ := m["op"].(string)
		op, ok := ParseUnaryOp(opName)
		if !ok {
			return nil, fmt.Errorf("%s: unknown operator %q", kind, opName)
		}
		operand, err := child(m, "operand")
		if err != nil {
			return nil, err
		}
		return Unary(op, operand), nil
	}
}

func child(m map[string]interface{}, key string) (*Node, error) {
	sub, ok := m[key].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%v: missing %q", m["kind"], key)
	}
	return FromMap(sub)
}

func fromList(v interface{}) ([]*Node, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", v)
	}
	nodes := make([]*Node, 0, len(list))
	for i, item := range list {
		sub, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("item %d: expected an object, got %T", i, item)
		}
		n, err := FromMap(sub)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func number(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}
