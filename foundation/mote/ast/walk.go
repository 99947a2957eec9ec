// File: walk.go
// Title: AST Traversal and Statistics
// Description: Pre-order traversal over the tagged node tree and summary
//              statistics used by the command line tools and the history store.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-12
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-12 v0.1.0: Initial implementation

package ast

// WalkFunc is called for every node with its depth (root = 1). Returning
// false skips the node's children.
type WalkFunc func(n *Node, depth int) bool

// Walk visits root and its descendants in pre-order
func Walk(root *Node, fn WalkFunc) {
	walk(root, 1, fn)
}

func walk(n *Node, depth int, fn WalkFunc) {
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, child := range n.Children() {
		walk(child, depth+1, fn)
	}
}

// Stats summarizes a tree
type Stats struct {
	Nodes   int          `json:"nodes" yaml:"nodes"`
	Depth   int          `json:"depth" yaml:"depth"`
	Calls   int          `json:"calls" yaml:"calls"`
	Returns int          `json:"returns" yaml:"returns"`
	ByKind  map[Kind]int `json:"-" yaml:"-"`
}

// Collect gathers statistics over the tree rooted at root
func Collect(root *Node) Stats {
	stats := Stats{ByKind: make(map[Kind]int)}
	Walk(root, func(n *Node, depth int) bool {
		stats.Nodes++
		stats.ByKind[n.Kind]++
		if depth > stats.Depth {
			stats.Depth = depth
		}
		switch n.Kind {
		case KindCall:
			stats.Calls++
		case KindReturn:
			stats.Returns++
		}
		return true
	})
	return stats
}

// KindCounts returns the per-kind counts keyed by kind name
func (s Stats) KindCounts() map[string]int {
	counts := make(map[string]int, len(s.ByKind))
	for k, v := range s.ByKind {
		counts[k.String()] = v
	}
	return counts
}
