package render

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/tree"
	moteast "github.com/msto63/mote/foundation/mote/ast"
	"gopkg.in/yaml.v3"
)

// Format selects an output representation
type Format string

const (
	FormatTree  Format = "tree"
	FormatSExpr Format = "sexpr"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
	FormatPlain Format = "plain"
)

// TreeFormats lists the formats accepted for syntax trees
var TreeFormats = []Format{FormatTree, FormatSExpr, FormatJSON, FormatYAML}

// TokenFormats lists the formats accepted for token streams
var TokenFormats = []Format{FormatTable, FormatPlain, FormatJSON, FormatYAML}

// ParseFormat validates name against the allowed formats
func ParseFormat(name string, allowed []Format) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, a := range allowed {
		if f == a {
			return f, nil
		}
	}

	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return "", fmt.Errorf("unknown format %q (want one of %s)", name, strings.Join(names, ", "))
}

// AST renders a syntax tree in the given format
func AST(root *moteast.Node, format Format) (string, error) {
	switch format {
	case FormatTree:
		return Tree(root), nil
	case FormatSExpr:
		return root.String(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(moteast.ToMap(root), "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	case FormatYAML:
		data, err := yaml.Marshal(moteast.ToMap(root))
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\n"), nil
	default:
		return "", fmt.Errorf("format %q not supported for syntax trees", format)
	}
}

// Tree renders a syntax tree with box drawing characters
func Tree(root *moteast.Node) string {
	t := buildTree(root).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(EnumeratorStyle).
		RootStyle(RootStyle).
		ItemStyle(NodeStyle)
	return t.String()
}

func buildTree(n *moteast.Node) *tree.Tree {
	if n == nil {
		return tree.Root("<nil>")
	}

	t := tree.Root(Label(n))
	switch n.Kind {
	case moteast.KindBlock:
		for _, s := range n.Statements {
			t.Child(child(s))
		}
	case moteast.KindIf:
		t.Child(tree.Root("cond").Child(child(n.Cond)))
		t.Child(tree.Root("then").Child(child(n.Then)))
		if n.Else != nil {
			t.Child(tree.Root("else").Child(child(n.Else)))
		}
	case moteast.KindCall:
		for _, a := range n.Args {
			t.Child(child(a))
		}
	case moteast.KindReturn:
		t.Child(child(n.Value))
	case moteast.KindBinary:
		t.Child(child(n.Left), child(n.Right))
	case moteast.KindUnary:
		t.Child(child(n.Operand))
	}
	return t
}

// child renders leaves as plain labels and composite nodes as subtrees
func child(n *moteast.Node) any {
	if n != nil && (n.IsLiteral() || n.Kind == moteast.KindVariable) {
		return Label(n)
	}
	return buildTree(n)
}

// Label returns the one line description of a node
func Label(n *moteast.Node) string {
	switch n.Kind {
	case moteast.KindInteger:
		return "Int " + strconv.FormatInt(int64(n.Int), 10)
	case moteast.KindFloat:
		return "Float " + strconv.FormatFloat(float64(n.Float), 'g', -1, 32)
	case moteast.KindString:
		return "String " + strconv.Quote(n.Str)
	case moteast.KindBoolean:
		return "Bool " + strconv.FormatBool(n.Bool)
	case moteast.KindVariable:
		return "Var " + n.Name
	case moteast.KindBlock:
		return fmt.Sprintf("Block (%d)", len(n.Statements))
	case moteast.KindIf:
		return "If"
	case moteast.KindCall:
		return "Call " + n.Name
	case moteast.KindReturn:
		return "Return"
	case moteast.KindBinary:
		return "Binary " + n.BinaryOp.String()
	case moteast.KindUnary:
		return "Unary " + n.UnaryOp.String()
	default:
		return n.Kind.String()
	}
}

// Stats renders tree statistics on one line
func Stats(stats moteast.Stats, tokens int) string {
	return fmt.Sprintf("%d tokens, %d nodes, depth %d, %d calls, %d returns",
		tokens, stats.Nodes, stats.Depth, stats.Calls, stats.Returns)
}
