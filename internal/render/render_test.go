package render

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	moteast "github.com/msto63/mote/foundation/mote/ast"
	moteparser "github.com/msto63/mote/foundation/mote/parser"
	"github.com/msto63/mote/internal/frontend"
	"github.com/msto63/mote/internal/history"
	"github.com/msto63/mote/pkg/core/health"
	"gopkg.in/yaml.v3"
)

func sampleTree() *moteast.Node {
	return moteast.Block(
		moteast.If(
			moteast.Binary(moteast.LessThan, moteast.Variable("n"), moteast.IntegerLiteral(2)),
			moteast.Block(moteast.Return(moteast.Variable("n"))),
			nil,
		),
		moteast.Call("print", moteast.StringLiteral("hi"), moteast.Unary(moteast.Negate, moteast.FloatLiteral(1.5))),
	)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		allowed []Format
		want    Format
		wantErr bool
	}{
		{"tree", TreeFormats, FormatTree, false},
		{" JSON ", TreeFormats, FormatJSON, false},
		{"table", TreeFormats, "", true},
		{"table", TokenFormats, FormatTable, false},
		{"xml", TokenFormats, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input, tt.allowed)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAST_Tree(t *testing.T) {
	out, err := AST(sampleTree(), FormatTree)
	if err != nil {
		t.Fatalf("AST() error = %v", err)
	}

	for _, want := range []string{"Block (2)", "If", "cond", "Binary LessThan", "Var n", "Int 2", "Return", "Call print", `String "hi"`, "Unary Negate", "Float 1.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "else") {
		t.Errorf("tree output should omit a missing else branch:\n%s", out)
	}
}

func TestAST_SExpr(t *testing.T) {
	root := sampleTree()
	out, err := AST(root, FormatSExpr)
	if err != nil {
		t.Fatalf("AST() error = %v", err)
	}
	if out != root.String() {
		t.Errorf("AST(sexpr) = %q, want %q", out, root.String())
	}
}

func TestAST_Structured(t *testing.T) {
	root := sampleTree()

	t.Run("json", func(t *testing.T) {
		out, err := AST(root, FormatJSON)
		if err != nil {
			t.Fatalf("AST() error = %v", err)
		}
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(out), &m); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		back, err := moteast.FromMap(m)
		if err != nil {
			t.Fatalf("FromMap() error = %v", err)
		}
		if !back.Equal(root) {
			t.Errorf("decoded tree = %s, want %s", back, root)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := AST(root, FormatYAML)
		if err != nil {
			t.Fatalf("AST() error = %v", err)
		}
		var m map[string]interface{}
		if err := yaml.Unmarshal([]byte(out), &m); err != nil {
			t.Fatalf("output is not YAML: %v", err)
		}
		if m["kind"] != "Block" {
			t.Errorf("root kind = %v, want Block", m["kind"])
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		if _, err := AST(root, FormatTable); err == nil {
			t.Error("AST(table) expected error")
		}
	})
}

func TestTokens(t *testing.T) {
	tokens, err := moteparser.Tokenize(`f("a b", 12);`)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	t.Run("table", func(t *testing.T) {
		out, err := Tokens(tokens, FormatTable)
		if err != nil {
			t.Fatalf("Tokens() error = %v", err)
		}
		for _, want := range []string{"OFFSET", "KIND", "Identifier", "StringLiteral", `"a b"`, "IntLiteral", "Semicolon"} {
			if !strings.Contains(out, want) {
				t.Errorf("table missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("plain", func(t *testing.T) {
		out, err := Tokens(tokens, FormatPlain)
		if err != nil {
			t.Fatalf("Tokens() error = %v", err)
		}
		lines := strings.Split(out, "\n")
		if len(lines) != len(tokens) {
			t.Fatalf("got %d lines, want %d", len(lines), len(tokens))
		}
		if lines[0] != "0\tIdentifier\tf" {
			t.Errorf("first line = %q", lines[0])
		}
		if lines[4] != "9\tIntLiteral\t12" {
			t.Errorf("fifth line = %q", lines[4])
		}
	})

	t.Run("json", func(t *testing.T) {
		out, err := Tokens(tokens, FormatJSON)
		if err != nil {
			t.Fatalf("Tokens() error = %v", err)
		}
		var records []tokenRecord
		if err := json.Unmarshal([]byte(out), &records); err != nil {
			t.Fatalf("output is not JSON: %v", err)
		}
		if len(records) != len(tokens) || records[2].Text != "a b" || records[2].Offset != 2 {
			t.Errorf("records = %+v", records)
		}
	})
}

func TestLocate(t *testing.T) {
	source := "a;\nbb;\n\ncc"
	tests := []struct {
		offset int
		want   Location
	}{
		{0, Location{1, 1}},
		{1, Location{1, 2}},
		{3, Location{2, 1}},
		{5, Location{2, 3}},
		{7, Location{3, 1}},
		{9, Location{4, 2}},
		{100, Location{4, 3}},
		{-1, Location{1, 1}},
	}

	for _, tt := range tests {
		if got := Locate(source, tt.offset); got != tt.want {
			t.Errorf("Locate(%d) = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestDiagnostic(t *testing.T) {
	source := "x;\nf(1 2);"
	info := &frontend.ErrorInfo{
		Kind:    frontend.KindParse,
		Code:    "SYNTAX",
		Message: "unexpected token",
		Offset:  7,
	}

	out := Diagnostic("demo.mote", source, info)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "error[SYNTAX]: unexpected token") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "demo.mote:2:5") {
		t.Errorf("location = %q", lines[1])
	}
	if !strings.HasSuffix(lines[3], "f(1 2);") {
		t.Errorf("source line = %q", lines[3])
	}
	if !strings.HasSuffix(lines[4], "|     ^") {
		t.Errorf("caret line = %q", lines[4])
	}

	noOffset := Diagnostic("demo.mote", source, &frontend.ErrorInfo{Code: "SOURCE_TOO_LARGE", Message: "too big", Offset: -1})
	if strings.Contains(noOffset, "\n") {
		t.Errorf("diagnostic without offset should be one line: %q", noOffset)
	}

	if Diagnostic("x", "", nil) != "" {
		t.Error("Diagnostic(nil) should be empty")
	}
}

func TestHistory(t *testing.T) {
	runs := []*history.Run{
		{ID: "0123456789abcdef", Timestamp: time.Now(), Origin: history.OriginCLI, Operation: "parse", Name: "fib.mote", OK: true, Tokens: 30, Nodes: 17, Duration: 42 * time.Microsecond},
		{ID: "fedcba9876543210", Timestamp: time.Now(), Origin: history.OriginGRPC, Operation: "parse", Name: "bad", ErrorCode: "SYNTAX", ErrorOffset: 3},
	}

	out, err := History(runs, FormatTable)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	for _, want := range []string{"01234567", "fedcba98", "fib.mote", "grpc", "SYNTAX", "ok", "42µs"} {
		if !strings.Contains(out, want) {
			t.Errorf("history table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "0123456789abcdef") {
		t.Error("history table should shorten run IDs")
	}

	empty, err := History(nil, FormatTable)
	if err != nil || !strings.Contains(empty, "no runs recorded") {
		t.Errorf("History(nil) = %q, %v", empty, err)
	}

	js, err := History(runs, FormatJSON)
	if err != nil || !strings.Contains(js, `"error_code": "SYNTAX"`) {
		t.Errorf("History(json) = %s, %v", js, err)
	}
}

func TestHistoryStats(t *testing.T) {
	out := HistoryStats(&history.Stats{
		Total:    5,
		Failures: 2,
		ByCode:   map[string]int64{"SYNTAX": 1, "LEXICAL": 1},
		LastRun:  time.Now(),
	})
	for _, want := range []string{"runs:     5", "failures: 2", "last run:", "LEXICAL", "SYNTAX"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "LEXICAL") > strings.Index(out, "SYNTAX") {
		t.Error("codes should be sorted")
	}
}

func TestHealthReport(t *testing.T) {
	report := &health.Report{
		Service: "mote",
		Version: "0.1.0",
		Status:  health.StatusDegraded,
		Checks: []health.CheckResult{
			{Name: "engine", Status: health.StatusHealthy, Message: "probe parsed"},
			{Name: "history", Status: health.StatusDegraded, Message: "database is locked"},
		},
	}

	out := HealthReport(report)
	for _, want := range []string{"mote 0.1.0: degraded", "engine", "probe parsed", "database is locked"} {
		if !strings.Contains(out, want) {
			t.Errorf("health report missing %q:\n%s", want, out)
		}
	}
}
