// File: mote_test.go
// Title: mote Engine Tests
// Description: Tests for the engine facade: limits, error wrapping and
//              statistics.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-13
// Modified: 2026-10-16
//
// Change History:
// - 2026-10-13 v0.1.0: Initial test suite

package mote

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	moteerror "github.com/msto63/mote/foundation/core/error"
	motelog "github.com/msto63/mote/foundation/core/log"
	moteast "github.com/msto63/mote/foundation/mote/ast"
	moteparser "github.com/msto63/mote/foundation/mote/parser"
)

func newTestEngine(t *testing.T, opts Options) (*Engine, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	if opts.Logger == nil {
		opts.Logger = motelog.NewWithConfig(motelog.Config{Level: motelog.LevelDebug, Format: motelog.FormatJSON, Output: buf})
	}
	engine, err := NewEngine(opts)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine, buf
}

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine()
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if engine.MaxSourceLength() != DefaultMaxSourceLength {
		t.Errorf("MaxSourceLength() = %d, want %d", engine.MaxSourceLength(), DefaultMaxSourceLength)
	}

	if _, err := NewEngine(Options{MaxSourceLength: -1}); err == nil {
		t.Error("NewEngine() with negative limit should fail")
	}
}

func TestEngine_Parse(t *testing.T) {
	engine, logs := newTestEngine(t, Options{})

	root, err := engine.Parse("if n < 2 { return n; } else { return fib(n - 1) + fib(n - 2); }")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := moteast.Block(moteast.If(
		moteast.Binary(moteast.LessThan, moteast.Variable("n"), moteast.IntegerLiteral(2)),
		moteast.Block(moteast.Return(moteast.Variable("n"))),
		moteast.Block(moteast.Return(moteast.Binary(moteast.Add,
			moteast.Call("fib", moteast.Binary(moteast.Subtract, moteast.Variable("n"), moteast.IntegerLiteral(1))),
			moteast.Call("fib", moteast.Binary(moteast.Subtract, moteast.Variable("n"), moteast.IntegerLiteral(2))),
		))),
	))
	if !root.Equal(want) {
		t.Errorf("Parse() = %s, want %s", root, want)
	}

	if !strings.Contains(logs.String(), "mote_parse completed") {
		t.Errorf("expected a completion record, got %q", logs.String())
	}
}

func TestEngine_Analyze(t *testing.T) {
	engine, _ := newTestEngine(t, Options{})

	result, err := engine.Analyze("print(1 + 2); return x;")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(result.Tokens) != 10 {
		t.Errorf("Tokens = %d, want 10", len(result.Tokens))
	}
	if result.Stats.Nodes != 7 || result.Stats.Calls != 1 || result.Stats.Returns != 1 {
		t.Errorf("Stats = %+v", result.Stats)
	}
	if result.Stats.Depth != 4 {
		t.Errorf("Depth = %d, want 4", result.Stats.Depth)
	}
}

func TestEngine_Errors(t *testing.T) {
	tests := []struct {
		name       string
		source     string
		wantCode   moteerror.Code
		wantOffset int
		wantOp     string
	}{
		{"bad character", "a = 1;", moteerror.CodeLexical, 2, "tokenize"},
		{"unterminated string", `x("abc`, moteerror.CodeUnterminatedString, 2, "tokenize"},
		{"missing body", "if true", moteerror.CodeUnexpectedEOF, 7, "parse"},
		{"unexpected token", "f(1 2);", moteerror.CodeSyntax, 4, "parse"},
		{"overflow", "4294967296;", moteerror.CodeInvalidLiteral, 0, "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, _ := newTestEngine(t, Options{})
			root, err := engine.Parse(tt.source)
			if err == nil {
				t.Fatalf("Parse(%q) = %s, want error", tt.source, root)
			}
			if root != nil {
				t.Error("Parse() returned a tree alongside an error")
			}

			if got := moteerror.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %v, want %v", got, tt.wantCode)
			}
			offset, ok := Offset(err)
			if !ok || offset != tt.wantOffset {
				t.Errorf("Offset() = %d, %v, want %d", offset, ok, tt.wantOffset)
			}

			var structured *moteerror.Error
			if !errors.As(err, &structured) {
				t.Fatalf("error %T is not structured", err)
			}
			if structured.Operation() != tt.wantOp {
				t.Errorf("Operation() = %q, want %q", structured.Operation(), tt.wantOp)
			}
			if d, _ := structured.Detail("offset"); d != tt.wantOffset {
				t.Errorf("offset detail = %v, want %d", d, tt.wantOffset)
			}
			if structured.Severity() != moteerror.SeverityLow {
				t.Errorf("Severity() = %v, want low", structured.Severity())
			}
		})
	}
}

func TestEngine_ParseErrorReachable(t *testing.T) {
	engine, _ := newTestEngine(t, Options{})
	_, err := engine.Parse("return 1")

	var pe *moteparser.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("errors.As(*ParseError) failed for %v", err)
	}
	if pe.Kind != moteparser.UnexpectedEOF {
		t.Errorf("Kind = %v, want UnexpectedEOF", pe.Kind)
	}
}

func TestEngine_SourceTooLarge(t *testing.T) {
	engine, _ := newTestEngine(t, Options{MaxSourceLength: 8})

	_, err := engine.Parse("return 12345;")
	if !moteerror.HasCode(err, moteerror.CodeSourceTooLarge) {
		t.Fatalf("error = %v, want SOURCE_TOO_LARGE", err)
	}
	if _, ok := Offset(err); ok {
		t.Error("Offset() should not report an offset for size errors")
	}

	if _, err := engine.Parse("x;"); err != nil {
		t.Errorf("Parse() under the limit error = %v", err)
	}
}

func TestEngine_Concurrent(t *testing.T) {
	engine, _ := newTestEngine(t, Options{Logger: motelog.NewWithConfig(motelog.Config{Level: motelog.LevelError, Output: &bytes.Buffer{}})})
	want := moteast.Block(moteast.Return(moteast.Binary(moteast.Multiply, moteast.IntegerLiteral(6), moteast.IntegerLiteral(7))))

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			root, err := engine.Parse("return 6 * 7;")
			if err != nil {
				errs <- err
				return
			}
			if !root.Equal(want) {
				errs <- errors.New("unexpected tree " + root.String())
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
