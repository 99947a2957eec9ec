package operator

import (
	"testing"

	"github.com/msto63/mote/foundation/mote/ast"
)

func TestMatchLongestFirst(t *testing.T) {
	tests := []struct {
		src  string
		at   int
		want string
		ok   bool
	}{
		{"a == b", 2, "==", true},
		{"a <= b", 2, "<=", true},
		{"a < b", 2, "<", true},
		{"!= x", 0, "!=", true},
		{"!x", 0, "!", true},
		{"x&&y", 1, "&&", true},
		{"&y", 0, "", false},
		{"=", 0, "", false},
		{"1-2", 1, "-", true},
		{"abc", 0, "", false},
		{"", 0, "", false},
		{"+", 5, "", false},
	}

	for _, tt := range tests {
		got, ok := Match(tt.src, tt.at)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Match(%q, %d) = %q, %v, want %q, %v", tt.src, tt.at, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMultiplicativeBindsTighter(t *testing.T) {
	for _, add := range []string{"+", "-"} {
		for _, mul := range []string{"*", "/", "%"} {
			a, _ := LookupBinary(add)
			m, _ := LookupBinary(mul)
			if m.Precedence <= a.Precedence {
				t.Errorf("%s (%d) should bind tighter than %s (%d)", mul, m.Precedence, add, a.Precedence)
			}
		}
	}
}

func TestPrecedenceOrdering(t *testing.T) {
	chain := []string{"||", "&&", "==", "<", "+", "*"}
	for i := 1; i < len(chain); i++ {
		lo, _ := LookupBinary(chain[i-1])
		hi, _ := LookupBinary(chain[i])
		if hi.Precedence <= lo.Precedence {
			t.Errorf("%s should bind tighter than %s", chain[i], chain[i-1])
		}
	}
	neg, _ := LookupPrefix("-")
	mul, _ := LookupBinary("*")
	if neg.Precedence <= mul.Precedence {
		t.Error("prefix operators should bind tighter than every infix operator")
	}
}

func TestLookups(t *testing.T) {
	d, ok := LookupBinary("%")
	if !ok || d.Binary != ast.Modulo || d.Fixity != Infix {
		t.Errorf("LookupBinary(%%) = %+v, %v", d, ok)
	}
	if _, ok := LookupBinary("!"); ok {
		t.Error("! must not be an infix operator")
	}
	p, ok := LookupPrefix("-")
	if !ok || p.Unary != ast.Negate || p.Fixity != Prefix {
		t.Errorf("LookupPrefix(-) = %+v, %v", p, ok)
	}
	if _, ok := LookupPrefix("+"); ok {
		t.Error("+ must not be a prefix operator")
	}

	for _, b := range Binaries() {
		d, ok := ForBinary(b.Binary)
		if !ok || d.Lexeme != b.Lexeme {
			t.Errorf("ForBinary(%v) = %+v, %v", b.Binary, d, ok)
		}
	}
	if d, ok := ForUnary(ast.Not); !ok || d.Lexeme != "!" {
		t.Errorf("ForUnary(Not) = %+v, %v", d, ok)
	}
}

func TestTableIsReadOnly(t *testing.T) {
	list := Binaries()
	list[0].Precedence = 999
	if d, _ := LookupBinary(list[0].Lexeme); d.Precedence == 999 {
		t.Error("Binaries() exposed the shared table")
	}

	lex := Lexemes()
	for i := 1; i < len(lex); i++ {
		if len(lex[i]) > len(lex[i-1]) {
			t.Errorf("Lexemes() not longest first: %v", lex)
		}
	}
}
