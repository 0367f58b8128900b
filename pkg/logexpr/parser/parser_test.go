package parser

import (
	"testing"

	"github.com/archtmpl/logexpr/pkg/logexpr/value"
)

func TestParseSimpleVariable(t *testing.T) {
	toks, err := Parse("${a}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 1 || toks[0].Kind != TokVar || toks[0].Name != "a" {
		t.Fatalf("got %+v", toks)
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	// a || b && c  ->  a b c AND OR  (AND binds tighter than OR)
	toks, err := Parse("${a} || ${b} && ${c}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Token{VarToken("a"), VarToken("b"), VarToken("c"), OpToken(AND), OpToken(OR)}
	assertTokensEqual(t, toks, want)
}

func TestParseChainedUnaryNot(t *testing.T) {
	// NOT NOT ${a} -> a NOT NOT
	toks, err := Parse("NOT NOT ${a}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Token{VarToken("a"), OpToken(NOT), OpToken(NOT)}
	assertTokensEqual(t, toks, want)
}

func TestParseParenthesesOverridePrecedence(t *testing.T) {
	toks, err := Parse("(${a} || ${b}) && ${c}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Token{VarToken("a"), VarToken("b"), OpToken(OR), VarToken("c"), OpToken(AND)}
	assertTokensEqual(t, toks, want)
}

func TestParseCastRequiresVariable(t *testing.T) {
	if _, err := Parse("(int) 'x'"); err == nil {
		t.Fatalf("expected a FormatError for a cast applied to a non-variable")
	}
}

func TestParseNotRequiresBooleanLiteral(t *testing.T) {
	if _, err := Parse("NOT 5"); err == nil {
		t.Fatalf("expected a FormatError for NOT applied to a non-boolean literal")
	}
}

func TestParseBoundaryErrors(t *testing.T) {
	cases := []string{"", "(", "1 =="}
	for _, src := range cases {
		if _, err := Parse(src); err == nil {
			t.Errorf("Parse(%q): expected FormatError, got nil", src)
		}
	}
}

func TestParseArrayAndOperators(t *testing.T) {
	toks, err := Parse("${b} contains 'x' && sizeof ${b} == 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Token{
		VarToken("b"), OperandToken(value.NewString("x")), OpToken(CONTAINS),
		VarToken("b"), OpToken(SIZEOF), OperandToken(value.NewInt(2)), OpToken(EQUAL),
		OpToken(AND),
	}
	assertTokensEqual(t, toks, want)
}

func assertTokensEqual(t *testing.T, got, want []Token) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d\ngot:  %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("token[%d] = %v, want %v\ngot:  %v\nwant: %v", i, got[i], want[i], got, want)
		}
	}
}
