package parser

import (
	"testing"

	"github.com/archtmpl/logexpr/pkg/logexpr/value"
)

func TestTokenLessOrdersVarsBeforeOperandsBeforeOps(t *testing.T) {
	v := VarToken("a")
	o := OperandToken(value.NewInt(1))
	op := OpToken(OR)

	if !v.Less(o) {
		t.Fatalf("variable should sort before operand")
	}
	if !o.Less(op) {
		t.Fatalf("operand should sort before operator")
	}
	if op.Less(v) {
		t.Fatalf("operator should never sort before variable")
	}
}

func TestTokenEqual(t *testing.T) {
	if !VarToken("a").Equal(VarToken("a")) {
		t.Fatalf("identical variable tokens must be equal")
	}
	if VarToken("a").Equal(VarToken("b")) {
		t.Fatalf("distinct variable tokens must not be equal")
	}
	if !OperandToken(value.NewInt(1)).Equal(OperandToken(value.NewInt(1))) {
		t.Fatalf("identical operand tokens must be equal")
	}
}

func TestIsValidVariableName(t *testing.T) {
	valid := []string{"a", "a.b", "a-b", "a_b", "~a", "A1"}
	for _, name := range valid {
		if !IsValidVariableName(name) {
			t.Errorf("%q should be a valid variable name", name)
		}
	}
	invalid := []string{"", "~", "a b", "a$b"}
	for _, name := range invalid {
		if IsValidVariableName(name) {
			t.Errorf("%q should not be a valid variable name", name)
		}
	}
}
