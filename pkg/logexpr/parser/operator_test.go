package parser

import "testing"

func TestOperatorTableArityMatchesSpec(t *testing.T) {
	unary := map[Operator]bool{NOT: true, SIZEOF: true, AS_INT: true, AS_STRING: true, AS_LIST: true}
	for _, op := range All() {
		want := 2
		if unary[op] {
			want = 1
		}
		if got := op.Arity(); got != want {
			t.Errorf("%s: Arity() = %d, want %d", op.Symbol(), got, want)
		}
	}
}

func TestCastOperatorsAreCasts(t *testing.T) {
	for _, op := range []Operator{AS_INT, AS_STRING, AS_LIST} {
		if !op.IsCast() {
			t.Errorf("%s should report IsCast() = true", op.Symbol())
		}
	}
	if NOT.IsCast() || SIZEOF.IsCast() {
		t.Fatalf("NOT/SIZEOF must not report as casts")
	}
}

func TestRelationalPrecedenceOrdering(t *testing.T) {
	if OR.Precedence() >= AND.Precedence() {
		t.Fatalf("OR must bind looser than AND")
	}
	if AND.Precedence() >= EQUAL.Precedence() {
		t.Fatalf("AND must bind looser than EQUAL")
	}
	if EQUAL.Precedence() >= GREATER_THAN.Precedence() {
		t.Fatalf("EQUAL/NOT_EQUAL must bind looser than ordering comparisons")
	}
	if GREATER_THAN.Precedence() >= NOT.Precedence() {
		t.Fatalf("comparisons must bind looser than NOT")
	}
}

func TestToken_kindRank_OrdersOperatorsHighest(t *testing.T) {
	if TokVar.kindRank() >= TokOperand.kindRank() {
		t.Fatalf("variables must rank below operands")
	}
	if TokOperand.kindRank() >= TokOp.kindRank() {
		t.Fatalf("operands must rank below operators")
	}
}
