package logexpr

import "github.com/archtmpl/logexpr/pkg/logexpr/parser"

// mutualExclusionPairs finds pairs of synthetic variables that can never
// both be true in the same row of a joint truth table: two EQUAL atoms
// over the same left-hand variable compared against two different
// literal values ("${a} == 'x'" and "${a} == 'y'") are mutually
// exclusive, since a variable holds exactly one value at evaluation
// time. The truth-table builder treats assignments that set both bits as
// unrealizable rather than as a genuine (if contradictory) minterm; this
// is what lets reduce() collapse "${a}=='x' && ${a}=='y'" to the constant
// false instead of reporting it satisfiable at the single row where both
// synthetics happen to be 1. Returned as index pairs into order.
func mutualExclusionPairs(order []string, expansions map[string][]parser.Token) [][2]int {
	type eqAtom struct {
		idx     int
		leftKey string
		literal string
	}
	var atoms []eqAtom
	for i, name := range order {
		exp, ok := expansions[name]
		if !ok || len(exp) != 3 {
			continue
		}
		if exp[2].Kind != parser.TokOp || exp[2].Op != parser.EQUAL {
			continue
		}
		if exp[0].Kind != parser.TokVar || exp[1].Kind != parser.TokOperand {
			continue
		}
		atoms = append(atoms, eqAtom{idx: i, leftKey: exp[0].Name, literal: exp[1].Operand.Render()})
	}

	var pairs [][2]int
	for a := 0; a < len(atoms); a++ {
		for b := a + 1; b < len(atoms); b++ {
			if atoms[a].leftKey == atoms[b].leftKey && atoms[a].literal != atoms[b].literal {
				pairs = append(pairs, [2]int{atoms[a].idx, atoms[b].idx})
			}
		}
	}
	return pairs
}

// filterUnrealizable drops minterm indices that violate any mutual
// exclusion pair (both corresponding bits set) from minterms, given n
// total variables and the most-significant-bit-first encoding
// truthTableBits uses.
func filterUnrealizable(minterms []int, n int, pairs [][2]int) []int {
	if len(pairs) == 0 {
		return minterms
	}
	out := minterms[:0:0]
	for _, y := range minterms {
		realizable := true
		for _, p := range pairs {
			bi := n - 1 - p[0]
			bj := n - 1 - p[1]
			if (y>>uint(bi))&1 == 1 && (y>>uint(bj))&1 == 1 {
				realizable = false
				break
			}
		}
		if realizable {
			out = append(out, y)
		}
	}
	return out
}
