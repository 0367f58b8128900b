package logexpr

import (
	"math/big"

	"github.com/archtmpl/logexpr/pkg/logexpr/parser"
)

// evalBoolTokens runs a purely boolean postfix token list (as produced by
// rewriteToBoolean) against a fixed variable assignment. It is the
// truth-table builder's inner evaluator: a small stack machine over bool
// rather than value.Value, since by this stage every atom is already
// boolean.
func evalBoolTokens(tokens []parser.Token, assign map[string]bool) bool {
	stack := make([]bool, 0, len(tokens))
	for _, t := range tokens {
		switch t.Kind {
		case parser.TokOperand:
			b, _ := t.Operand.AsBool()
			stack = append(stack, b)
		case parser.TokVar:
			stack = append(stack, assign[t.Name])
		case parser.TokOp:
			n := len(stack)
			switch t.Op {
			case parser.NOT:
				stack[n-1] = !stack[n-1]
			case parser.AND:
				stack[n-2] = stack[n-2] && stack[n-1]
				stack = stack[:n-1]
			case parser.OR:
				stack[n-2] = stack[n-2] || stack[n-1]
				stack = stack[:n-1]
			}
		}
	}
	if len(stack) != 1 {
		return false
	}
	return stack[0]
}

// truthTableBits enumerates all 2^len(order) assignments over order (most
// significant bit = order[0]) and returns the bitset of assignment indices
// for which tokens evaluates true.
func truthTableBits(tokens []parser.Token, order []string) *big.Int {
	n := len(order)
	bits := big.NewInt(0)
	total := 1 << uint(n)
	assign := make(map[string]bool, n)
	for y := 0; y < total; y++ {
		for i, name := range order {
			assign[name] = (y>>uint(n-1-i))&1 == 1
		}
		if evalBoolTokens(tokens, assign) {
			bits.SetBit(bits, y, 1)
		}
	}
	return bits
}

// truthTableMinterms is truthTableBits flattened to a sorted slice of
// satisfying assignment indices, the form the QMC minimizer consumes.
func truthTableMinterms(tokens []parser.Token, order []string) []int {
	n := len(order)
	total := 1 << uint(n)
	bits := truthTableBits(tokens, order)
	var minterms []int
	for y := 0; y < total; y++ {
		if bits.Bit(y) == 1 {
			minterms = append(minterms, y)
		}
	}
	return minterms
}

func popcountBig(b *big.Int) int {
	count := 0
	for i := 0; i <= b.BitLen(); i++ {
		if b.Bit(i) == 1 {
			count++
		}
	}
	return count
}
