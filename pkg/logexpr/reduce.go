package logexpr

import (
	"math/big"

	"github.com/archtmpl/logexpr/pkg/logexpr/parser"
)

// Reduce rewrites the expression's non-boolean sub-terms into synthetic
// boolean variables, builds their truth table, minimizes it with
// Quine-McCluskey, and re-emits the canonical reduced form. A reduced
// expression (TRUE/FALSE included) returns itself unchanged. Results are
// memoized both on the Expression (sync.Once) and in the process-wide
// by_tokens cache keyed by the original token list, so two Expressions
// built from different sources that happen to parse identically share
// the reduction work.
func (e *Expression) Reduce() *Expression {
	if e.reduced {
		return e
	}
	e.reduceOnce.Do(func() {
		key := tokenKey(e.tokens)
		if cached, ok := byTokens.Get(key); ok {
			e.reducedExpr = cached.(*Expression)
			return
		}
		result := reduceTokens(e.tokens)
		result.reduced = true
		v := byTokens.GetOrCompute(key, func() interface{} { return result })
		e.reducedExpr = v.(*Expression)
	})
	return e.reducedExpr
}

// reduceTokens performs the rewrite -> truth-table -> QMC -> re-emit
// pipeline over a raw token list, independent of any Expression's cache
// bookkeeping.
func reduceTokens(tokens []parser.Token) *Expression {
	boolTokens, expansions, err := rewriteToBoolean(tokens)
	if err != nil {
		return fromTokens(tokens, false)
	}

	order := booleanVariableOrder(boolTokens)
	if len(order) == 0 {
		if evalBoolTokens(boolTokens, nil) {
			return TRUE
		}
		return FALSE
	}

	minterms := truthTableMinterms(boolTokens, order)
	minterms = filterUnrealizable(minterms, len(order), mutualExclusionPairs(order, expansions))
	if len(minterms) == 0 {
		return FALSE
	}
	if len(minterms) == 1<<uint(len(order)) {
		return TRUE
	}

	primes := qmcPrimeImplicants(minterms)
	cover := selectCover(primes, minterms)
	final := emitCover(cover, order, expansions)
	return fromTokens(final, true)
}

// Inline substitutes every variable whose resolver yields a present value
// with that value as a literal operand, leaves every other variable in
// place, and reduces the result. This is how callers specialize a guard
// expression to a partially-known context without fully evaluating it.
func (e *Expression) Inline(resolver Resolver) *Expression {
	newToks := make([]parser.Token, 0, len(e.tokens))
	for _, t := range e.tokens {
		if t.Kind == parser.TokVar {
			if v, ok := resolver(t.Name); ok && v.IsPresent() {
				newToks = append(newToks, parser.OperandToken(v))
				continue
			}
		}
		newToks = append(newToks, t)
	}
	return fromTokens(newToks, false).Reduce()
}

// Relativize reports what self adds on top of other: the reduced
// conjunction self && other, divided by other with Sub. For self =
// "${a} && ${b}" and other = "${a}" the result is "${b}". Defined
// directly in terms of And and Sub.
func (e *Expression) Relativize(other *Expression) *Expression {
	return e.And(other).Reduce().Sub(other)
}

// Sub computes the quotient of self by other: the minimal boolean
// function expressed purely in self's "extra" variables (those not in
// other) that, when conjoined with other, reproduces self wherever other
// holds. It works over the joint truth table of both sides' synthetic
// variables, with other's variables ordered first so a shared assignment
// prefix implies other already holds.
func (e *Expression) Sub(other *Expression) *Expression {
	selfBool, selfExp, err1 := rewriteToBoolean(e.tokens)
	otherBool, otherExp, err2 := rewriteToBoolean(other.tokens)
	if err1 != nil || err2 != nil {
		return e
	}

	otherOrder := booleanVariableOrder(otherBool)
	selfOrder := booleanVariableOrder(selfBool)

	order := append([]string{}, otherOrder...)
	inOther := map[string]bool{}
	for _, v := range otherOrder {
		inOther[v] = true
	}
	for _, v := range selfOrder {
		if !inOther[v] {
			order = append(order, v)
		}
	}

	expansions := map[string][]parser.Token{}
	for k, v := range otherExp {
		expansions[k] = v
	}
	for k, v := range selfExp {
		expansions[k] = v
	}

	n := len(order)
	if n == 0 {
		if evalBoolTokens(selfBool, nil) {
			return TRUE
		}
		return FALSE
	}

	m1 := truthTableBits(selfBool, order)
	m2 := truthTableBits(otherBool, order)

	intersect := new(big.Int).And(m1, m2)
	if intersect.Sign() == 0 {
		return e
	}
	if m1.Cmp(m2) == 0 {
		return TRUE
	}

	total := 1 << uint(n)
	flip := popcountBig(m1)*2 > total
	if flip {
		allOnes := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(n)), big.NewInt(1))
		m1 = new(big.Int).Xor(m1, allOnes)
	}

	m := len(otherOrder)
	k := n - m

	var truePrefixes []int
	for p := 0; p < (1 << uint(m)); p++ {
		y := p << uint(k)
		if m2.Bit(y) == 1 {
			truePrefixes = append(truePrefixes, p)
		}
	}

	var quotientMinterms []int
	for r := 0; r < (1 << uint(k)); r++ {
		forced := len(truePrefixes) > 0
		for _, p := range truePrefixes {
			y := (p << uint(k)) | r
			if m1.Bit(y) == 0 {
				forced = false
				break
			}
		}
		if forced {
			quotientMinterms = append(quotientMinterms, r)
		}
	}

	remainderOrder := order[m:]
	var result *Expression
	switch {
	case k == 0:
		if len(quotientMinterms) > 0 {
			result = TRUE
		} else {
			result = FALSE
		}
	case len(quotientMinterms) == 0:
		result = FALSE
	case len(quotientMinterms) == 1<<uint(k):
		result = TRUE
	default:
		primes := qmcPrimeImplicants(quotientMinterms)
		cover := selectCover(primes, quotientMinterms)
		final := emitCover(cover, remainderOrder, expansions)
		result = fromTokens(final, true)
	}

	if flip {
		result = result.Negate()
	}
	return result
}
