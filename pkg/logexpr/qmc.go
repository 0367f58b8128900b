package logexpr

import (
	"fmt"
	"math/bits"
	"sort"

	"github.com/archtmpl/logexpr/pkg/logexpr/parser"
	"github.com/archtmpl/logexpr/pkg/logexpr/value"
)

// implicant is a QMC product term over a fixed-width variable space: bits
// holds the literal values, mask marks the "don't care" (eliminated)
// positions, and ids is the set of original minterm indices the term
// covers. Limiting bits/mask to uint64 caps reduction at 64 synthetic
// variables per expression, the same ceiling a systems-language port
// would hit using machine words for this representation (see §9's note
// on fixed-width bitsets).
type implicant struct {
	bits uint64
	mask uint64
	ids  map[int]bool
}

func newImplicant(minterm int) *implicant {
	return &implicant{bits: uint64(minterm), ids: map[int]bool{minterm: true}}
}

func (t *implicant) key() string { return fmt.Sprintf("%d|%d", t.bits, t.mask) }

func (t *implicant) literalPopcount() int { return bits.OnesCount64(t.bits &^ t.mask) }

func idsSubsetOf(small, big map[int]bool) bool {
	for id := range small {
		if !big[id] {
			return false
		}
	}
	return true
}

// qmcPrimeImplicants runs the grouping/merge-rounds procedure over a
// sorted list of minterm indices and returns the resulting set of prime
// implicants. Ungrouped singleton minterms (n==0, a single minterm) fall
// straight out as their own prime implicant since the merge loop simply
// finds nothing to merge.
func qmcPrimeImplicants(minterms []int) []*implicant {
	groups := map[int][]*implicant{}
	for _, m := range minterms {
		t := newImplicant(m)
		p := t.literalPopcount()
		groups[p] = append(groups[p], t)
	}

	var primes []*implicant

	for {
		if len(groups) == 0 {
			break
		}
		popcounts := make([]int, 0, len(groups))
		for p := range groups {
			popcounts = append(popcounts, p)
		}
		sort.Ints(popcounts)

		merged := map[string]*implicant{}
		newGroups := map[int][]*implicant{}
		usedFlag := map[*implicant]bool{}

		for _, p := range popcounts {
			next, ok := groups[p+1]
			if !ok {
				continue
			}
			for _, a := range groups[p] {
				for _, b := range next {
					if a.mask != b.mask {
						continue
					}
					diff := a.bits ^ b.bits
					if bits.OnesCount64(diff) != 1 {
						continue
					}
					newBits := a.bits &^ diff
					newMask := a.mask | diff
					nt := &implicant{bits: newBits, mask: newMask}
					key := nt.key()
					if existing, ok := merged[key]; ok {
						for id := range a.ids {
							existing.ids[id] = true
						}
						for id := range b.ids {
							existing.ids[id] = true
						}
					} else {
						ids := map[int]bool{}
						for id := range a.ids {
							ids[id] = true
						}
						for id := range b.ids {
							ids[id] = true
						}
						nt.ids = ids
						merged[key] = nt
						newGroups[nt.literalPopcount()] = append(newGroups[nt.literalPopcount()], nt)
					}
					usedFlag[a] = true
					usedFlag[b] = true
				}
			}
		}

		if len(merged) == 0 {
			for _, p := range popcounts {
				primes = append(primes, groups[p]...)
			}
			break
		}

		mergedList := make([]*implicant, 0, len(merged))
		for _, t := range merged {
			mergedList = append(mergedList, t)
		}

		for _, p := range popcounts {
			for _, t := range groups[p] {
				if usedFlag[t] {
					continue
				}
				covered := false
				for _, m := range mergedList {
					if idsSubsetOf(t.ids, m.ids) {
						covered = true
						break
					}
				}
				if !covered {
					primes = append(primes, t)
				}
			}
		}

		groups = newGroups
	}

	return dedupeImplicants(primes)
}

func dedupeImplicants(terms []*implicant) []*implicant {
	seen := map[string]bool{}
	var out []*implicant
	for _, t := range terms {
		k := t.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, t)
	}
	return out
}

// selectCover runs essential-prime-implicant extraction followed by a
// greedy maximum-additional-coverage walk over the remaining minterms, as
// specified: this produces an irredundant cover, not a provably minimum
// one (see the design notes' open question on the greedy fallback).
func selectCover(primes []*implicant, minterms []int) []*implicant {
	coverage := map[int][]*implicant{}
	for _, m := range minterms {
		coverage[m] = nil
	}
	for _, p := range primes {
		for id := range p.ids {
			if _, ok := coverage[id]; ok {
				coverage[id] = append(coverage[id], p)
			}
		}
	}

	selected := map[*implicant]bool{}
	remaining := map[int]bool{}
	for _, m := range minterms {
		remaining[m] = true
	}

	for _, m := range minterms {
		if len(coverage[m]) == 1 {
			selected[coverage[m][0]] = true
		}
	}
	for p := range selected {
		for id := range p.ids {
			delete(remaining, id)
		}
	}

	for len(remaining) > 0 {
		var best *implicant
		bestCount := 0
		for _, p := range primes {
			if selected[p] {
				continue
			}
			count := 0
			for id := range p.ids {
				if remaining[id] {
					count++
				}
			}
			if count > bestCount {
				bestCount = count
				best = p
			}
		}
		if best == nil {
			break
		}
		selected[best] = true
		for id := range best.ids {
			delete(remaining, id)
		}
	}

	var result []*implicant
	for _, p := range primes {
		if selected[p] {
			result = append(result, p)
		}
	}
	return result
}

// negateExpansion negates a variable's literal expansion by appending a
// NOT token, matching the printer's "!(...)" re-emission and the "!=
// normalizes to !(==)" seed scenario — it never folds EQUAL/NOT_EQUAL
// into each other, since synthetic.go always stores the EQUAL-normalized
// form and a cover literal is re-read, not re-derived.
func negateExpansion(expansion []parser.Token) []parser.Token {
	out := make([]parser.Token, len(expansion)+1)
	copy(out, expansion)
	out[len(out)-1] = parser.OpToken(parser.NOT)
	return out
}

// emitCover re-emits a QMC cover set back to postfix tokens: each term's
// unmasked variables (most- to least-significant) contribute their
// expansion, negated via negateExpansion when their bit is 0, ANDed
// together; terms are then ORed together. An empty cover is FALSE; a
// single all-don't-care term (the empty product) is TRUE.
func emitCover(cover []*implicant, order []string, expansions map[string][]parser.Token) []parser.Token {
	if len(cover) == 0 {
		return []parser.Token{parser.OperandToken(value.False)}
	}

	n := len(order)
	var sum []parser.Token
	for ti, term := range cover {
		var product []parser.Token
		literals := 0
		for i, name := range order {
			bitIndex := n - 1 - i
			if term.mask&(1<<uint(bitIndex)) != 0 {
				continue
			}
			lit := expansionFor(expansions, name)
			if term.bits&(1<<uint(bitIndex)) == 0 {
				lit = negateExpansion(lit)
			}
			if literals == 0 {
				product = append(product, lit...)
			} else {
				product = append(product, lit...)
				product = append(product, parser.OpToken(parser.AND))
			}
			literals++
		}
		if literals == 0 {
			product = []parser.Token{parser.OperandToken(value.True)}
		}
		if ti == 0 {
			sum = product
		} else {
			sum = append(sum, product...)
			sum = append(sum, parser.OpToken(parser.OR))
		}
	}
	return sum
}
