package logexpr

import (
	"github.com/archtmpl/logexpr/pkg/logexpr/parser"
	"github.com/archtmpl/logexpr/pkg/logexpr/value"
)

// fragment is a self-contained postfix token sequence, the unit the
// synthetic rewriter's stack machine operates over. A one-token fragment
// for an operand or a variable is itself a valid sub-expression; longer
// fragments are the already-rewritten boolean form of a sub-tree.
type fragment []parser.Token

func isVarFragment(f fragment) bool {
	return len(f) == 1 && f[0].Kind == parser.TokVar
}

func asBoolLiteral(f fragment) (bool, bool) {
	if len(f) == 1 && f[0].Kind == parser.TokOperand && f[0].Operand.Kind() == value.Bool {
		return f[0].Operand.Bool(), true
	}
	return false, false
}

// rewriter holds the synthetic-name → expansion map accumulated while
// atomizing one expression's relational and cast sub-terms.
type rewriter struct {
	expansions map[string][]parser.Token
}

func newRewriter() *rewriter {
	return &rewriter{expansions: map[string][]parser.Token{}}
}

func (rw *rewriter) registerIfAbsent(name string, expansion []parser.Token) {
	if _, ok := rw.expansions[name]; ok {
		return
	}
	cp := make([]parser.Token, len(expansion))
	copy(cp, expansion)
	rw.expansions[name] = cp
}

// rewriteToBoolean converts tokens (a well-formed postfix program, possibly
// typed) into a purely boolean postfix program whose only atoms are the
// TRUE/FALSE constants and synthetic or original boolean variables, per
// the procedure in the component design: relational and cast sub-terms on
// typed operands are atomized into fresh synthetic boolean variables,
// while AND/OR/NOT pass through unchanged.
func rewriteToBoolean(tokens []parser.Token) ([]parser.Token, map[string][]parser.Token, error) {
	rw := newRewriter()
	var stack []fragment

	pop := func() fragment {
		n := len(stack)
		f := stack[n-1]
		stack = stack[:n-1]
		return f
	}

	for _, t := range tokens {
		switch t.Kind {
		case parser.TokOperand, parser.TokVar:
			stack = append(stack, fragment{t})

		case parser.TokOp:
			op := t.Op
			if op.IsUnary() {
				top := pop()
				switch {
				case op == parser.NOT:
					stack = append(stack, appendToken(top, parser.OpToken(parser.NOT)))

				case op.IsCast() || op == parser.SIZEOF:
					if !isVarFragment(top) {
						return nil, nil, invalidState("unary operator %s applied to a non-variable fragment", op.Symbol())
					}
					name := top[0].Name
					synth := op.Symbol() + " " + name
					rw.registerIfAbsent(synth, []parser.Token{parser.VarToken(name), parser.OpToken(op)})
					stack = append(stack, fragment{parser.VarToken(synth)})

				default:
					return nil, nil, invalidState("unexpected unary operator %s in rewriter", op.Symbol())
				}
				continue
			}

			right := pop()
			left := pop()
			switch op {
			case parser.AND, parser.OR:
				merged := make(fragment, 0, len(left)+len(right)+1)
				merged = append(merged, left...)
				merged = append(merged, right...)
				merged = append(merged, parser.OpToken(op))
				stack = append(stack, merged)
			default:
				stack = append(stack, rw.rewriteRelational(left, right, op))
			}

		default:
			return nil, nil, invalidState("unrecognized token kind in rewriter")
		}
	}

	if len(stack) != 1 {
		return nil, nil, invalidState("rewriter finished with %d fragments on the stack, want 1", len(stack))
	}
	return []parser.Token(stack[0]), rw.expansions, nil
}

func appendToken(f fragment, t parser.Token) fragment {
	out := make(fragment, len(f)+1)
	copy(out, f)
	out[len(f)] = t
	return out
}

// rewriteRelational atomizes a single binary relational operator
// application. For EQUAL/NOT_EQUAL against a boolean literal and a
// variable it collapses straight to the variable (or its negation)
// instead of minting a synthetic; a comparison of two literal operands is
// evaluated to a boolean constant. Otherwise it replaces any synthetic
// variable inside either side by its expansion, so every recorded
// expansion is made of original tokens only, and builds the canonical
// "<left> <op> <right>" synthetic name, normalizing NOT_EQUAL to a
// negated EQUAL synthetic so "a == b" and "a != b" share one atom.
func (rw *rewriter) rewriteRelational(left, right fragment, op parser.Operator) fragment {
	if op == parser.EQUAL || op == parser.NOT_EQUAL {
		if lit, ok := asBoolLiteral(left); ok && isVarFragment(right) {
			return collapseBoolLiteral(right, lit, op)
		}
		if lit, ok := asBoolLiteral(right); ok && isVarFragment(left) {
			return collapseBoolLiteral(left, lit, op)
		}
	}
	if len(left) == 1 && left[0].Kind == parser.TokOperand && len(right) == 1 && right[0].Kind == parser.TokOperand {
		if v, err := applyOperator(op, []value.Value{left[0].Operand, right[0].Operand}); err == nil {
			return fragment{parser.OperandToken(v)}
		}
	}

	inline := func(f fragment) fragment {
		out := make(fragment, 0, len(f))
		for _, t := range f {
			if exp, ok := rw.expansions[t.Name]; ok && t.Kind == parser.TokVar {
				out = append(out, exp...)
				continue
			}
			out = append(out, t)
		}
		return out
	}
	left, right = inline(left), inline(right)

	effectiveOp := op
	negate := false
	if op == parser.NOT_EQUAL {
		effectiveOp = parser.EQUAL
		negate = true
	}

	leftName := printTokens(left)
	rightName := printTokens(right)
	synth := leftName + " " + effectiveOp.Symbol() + " " + rightName

	expansion := make([]parser.Token, 0, len(left)+len(right)+1)
	expansion = append(expansion, left...)
	expansion = append(expansion, right...)
	expansion = append(expansion, parser.OpToken(effectiveOp))
	rw.registerIfAbsent(synth, expansion)

	frag := fragment{parser.VarToken(synth)}
	if negate {
		frag = appendToken(frag, parser.OpToken(parser.NOT))
	}
	return frag
}

// collapseBoolLiteral implements "var == true" -> var, "var == false" ->
// !var, "var != true" -> !var, "var != false" -> var, without minting a
// synthetic variable.
func collapseBoolLiteral(varFrag fragment, literalTrue bool, op parser.Operator) fragment {
	wantNegate := (op == parser.EQUAL && !literalTrue) || (op == parser.NOT_EQUAL && literalTrue)
	frag := make(fragment, len(varFrag))
	copy(frag, varFrag)
	if wantNegate {
		frag = appendToken(frag, parser.OpToken(parser.NOT))
	}
	return frag
}

// booleanVariableOrder walks a purely boolean postfix token list and
// returns its referenced variable names in first-occurrence order. This
// is the "fixed, ordered" variable list the truth-table builder and QMC
// re-emission both index by.
func booleanVariableOrder(tokens []parser.Token) []string {
	seen := map[string]bool{}
	var order []string
	for _, t := range tokens {
		if t.Kind == parser.TokVar && !seen[t.Name] {
			seen[t.Name] = true
			order = append(order, t.Name)
		}
	}
	return order
}

// expansionFor returns the literal token sequence a variable name expands
// to: its registered synthetic expansion if one exists, or its own
// identity (the bare variable) if the name was never synthesized (e.g. a
// variable used directly in a boolean position, as in "${a} || !${a}").
func expansionFor(expansions map[string][]parser.Token, name string) []parser.Token {
	if exp, ok := expansions[name]; ok {
		return exp
	}
	return []parser.Token{parser.VarToken(name)}
}
