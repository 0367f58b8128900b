// Package logexpr implements a typed boolean/relational expression
// language: parsing (via the parser sub-package), evaluation against a
// pluggable variable resolver, and symbolic reduction through synthetic
// variable rewriting, truth-table enumeration, and Quine-McCluskey
// minimization.
package logexpr

import (
	"sort"
	"strings"
	"sync"

	"github.com/archtmpl/logexpr/internal/cache"
	"github.com/archtmpl/logexpr/internal/config"
	"github.com/archtmpl/logexpr/pkg/logexpr/parser"
	"github.com/archtmpl/logexpr/pkg/logexpr/value"
)

// Expression is an immutable postfix token program. It is never mutated
// after construction; every combinator (And, Or, Negate, Reduce, Inline,
// Relativize, Sub) returns either a new Expression or an existing one
// (the receiver, the argument, or TRUE/FALSE) and leaves its receiver
// untouched. This mirrors the teacher's
// treatment of a parsed graft expression tree as a read-only value once
// built.
type Expression struct {
	tokens  []parser.Token
	reduced bool

	varsOnce sync.Once
	vars     []string

	literalOnce sync.Once
	literal     string

	reduceOnce   sync.Once
	reducedExpr  *Expression
}

var (
	byString = cache.New(config.Default().Cache.Shards)
	byTokens = cache.New(config.Default().Cache.Shards)

	// TRUE and FALSE are the two process-wide interned constant
	// expressions the constant-folding rules in And/Or/Negate compare
	// against and return.
	TRUE  = &Expression{tokens: []parser.Token{parser.OperandToken(value.True)}, reduced: true}
	FALSE = &Expression{tokens: []parser.Token{parser.OperandToken(value.False)}, reduced: true}
)

// Create parses source into an Expression, consulting the process-wide
// by_string cache first. Equal source strings always return the same
// *Expression.
func Create(source string) (*Expression, error) {
	if cached, ok := byString.Get(source); ok {
		return cached.(*Expression), nil
	}
	toks, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	expr := fromTokens(toks, false)
	v := byString.GetOrCompute(source, func() interface{} { return expr })
	return v.(*Expression), nil
}

// fromTokens builds an Expression directly from an already-parsed,
// already-validated postfix token list. It is used internally by And,
// Or, Negate, and the reducer, which all produce well-formed postfix
// programs by construction and so skip re-parsing.
func fromTokens(toks []parser.Token, reduced bool) *Expression {
	cp := make([]parser.Token, len(toks))
	copy(cp, toks)
	return &Expression{tokens: cp, reduced: reduced}
}

// Tokens returns the expression's postfix token list. Callers must not
// mutate the returned slice.
func (e *Expression) Tokens() []parser.Token { return e.tokens }

// IsReduced reports whether Reduce is known to be a no-op for this
// expression (either because it was produced by Reduce already, or
// because it is one of the interned TRUE/FALSE constants).
func (e *Expression) IsReduced() bool { return e.reduced }

// Variables returns the sorted, de-duplicated set of variable names
// referenced anywhere in the expression's token list.
func (e *Expression) Variables() []string {
	e.varsOnce.Do(func() {
		seen := map[string]bool{}
		var names []string
		for _, t := range e.tokens {
			if t.Kind == parser.TokVar {
				if !seen[t.Name] {
					seen[t.Name] = true
					names = append(names, t.Name)
				}
			}
		}
		sort.Strings(names)
		e.vars = names
	})
	return e.vars
}

// Literal lazily renders the expression's canonical infix form.
func (e *Expression) Literal() string {
	e.literalOnce.Do(func() {
		e.literal = printTokens(e.tokens)
	})
	return e.literal
}

// Equal reports structural equality: identical token sequences.
func (e *Expression) Equal(other *Expression) bool {
	if other == nil {
		return false
	}
	if len(e.tokens) != len(other.tokens) {
		return false
	}
	for i := range e.tokens {
		if !e.tokens[i].Equal(other.tokens[i]) {
			return false
		}
	}
	return true
}

// Less implements the lexicographic token-list ordering over two
// Expressions, used for stable sorting in tests and diagnostics.
func (e *Expression) Less(other *Expression) bool {
	n := len(e.tokens)
	if len(other.tokens) < n {
		n = len(other.tokens)
	}
	for i := 0; i < n; i++ {
		a, b := e.tokens[i], other.tokens[i]
		if a.Equal(b) {
			continue
		}
		return a.Less(b)
	}
	return len(e.tokens) < len(other.tokens)
}

// And builds self && other, constant-folding against TRUE/FALSE:
// e.And(TRUE) == e, e.And(FALSE) == FALSE.
func (e *Expression) And(other *Expression) *Expression {
	if e.Equal(TRUE) {
		return other
	}
	if other.Equal(TRUE) {
		return e
	}
	if e.Equal(FALSE) || other.Equal(FALSE) {
		return FALSE
	}
	return concatBinary(e, other, parser.AND)
}

// Or builds self || other, constant-folding against TRUE/FALSE:
// e.Or(FALSE) == e, e.Or(TRUE) == TRUE.
func (e *Expression) Or(other *Expression) *Expression {
	if e.Equal(FALSE) {
		return other
	}
	if other.Equal(FALSE) {
		return e
	}
	if e.Equal(TRUE) || other.Equal(TRUE) {
		return TRUE
	}
	return concatBinary(e, other, parser.OR)
}

// Negate builds !self, constant-folding TRUE<->FALSE and collapsing a
// double negation back to its original operand.
func (e *Expression) Negate() *Expression {
	if e.Equal(TRUE) {
		return FALSE
	}
	if e.Equal(FALSE) {
		return TRUE
	}
	if len(e.tokens) >= 1 {
		last := e.tokens[len(e.tokens)-1]
		if last.Kind == parser.TokOp && last.Op == parser.NOT {
			return fromTokens(e.tokens[:len(e.tokens)-1], false)
		}
	}
	toks := make([]parser.Token, len(e.tokens)+1)
	copy(toks, e.tokens)
	toks[len(toks)-1] = parser.OpToken(parser.NOT)
	return fromTokens(toks, false)
}

func concatBinary(left, right *Expression, op parser.Operator) *Expression {
	toks := make([]parser.Token, 0, len(left.tokens)+len(right.tokens)+1)
	toks = append(toks, left.tokens...)
	toks = append(toks, right.tokens...)
	toks = append(toks, parser.OpToken(op))
	return fromTokens(toks, false)
}

// tokenKey renders a token list into a stable cache key for by_tokens.
func tokenKey(toks []parser.Token) string {
	var b strings.Builder
	for i, t := range toks {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		if t.Kind == parser.TokOperand {
			b.WriteString(t.Operand.Kind().String())
			b.WriteByte(':')
		}
		b.WriteString(t.String())
	}
	return b.String()
}
