package logexpr

import (
	"fmt"
	"strings"

	"github.com/archtmpl/logexpr/pkg/logexpr/parser"
	"github.com/archtmpl/logexpr/pkg/logexpr/value"
)

// maxPrec is higher than any real operator precedence, so a leaf token
// (operand or variable) never needs parenthesizing as someone else's
// operand.
const maxPrec = 1 << 20

type printNode struct {
	text string
	prec int
}

// printTokens renders a well-formed postfix token list back to canonical
// infix, per the minimal-parenthesization rule: a unary operator
// parenthesizes its operand iff the operand's root precedence is strictly
// lower than its own (otherwise a negated relational like "!(a == b)"
// would round-trip as the unparenthesized, differently-parsing "!a ==
// b"); a binary operator parenthesizes its left operand iff strictly
// lower precedence, and its right operand iff lower-or-equal (reflecting
// left-associativity). It walks the postfix list once with a node stack,
// the same traversal shape the evaluator uses, rather than building and
// then recursing over an AST.
func printTokens(tokens []parser.Token) string {
	var stack []printNode

	for _, t := range tokens {
		switch t.Kind {
		case parser.TokOperand:
			text := t.Operand.Render()
			if t.Operand.Kind() == value.String {
				if strings.Contains(text, "'") {
					text = `"` + text + `"`
				} else {
					text = "'" + text + "'"
				}
			}
			stack = append(stack, printNode{text: text, prec: maxPrec})

		case parser.TokVar:
			stack = append(stack, printNode{text: fmt.Sprintf("${%s}", t.Name), prec: maxPrec})

		case parser.TokOp:
			op := t.Op
			if op.IsUnary() {
				n := len(stack)
				operand := stack[n-1]
				stack = stack[:n-1]
				text := operand.text
				if operand.prec < op.Precedence() {
					text = "(" + text + ")"
				}
				stack = append(stack, printNode{text: renderUnary(op, text), prec: op.Precedence()})
			} else {
				n := len(stack)
				left, right := stack[n-2], stack[n-1]
				stack = stack[:n-2]
				lt, rt := left.text, right.text
				if left.prec < op.Precedence() {
					lt = "(" + lt + ")"
				}
				if right.prec <= op.Precedence() {
					rt = "(" + rt + ")"
				}
				text := lt + " " + op.Symbol() + " " + rt
				stack = append(stack, printNode{text: text, prec: op.Precedence()})
			}
		}
	}

	if len(stack) != 1 {
		return ""
	}
	return stack[0].text
}

// renderUnary joins a unary operator's canonical symbol to its already-
// parenthesized-if-needed operand text. NOT renders tight ("!x"); the
// word-like unary operators (sizeof, the casts) render with a separating
// space ("sizeof ${x}", "(int) ${x}").
func renderUnary(op parser.Operator, operand string) string {
	if op == parser.NOT {
		return op.Symbol() + operand
	}
	return op.Symbol() + " " + operand
}
