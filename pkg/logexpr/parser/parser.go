// Package parser implements the tokenizer and shunting-yard parser that
// turn the engine's infix surface syntax into a postfix (reverse-Polish)
// Token list, plus the Operator table both stages share. It is
// deliberately self-contained (no dependency on the logexpr package)
// so the public engine can treat it as a pure "string in, token list
// out" stage, the way the teacher's pkg/graft/parser package is kept
// independent of pkg/graft and bridged by a thin adapter.
package parser

import (
	"fmt"

	"github.com/archtmpl/logexpr/pkg/logexpr/value"
)

type stackEntry struct {
	isParen bool
	op      Operator
}

// Parse tokenizes and parses src into a postfix Token list using
// shunting-yard, per spec: operands emit immediately, a binary operator
// pops all stack operators of precedence-or-higher (left-associative)
// before being pushed itself, a unary prefix operator pops only those of
// strictly higher precedence, '(' is pushed, ')' pops to the matching
// '(', and the remaining stack is flushed at end of input.
func Parse(src string) ([]Token, error) {
	sc := NewScanner(src)

	var stack []stackEntry
	var output []Token
	stackSize := 0
	lastWasOpenParen := false
	sawAnySymbol := false

	popWhile := func(newPrec int, leftAssoc bool) error {
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			if top.isParen {
				break
			}
			topPrec := top.op.Precedence()
			pop := topPrec > newPrec || (topPrec == newPrec && leftAssoc)
			if !pop {
				break
			}
			stack = stack[:len(stack)-1]
			if err := emitOperator(&output, &stackSize, top.op); err != nil {
				return err
			}
		}
		return nil
	}

	for {
		sym, ok, err := sc.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		sawAnySymbol = true

		switch sym.Kind {
		case symBool, symString, symInt, symArray:
			output = append(output, OperandToken(sym.Val))
			stackSize++
			lastWasOpenParen = false

		case symVariable:
			if !IsValidVariableName(sym.VarName) {
				return nil, &FormatError{Msg: fmt.Sprintf("invalid variable name %q", sym.VarName)}
			}
			output = append(output, VarToken(sym.VarName))
			stackSize++
			lastWasOpenParen = false

		case symBinaryOp:
			if lastWasOpenParen {
				return nil, &FormatError{Msg: fmt.Sprintf("binary operator %q immediately follows '('", sym.Text)}
			}
			if err := popWhile(sym.Op.Precedence(), true); err != nil {
				return nil, err
			}
			stack = append(stack, stackEntry{op: sym.Op})
			lastWasOpenParen = false

		case symUnaryOp:
			// Unary (prefix) operators are right-associative in the pop
			// rule (strict '>' rather than '>=') so that chained prefix
			// operators of equal precedence, e.g. "NOT NOT ${a}", don't
			// pop each other out of order before their operand has been
			// emitted. Binary operators stay left-associative per spec.
			if err := popWhile(sym.Op.Precedence(), false); err != nil {
				return nil, err
			}
			stack = append(stack, stackEntry{op: sym.Op})
			lastWasOpenParen = false

		case symLParen:
			stack = append(stack, stackEntry{isParen: true})
			lastWasOpenParen = true

		case symRParen:
			found := false
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.isParen {
					found = true
					break
				}
				if err := emitOperator(&output, &stackSize, top.op); err != nil {
					return nil, err
				}
			}
			if !found {
				return nil, &FormatError{Msg: "unmatched ')'"}
			}
			lastWasOpenParen = false

		default:
			return nil, &FormatError{Msg: "unrecognized symbol kind"}
		}
	}

	if !sawAnySymbol {
		return nil, &FormatError{Msg: "empty expression"}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.isParen {
			return nil, &FormatError{Msg: "unmatched '('"}
		}
		if err := emitOperator(&output, &stackSize, top.op); err != nil {
			return nil, err
		}
	}

	if stackSize != 1 {
		return nil, &FormatError{Msg: fmt.Sprintf("expression does not reduce to a single value (final stack size %d)", stackSize)}
	}

	return output, nil
}

// emitOperator appends op to output after validating arity against the
// current running stack size and, for NOT and the cast operators,
// validating the immediately preceding output token.
func emitOperator(output *[]Token, stackSize *int, op Operator) error {
	arity := op.Arity()
	if *stackSize < arity {
		return &FormatError{Msg: fmt.Sprintf("operator %q requires %d operand(s), only %d available", op.Symbol(), arity, *stackSize)}
	}

	if arity == 1 {
		prev := (*output)[len(*output)-1]
		switch {
		case op == NOT:
			if prev.Kind == TokOperand && prev.Operand.Kind() != value.Bool {
				return &FormatError{Msg: fmt.Sprintf("NOT requires a boolean operand, got %s", prev.Operand.Kind())}
			}
		case op.IsCast():
			if prev.Kind != TokVar {
				return &FormatError{Msg: fmt.Sprintf("%s requires an immediately preceding variable", op.Symbol())}
			}
		}
	}

	*output = append(*output, OpToken(op))
	*stackSize = *stackSize - arity + 1
	return nil
}
