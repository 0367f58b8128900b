package logexpr

import (
	"strings"

	"github.com/archtmpl/logexpr/pkg/logexpr/parser"
	"github.com/archtmpl/logexpr/pkg/logexpr/value"
)

// Eval runs the expression's postfix token list against resolver, the way
// the teacher's EvaluateExpr walks a graft expression tree, except here
// the program is already flat postfix rather than a tree to recurse over.
func (e *Expression) Eval(resolver Resolver) (bool, error) {
	stack := make([]value.Value, 0, len(e.tokens))

	for _, t := range e.tokens {
		switch t.Kind {
		case parser.TokOperand:
			stack = append(stack, t.Operand)

		case parser.TokVar:
			v, ok := resolver(t.Name)
			if !ok {
				return false, &UnresolvedVariableError{Name: t.Name}
			}
			stack = append(stack, v)

		case parser.TokOp:
			result, err := applyOperator(t.Op, stack)
			if err != nil {
				return false, err
			}
			stack = append(stack[:len(stack)-t.Op.Arity()], result)

		default:
			return false, invalidState("unrecognized token kind in Eval")
		}
	}

	if len(stack) != 1 {
		return false, invalidState("evaluator finished with stack size %d, want 1", len(stack))
	}
	b, ok := stack[0].AsBool()
	if !ok {
		return false, invalidState("evaluator result is not boolean: %s", stack[0].Render())
	}
	return b, nil
}

// Eval0 is the no-argument form: it supplies an always-absent resolver, so
// only a variable-free expression can succeed. Named Eval0 because Go
// does not allow overloading Eval by arity; callers pass no resolver by
// calling this directly.
func (e *Expression) Eval0() (bool, error) {
	return e.Eval(alwaysAbsent)
}

// applyOperator reads op's arity operands off the tail of stack (left
// operand first for binary ops) and returns the result. It does not
// shrink stack; Eval does that based on op.Arity() once the result is
// computed.
func applyOperator(op parser.Operator, stack []value.Value) (value.Value, error) {
	s := stack
	n := len(s)

	switch op {
	case parser.NOT:
		op1 := s[n-1]
		b, _ := op1.AsBool()
		return value.NewBool(!b), nil

	case parser.SIZEOF:
		op1 := s[n-1]
		if op1.Kind() == value.List {
			return value.NewInt(int64(len(op1.Strs()))), nil
		}
		return value.NewInt(int64(len(op1.Render()))), nil

	case parser.AS_INT:
		op1 := s[n-1]
		i, ok := op1.AsInt()
		if !ok {
			return nil, invalidState("cannot coerce %s to int", op1.Render())
		}
		return value.NewInt(i), nil

	case parser.AS_STRING:
		op1 := s[n-1]
		return value.NewString(op1.Render()), nil

	case parser.AS_LIST:
		op1 := s[n-1]
		if op1.Kind() == value.List {
			return op1, nil
		}
		return value.NewList([]string{op1.Render()}), nil

	case parser.OR:
		op2, op1 := s[n-2], s[n-1]
		b2, _ := op2.AsBool()
		b1, _ := op1.AsBool()
		return value.NewBool(b2 || b1), nil

	case parser.AND:
		op2, op1 := s[n-2], s[n-1]
		b2, _ := op2.AsBool()
		b1, _ := op1.AsBool()
		return value.NewBool(b2 && b1), nil

	case parser.EQUAL:
		op2, op1 := s[n-2], s[n-1]
		return value.NewBool(value.Eq(op2, op1)), nil

	case parser.NOT_EQUAL:
		op2, op1 := s[n-2], s[n-1]
		return value.NewBool(!value.Eq(op2, op1)), nil

	case parser.GREATER_THAN, parser.GREATER_OR_EQUAL, parser.LOWER_THAN, parser.LOWER_OR_EQUAL:
		op2, op1 := s[n-2], s[n-1]
		i2, ok2 := op2.AsInt()
		i1, ok1 := op1.AsInt()
		if !ok2 || !ok1 {
			return nil, invalidState("operator %s requires integer-coercible operands", op.Symbol())
		}
		switch op {
		case parser.GREATER_THAN:
			return value.NewBool(i2 > i1), nil
		case parser.GREATER_OR_EQUAL:
			return value.NewBool(i2 >= i1), nil
		case parser.LOWER_THAN:
			return value.NewBool(i2 < i1), nil
		default:
			return value.NewBool(i2 <= i1), nil
		}

	case parser.CONTAINS:
		op2, op1 := s[n-2], s[n-1]
		if op2.Kind() == value.List && op1.Kind() == value.List {
			needle := op1.Strs()
			hay := op2.Strs()
			set := make(map[string]bool, len(hay))
			for _, h := range hay {
				set[h] = true
			}
			for _, want := range needle {
				if !set[want] {
					return value.NewBool(false), nil
				}
			}
			return value.NewBool(true), nil
		}
		if op2.Kind() == value.List {
			want := op1.Render()
			for _, h := range op2.Strs() {
				if h == want {
					return value.NewBool(true), nil
				}
			}
			return value.NewBool(false), nil
		}
		return value.NewBool(strings.Contains(op2.Render(), op1.Render())), nil

	default:
		return nil, invalidState("unknown operator %v", op)
	}
}
