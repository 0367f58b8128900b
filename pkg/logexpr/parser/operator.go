package parser

// Operator is the closed set of operators the expression language
// supports. Unlike the teacher's extensible OperatorRegistry (which maps
// operator name strings to OperatorInfo so new operators can be
// registered at runtime), this engine's operator set is fixed by the
// language grammar, so it is modeled as an enum with a static table
// instead.
type Operator int

const (
	OR Operator = iota
	AND
	EQUAL
	NOT_EQUAL
	CONTAINS
	GREATER_THAN
	GREATER_OR_EQUAL
	LOWER_THAN
	LOWER_OR_EQUAL
	NOT
	SIZEOF
	AS_INT
	AS_STRING
	AS_LIST

	numOperators
)

// Info carries the static metadata the parser and printer need for an
// operator: its precedence, arity, and its canonical symbol aliases (the
// first alias is what the printer emits).
type Info struct {
	Symbols    []string
	Precedence int
	Arity      int
}

// table is indexed by Operator and mirrors the teacher's
// OperatorInfoRegistry, but keyed by the closed enum rather than by name
// so lookups during shunting-yard are a slice index instead of a map hit.
var table = [numOperators]Info{
	OR:               {Symbols: []string{"||", "OR"}, Precedence: 3, Arity: 2},
	AND:              {Symbols: []string{"&&", "AND"}, Precedence: 4, Arity: 2},
	EQUAL:            {Symbols: []string{"=="}, Precedence: 8, Arity: 2},
	NOT_EQUAL:        {Symbols: []string{"!="}, Precedence: 8, Arity: 2},
	CONTAINS:         {Symbols: []string{"contains"}, Precedence: 9, Arity: 2},
	GREATER_THAN:     {Symbols: []string{">"}, Precedence: 10, Arity: 2},
	GREATER_OR_EQUAL: {Symbols: []string{">="}, Precedence: 10, Arity: 2},
	LOWER_THAN:       {Symbols: []string{"<"}, Precedence: 10, Arity: 2},
	LOWER_OR_EQUAL:   {Symbols: []string{"<="}, Precedence: 10, Arity: 2},
	NOT:              {Symbols: []string{"!", "NOT"}, Precedence: 13, Arity: 1},
	SIZEOF:           {Symbols: []string{"sizeof"}, Precedence: 14, Arity: 1},
	AS_INT:           {Symbols: []string{"(int)"}, Precedence: 14, Arity: 1},
	AS_STRING:        {Symbols: []string{"(string)"}, Precedence: 14, Arity: 1},
	AS_LIST:          {Symbols: []string{"(list)"}, Precedence: 14, Arity: 1},
}

// Info returns the operator's static metadata.
func (op Operator) Info() Info { return table[op] }

// Precedence returns the operator's shunting-yard precedence.
func (op Operator) Precedence() int { return table[op].Precedence }

// Arity returns 1 for unary operators and 2 for binary operators.
func (op Operator) Arity() int { return table[op].Arity }

// Symbol returns the canonical (first-alias) rendering of the operator,
// used by the printer.
func (op Operator) Symbol() string { return table[op].Symbols[0] }

// IsUnary reports whether the operator takes exactly one operand.
func (op Operator) IsUnary() bool { return op.Arity() == 1 }

// IsCast reports whether the operator is one of the three cast operators,
// which the parser requires to be applied directly to a variable.
func (op Operator) IsCast() bool {
	return op == AS_INT || op == AS_STRING || op == AS_LIST
}

// IsRelational reports whether the operator is one of the binary
// relational/logical operators the synthetic rewriter knows how to
// atomise (everything except AND/OR, which it concatenates instead).
func (op Operator) IsRelational() bool {
	switch op {
	case EQUAL, NOT_EQUAL, CONTAINS, GREATER_THAN, GREATER_OR_EQUAL, LOWER_THAN, LOWER_OR_EQUAL:
		return true
	default:
		return false
	}
}

func (op Operator) String() string {
	if op < 0 || int(op) >= len(table) {
		return "INVALID_OPERATOR"
	}
	return table[op].Symbols[0]
}

// allOperators lists every operator in declaration order; All returns a
// copy of it.
var allOperators = [numOperators]Operator{
	OR, AND, EQUAL, NOT_EQUAL, CONTAINS, GREATER_THAN, GREATER_OR_EQUAL,
	LOWER_THAN, LOWER_OR_EQUAL, NOT, SIZEOF, AS_INT, AS_STRING, AS_LIST,
}

// All returns every operator in declaration order, used by Token ordering
// (operators compare by declaration index) and by tests.
func All() []Operator {
	out := make([]Operator, len(allOperators))
	copy(out, allOperators[:])
	return out
}
