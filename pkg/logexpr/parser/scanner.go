package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/archtmpl/logexpr/pkg/logexpr/value"
)

// SymbolKind tags the raw lexical items the Scanner produces. Skip and
// Comment symbols never reach the parser; they are consumed internally.
type SymbolKind int

const (
	symArray SymbolKind = iota
	symBool
	symString
	symInt
	symVariable
	symBinaryOp
	symUnaryOp
	symLParen
	symRParen
)

// Symbol is one raw token recognized by the Scanner, still carrying its
// source position for error reporting.
type Symbol struct {
	Kind    SymbolKind
	Text    string
	Op      Operator
	Val     value.Value
	VarName string
	Pos     int
}

// recognizer pairs a compiled pattern, anchored at the cursor, with the
// symbol kind it produces. Order matters: the scanner tries these in
// sequence and takes the first match, exactly as spec'd.
type recognizer struct {
	kind    SymbolKind
	pattern *regexp.Regexp
	skip    bool
}

var (
	reSkip    = regexp.MustCompile(`^[ \t\r\n]+`)
	reComment = regexp.MustCompile(`^#[^\n]*`)
	reArray   = regexp.MustCompile(`^\[[^\]\[]*\]`)
	reBool    = regexp.MustCompile(`^(?:true|false)\b`)
	reString  = regexp.MustCompile(`^(?:'[^']*'|"[^"]*")`)
	reInt     = regexp.MustCompile(`^-?[0-9]+`)
	reVar     = regexp.MustCompile(`^\$\{~?[\w.-]+\}`)
	reBinOp   = regexp.MustCompile(`^(?:<=|>=|==|!=|\|\||&&|<|>|OR\b|AND\b|contains\b)`)
	reUnOp    = regexp.MustCompile(`^(?:!|NOT\b|\(list\)|\(string\)|\(int\)|sizeof\b)`)
	reLParen  = regexp.MustCompile(`^\(`)
	reRParen  = regexp.MustCompile(`^\)`)
)

var binarySymbolToOperator = map[string]Operator{
	"||": OR, "OR": OR,
	"&&": AND, "AND": AND,
	"==": EQUAL,
	"!=": NOT_EQUAL,
	"contains": CONTAINS,
	">":  GREATER_THAN,
	">=": GREATER_OR_EQUAL,
	"<":  LOWER_THAN,
	"<=": LOWER_OR_EQUAL,
}

var unarySymbolToOperator = map[string]Operator{
	"!": NOT, "NOT": NOT,
	"sizeof":   SIZEOF,
	"(int)":    AS_INT,
	"(string)": AS_STRING,
	"(list)":   AS_LIST,
}

// Scanner turns a source string into a lazy sequence of Symbols, trying a
// fixed, ordered list of regular expressions at each position (spec
// §4.1). It is deliberately regex-driven rather than hand-rolled
// character scanning, per the language grammar this engine implements.
type Scanner struct {
	input string
	pos   int
}

// NewScanner returns a Scanner positioned at the start of src.
func NewScanner(src string) *Scanner {
	return &Scanner{input: src}
}

// Next returns the next non-skip, non-comment Symbol, or ok=false once
// the input is exhausted. An unrecognized byte sequence at the cursor is
// reported as a *FormatError carrying the offending remainder.
func (s *Scanner) Next() (Symbol, bool, error) {
	for {
		if s.pos >= len(s.input) {
			return Symbol{}, false, nil
		}
		rest := s.input[s.pos:]

		if m := reSkip.FindString(rest); m != "" {
			s.pos += len(m)
			continue
		}

		if m := reArray.FindString(rest); m != "" {
			items, err := parseArrayLiteral(m)
			if err != nil {
				return Symbol{}, false, &FormatError{Msg: err.Error(), Remainder: rest}
			}
			sym := Symbol{Kind: symArray, Text: m, Val: value.NewList(items), Pos: s.pos}
			s.pos += len(m)
			return sym, true, nil
		}
		if m := reBool.FindString(rest); m != "" {
			sym := Symbol{Kind: symBool, Text: m, Val: value.NewBool(m == "true"), Pos: s.pos}
			s.pos += len(m)
			return sym, true, nil
		}
		if m := reString.FindString(rest); m != "" {
			sym := Symbol{Kind: symString, Text: m, Val: value.NewString(m[1 : len(m)-1]), Pos: s.pos}
			s.pos += len(m)
			return sym, true, nil
		}
		if m := reInt.FindString(rest); m != "" {
			n, err := strconv.ParseInt(m, 10, 64)
			if err != nil {
				return Symbol{}, false, &FormatError{Msg: "malformed integer literal: " + m, Remainder: rest}
			}
			sym := Symbol{Kind: symInt, Text: m, Val: value.NewInt(n), Pos: s.pos}
			s.pos += len(m)
			return sym, true, nil
		}
		if m := reVar.FindString(rest); m != "" {
			name := m[2 : len(m)-1]
			sym := Symbol{Kind: symVariable, Text: m, VarName: name, Pos: s.pos}
			s.pos += len(m)
			return sym, true, nil
		}
		if m := reBinOp.FindString(rest); m != "" {
			op, ok := binarySymbolToOperator[m]
			if !ok {
				return Symbol{}, false, &FormatError{Msg: "unknown binary operator: " + m, Remainder: rest}
			}
			sym := Symbol{Kind: symBinaryOp, Text: m, Op: op, Pos: s.pos}
			s.pos += len(m)
			return sym, true, nil
		}
		if m := reUnOp.FindString(rest); m != "" {
			op, ok := unarySymbolToOperator[m]
			if !ok {
				return Symbol{}, false, &FormatError{Msg: "unknown unary operator: " + m, Remainder: rest}
			}
			sym := Symbol{Kind: symUnaryOp, Text: m, Op: op, Pos: s.pos}
			s.pos += len(m)
			return sym, true, nil
		}
		if m := reLParen.FindString(rest); m != "" {
			sym := Symbol{Kind: symLParen, Text: m, Pos: s.pos}
			s.pos += len(m)
			return sym, true, nil
		}
		if m := reRParen.FindString(rest); m != "" {
			sym := Symbol{Kind: symRParen, Text: m, Pos: s.pos}
			s.pos += len(m)
			return sym, true, nil
		}
		if m := reComment.FindString(rest); m != "" {
			s.pos += len(m)
			continue
		}

		cut := rest
		if len(cut) > 32 {
			cut = cut[:32] + "..."
		}
		return Symbol{}, false, &FormatError{
			Msg:       fmt.Sprintf("unrecognized input at position %d: %q", s.pos, cut),
			Remainder: rest,
		}
	}
}

// parseArrayLiteral parses the inside of a `[...]` match into its
// comma-separated single-quoted string elements. An empty `[]` yields a
// zero-length list.
func parseArrayLiteral(raw string) ([]string, error) {
	inner := strings.TrimSpace(raw[1 : len(raw)-1])
	if inner == "" {
		return nil, nil
	}
	parts := strings.Split(inner, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if len(p) < 2 || p[0] != '\'' || p[len(p)-1] != '\'' {
			return nil, fmt.Errorf("array element is not a single-quoted string: %q", p)
		}
		items = append(items, p[1:len(p)-1])
	}
	return items, nil
}
