// Package value implements the tagged runtime datum carried by expression
// operands and returned by variable resolvers: booleans, signed integers,
// strings, and string lists, plus the cross-type equality rule the
// evaluator and reducer both rely on.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	// Bool holds a boolean.
	Bool Kind = iota
	// Int holds a signed 64-bit integer.
	Int
	// String holds a quoted text literal.
	String
	// List holds an ordered sequence of strings.
	List
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case String:
		return "string"
	case List:
		return "list"
	default:
		return "unknown"
	}
}

// Value is the sole runtime datum produced by literals, variables, and
// operator results. Implementations are immutable and comparable by Eq.
type Value interface {
	Kind() Kind

	// Bool returns the boolean payload. Panics if Kind() != Bool; the
	// caller is expected to have checked the kind first, same as the
	// engine's other strict accessors.
	Bool() bool
	// Int returns the integer payload. Panics if Kind() != Int.
	Int() int64
	// Str returns the string payload. Panics if Kind() != String.
	Str() string
	// Strs returns the list payload. Panics if Kind() != List.
	Strs() []string

	// AsBool is the lenient accessor used by OR/AND: it returns (b, true)
	// only for a Bool value, and (false, false) for every other kind
	// instead of panicking.
	AsBool() (bool, bool)

	// AsInt coerces the value to an integer the way the comparison
	// operators require: Int passes through, String is parsed as a
	// decimal integer, Bool becomes 1 or 0, and List fails.
	AsInt() (int64, bool)

	// Render returns the canonical string form used by cross-type
	// equality and by the printer for literal tokens.
	Render() string

	// IsPresent is false only for the Absent sentinel returned by a
	// resolver that found the variable's name but has no data to give
	// for it (as opposed to returning ok=false, which the evaluator
	// instead turns into UnresolvedVariable). See resolver docs.
	IsPresent() bool
}

type boolValue bool

func (v boolValue) Kind() Kind        { return Bool }
func (v boolValue) Bool() bool        { return bool(v) }
func (v boolValue) Int() int64        { panic("value: Int() called on a Bool value") }
func (v boolValue) Str() string       { panic("value: Str() called on a Bool value") }
func (v boolValue) Strs() []string    { panic("value: Strs() called on a Bool value") }
func (v boolValue) AsBool() (bool, bool) { return bool(v), true }
func (v boolValue) AsInt() (int64, bool) {
	if v {
		return 1, true
	}
	return 0, true
}
func (v boolValue) Render() string   { return strconv.FormatBool(bool(v)) }
func (v boolValue) IsPresent() bool  { return true }

type intValue int64

func (v intValue) Kind() Kind           { return Int }
func (v intValue) Bool() bool           { panic("value: Bool() called on an Int value") }
func (v intValue) Int() int64           { return int64(v) }
func (v intValue) Str() string          { panic("value: Str() called on an Int value") }
func (v intValue) Strs() []string       { panic("value: Strs() called on an Int value") }
func (v intValue) AsBool() (bool, bool) { return false, false }
func (v intValue) AsInt() (int64, bool) { return int64(v), true }
func (v intValue) Render() string       { return strconv.FormatInt(int64(v), 10) }
func (v intValue) IsPresent() bool      { return true }

type stringValue string

func (v stringValue) Kind() Kind        { return String }
func (v stringValue) Bool() bool        { panic("value: Bool() called on a String value") }
func (v stringValue) Int() int64        { panic("value: Int() called on a String value") }
func (v stringValue) Str() string       { return string(v) }
func (v stringValue) Strs() []string    { panic("value: Strs() called on a String value") }
func (v stringValue) AsBool() (bool, bool) { return false, false }
func (v stringValue) AsInt() (int64, bool) {
	n, err := strconv.ParseInt(string(v), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
func (v stringValue) Render() string  { return string(v) }
func (v stringValue) IsPresent() bool { return true }

type listValue struct {
	items  []string
	absent bool
}

func (v listValue) Kind() Kind           { return List }
func (v listValue) Bool() bool           { panic("value: Bool() called on a List value") }
func (v listValue) Int() int64           { panic("value: Int() called on a List value") }
func (v listValue) Str() string          { panic("value: Str() called on a List value") }
func (v listValue) Strs() []string       { return v.items }
func (v listValue) AsBool() (bool, bool) { return false, false }
func (v listValue) AsInt() (int64, bool) { return 0, false }
func (v listValue) Render() string {
	parts := make([]string, len(v.items))
	for i, s := range v.items {
		parts[i] = "'" + s + "'"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (v listValue) IsPresent() bool { return !v.absent }

// NewBool wraps a boolean as a Value.
func NewBool(b bool) Value { return boolValue(b) }

// NewInt wraps a signed integer as a Value.
func NewInt(n int64) Value { return intValue(n) }

// NewString wraps a string as a Value.
func NewString(s string) Value { return stringValue(s) }

// NewList wraps a slice of strings as a Value. The slice is not copied;
// callers must treat it as immutable once handed to NewList.
func NewList(items []string) Value { return listValue{items: items} }

// Absent is the sentinel a Resolver may return for a variable name it
// recognizes but has no data for (distinct from returning ok=false, which
// means the name isn't resolvable at all). IsPresent reports false; every
// other accessor behaves like an empty list.
var Absent Value = listValue{items: nil, absent: true}

// True and False are the two Bool singletons the engine interns for its
// constant-folding rules.
var (
	True  Value = boolValue(true)
	False Value = boolValue(false)
)

// Eq implements the engine's cross-type equality rule: render both sides
// to their canonical string form (after numeric/bool coercion) and compare
// textually, except for List/List pairs, which compare element-wise.
func Eq(a, b Value) bool {
	if a.Kind() == List && b.Kind() == List {
		as, bs := a.Strs(), b.Strs()
		if len(as) != len(bs) {
			return false
		}
		for i := range as {
			if as[i] != bs[i] {
				return false
			}
		}
		return true
	}
	if a.Kind() == List || b.Kind() == List {
		return false
	}
	return a.Render() == b.Render()
}

// String renders a Value for debugging; it is identical to Render for all
// kinds and exists so Value satisfies fmt.Stringer.
func (v boolValue) String() string   { return v.Render() }
func (v intValue) String() string    { return v.Render() }
func (v stringValue) String() string { return v.Render() }
func (v listValue) String() string   { return v.Render() }

// Compare orders two Values for Token comparison purposes: by Kind first
// (Bool < Int < String < List, matching declaration order), then by
// rendered form within a kind.
func Compare(a, b Value) int {
	if a.Kind() != b.Kind() {
		if a.Kind() < b.Kind() {
			return -1
		}
		return 1
	}
	ar, br := a.Render(), b.Render()
	switch {
	case ar < br:
		return -1
	case ar > br:
		return 1
	default:
		return 0
	}
}

var _ fmt.Stringer = boolValue(false)
