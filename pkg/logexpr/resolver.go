package logexpr

import "github.com/archtmpl/logexpr/pkg/logexpr/value"

// Resolver looks up a variable's current value. It returns ok=false when
// the name cannot be resolved at all — Eval then fails with
// UnresolvedVariableError, and Inline leaves the variable token in
// place. A Resolver may instead return (value.Absent, true) for a name it
// recognizes but has no data for right now; value.Absent.IsPresent() is
// false, but unlike ok=false it does not fail Eval outright — it behaves
// like an empty list operand, e.g. under SIZEOF or CONTAINS. See value.Absent's doc comment.
type Resolver func(name string) (value.Value, bool)

// alwaysAbsent is the resolver Eval0 (the no-arg form) uses: every variable
// is unresolvable, so only a variable-free expression can evaluate.
func alwaysAbsent(string) (value.Value, bool) { return nil, false }
