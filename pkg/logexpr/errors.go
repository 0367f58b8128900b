package logexpr

import (
	"fmt"

	"github.com/starkandwayne/goutils/ansi"

	"github.com/archtmpl/logexpr/pkg/logexpr/parser"
)

// FormatError is raised by Create for unrecognized input, unmatched
// parentheses, operand/arity mismatches, an empty expression, or a final
// postfix stack size other than 1. It is simply the parser package's
// FormatError, re-exported here so callers only ever import this
// package.
type FormatError = parser.FormatError

// UnresolvedVariableError is raised by Eval when the supplied Resolver
// reports a variable as not resolvable. Its Error() is ansi-colorable the
// same way the teacher's GraftError/MultiError render theirs, via
// github.com/starkandwayne/goutils/ansi's "@r{...}" markup.
type UnresolvedVariableError struct {
	Name string
}

func (e *UnresolvedVariableError) Error() string {
	return ansi.Sprintf("@r{unresolved variable}: ${%s}", e.Name)
}

// InvalidStateError denotes an internal consistency violation that is
// expected to be unreachable — e.g. the evaluator's value stack not
// containing exactly one boolean at the end of a well-formed postfix
// program. Callers should treat it as a bug in the engine, not retry it.
type InvalidStateError struct {
	Msg string
}

func (e *InvalidStateError) Error() string {
	return ansi.Sprintf("@R{internal error}: %s", e.Msg)
}

func invalidState(format string, args ...interface{}) error {
	return &InvalidStateError{Msg: fmt.Sprintf(format, args...)}
}
