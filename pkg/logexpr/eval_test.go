package logexpr

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/archtmpl/logexpr/internal/fixtures"
	"github.com/archtmpl/logexpr/pkg/logexpr/value"
)

func resolverFromMap(m map[string]value.Value) Resolver {
	return func(name string) (value.Value, bool) {
		v, ok := m[name]
		return v, ok
	}
}

func TestEvalOperatorSemantics(t *testing.T) {
	Convey("Eval", t, func() {
		Convey("seed scenario: list contains and sizeof", func() {
			expr, err := Create("${b} contains 'x' && sizeof ${b} == 2")
			So(err, ShouldBeNil)
			r := resolverFromMap(map[string]value.Value{
				"b": value.NewList([]string{"x", "y"}),
			})
			result, err := expr.Eval(r)
			So(err, ShouldBeNil)
			So(result, ShouldBeTrue)
		})

		Convey("NOT negates a boolean operand", func() {
			expr, err := Create("!${a}")
			So(err, ShouldBeNil)
			result, err := expr.Eval(resolverFromMap(map[string]value.Value{"a": value.True}))
			So(err, ShouldBeNil)
			So(result, ShouldBeFalse)
		})

		Convey("integer comparisons coerce strings", func() {
			expr, err := Create("${n} > 3")
			So(err, ShouldBeNil)
			result, err := expr.Eval(resolverFromMap(map[string]value.Value{"n": value.NewString("5")}))
			So(err, ShouldBeNil)
			So(result, ShouldBeTrue)
		})

		Convey("CONTAINS with two lists checks subset", func() {
			expr, err := Create("${all} contains ${some}")
			So(err, ShouldBeNil)
			fix, err := fixtures.FromYAML(`
all:  [x, y, z]
some: [x, z]
`)
			So(err, ShouldBeNil)
			result, err := expr.Eval(Resolver(fix))
			So(err, ShouldBeNil)
			So(result, ShouldBeTrue)
		})

		Convey("an unresolved variable fails with UnresolvedVariableError", func() {
			expr, err := Create("${missing}")
			So(err, ShouldBeNil)
			_, err = expr.Eval(alwaysAbsent)
			So(err, ShouldNotBeNil)
			_, ok := err.(*UnresolvedVariableError)
			So(ok, ShouldBeTrue)
		})

		Convey("Eval0 succeeds for a variable-free expression", func() {
			expr, err := Create("1 == 1")
			So(err, ShouldBeNil)
			result, err := expr.Eval0()
			So(err, ShouldBeNil)
			So(result, ShouldBeTrue)
		})

		Convey("AS_INT cast coerces a numeric string", func() {
			expr, err := Create("(int) ${n} == 5")
			So(err, ShouldBeNil)
			result, err := expr.Eval(resolverFromMap(map[string]value.Value{"n": value.NewString("5")}))
			So(err, ShouldBeNil)
			So(result, ShouldBeTrue)
		})
	})
}
