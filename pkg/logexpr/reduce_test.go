package logexpr

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/archtmpl/logexpr/pkg/logexpr/value"
)

func mustCreate(t *testing.T, src string) *Expression {
	t.Helper()
	expr, err := Create(src)
	if err != nil {
		t.Fatalf("Create(%q): %v", src, err)
	}
	return expr
}

func TestReduceSeedScenarios(t *testing.T) {
	Convey("Reduce", t, func() {
		Convey("contradictory equalities reduce to constant false", func() {
			expr := mustCreate(t, "${a} == 'x' && ${a} == 'y'")
			So(expr.Reduce().Literal(), ShouldEqual, "false")
		})

		Convey("tautology a || !a reduces to TRUE", func() {
			expr := mustCreate(t, "${a} || !${a}")
			So(expr.Reduce().Equal(TRUE), ShouldBeTrue)
		})

		Convey("a && (b || !b) reduces to a", func() {
			expr := mustCreate(t, "${a} && (${b} || !${b})")
			So(expr.Reduce().Literal(), ShouldEqual, "${a}")
		})

		Convey("!= normalizes to !(==)", func() {
			expr := mustCreate(t, "${a} != ${b}")
			So(expr.Reduce().Literal(), ShouldEqual, "!(${a} == ${b})")
		})

		Convey("reduce is idempotent", func() {
			expr := mustCreate(t, "${a} && ${b} || !${a}")
			once := expr.Reduce()
			twice := once.Reduce()
			So(twice.Equal(once), ShouldBeTrue)
		})

		Convey("reduce preserves semantics for every total assignment", func() {
			expr := mustCreate(t, "(${a} == 1 || ${b}) && !${c}")
			reduced := expr.Reduce()
			for _, a := range []int64{0, 1} {
				for _, b := range []bool{true, false} {
					for _, c := range []bool{true, false} {
						r := resolverFromMap(map[string]value.Value{
							"a": value.NewInt(a),
							"b": value.NewBool(b),
							"c": value.NewBool(c),
						})
						orig, err := expr.Eval(r)
						So(err, ShouldBeNil)
						red, err := reduced.Eval(r)
						So(err, ShouldBeNil)
						So(red, ShouldEqual, orig)
					}
				}
			}
		})

		Convey("zero-variable expressions collapse to a boolean constant", func() {
			expr := mustCreate(t, "1 == 1 && 2 == 2")
			reduced := expr.Reduce()
			So(reduced.Equal(TRUE) || reduced.Equal(FALSE), ShouldBeTrue)
			So(reduced.Equal(TRUE), ShouldBeTrue)
		})
	})
}

func TestInline(t *testing.T) {
	Convey("Inline", t, func() {
		expr := mustCreate(t, "${a} && ${b}")
		r := resolverFromMap(map[string]value.Value{"a": value.True})
		inlined := expr.Inline(r)
		So(inlined.Variables(), ShouldResemble, []string{"b"})
	})
}

func TestRelativizeAndSub(t *testing.T) {
	Convey("relativize/sub", t, func() {
		Convey("relativize against self is TRUE", func() {
			e := mustCreate(t, "${a} && ${b}")
			So(e.Relativize(e).Equal(TRUE), ShouldBeTrue)
		})

		Convey("sub with no shared variables returns self", func() {
			e1 := mustCreate(t, "${a}")
			e2 := mustCreate(t, "${z}")
			So(e1.Sub(e2).Equal(e1), ShouldBeTrue)
		})

		Convey("e1.sub(e2) isolates the new information in e1", func() {
			e1 := mustCreate(t, "${a} && ${b}")
			e2 := mustCreate(t, "${a}")
			So(e1.Sub(e2).Reduce().Literal(), ShouldEqual, "${b}")
		})

		Convey("relativize mirrors sub plus and", func() {
			e1 := mustCreate(t, "${a} && ${b}")
			e2 := mustCreate(t, "${a}")
			So(e1.Relativize(e2).Reduce().Equal(mustCreate(t, "${b}").Reduce()), ShouldBeTrue)
		})
	})
}
