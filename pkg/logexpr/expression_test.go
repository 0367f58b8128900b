package logexpr

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCreateAndCaching(t *testing.T) {
	Convey("Create", t, func() {
		Convey("parses a well-formed expression", func() {
			expr, err := Create("${a} == 'x'")
			So(err, ShouldBeNil)
			So(expr.Literal(), ShouldEqual, "${a} == 'x'")
		})

		Convey("caches by source string", func() {
			e1, err := Create("${cache-me} && true")
			So(err, ShouldBeNil)
			e2, err := Create("${cache-me} && true")
			So(err, ShouldBeNil)
			So(e1, ShouldEqual, e2)
		})

		Convey("rejects malformed input with a FormatError", func() {
			_, err := Create("1 ==")
			So(err, ShouldNotBeNil)
			So(err, ShouldHaveSameTypeAs, &FormatError{})
		})

		Convey("rejects empty input", func() {
			_, err := Create("")
			So(err, ShouldNotBeNil)
		})

		Convey("rejects an unmatched '('", func() {
			_, err := Create("(")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestVariables(t *testing.T) {
	Convey("Variables", t, func() {
		expr, err := Create("${a} && (${b} || ${a})")
		So(err, ShouldBeNil)
		So(expr.Variables(), ShouldResemble, []string{"a", "b"})
	})
}

func TestAndOrNegateConstantFolding(t *testing.T) {
	Convey("constant folding", t, func() {
		expr, err := Create("${a}")
		So(err, ShouldBeNil)

		Convey("And(TRUE) is a no-op", func() {
			So(expr.And(TRUE).Equal(expr), ShouldBeTrue)
		})
		Convey("And(FALSE) collapses to FALSE", func() {
			So(expr.And(FALSE).Equal(FALSE), ShouldBeTrue)
		})
		Convey("Or(FALSE) is a no-op", func() {
			So(expr.Or(FALSE).Equal(expr), ShouldBeTrue)
		})
		Convey("Or(TRUE) collapses to TRUE", func() {
			So(expr.Or(TRUE).Equal(TRUE), ShouldBeTrue)
		})
		Convey("Negate is involutive up to structural equality", func() {
			So(expr.Negate().Negate().Equal(expr), ShouldBeTrue)
		})
		Convey("Negate(TRUE) is FALSE and vice versa", func() {
			So(TRUE.Negate().Equal(FALSE), ShouldBeTrue)
			So(FALSE.Negate().Equal(TRUE), ShouldBeTrue)
		})
	})
}

func TestLiteralRoundTrip(t *testing.T) {
	Convey("literal() round-trips through Create", t, func() {
		sources := []string{
			"${a} == 'x'",
			"${a} || !${a}",
			"NOT NOT ${a}",
			"(${a} || ${b}) && ${c}",
			"${b} contains 'x' && sizeof ${b} == 2",
			"!(${a} == ${b})",
		}
		for _, src := range sources {
			expr, err := Create(src)
			So(err, ShouldBeNil)
			reparsed, err := Create(expr.Literal())
			So(err, ShouldBeNil)
			So(reparsed.Equal(expr), ShouldBeTrue)
		}
	})
}

func TestEqualAndLess(t *testing.T) {
	Convey("Equal/Less", t, func() {
		a, _ := Create("${a}")
		b, _ := Create("${b}")
		aAgain, _ := Create("${a}")

		So(a.Equal(aAgain), ShouldBeTrue)
		So(a.Equal(b), ShouldBeFalse)
		So(a.Less(b) != b.Less(a), ShouldBeTrue)
	})
}
