// Command logexpr is a thin diagnostic tool that exercises the engine
// against a single expression given on argv: it prints the canonical
// literal form, the referenced variables, the reduced form, and — for a
// variable-free expression only — the evaluation result. It reads no
// variable bindings. It loads internal/config (from the path in
// LOGEXPR_CONFIG) for its color toggle and reduction policy threshold,
// the way the teacher's cmd/graft loads its color flag. It is not a
// consumer-facing CLI product; it carries no business logic.
package main

import (
	"fmt"
	"os"

	"github.com/starkandwayne/goutils/ansi"

	"github.com/archtmpl/logexpr/internal/config"
	"github.com/archtmpl/logexpr/pkg/logexpr"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, ansi.Sprintf("@R{usage}: logexpr '<expression>'"))
		os.Exit(2)
	}
	source := os.Args[1]

	cfg, err := config.NewLoader().Load(os.Getenv("LOGEXPR_CONFIG"))
	if err != nil {
		fmt.Fprintln(os.Stderr, ansi.Sprintf("@R{config error}: %s", err))
		os.Exit(1)
	}
	ansi.Color(cfg.Output.Color)

	expr, err := logexpr.Create(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, ansi.Sprintf("@R{parse error}: %s", err))
		os.Exit(1)
	}

	fmt.Println(ansi.Sprintf("@G{literal}:  %s", expr.Literal()))
	fmt.Println(ansi.Sprintf("@G{variables}: %v", expr.Variables()))

	if max := cfg.Engine.MaxReduceVariables; max > 0 && len(expr.Variables()) > max {
		fmt.Println(ansi.Sprintf("@Y{reduced}:  skipped (%d variables exceeds policy threshold %d)", len(expr.Variables()), max))
		return
	}

	reduced := expr.Reduce()
	fmt.Println(ansi.Sprintf("@G{reduced}:  %s", reduced.Literal()))

	if len(expr.Variables()) == 0 {
		result, err := expr.Eval0()
		if err != nil {
			fmt.Fprintln(os.Stderr, ansi.Sprintf("@R{eval error}: %s", err))
			os.Exit(1)
		}
		fmt.Println(ansi.Sprintf("@G{eval}:     %v", result))
	}
}
