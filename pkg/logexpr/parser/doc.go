package parser

// The surface grammar this package's Scanner and Parse implement, in EBNF.
// Whitespace is insignificant between tokens; `#` starts a comment that
// runs to end of line.
//
//	expression  := orExpr
//	orExpr      := andExpr  ( ("||" | "OR")  andExpr  )*
//	andExpr     := relExpr  ( ("&&" | "AND") relExpr  )*
//	relExpr     := unary    ( relOp unary )?
//	relOp       := "==" | "!=" | "<" | ">" | "<=" | ">=" | "contains"
//	unary       := ("!" | "NOT" | "(int)" | "(string)" | "(list)" | "sizeof")* atom
//	atom        := "(" expression ")"
//	             | "true" | "false"
//	             | "'" <no-quote>* "'"   | "\"" <no-quote>* "\""
//	             | "-"? DIGIT+
//	             | "[" ( "'" <no-quote>* "'" ( "," ("'" <no-quote>* "'") )* )? "]"
//	             | "${" "~"? [A-Za-z0-9_.\-]+ "}"
//	comment     := "#" <to end of line>
