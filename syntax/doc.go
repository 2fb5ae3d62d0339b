/*
Package syntax parses a JavaScript-like surface syntax into expression trees.

The accepted language is a small subset of JavaScript expressions:

    42   3.75   1e-3   true   false    literals
    n                                  variables (function parameters)
    -x   !x                            prefix operators
    *  /  %                            multiplicative operators
    +  -                               additive operators
    <  >  <=  >=                       relational operators
    ==  !=  ===  !==                   equality operators
    c ? t : e                          conditionals
    f(a, b)                            calls of named functions

Operators have JavaScript precedence and associativity. Parentheses group,
but do not show up in the expression tree. Any other syntax, e.g. a call of
something other than a plain function name, an assignment or a logical
operator like '&&', results in a SyntaxError.

Functions are defined with

    name(param1, param2, …) = body

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package syntax

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'smallstep.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("smallstep.syntax")
}
