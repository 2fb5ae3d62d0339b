/*
Package reduce implements the small-step reduction relation for expressions
of package expr.

Step applies exactly one rewrite to an expression. The redex is selected by
a strict leftmost-innermost, call-by-value strategy:

■ operands and arguments are reduced to constants before an operator or a
function is applied;

■ the left operand of a binary operation is reduced completely before the
first step on the right operand;

■ arguments of a call are reduced from left to right;

■ the condition of a conditional is reduced to a constant, then the whole
conditional is replaced by the selected branch.

Function calls are rewritten to the function body, with parameters substituted
by the (constant) arguments. Substitution builds a fresh copy of the body for
every invocation.

Every error of this package is fatal for an evaluation run.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package reduce

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'smallstep.reduce'.
func tracer() tracing.Trace {
	return tracing.Select("smallstep.reduce")
}
