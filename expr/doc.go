/*
Package expr defines the expression trees which are subject to small-step
reduction.

Expressions form a tagged union of six variants: constants, variables, unary
and binary operations, conditionals and function calls. Values are either
numbers (IEEE doubles) or booleans; operators coerce freely between them.

Expression trees are immutable by contract. No operation of this module or of
the reduction engine ever modifies a node after construction; every rewrite
produces a new root, possibly sharing unchanged sub-trees with its predecessor.

Every expression renders to a canonical string:

    Const          42   true   -3.75
    Variable       n
    UnaryOp        -(2 + 3)      !x
    BinaryOp       (lhs + rhs)
    IfThenElse     (c ? t : e)
    FunctionCall   f(a, b)

The rendering is the wire format of evaluation traces and must stay stable.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package expr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'smallstep.expr'.
func tracer() tracing.Trace {
	return tracing.Select("smallstep.expr")
}
