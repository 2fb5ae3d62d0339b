/*
Package smallstep implements small-step operational semantics for a tiny
expression language. Expressions are reduced one rewrite at a time, and every
intermediate form of the expression tree is made available to clients. This is
useful for teaching substitution-based evaluation, where the way to a value
is more interesting than the value itself.

The language knows numbers, booleans, arithmetic, comparisons, conditionals and
calls of user-defined (possibly recursive) functions. Package structure is
as follows:

■ expr: Package expr defines the expression tree, values and function tables,
together with the canonical rendering of expressions.

■ reduce: Package reduce implements substitution and the single-step reduction
relation.

■ trace: Package trace drives reductions and produces traces of expression
states, with cancellation under the control of the consumer.

■ syntax: Package syntax parses a JavaScript-like surface syntax into
expression trees.

■ cmd/sstep: Command sstep traces expressions from the command line or in an
interactive session.

The base package contains data types which are used throughout the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package smallstep
