/*
Package trace drives step-by-step reduction of expressions and emits every
intermediate expression state.

A Seq is a lazy sequence of expression states. It produces the initial
expression first, then one new whole-tree state per reduction step, and ends
after a constant has been produced. Every state is computed on demand; nothing
is reduced ahead of the consumer. Clients may stop a sequence at any time with
Break, which is the way to bound the trace of a non-terminating program:

    seq := trace.New(input)
    for seq.Next() {
        fmt.Println(seq.Expr())
        if seq.Steps() == 100 {
            seq.Break()
        }
    }
    if err := seq.Err(); err != nil {
        …
    }

Run wraps this loop for callback-style consumers. A consumer cancels a run by
returning Stop.

There is no step limit or timeout in this package: a program which recurses
forever produces an infinite trace unless the consumer stops it.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package trace

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'smallstep.trace'.
func tracer() tracing.Trace {
	return tracing.Select("smallstep.trace")
}
