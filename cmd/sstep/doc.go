/*
Sstep is a command line tool which traces the step-by-step evaluation of
expressions.

Usage:

    sstep [flags] [expression]

With an expression argument, sstep prints every intermediate form of the
expression until it is reduced to a value. Without an argument, sstep starts
an interactive session. Lines entered are either function definitions,
expressions to trace, or commands:

    sstep> square(x) = x * x
    sstep> square(3) + 1
    sstep> :tree square(3) + 1
    sstep> :funcs
    sstep> :quit

Function 'factorial' is pre-defined.

Flags are:

    -trace       trace level [Debug|Info|Error], default from $SSTEP_TRACE
    -init        file with function definitions, one per line
    -max-steps   stop a trace after n expressions, default from $SSTEP_MAX_STEPS
    -digest      print a digest for every trace
    -grammar     print the grammar of the input language and exit

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'smallstep.cli'
func tracer() tracing.Trace {
	return tracing.Select("smallstep.cli")
}
