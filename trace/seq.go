package trace

import (
	"errors"

	"github.com/npillmayer/smallstep/expr"
	"github.com/npillmayer/smallstep/reduce"
)

// ErrNoExpression is reported by sequences for inputs without an expression.
var ErrNoExpression = errors.New("input contains no expression")

// Seq is a lazy sequence of the states of an expression under reduction.
// A Seq is restartable and owns its expression states; the function table
// of the input is only read.
//
// Seqs are not safe for concurrent use. Separate Seqs over the same input may
// be used concurrently.
type Seq struct {
	input   expr.Input
	current expr.Expr // most recently produced state
	steps   int       // number of reduction steps performed
	started bool
	done    bool
	err     error
}

// New creates a sequence for the reduction of input.Expression.
func New(input expr.Input) *Seq {
	return &Seq{input: input}
}

// Next advances the sequence to the next expression state, which will then be
// available through Expr. It returns false if the sequence is exhausted,
// has been stopped, or if reduction failed. In the latter case, Err will
// report the error.
func (seq *Seq) Next() bool {
	if seq.done {
		return false
	}
	if !seq.started {
		seq.started = true
		if seq.input.Expression == nil {
			return seq.fail(ErrNoExpression)
		}
		seq.current = seq.input.Expression
		tracer().Debugf("[%4d] %s", seq.steps, seq.current)
		return true
	}
	if expr.IsConst(seq.current) { // terminal state has already been produced
		seq.done = true
		tracer().Debugf("reduced to %s in %d steps", seq.current, seq.steps)
		return false
	}
	next, err := reduce.Step(seq.current, seq.input.Functions)
	if err != nil {
		return seq.fail(err)
	}
	seq.current = next
	seq.steps++
	tracer().Debugf("[%4d] %s", seq.steps, seq.current)
	return true
}

func (seq *Seq) fail(err error) bool {
	tracer().Errorf("reduction failed after %d steps: %v", seq.steps, err)
	seq.err = err
	seq.done = true
	return false
}

// Expr returns the current expression state, i.e. the state produced by the
// most recent successful call to Next.
func (seq *Seq) Expr() expr.Expr {
	return seq.current
}

// Steps returns the number of reduction steps performed so far.
func (seq *Seq) Steps() int {
	return seq.steps
}

// Err returns the error which ended the sequence, if any. A sequence which
// has been stopped by Break or has reached a constant reports nil.
func (seq *Seq) Err() error {
	return seq.err
}

// Break signals a sequence to stop iterating. No further reduction steps
// will be performed.
func (seq *Seq) Break() {
	seq.done = true
}

// Done returns true if a sequence stopped iterating.
func (seq *Seq) Done() bool {
	return seq.done
}

// Terminal is true if the current state is a constant.
func (seq *Seq) Terminal() bool {
	return seq.current != nil && expr.IsConst(seq.current)
}

// Restart resets a sequence to its initial state. The next call to Next will
// produce the input expression again.
func (seq *Seq) Restart() {
	*seq = Seq{input: seq.input}
}
