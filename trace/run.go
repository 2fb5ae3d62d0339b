package trace

import (
	"errors"

	"github.com/cnf/structhash"
	"github.com/npillmayer/smallstep/expr"
)

// Stop is returned by a consumer to end a run early. Run will not report it
// as an error.
var Stop = errors.New("stop tracing")

// Consumer receives expression states in order of their production.
// Returning Stop cancels the run, returning any other error aborts it.
type Consumer func(expr.Expr) error

// Run reduces input.Expression and hands every state to consumer, starting
// with the initial expression and ending with a constant. Cancellation by the
// consumer is checked between steps only.
//
// Run returns reduction errors and consumer errors other than Stop.
func Run(input expr.Input, consumer Consumer) error {
	if consumer == nil {
		return errors.New("trace run without consumer")
	}
	seq := New(input)
	for seq.Next() {
		if err := consumer(seq.Expr()); err != nil {
			seq.Break()
			if errors.Is(err, Stop) {
				tracer().Infof("trace stopped by consumer after %d steps", seq.Steps())
				return nil
			}
			return err
		}
	}
	return seq.Err()
}

// Collect runs a complete trace and returns the rendered states.
// Collect does not return for non-terminating programs.
func Collect(input expr.Input) ([]string, error) {
	return CollectN(input, 0)
}

// CollectN runs a trace, stopping after n states have been produced.
// n ≤ 0 means no limit. The states collected so far are returned even in
// case of an error.
func CollectN(input expr.Input, n int) ([]string, error) {
	var lines []string
	err := Run(input, func(e expr.Expr) error {
		lines = append(lines, e.String())
		if n > 0 && len(lines) >= n {
			return Stop
		}
		return nil
	})
	return lines, err
}

// --- Digests ---------------------------------------------------------------

type fingerprint struct {
	Lines []string
}

// Digest computes a stable fingerprint of a rendered trace. Equal traces
// produce equal digests, which makes it cheap to compare runs against
// recorded traces.
func Digest(lines []string) (string, error) {
	return structhash.Hash(fingerprint{Lines: lines}, 1)
}
