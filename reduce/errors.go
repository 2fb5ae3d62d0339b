package reduce

import (
	"errors"
	"fmt"
)

// ErrInvariantViolation is returned if Step is called for an expression which
// is already fully reduced.
var ErrInvariantViolation = errors.New("step called after evaluation was finished")

// UnboundVariableError signals a variable outside of a substituted function body.
// Either the program references a name which is not a parameter, or
// substitution is broken.
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable: %s", e.Name)
}

// UndefinedFunctionError signals a call of a function missing from the
// function table.
type UndefinedFunctionError struct {
	Name string
}

func (e *UndefinedFunctionError) Error() string {
	return fmt.Sprintf("undefined function: %s", e.Name)
}

// ArityMismatchError signals a call with a wrong number of arguments.
type ArityMismatchError struct {
	Name     string
	Expected int
	Got      int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("wrong number of arguments to %s: %d for %d", e.Name, e.Got, e.Expected)
}
