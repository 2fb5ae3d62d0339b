package reduce

import (
	"fmt"

	"github.com/npillmayer/smallstep/expr"
)

// Substitute returns a copy of e with every variable replaced by its binding.
// A variable without a binding results in an UnboundVariableError.
//
// All nodes except constants are newly allocated, so the result never shares
// structure with e. Bound expressions are inserted as they are.
func Substitute(e expr.Expr, bindings map[string]expr.Expr) (expr.Expr, error) {
	switch x := e.(type) {
	case nil:
		return nil, fmt.Errorf("cannot substitute in nil expression")
	case *expr.Const:
		return x, nil
	case *expr.Variable:
		if b, ok := bindings[x.Name]; ok {
			return b, nil
		}
		tracer().Errorf("unbound variable %s during substitution", x.Name)
		return nil, &UnboundVariableError{Name: x.Name}
	case *expr.UnaryOp:
		operand, err := Substitute(x.Operand, bindings)
		if err != nil {
			return nil, err
		}
		return expr.Unary(x.Op, operand), nil
	case *expr.BinaryOp:
		lhs, err := Substitute(x.Lhs, bindings)
		if err != nil {
			return nil, err
		}
		rhs, err := Substitute(x.Rhs, bindings)
		if err != nil {
			return nil, err
		}
		return expr.Binary(x.Op, lhs, rhs), nil
	case *expr.IfThenElse:
		cond, err := Substitute(x.Condition, bindings)
		if err != nil {
			return nil, err
		}
		then, err := Substitute(x.Then, bindings)
		if err != nil {
			return nil, err
		}
		els, err := Substitute(x.Else, bindings)
		if err != nil {
			return nil, err
		}
		return &expr.IfThenElse{Condition: cond, Then: then, Else: els, Source: x.Source}, nil
	case *expr.FunctionCall:
		args := make([]expr.Expr, len(x.Args))
		for i, arg := range x.Args {
			a, err := Substitute(arg, bindings)
			if err != nil {
				return nil, err
			}
			args[i] = a
		}
		return &expr.FunctionCall{Func: x.Func, Args: args}, nil
	}
	panic(unknownVariant(e))
}

// bind zips parameter names with arguments.
func bind(params []string, args []expr.Expr) map[string]expr.Expr {
	bindings := make(map[string]expr.Expr, len(params))
	for i, p := range params {
		bindings[p] = args[i]
	}
	return bindings
}
