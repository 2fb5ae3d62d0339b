package reduce

import (
	"fmt"

	"github.com/npillmayer/smallstep/expr"
)

// Step applies exactly one rewrite to e and returns the new expression tree.
// e is left untouched; unchanged sub-trees are shared between e and the result.
//
// Step must not be called for a constant, as there is nothing left to
// reduce; it will return ErrInvariantViolation in this case.
func Step(e expr.Expr, functions *expr.FunctionTable) (expr.Expr, error) {
	if e == nil {
		return nil, fmt.Errorf("step called for nil expression")
	}
	switch x := e.(type) {
	case *expr.Const:
		tracer().Errorf("step called for constant %s", x)
		return nil, ErrInvariantViolation
	case *expr.Variable:
		tracer().Errorf("unbound variable %s", x.Name)
		return nil, &UnboundVariableError{Name: x.Name}
	case *expr.UnaryOp:
		return stepUnary(x, functions)
	case *expr.BinaryOp:
		return stepBinary(x, functions)
	case *expr.IfThenElse:
		return stepIf(x, functions)
	case *expr.FunctionCall:
		return stepCall(x, functions)
	}
	panic(unknownVariant(e))
}

func stepUnary(u *expr.UnaryOp, functions *expr.FunctionTable) (expr.Expr, error) {
	c, ok := u.Operand.(*expr.Const)
	if !ok {
		operand, err := Step(u.Operand, functions)
		if err != nil {
			return nil, err
		}
		return expr.Unary(u.Op, operand), nil
	}
	v, err := ApplyUnary(u.Op, c.Value)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("%s ⇒ %s", u, v)
	return expr.NewConst(v), nil
}

func stepBinary(b *expr.BinaryOp, functions *expr.FunctionTable) (expr.Expr, error) {
	lhs, ok := b.Lhs.(*expr.Const)
	if !ok { // left operand is reduced to completion first
		l, err := Step(b.Lhs, functions)
		if err != nil {
			return nil, err
		}
		return expr.Binary(b.Op, l, b.Rhs), nil
	}
	rhs, ok := b.Rhs.(*expr.Const)
	if !ok {
		r, err := Step(b.Rhs, functions)
		if err != nil {
			return nil, err
		}
		return expr.Binary(b.Op, lhs, r), nil
	}
	v, err := ApplyBinary(b.Op, lhs.Value, rhs.Value)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("%s ⇒ %s", b, v)
	return expr.NewConst(v), nil
}

func stepIf(ite *expr.IfThenElse, functions *expr.FunctionTable) (expr.Expr, error) {
	c, ok := ite.Condition.(*expr.Const)
	if !ok {
		cond, err := Step(ite.Condition, functions)
		if err != nil {
			return nil, err
		}
		return &expr.IfThenElse{Condition: cond, Then: ite.Then, Else: ite.Else, Source: ite.Source}, nil
	}
	if c.Value.Truthy() {
		tracer().Debugf("condition %s holds", c)
		return ite.Then, nil
	}
	tracer().Debugf("condition %s does not hold", c)
	return ite.Else, nil
}

func stepCall(fc *expr.FunctionCall, functions *expr.FunctionTable) (expr.Expr, error) {
	for i, arg := range fc.Args { // arguments from left to right
		if expr.IsConst(arg) {
			continue
		}
		a, err := Step(arg, functions)
		if err != nil {
			return nil, err
		}
		args := make([]expr.Expr, len(fc.Args))
		copy(args, fc.Args)
		args[i] = a
		return &expr.FunctionCall{Func: fc.Func, Args: args}, nil
	}
	def, ok := functions.Lookup(fc.Func)
	if !ok {
		tracer().Errorf("call of undefined function %s", fc.Func)
		return nil, &UndefinedFunctionError{Name: fc.Func}
	}
	if len(def.Parameters) != len(fc.Args) {
		tracer().Errorf("call %s does not match arity %d", fc, len(def.Parameters))
		return nil, &ArityMismatchError{Name: fc.Func, Expected: len(def.Parameters), Got: len(fc.Args)}
	}
	body, err := Substitute(def.Body, bind(def.Parameters, fc.Args))
	if err != nil {
		return nil, err
	}
	tracer().Debugf("%s ⇒ %s", fc, body)
	return body, nil
}

// --- Big-step convenience --------------------------------------------------

// Evaluate reduces the expression of an input to a value, without tracing
// intermediate steps. Evaluate does not return for non-terminating programs.
func Evaluate(input expr.Input) (expr.Value, error) {
	e := input.Expression
	if e == nil {
		return expr.Value{}, fmt.Errorf("input without expression")
	}
	steps := 0
	for {
		if c, ok := e.(*expr.Const); ok {
			tracer().Debugf("evaluated to %s in %d steps", c, steps)
			return c.Value, nil
		}
		next, err := Step(e, input.Functions)
		if err != nil {
			return expr.Value{}, err
		}
		e = next
		steps++
	}
}

func unknownVariant(e expr.Expr) error {
	return fmt.Errorf("unknown expression variant %T", e)
}
