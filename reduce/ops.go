package reduce

import (
	"fmt"
	"math"

	"github.com/npillmayer/smallstep/expr"
)

// --- Operator semantics ----------------------------------------------------

// ApplyUnary applies a unary operator to a value.
func ApplyUnary(op expr.UnaryOperator, v expr.Value) (expr.Value, error) {
	switch op {
	case expr.Negate:
		return expr.Number(-v.ToNumber()), nil
	case expr.Not:
		return expr.Bool(!v.Truthy()), nil
	}
	return expr.Value{}, fmt.Errorf("unknown unary operator %q", op)
}

// ApplyBinary applies a binary operator to two values. Arithmetic and ordering
// coerce both operands to numbers, == and != compare after numeric promotion,
// === and !== require operands of identical kind.
func ApplyBinary(op expr.BinaryOperator, lhs, rhs expr.Value) (expr.Value, error) {
	a, b := lhs.ToNumber(), rhs.ToNumber()
	switch op {
	case expr.Add:
		return expr.Number(a + b), nil
	case expr.Sub:
		return expr.Number(a - b), nil
	case expr.Mul:
		return expr.Number(a * b), nil
	case expr.Div:
		return expr.Number(a / b), nil
	case expr.Mod:
		return expr.Number(math.Mod(a, b)), nil
	case expr.Greater:
		return expr.Bool(a > b), nil
	case expr.Less:
		return expr.Bool(a < b), nil
	case expr.LessEq:
		return expr.Bool(a <= b), nil
	case expr.GreaterEq:
		return expr.Bool(a >= b), nil
	case expr.Eq:
		return expr.Bool(looseEqual(lhs, rhs)), nil
	case expr.NotEq:
		return expr.Bool(!looseEqual(lhs, rhs)), nil
	case expr.StrictEq:
		return expr.Bool(strictEqual(lhs, rhs)), nil
	case expr.StrictNotEq:
		return expr.Bool(!strictEqual(lhs, rhs)), nil
	}
	return expr.Value{}, fmt.Errorf("unknown binary operator %q", op)
}

func looseEqual(lhs, rhs expr.Value) bool {
	if lhs.IsBool() && rhs.IsBool() {
		return lhs.Truthy() == rhs.Truthy()
	}
	return lhs.ToNumber() == rhs.ToNumber()
}

func strictEqual(lhs, rhs expr.Value) bool {
	if lhs.Kind() != rhs.Kind() {
		return false
	}
	if lhs.IsBool() {
		return lhs.Truthy() == rhs.Truthy()
	}
	return lhs.ToNumber() == rhs.ToNumber() // NaN ≠ NaN
}
