package reduce

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/smallstep/expr"
)

func factorialTable(t *testing.T) *expr.FunctionTable {
	// factorial(n) = n <= 0 ? 1 : n * factorial(n-1)
	body := expr.If(
		expr.Binary(expr.LessEq, expr.Var("n"), expr.Num(0)),
		expr.Num(1),
		expr.Binary(expr.Mul, expr.Var("n"),
			expr.Call("factorial", expr.Binary(expr.Sub, expr.Var("n"), expr.Num(1)))))
	def, err := expr.NewFunctionDef([]string{"n"}, body)
	if err != nil {
		t.Fatal(err)
	}
	ft := expr.NewFunctionTable()
	if err = ft.Define("factorial", def); err != nil {
		t.Fatal(err)
	}
	return ft
}

// steps reduces e to a constant and returns the rendered sequence of states.
func steps(t *testing.T, e expr.Expr, ft *expr.FunctionTable) []string {
	t.Helper()
	lines := []string{e.String()}
	for !expr.IsConst(e) {
		var err error
		if e, err = Step(e, ft); err != nil {
			t.Fatalf("step failed: %v", err)
		}
		lines = append(lines, e.String())
	}
	return lines
}

func compare(t *testing.T, have, want []string) {
	t.Helper()
	if len(have) != len(want) {
		t.Fatalf("expected %d steps, have %d: %v", len(want), len(have), have)
	}
	for i := range want {
		if have[i] != want[i] {
			t.Errorf("step %d: expected %q, have %q", i, want[i], have[i])
		}
	}
}

// --- the Tests -------------------------------------------------------------

func TestStepAddition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "smallstep.reduce")
	defer teardown()
	//
	e := expr.Binary(expr.Add, expr.Num(42), expr.Num(23))
	compare(t, steps(t, e, nil), []string{"(42 + 23)", "65"})
}

func TestStepNegativeNumbers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "smallstep.reduce")
	defer teardown()
	//
	// -42 > -(23+13)
	e := expr.Binary(expr.Greater,
		expr.Unary(expr.Negate, expr.Num(42)),
		expr.Unary(expr.Negate, expr.Binary(expr.Add, expr.Num(23), expr.Num(13))))
	compare(t, steps(t, e, nil), []string{
		"(-42 > -(23 + 13))",
		"(-42 > -(23 + 13))",
		"(-42 > -36)",
		"(-42 > -36)",
		"false",
	})
}

func TestStepFactorial(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "smallstep.reduce")
	defer teardown()
	//
	ft := factorialTable(t)
	compare(t, steps(t, expr.Call("factorial", expr.Num(2)), ft), []string{
		"factorial(2)",
		"((2 <= 0) ? 1 : (2 * factorial((2 - 1))))",
		"(false ? 1 : (2 * factorial((2 - 1))))",
		"(2 * factorial((2 - 1)))",
		"(2 * factorial(1))",
		"(2 * ((1 <= 0) ? 1 : (1 * factorial((1 - 1)))))",
		"(2 * (false ? 1 : (1 * factorial((1 - 1)))))",
		"(2 * (1 * factorial((1 - 1))))",
		"(2 * (1 * factorial(0)))",
		"(2 * (1 * ((0 <= 0) ? 1 : (0 * factorial((0 - 1))))))",
		"(2 * (1 * (true ? 1 : (0 * factorial((0 - 1))))))",
		"(2 * (1 * 1))",
		"(2 * 1)",
		"2",
	})
}

func TestStepLeavesInputUntouched(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "smallstep.reduce")
	defer teardown()
	//
	ft := factorialTable(t)
	def, _ := ft.Lookup("factorial")
	template := def.Body.String()
	e := expr.Binary(expr.Add, expr.Call("factorial", expr.Num(3)), expr.Call("factorial", expr.Num(1)))
	before := e.String()
	trace := steps(t, e, ft)
	compare(t, trace[len(trace)-1:], []string{"7"})
	if e.String() != before {
		t.Errorf("input expression has been modified: %s", e)
	}
	if def.Body.String() != template {
		t.Errorf("function body has been modified: %s", def.Body)
	}
}

func TestStepLeftBeforeRight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "smallstep.reduce")
	defer teardown()
	//
	lhs := expr.Binary(expr.Mul, expr.Binary(expr.Add, expr.Num(1), expr.Num(2)), expr.Num(3))
	rhs := expr.Binary(expr.Sub, expr.Num(4), expr.Num(5))
	var e expr.Expr = expr.Binary(expr.Add, lhs, rhs)
	for !expr.IsConst(e) {
		b, ok := e.(*expr.BinaryOp)
		if !ok {
			t.Fatalf("unexpected shape %s", e)
		}
		next, err := Step(e, nil)
		if err != nil {
			t.Fatal(err)
		}
		if nb, ok := next.(*expr.BinaryOp); ok && !expr.IsConst(b.Lhs) {
			if nb.Rhs != b.Rhs {
				t.Errorf("right operand touched before left operand is reduced: %s → %s", e, next)
			}
		}
		e = next
	}
	if e.String() != "8" {
		t.Errorf("expected 8, have %s", e)
	}
}

func TestStepArgumentsLeftToRight(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "smallstep.reduce")
	defer teardown()
	//
	ft := expr.NewFunctionTable()
	def, _ := expr.NewFunctionDef([]string{"a", "b"}, expr.Binary(expr.Sub, expr.Var("a"), expr.Var("b")))
	_ = ft.Define("minus", def)
	e := expr.Call("minus", expr.Binary(expr.Add, expr.Num(1), expr.Num(1)), expr.Binary(expr.Add, expr.Num(2), expr.Num(2)))
	compare(t, steps(t, e, ft), []string{
		"minus((1 + 1), (2 + 2))",
		"minus(2, (2 + 2))",
		"minus(2, 4)",
		"(2 - 4)",
		"-2",
	})
}

func TestStepErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "smallstep.reduce")
	defer teardown()
	//
	ft := factorialTable(t)
	if _, err := Step(expr.Num(1), ft); !errors.Is(err, ErrInvariantViolation) {
		t.Errorf("expected invariant violation for constant, have %v", err)
	}
	var unbound *UnboundVariableError
	if _, err := Step(expr.Binary(expr.Add, expr.Var("x"), expr.Num(1)), ft); !errors.As(err, &unbound) || unbound.Name != "x" {
		t.Errorf("expected unbound variable x, have %v", err)
	}
	var undef *UndefinedFunctionError
	if _, err := Step(expr.Call("fib", expr.Num(1)), ft); !errors.As(err, &undef) || undef.Name != "fib" {
		t.Errorf("expected undefined function fib, have %v", err)
	}
	var arity *ArityMismatchError
	_, err := Step(expr.Call("factorial", expr.Num(1), expr.Num(2)), ft)
	if !errors.As(err, &arity) || arity.Expected != 1 || arity.Got != 2 {
		t.Errorf("expected arity mismatch 1/2, have %v", err)
	}
	if _, err := Step(nil, ft); err == nil {
		t.Errorf("expected error for nil expression")
	}
}

func TestArgumentsReducedBeforeLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "smallstep.reduce")
	defer teardown()
	//
	e := expr.Call("nowhere", expr.Binary(expr.Add, expr.Num(1), expr.Num(2)))
	next, err := Step(e, nil)
	if err != nil {
		t.Fatalf("arguments should be reduced before the function is looked up: %v", err)
	}
	if next.String() != "nowhere(3)" {
		t.Errorf("expected nowhere(3), have %s", next)
	}
	if _, err = Step(next, nil); err == nil {
		t.Errorf("expected undefined function error")
	}
}

func TestUnboundVariableInBody(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "smallstep.reduce")
	defer teardown()
	//
	ft := expr.NewFunctionTable()
	def, _ := expr.NewFunctionDef([]string{"a"}, expr.Binary(expr.Add, expr.Var("a"), expr.Var("b")))
	_ = ft.Define("f", def)
	var unbound *UnboundVariableError
	if _, err := Step(expr.Call("f", expr.Num(1)), ft); !errors.As(err, &unbound) || unbound.Name != "b" {
		t.Errorf("expected unbound variable b, have %v", err)
	}
}

func TestSubstitute(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "smallstep.reduce")
	defer teardown()
	//
	body := expr.If(
		expr.Binary(expr.LessEq, expr.Var("n"), expr.Num(0)),
		expr.Unary(expr.Not, expr.Var("acc")),
		expr.Call("f", expr.Var("n"), expr.Var("acc")))
	bindings := map[string]expr.Expr{"n": expr.Num(3), "acc": expr.Boolean(true)}
	s, err := Substitute(body, bindings)
	if err != nil {
		t.Fatal(err)
	}
	if want := "((3 <= 0) ? !true : f(3, true))"; s.String() != want {
		t.Errorf("expected %s, have %s", want, s)
	}
	for _, name := range expr.FreeVariables(s) {
		if _, bound := bindings[name]; bound {
			t.Errorf("residual variable %s after substitution", name)
		}
	}
	if s == expr.Expr(body) || s.(*expr.IfThenElse).Else == body.Else {
		t.Errorf("substitution should build a fresh tree")
	}
	if _, err := Substitute(body, map[string]expr.Expr{"n": expr.Num(1)}); err == nil {
		t.Errorf("expected error for missing binding of acc")
	}
}

func TestOperators(t *testing.T) {
	n, b := expr.Number, expr.Bool
	nan := n(math.NaN())
	tests := []struct {
		op       expr.BinaryOperator
		lhs, rhs expr.Value
		want     expr.Value
	}{
		{expr.Add, n(1), n(2), n(3)},
		{expr.Add, b(true), b(true), n(2)},
		{expr.Sub, n(1.25), n(5), n(-3.75)},
		{expr.Mul, n(1), n(5), n(5)},
		{expr.Div, n(5), n(4), n(1.25)},
		{expr.Div, n(1), n(0), n(math.Inf(1))},
		{expr.Mod, n(6), n(7), n(6)},
		{expr.Mod, n(-7), n(3), n(-1)},
		{expr.Mod, n(1), n(0), nan},
		{expr.Greater, n(-42), n(-36), b(false)},
		{expr.Less, b(false), b(true), b(true)},
		{expr.LessEq, n(0), n(0), b(true)},
		{expr.GreaterEq, nan, n(0), b(false)},
		{expr.Eq, n(1), b(true), b(true)},
		{expr.Eq, b(false), n(0), b(true)},
		{expr.Eq, b(true), b(false), b(false)},
		{expr.NotEq, n(7), n(8), b(true)},
		{expr.Eq, nan, nan, b(false)},
		{expr.StrictEq, n(1), b(true), b(false)},
		{expr.StrictEq, n(-3.75), n(6), b(false)},
		{expr.StrictEq, b(true), b(true), b(true)},
		{expr.StrictNotEq, n(9), n(10), b(true)},
		{expr.StrictNotEq, nan, nan, b(true)},
	}
	for _, test := range tests {
		v, err := ApplyBinary(test.op, test.lhs, test.rhs)
		if err != nil {
			t.Fatal(err)
		}
		if !v.Same(test.want) {
			t.Errorf("%v %s %v: expected %v, have %v", test.lhs, test.op, test.rhs, test.want, v)
		}
	}
	if v, _ := ApplyUnary(expr.Negate, b(true)); !v.Same(n(-1)) {
		t.Errorf("-true should be -1, is %v", v)
	}
	if v, _ := ApplyUnary(expr.Not, n(0)); !v.Same(b(true)) {
		t.Errorf("!0 should be true, is %v", v)
	}
	if _, err := ApplyBinary("**", n(2), n(3)); err == nil {
		t.Errorf("expected error for unknown operator")
	}
}

func TestEvaluate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "smallstep.reduce")
	defer teardown()
	//
	ft := factorialTable(t)
	v, err := Evaluate(expr.Input{Functions: ft, Expression: expr.Call("factorial", expr.Num(5))})
	if err != nil {
		t.Fatal(err)
	}
	if !v.Same(expr.Number(120)) {
		t.Errorf("expected factorial(5) = 120, have %v", v)
	}
	if _, err := Evaluate(expr.Input{Functions: ft}); err == nil {
		t.Errorf("expected error for input without expression")
	}
}
