package expr

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestRendering(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "smallstep.expr")
	defer teardown()
	//
	tests := []struct {
		e    Expr
		want string
	}{
		{Num(42), "42"},
		{Boolean(false), "false"},
		{Var("n"), "n"},
		{Binary(Add, Num(42), Num(23)), "(42 + 23)"},
		{Unary(Negate, Binary(Add, Num(23), Num(13))), "-(23 + 13)"},
		{Unary(Not, Boolean(true)), "!true"},
		{Unary(Negate, Num(-3)), "--3"},
		{If(Binary(LessEq, Var("n"), Num(0)), Num(1), Var("n")), "((n <= 0) ? 1 : n)"},
		{Call("f"), "f()"},
		{Call("and", Boolean(true), Call("not", Var("x"))), "and(true, not(x))"},
		{Binary(StrictEq, Num(-3.75), Binary(Mod, Num(6), Num(7))), "(-3.75 === (6 % 7))"},
	}
	for _, test := range tests {
		if s := test.e.String(); s != test.want {
			t.Errorf("expected %q, have %q", test.want, s)
		}
	}
	if String(nil) != "<nil>" {
		t.Errorf("nil expression should render as <nil>")
	}
}

func TestCallCopiesArguments(t *testing.T) {
	args := []Expr{Num(1), Num(2)}
	c := Call("f", args...)
	args[0] = Num(99)
	if c.String() != "f(1, 2)" {
		t.Errorf("call should not alias the argument slice, have %s", c)
	}
}

func TestEqual(t *testing.T) {
	a := If(Binary(Less, Var("x"), Num(1)), Call("f", Num(2)), Unary(Not, Boolean(true)))
	b := If(Binary(Less, Var("x"), Num(1)), Call("f", Num(2)), Unary(Not, Boolean(true)))
	if !Equal(a, b) {
		t.Errorf("expected %s to equal %s", a, b)
	}
	c := If(Binary(Less, Var("x"), Num(1)), Call("f", Num(3)), Unary(Not, Boolean(true)))
	if Equal(a, c) {
		t.Errorf("expected %s to differ from %s", a, c)
	}
	stmt := &IfThenElse{Condition: a.Condition, Then: a.Then, Else: a.Else, Source: FromStatement}
	if Equal(a, stmt) {
		t.Errorf("conditionals of different source should not be equal")
	}
	if Equal(Num(1), Boolean(true)) {
		t.Errorf("1 and true are different constants")
	}
	if !Equal(nil, nil) || Equal(Num(1), nil) {
		t.Errorf("nil handling of Equal is broken")
	}
}

func TestFreeVariables(t *testing.T) {
	e := If(Binary(LessEq, Var("n"), Num(0)), Var("acc"), Call("f", Var("n"), Var("acc"), Var("m")))
	vars := FreeVariables(e)
	if len(vars) != 3 || vars[0] != "n" || vars[1] != "acc" || vars[2] != "m" {
		t.Errorf("expected [n acc m], have %v", vars)
	}
	if len(FreeVariables(Num(1))) != 0 {
		t.Errorf("constants have no variables")
	}
}

func TestFunctionTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "smallstep.expr")
	defer teardown()
	//
	ft := NewFunctionTable()
	not, err := NewFunctionDef([]string{"x"}, Unary(Not, Var("x")))
	if err != nil {
		t.Fatal(err)
	}
	and, _ := NewFunctionDef([]string{"a", "b"}, If(Var("a"), Var("b"), Var("a")))
	_ = ft.Define("not", not)
	_ = ft.Define("and", and)
	if ft.Size() != 2 {
		t.Errorf("expected 2 functions, have %d", ft.Size())
	}
	names := ft.Names()
	if len(names) != 2 || names[0] != "and" || names[1] != "not" {
		t.Errorf("expected names in sorted order, have %v", names)
	}
	def, ok := ft.Lookup("and")
	if !ok || def.Arity() != 2 {
		t.Errorf("expected to find and/2")
	}
	if _, ok := ft.Lookup("or"); ok {
		t.Errorf("did not expect to find 'or'")
	}
	if sig := ft.Signature("and"); sig != "and(a, b)" {
		t.Errorf("expected signature and(a, b), have %s", sig)
	}
	if err := ft.Define("", not); err == nil {
		t.Errorf("expected empty function name to be rejected")
	}
	var empty *FunctionTable
	if _, ok := empty.Lookup("not"); ok || empty.Size() != 0 || empty.Names() != nil {
		t.Errorf("nil table should behave as empty table")
	}
	var zero FunctionTable
	if err := zero.Define("not", not); err != nil || zero.Size() != 1 {
		t.Errorf("zero function table should be usable")
	}
}

func TestDuplicateParameter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "smallstep.expr")
	defer teardown()
	//
	_, err := NewFunctionDef([]string{"a", "b", "a"}, Var("a"))
	var dup *DuplicateParameterError
	if !errors.As(err, &dup) || dup.Name != "a" {
		t.Errorf("expected duplicate parameter error for 'a', have %v", err)
	}
	if _, err := NewFunctionDef([]string{"a"}, nil); err == nil {
		t.Errorf("expected error for missing body")
	}
}
