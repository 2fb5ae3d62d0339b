package expr

import (
	"strings"
)

// Expr is an expression tree node. It is one of *Const, *Variable, *UnaryOp,
// *BinaryOp, *IfThenElse or *FunctionCall.
//
// Expressions are immutable by contract: clients must not modify a node (or
// the argument slice of a call) after handing it to any function of this module.
type Expr interface {
	String() string // canonical rendering
	isExpr()
}

// UnaryOperator is an operator of a UnaryOp node.
type UnaryOperator string

// Unary operators.
const (
	Negate UnaryOperator = "-"
	Not    UnaryOperator = "!"
)

// BinaryOperator is an operator of a BinaryOp node.
type BinaryOperator string

// Binary operators.
const (
	Add         BinaryOperator = "+"
	Sub         BinaryOperator = "-"
	Mul         BinaryOperator = "*"
	Div         BinaryOperator = "/"
	Mod         BinaryOperator = "%"
	Greater     BinaryOperator = ">"
	Less        BinaryOperator = "<"
	LessEq      BinaryOperator = "<="
	GreaterEq   BinaryOperator = ">="
	Eq          BinaryOperator = "=="
	NotEq       BinaryOperator = "!="
	StrictEq    BinaryOperator = "==="
	StrictNotEq BinaryOperator = "!=="
)

// Source tells where a conditional originated. Both sources behave identically
// during reduction; the parser produces FromExpression only.
type Source uint8

// Sources of conditionals.
const (
	FromExpression Source = iota // ternary c ? t : e
	FromStatement                // if-statement
)

// --- Variants --------------------------------------------------------------

// Const is a value. It is the only terminal shape of an expression.
type Const struct {
	Value Value
}

// Variable references a function parameter. Variables are valid inside
// function bodies only.
type Variable struct {
	Name string
}

// UnaryOp applies a prefix operator.
type UnaryOp struct {
	Op      UnaryOperator
	Operand Expr
}

// BinaryOp applies an infix operator.
type BinaryOp struct {
	Op  BinaryOperator
	Lhs Expr
	Rhs Expr
}

// IfThenElse selects one of two branches by a condition.
type IfThenElse struct {
	Condition Expr
	Then      Expr
	Else      Expr
	Source    Source
}

// FunctionCall calls a function by name.
type FunctionCall struct {
	Func string
	Args []Expr
}

func (*Const) isExpr()        {}
func (*Variable) isExpr()     {}
func (*UnaryOp) isExpr()      {}
func (*BinaryOp) isExpr()     {}
func (*IfThenElse) isExpr()   {}
func (*FunctionCall) isExpr() {}

// --- Constructors ----------------------------------------------------------

// NewConst wraps a value.
func NewConst(v Value) *Const {
	return &Const{Value: v}
}

// Num creates a numeric constant.
func Num(f float64) *Const {
	return &Const{Value: Number(f)}
}

// Boolean creates a boolean constant.
func Boolean(b bool) *Const {
	return &Const{Value: Bool(b)}
}

// Var creates a variable reference.
func Var(name string) *Variable {
	return &Variable{Name: name}
}

// Unary creates a unary operation.
func Unary(op UnaryOperator, operand Expr) *UnaryOp {
	return &UnaryOp{Op: op, Operand: operand}
}

// Binary creates a binary operation.
func Binary(op BinaryOperator, lhs, rhs Expr) *BinaryOp {
	return &BinaryOp{Op: op, Lhs: lhs, Rhs: rhs}
}

// If creates a conditional originating from a ternary expression.
func If(cond, then, els Expr) *IfThenElse {
	return &IfThenElse{Condition: cond, Then: then, Else: els, Source: FromExpression}
}

// Call creates a function call. The argument slice is copied.
func Call(name string, args ...Expr) *FunctionCall {
	a := make([]Expr, len(args))
	copy(a, args)
	return &FunctionCall{Func: name, Args: a}
}

// IsConst is a predicate: is e fully reduced?
func IsConst(e Expr) bool {
	_, ok := e.(*Const)
	return ok
}

// --- Rendering -------------------------------------------------------------

func (c *Const) String() string {
	return c.Value.String()
}

func (v *Variable) String() string {
	return v.Name
}

func (u *UnaryOp) String() string {
	return string(u.Op) + u.Operand.String()
}

func (b *BinaryOp) String() string {
	return "(" + b.Lhs.String() + " " + string(b.Op) + " " + b.Rhs.String() + ")"
}

func (ite *IfThenElse) String() string {
	return "(" + ite.Condition.String() + " ? " + ite.Then.String() + " : " + ite.Else.String() + ")"
}

func (fc *FunctionCall) String() string {
	var b strings.Builder
	b.WriteString(fc.Func)
	b.WriteByte('(')
	for i, arg := range fc.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.String())
	}
	b.WriteByte(')')
	return b.String()
}

// String renders an expression, accepting nil.
func String(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	return e.String()
}

// --- Structural equality ---------------------------------------------------

// Equal is true if a and b are structurally identical trees. Constants are
// compared with Value.Same.
func Equal(a, b Expr) bool {
	switch x := a.(type) {
	case *Const:
		y, ok := b.(*Const)
		return ok && x.Value.Same(y.Value)
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.Name == y.Name
	case *UnaryOp:
		y, ok := b.(*UnaryOp)
		return ok && x.Op == y.Op && Equal(x.Operand, y.Operand)
	case *BinaryOp:
		y, ok := b.(*BinaryOp)
		return ok && x.Op == y.Op && Equal(x.Lhs, y.Lhs) && Equal(x.Rhs, y.Rhs)
	case *IfThenElse:
		y, ok := b.(*IfThenElse)
		return ok && x.Source == y.Source && Equal(x.Condition, y.Condition) &&
			Equal(x.Then, y.Then) && Equal(x.Else, y.Else)
	case *FunctionCall:
		y, ok := b.(*FunctionCall)
		if !ok || x.Func != y.Func || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	}
	return false
}

// FreeVariables returns the names of all variables referenced in e, in order
// of first occurence.
func FreeVariables(e Expr) []string {
	var names []string
	seen := make(map[string]bool)
	var walk func(Expr)
	walk = func(e Expr) {
		switch x := e.(type) {
		case *Variable:
			if !seen[x.Name] {
				seen[x.Name] = true
				names = append(names, x.Name)
			}
		case *UnaryOp:
			walk(x.Operand)
		case *BinaryOp:
			walk(x.Lhs)
			walk(x.Rhs)
		case *IfThenElse:
			walk(x.Condition)
			walk(x.Then)
			walk(x.Else)
		case *FunctionCall:
			for _, arg := range x.Args {
				walk(arg)
			}
		}
	}
	walk(e)
	return names
}
