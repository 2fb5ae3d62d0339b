package main

import (
	"github.com/npillmayer/smallstep/expr"
	"github.com/pterm/pterm"
)

// treeOf creates a pterm tree for an expression, suitable for displaying
// on a terminal.
func treeOf(e expr.Expr) pterm.TreeNode {
	ll := leveledExpr(e, pterm.LeveledList{}, 0)
	tracer().Debugf("|ll| = %d", len(ll))
	return pterm.NewTreeFromLeveledList(ll)
}

// leveledExpr appends e and its sub-expressions to ll, with each
// sub-expression one level deeper than its parent.
func leveledExpr(e expr.Expr, ll pterm.LeveledList, level int) pterm.LeveledList {
	item := func(text string) {
		ll = append(ll, pterm.LeveledListItem{Level: level, Text: text})
	}
	switch e := e.(type) {
	case *expr.UnaryOp:
		item(string(e.Op))
		ll = leveledExpr(e.Operand, ll, level+1)
	case *expr.BinaryOp:
		item(string(e.Op))
		ll = leveledExpr(e.Lhs, ll, level+1)
		ll = leveledExpr(e.Rhs, ll, level+1)
	case *expr.IfThenElse:
		item("?:")
		ll = leveledExpr(e.Condition, ll, level+1)
		ll = leveledExpr(e.Then, ll, level+1)
		ll = leveledExpr(e.Else, ll, level+1)
	case *expr.FunctionCall:
		item(e.Func + "()")
		for _, arg := range e.Args {
			ll = leveledExpr(arg, ll, level+1)
		}
	default: // constants, variables and nil
		item(expr.String(e))
	}
	return ll
}
