package smt

import (
	"testing"

	"github.com/gitrdm/concolite/pkg/concolic/expr"
	"github.com/stretchr/testify/assert"
)

func TestFreeVariablesOrdersAssertsThenQuery(t *testing.T) {
	asserts := []expr.Predicate{
		{Expr: expr.BinOp(expr.Gt, expr.Var("b"), expr.ConstInt(0)), Polarity: true},
	}
	query := expr.Predicate{Expr: expr.BinOp(expr.Lt, expr.Var("a"), expr.Var("b")), Polarity: true}

	assert.Equal(t, []string{"b", "a"}, freeVariables(asserts, query))
}

func TestSatisfiesRequiresEveryAssertAndQuery(t *testing.T) {
	asserts := []expr.Predicate{
		{Expr: expr.BinOp(expr.Gt, expr.Var("x"), expr.ConstInt(0)), Polarity: true},
	}
	query := expr.Predicate{Expr: expr.BinOp(expr.Lt, expr.Var("x"), expr.ConstInt(10)), Polarity: true}

	assert.True(t, satisfies(asserts, query, expr.Binding{"x": 5}))
	assert.False(t, satisfies(asserts, query, expr.Binding{"x": -5}))
	assert.False(t, satisfies(asserts, query, expr.Binding{"x": 15}))
}
