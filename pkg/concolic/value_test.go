package concolic

import (
	"testing"

	"github.com/gitrdm/concolite/pkg/concolic/expr"
	"github.com/stretchr/testify/assert"
)

func TestValueConcreteMatchesNativeArithmetic(t *testing.T) {
	x := NewVar(nil, "x", 7)
	y := NewVar(nil, "y", 3)

	assert.EqualValues(t, 10, x.Add(y).Concrete)
	assert.EqualValues(t, 4, x.Sub(y).Concrete)
	assert.EqualValues(t, 21, x.Mul(y).Concrete)
	assert.EqualValues(t, 1, x.Mod(y).Concrete)
	assert.EqualValues(t, 2, x.FloorDiv(y).Concrete)
}

func TestValuePreservesOperandOrderInExpr(t *testing.T) {
	x := NewVar(nil, "x", 1)
	y := NewVar(nil, "y", 2)

	lt := x.Lt(y)
	assert.True(t, expr.Equal(lt.Expr, expr.BinOp(expr.Lt, expr.Var("x"), expr.Var("y"))))
	assert.False(t, expr.Equal(lt.Expr, expr.BinOp(expr.Lt, expr.Var("y"), expr.Var("x"))))
}

func TestNewConstHasNoRecorder(t *testing.T) {
	c := NewConst(42)
	assert.EqualValues(t, 42, c.Concrete)
	assert.True(t, c.Bool()) // must not panic with a nil recorder
}

func TestRecorderOfPicksFirstNonNil(t *testing.T) {
	rec := NewRecorder(func(*Node) {}, func() map[string]*Value { return nil })
	x := NewVar(rec, "x", 1)
	c := NewConst(2)

	sum := x.Add(c)
	assert.Same(t, rec, sum.rec)

	reversedSum := c.Add(x)
	assert.Same(t, rec, reversedSum.rec)
}

func TestIsVariable(t *testing.T) {
	x := NewVar(nil, "x", 1)
	assert.True(t, x.IsVariable())
	assert.False(t, x.Add(NewConst(1)).IsVariable())
}

func TestBoolReportsBranchToRecorder(t *testing.T) {
	var observed []bool
	rec := NewRecorder(func(*Node) {}, func() map[string]*Value { return nil })
	rec.Reset(nil)

	x := NewVar(rec, "x", 5)
	cond := x.Gt(NewConst(0))

	// Bool() calls WhichBranch; confirm the recorder's tree grows a child
	// for the branch taken.
	taken := cond.Bool()
	observed = append(observed, taken)

	assert.True(t, observed[0])
	assert.Len(t, rec.Root.Children, 2) // taken and the enqueued opposite sibling
}
