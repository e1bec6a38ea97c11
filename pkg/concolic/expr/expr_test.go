package expr

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCmpDiffMatchesStructuralEquality cross-checks Equal against
// go-cmp's field-by-field diff: any two DAGs Equal calls identical must
// also produce an empty cmp.Diff, and a reported diff must always
// correspond to a real structural difference. cmp walks every exported
// field including Children, so it doubles as a deep-equality oracle
// independent of Equal's own recursion.
func TestCmpDiffMatchesStructuralEquality(t *testing.T) {
	a := BinOp(Add, Var("x"), BinOp(Mul, Var("y"), ConstInt(2)))
	b := BinOp(Add, Var("x"), BinOp(Mul, Var("y"), ConstInt(2)))
	c := BinOp(Add, Var("x"), BinOp(Mul, Var("y"), ConstInt(3)))

	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("structurally identical DAGs should cmp.Diff empty, got:\n%s", diff)
	}
	assert.True(t, Equal(a, b))

	if diff := cmp.Diff(a, c); diff == "" {
		t.Error("structurally different DAGs should produce a non-empty cmp.Diff")
	}
	assert.False(t, Equal(a, c))
}

func TestEqualIgnoresIdentity(t *testing.T) {
	a := BinOp(Add, Var("x"), ConstInt(1))
	b := BinOp(Add, Var("x"), ConstInt(1))

	assert.False(t, a == b, "nodes should be distinct pointers")
	assert.True(t, Equal(a, b), "structurally identical nodes should compare equal")
}

func TestEqualDistinguishesOperandOrder(t *testing.T) {
	a := BinOp(Lt, Var("x"), Var("y"))
	b := BinOp(Lt, Var("y"), Var("x"))

	assert.False(t, Equal(a, b), "operand order must be preserved")
}

func TestEqualNilHandling(t *testing.T) {
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(Var("x"), nil))
	assert.False(t, Equal(nil, Var("x")))
}

func TestBinOpPanicsOnUnknownOperator(t *testing.T) {
	assert.Panics(t, func() {
		BinOp("nonsense", Var("x"), ConstInt(1))
	})
}

func TestVarsFirstEncounterOrder(t *testing.T) {
	n := BinOp(Add, BinOp(Mul, Var("b"), Var("a")), Var("c"))
	require.Equal(t, []string{"b", "a", "c"}, Vars(n))
}

func TestVarsDeduplicates(t *testing.T) {
	n := BinOp(Eq, Var("x"), Var("x"))
	require.Equal(t, []string{"x"}, Vars(n))
}

func TestStringRendersWithoutBinding(t *testing.T) {
	n := BinOp(Eq, BinOp(Add, Var("x"), ConstInt(1)), Var("y"))
	assert.Equal(t, "(== (+ x, 1), y)", n.String())
}

func TestRenderAnnotatesBoundVariables(t *testing.T) {
	n := BinOp(Gt, Var("x"), ConstInt(0))
	binding := map[string]int64{"x": 7}
	assert.Equal(t, "(> x#7, 0)", Render(n, binding))
}

func TestRenderLeavesUnboundVariablesBare(t *testing.T) {
	n := BinOp(Gt, Var("x"), Var("y"))
	binding := map[string]int64{"x": 7}
	assert.Equal(t, "(> x#7, y)", Render(n, binding))
}

func TestIsVar(t *testing.T) {
	assert.True(t, IsVar(Var("x")))
	assert.False(t, IsVar(ConstInt(1)))
	assert.False(t, IsVar(BinOp(Add, Var("x"), ConstInt(1))))
	assert.False(t, IsVar(nil))
}
