package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloorDivRoundsTowardNegativeInfinity(t *testing.T) {
	cases := []struct{ a, b, want int64 }{
		{7, 2, 3},
		{-7, 2, -4},
		{7, -2, -4},
		{-7, -2, 3},
		{6, 3, 2},
		{-6, 3, -2},
	}
	for _, c := range cases {
		got := ApplyBinOp(FloorDiv, c.a, c.b)
		assert.Equalf(t, c.want, got, "floorDiv(%d, %d)", c.a, c.b)
	}
}

func TestFloorModMatchesSignOfDivisor(t *testing.T) {
	cases := []struct{ a, b, want int64 }{
		{7, 3, 1},
		{-7, 3, 2},
		{7, -3, -2},
		{-7, -3, -1},
		{0, 5, 0},
	}
	for _, c := range cases {
		got := ApplyBinOp(Mod, c.a, c.b)
		assert.Equalf(t, c.want, got, "floorMod(%d, %d)", c.a, c.b)
	}
}

func TestApplyBinOpRoundTripWithFloorDivAndMod(t *testing.T) {
	// a == b*(a floordiv b) + (a mod b) for every combination of signs.
	for _, a := range []int64{-11, -3, 0, 3, 11} {
		for _, b := range []int64{-5, -1, 1, 5} {
			q := ApplyBinOp(FloorDiv, a, b)
			m := ApplyBinOp(Mod, a, b)
			assert.Equalf(t, a, b*q+m, "round-trip law for a=%d b=%d", a, b)
		}
	}
}

func TestApplyBinOpComparisons(t *testing.T) {
	assert.EqualValues(t, 1, ApplyBinOp(Eq, 4, 4))
	assert.EqualValues(t, 0, ApplyBinOp(Eq, 4, 5))
	assert.EqualValues(t, 1, ApplyBinOp(Ne, 4, 5))
	assert.EqualValues(t, 1, ApplyBinOp(Lt, 3, 4))
	assert.EqualValues(t, 1, ApplyBinOp(Le, 4, 4))
	assert.EqualValues(t, 1, ApplyBinOp(Gt, 5, 4))
	assert.EqualValues(t, 1, ApplyBinOp(Ge, 4, 4))
}

func TestApplyBinOpBitwiseAndShift(t *testing.T) {
	assert.EqualValues(t, 0b1100, ApplyBinOp(BitAnd, 0b1110, 0b1101))
	assert.EqualValues(t, 0b1111, ApplyBinOp(BitOr, 0b1110, 0b0001))
	assert.EqualValues(t, 0b0011, ApplyBinOp(BitXor, 0b1010, 0b1001))
	assert.EqualValues(t, 8, ApplyBinOp(Shl, 1, 3))
	assert.EqualValues(t, 1, ApplyBinOp(Shr, 8, 3))
}

func TestApplyBinOpPanicsOnUnknownOperator(t *testing.T) {
	assert.Panics(t, func() {
		ApplyBinOp("nope", 1, 2)
	})
}

func TestEvalRecursesThroughOperators(t *testing.T) {
	n := BinOp(Eq, BinOp(Add, Var("x"), ConstInt(1)), ConstInt(5))
	assert.True(t, Truthy(Eval(n, Binding{"x": 4})))
	assert.False(t, Truthy(Eval(n, Binding{"x": 0})))
}

func TestEvalPanicsOnUnboundVariable(t *testing.T) {
	n := Var("x")
	assert.Panics(t, func() {
		Eval(n, Binding{})
	})
}

func TestTruthy(t *testing.T) {
	assert.True(t, Truthy(1))
	assert.True(t, Truthy(-1))
	assert.False(t, Truthy(0))
}
