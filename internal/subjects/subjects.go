// Package subjects registers the concrete functions the CLI explores,
// one init-time Register call per subject. Every subject here is a pure
// function of its concolic.Value arguments: no I/O, no shared mutable
// state.
package subjects

import (
	"strconv"

	"github.com/gitrdm/concolite/pkg/concolic"
	"github.com/gitrdm/concolite/pkg/concolic/subject"
)

func init() {
	subject.Register(subject.Subject{
		Name: "compare",
		Args: []subject.ArgSpec{{Name: "a", Seed: 0}, {Name: "b", Seed: 0}},
		Fn:   Compare,
	})
	subject.Register(subject.Subject{
		Name: "binarysearch",
		Args: []subject.ArgSpec{{Name: "k", Seed: 0}},
		Fn:   BinarySearch,
	})
	subject.Register(subject.Subject{
		Name: "arithmetic",
		Args: []subject.ArgSpec{{Name: "x", Seed: 0}},
		Fn:   Arithmetic,
	})
	subject.Register(subject.Subject{
		Name: "budgetwall",
		Args: []subject.ArgSpec{{Name: "x", Seed: 0}},
		Fn:   BudgetWall,
	})
}

// Compare reports the three-way ordering of a and b as a string label.
// It is the minimal subject this package carries: three mutually
// exclusive branches, no loops, no arrays: a smoke test for the engine
// itself.
func Compare(args map[string]*concolic.Value) interface{} {
	a, b := args["a"], args["b"]
	if a.Gt(b).Bool() {
		return "a > b"
	}
	if a.Eq(b).Bool() {
		return "a == b"
	}
	return "a < b"
}

// sortedTable is the fixed array binarysearch searches: it never varies
// across executions, so every branch the search takes is a function of
// k alone.
var sortedTable = []int64{0, 4, 6, 95, 430, 4944, 119101}

// BinarySearch performs an ordinary binary search for k over sortedTable
// and returns k's decimal string once found, or the sentinel
// "NOT_FOUND" if it never occurs in the table. Its loop bound is the
// table's fixed length, so the engine explores a bounded, finite set of
// branches despite the subject containing a loop. If the search ever
// lands on an index that does not actually hold k (a contract
// violation that should not be reachable for this sorted table), it
// reports that distinctly rather than returning a plausible-looking
// wrong answer.
func BinarySearch(args map[string]*concolic.Value) interface{} {
	k := args["k"]
	lo, hi := concolic.NewConst(0), concolic.NewConst(int64(len(sortedTable)-1))

	for lo.Le(hi).Bool() {
		mid := lo.Add(hi).FloorDiv(concolic.NewConst(2))
		midVal := concolic.NewConst(sortedTable[mid.Concrete])

		if midVal.Eq(k).Bool() {
			if !verifyFound(sortedTable, mid.Concrete, k.Concrete) {
				return "ERROR"
			}
			return strconv.FormatInt(k.Concrete, 10)
		}
		if midVal.Lt(k).Bool() {
			lo = mid.Add(concolic.NewConst(1))
		} else {
			hi = mid.Sub(concolic.NewConst(1))
		}
	}
	return "NOT_FOUND"
}

func verifyFound(table []int64, idx, k int64) bool {
	return idx >= 0 && int(idx) < len(table) && table[idx] == k
}

// Arithmetic reports whether (x*2+1) mod 5 equals zero. The modulus
// forces the engine's enumerative search to visit several values of x
// before landing on the rare "hit" branch, exercising the solver
// backends' bounded search rather than a single direct comparison.
func Arithmetic(args map[string]*concolic.Value) interface{} {
	x := args["x"]
	two, one, five := concolic.NewConst(2), concolic.NewConst(1), concolic.NewConst(5)
	rem := x.Mul(two).Add(one).Mod(five)
	if rem.Eq(concolic.NewConst(0)).Bool() {
		return "hit"
	}
	return "miss"
}

// BudgetWall is a single subject with twenty mutually exclusive, equally
// reachable branches, keyed off consecutive bits of x. It exists to
// demonstrate the engine's iteration budget: with a default budget of 5,
// only a handful of its branches are ever covered in one run, leaving
// the rest on the worklist for a caller to observe via coverage
// reporting.
func BudgetWall(args map[string]*concolic.Value) interface{} {
	x := args["x"]
	one := concolic.NewConst(1)
	for i := int64(0); i < 20; i++ {
		bit := x.Shr(concolic.NewConst(i)).And(one)
		if bit.Eq(one).Bool() {
			return i
		}
	}
	return int64(-1)
}
