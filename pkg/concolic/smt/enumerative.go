package smt

import "github.com/gitrdm/concolite/pkg/concolic/expr"

// EnumerativeSolver finds a satisfying assignment by bounded brute-force
// search over every free variable's range, trying values closest to zero
// first. It is the default backend, the one the CLI's z3 solver name
// selects.
type EnumerativeSolver struct {
	// Range bounds the search to [-Range, Range] per variable. Defaults
	// to 128 when zero.
	Range int64
}

// NewEnumerativeSolver constructs an EnumerativeSolver with the given
// search range (values <= 0 fall back to the default of 128).
func NewEnumerativeSolver(searchRange int64) *EnumerativeSolver {
	if searchRange <= 0 {
		searchRange = 128
	}
	return &EnumerativeSolver{Range: searchRange}
}

// FindCounterexample implements Adapter by recursively trying every
// integer assignment in [-Range, Range] for each free variable, in an
// order that visits small-magnitude values first (0, 1, -1, 2, -2, …) so
// that the common case of a nearby satisfying assignment is found fast.
func (s *EnumerativeSolver) FindCounterexample(asserts []expr.Predicate, query expr.Predicate) (Model, bool) {
	vars := freeVariables(asserts, query)
	binding := expr.Binding{}
	if search(vars, 0, s.Range, binding, asserts, query) {
		model := Model{}
		for _, v := range vars {
			model[v] = binding[v]
		}
		return model, true
	}
	return nil, false
}

func search(vars []string, idx int, bound int64, binding expr.Binding, asserts []expr.Predicate, query expr.Predicate) bool {
	if idx == len(vars) {
		return satisfies(asserts, query, binding)
	}
	name := vars[idx]
	for _, v := range candidateValues(bound) {
		binding[name] = v
		if search(vars, idx+1, bound, binding, asserts, query) {
			return true
		}
	}
	delete(binding, name)
	return false
}

// candidateValues returns the search order 0, 1, -1, 2, -2, … up to
// ±bound.
func candidateValues(bound int64) []int64 {
	vals := make([]int64, 0, 2*bound+1)
	vals = append(vals, 0)
	for i := int64(1); i <= bound; i++ {
		vals = append(vals, i, -i)
	}
	return vals
}
