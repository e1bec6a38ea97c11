package smt

import "github.com/gitrdm/concolite/pkg/concolic/expr"

// interval is an inclusive [Lo, Hi] integer range. Plain interval
// arithmetic is all the pruning needs: the solver only narrows a
// brute-force search per variable, it never maintains a general sparse
// domain.
type interval struct {
	Lo, Hi int64
}

func fullInterval(bound int64) interval { return interval{Lo: -bound, Hi: bound} }

func (iv interval) intersect(lo, hi int64) interval {
	if lo > iv.Lo {
		iv.Lo = lo
	}
	if hi < iv.Hi {
		iv.Hi = hi
	}
	return iv
}

// PropagatingSolver narrows each free variable's search interval using
// the assertions' direct comparisons against a single variable (e.g.
// "x < 10", "5 <= y") before falling back to bounded enumeration within
// the pruned interval. It is the backend the CLI's cvc solver name
// selects: a distinct search strategy reached through the same Adapter
// interface as EnumerativeSolver.
type PropagatingSolver struct {
	Range int64
}

// NewPropagatingSolver constructs a PropagatingSolver with the given
// fallback search range (values <= 0 default to 128).
func NewPropagatingSolver(searchRange int64) *PropagatingSolver {
	if searchRange <= 0 {
		searchRange = 128
	}
	return &PropagatingSolver{Range: searchRange}
}

func (s *PropagatingSolver) FindCounterexample(asserts []expr.Predicate, query expr.Predicate) (Model, bool) {
	vars := freeVariables(asserts, query)
	domains := make(map[string]interval, len(vars))
	for _, v := range vars {
		domains[v] = fullInterval(s.Range)
	}

	all := append(append([]expr.Predicate{}, asserts...), query)
	for _, p := range all {
		name, lo, hi, ok := boundsFromPredicate(p)
		if !ok {
			continue
		}
		if d, present := domains[name]; present {
			domains[name] = d.intersect(lo, hi)
		}
	}

	binding := expr.Binding{}
	if searchBounded(vars, 0, domains, binding, asserts, query) {
		model := Model{}
		for _, v := range vars {
			model[v] = binding[v]
		}
		return model, true
	}
	return nil, false
}

// boundsFromPredicate extracts a direct "variable compared to constant"
// bound from a single-comparison predicate, when the expression is
// exactly that shape. Anything more complex (nested arithmetic,
// variable-to-variable comparisons) is left to the brute-force fallback.
func boundsFromPredicate(p expr.Predicate) (name string, lo, hi int64, ok bool) {
	n := p.Expr
	if n.Kind != expr.KindOp || len(n.Children) != 2 {
		return "", 0, 0, false
	}
	lhs, rhs := n.Children[0], n.Children[1]

	switch {
	case expr.IsVar(lhs) && rhs.Kind == expr.KindConst:
		return boundsFromComparison(lhs.Name, n.Op, rhs.Const, p.Polarity)
	case expr.IsVar(rhs) && lhs.Kind == expr.KindConst:
		return boundsFromComparison(rhs.Name, flipOp(n.Op), lhs.Const, p.Polarity)
	default:
		return "", 0, 0, false
	}
}

// flipOp rewrites "const OP var" into the equivalent "var OP' const".
func flipOp(op string) string {
	switch op {
	case expr.Lt:
		return expr.Gt
	case expr.Le:
		return expr.Ge
	case expr.Gt:
		return expr.Lt
	case expr.Ge:
		return expr.Le
	default:
		return op
	}
}

func boundsFromComparison(name, op string, c int64, polarity bool) (string, int64, int64, bool) {
	const inf = int64(1) << 40
	lo, hi := -inf, inf
	switch op {
	case expr.Lt:
		if polarity {
			hi = c - 1
		} else {
			lo = c
		}
	case expr.Le:
		if polarity {
			hi = c
		} else {
			lo = c + 1
		}
	case expr.Gt:
		if polarity {
			lo = c + 1
		} else {
			hi = c
		}
	case expr.Ge:
		if polarity {
			lo = c
		} else {
			hi = c - 1
		}
	case expr.Eq:
		if polarity {
			lo, hi = c, c
		} else {
			return "", 0, 0, false
		}
	default:
		return "", 0, 0, false
	}
	return name, lo, hi, true
}

func searchBounded(vars []string, idx int, domains map[string]interval, binding expr.Binding, asserts []expr.Predicate, query expr.Predicate) bool {
	if idx == len(vars) {
		return satisfies(asserts, query, binding)
	}
	name := vars[idx]
	d := domains[name]
	if d.Lo > d.Hi {
		return false
	}
	for _, v := range candidateValuesInRange(d.Lo, d.Hi) {
		binding[name] = v
		if searchBounded(vars, idx+1, domains, binding, asserts, query) {
			return true
		}
	}
	delete(binding, name)
	return false
}

// candidateValuesInRange visits values closest to zero first, clipped to
// [lo, hi]. lo > hi (an empty interval) yields no candidates.
func candidateValuesInRange(lo, hi int64) []int64 {
	if lo > hi {
		return nil
	}
	bound := hi
	if -lo > bound {
		bound = -lo
	}
	if bound < 0 {
		bound = 0
	}

	var vals []int64
	if lo <= 0 && hi >= 0 {
		vals = append(vals, 0)
	}
	for i := int64(1); i <= bound; i++ {
		if i >= lo && i <= hi {
			vals = append(vals, i)
		}
		if -i >= lo && -i <= hi {
			vals = append(vals, -i)
		}
	}
	return vals
}
