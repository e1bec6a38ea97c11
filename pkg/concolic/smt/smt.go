// Package smt adapts the concolic engine's expression DAG to a model
// finder: given a set of assertions and a query, all expressed as
// expr.Predicate literals over the same closed operator set the engine
// uses, find an integer assignment to every free variable that
// satisfies them, or report that none exists.
//
// Two interchangeable backends implement the Adapter interface and are
// selected at engine construction (the CLI maps its z3/cvc solver names
// onto them). Both are self-contained bounded model finders: the
// subject domain is scalar integers with a small closed operator set,
// which a bounded search covers without linking an external solver
// through cgo.
package smt

import "github.com/gitrdm/concolite/pkg/concolic/expr"

// Model is a solver-produced mapping from variable name to the signed
// integer the model assigns it.
type Model map[string]int64

// Adapter lowers an expression DAG to a solver query and reports a
// model, or no model at all. Unsat, timeout, and internal solver
// errors are all reported identically: FindCounterexample returns
// (nil, false), and the engine skips the branch in every case.
type Adapter interface {
	// FindCounterexample asserts every predicate in asserts and query as
	// true (i.e. each predicate's Expr evaluating per its own Polarity),
	// and attempts to find an integer assignment for every variable
	// named anywhere in asserts or query. ok is false on unsat, timeout,
	// or internal error.
	FindCounterexample(asserts []expr.Predicate, query expr.Predicate) (model Model, ok bool)
}

// freeVariables collects the distinct variable names referenced by
// asserts and query, in first-encounter order with query's own
// variables considered last.
func freeVariables(asserts []expr.Predicate, query expr.Predicate) []string {
	seen := map[string]bool{}
	var order []string
	add := func(names []string) {
		for _, n := range names {
			if !seen[n] {
				seen[n] = true
				order = append(order, n)
			}
		}
	}
	for _, p := range asserts {
		add(expr.Vars(p.Expr))
	}
	add(expr.Vars(query.Expr))
	return order
}

// satisfies reports whether binding satisfies every assertion and the
// query.
func satisfies(asserts []expr.Predicate, query expr.Predicate, binding expr.Binding) bool {
	for _, p := range asserts {
		if !p.Satisfied(binding) {
			return false
		}
	}
	return query.Satisfied(binding)
}
