package expr

// Predicate pairs a governing expression with the polarity a branch
// observation took: "at this branch point, Expr evaluated truthy"
// (Polarity true) or "...evaluated falsy" (Polarity false).
type Predicate struct {
	Expr     *Node
	Polarity bool
}

// Equal compares polarity and the structural equality of the governing
// expressions, never object identity, so replaying the same path with
// freshly constructed nodes still matches.
func (p Predicate) Equal(o Predicate) bool {
	return p.Polarity == o.Polarity && Equal(p.Expr, o.Expr)
}

// Negate returns the predicate with the opposite polarity over the same
// governing expression: the sibling branch the recorder always
// materializes alongside p.
func (p Predicate) Negate() Predicate {
	return Predicate{Expr: p.Expr, Polarity: !p.Polarity}
}

// Label renders p the way DOT node labels do: "Not(expr)" when the
// polarity is false, the bare expression otherwise.
func (p Predicate) Label(binding map[string]int64) string {
	s := Render(p.Expr, binding)
	if !p.Polarity {
		return "Not(" + s + ")"
	}
	return s
}

// Satisfied reports whether evaluating p.Expr under binding matches p's
// polarity. This is the check the SMT adapters use to validate a
// candidate model.
func (p Predicate) Satisfied(binding Binding) bool {
	return Truthy(Eval(p.Expr, binding)) == p.Polarity
}
