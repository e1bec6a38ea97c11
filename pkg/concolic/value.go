// Package concolic implements dynamic symbolic (concolic) execution of a
// pure function under test: it runs the function concretely while
// shadowing every scalar input with a Value that also accumulates the
// symbolic expression describing how that value was derived. Boolean
// coercions of a Value report the branch taken to a Recorder, which
// grows a constraint tree of observed predicates and enqueues the
// opposite, unexplored sibling for later. The Engine drives exploration
// by repeatedly asking an smt.Adapter for an input assignment that flips
// a pending branch and replaying the subject with it.
package concolic

import "github.com/gitrdm/concolite/pkg/concolic/expr"

// Value is the shadow integer/boolean the subject under test computes
// with. It carries the concrete result an ordinary (uninstrumented)
// evaluation would produce alongside the expression DAG built from the
// operators applied since the nearest input variable.
//
// Go has no operator overloading, so every operator is an explicit
// method the subject function calls directly (see package subject).
type Value struct {
	Concrete int64
	Expr     *expr.Node
	rec      *Recorder
}

// NewConst wraps a plain integer literal with no governing recorder. It
// is the Go-side equivalent of a Python literal appearing in subject
// source: combining it with a symbolic Value below carries the
// recorder forward automatically.
func NewConst(v int64) *Value {
	return &Value{Concrete: v, Expr: expr.ConstInt(v)}
}

// NewConstBool wraps a boolean literal using the 0/1 integer encoding
// the rest of the package uses for truthiness.
func NewConstBool(v bool) *Value {
	return &Value{Concrete: boolToInt(v), Expr: expr.ConstBool(v)}
}

// NewVar wraps a named input's seed concrete value as a symbolic Value
// bound to rec, so that every subsequent operation derived from it (and
// every boolean coercion reached through it) is observed by rec.
func NewVar(rec *Recorder, name string, seed int64) *Value {
	return &Value{Concrete: seed, Expr: expr.Var(name), rec: rec}
}

// IsVariable reports whether v is a bare input variable (as opposed to a
// value derived from one or more operators).
func (v *Value) IsVariable() bool {
	return expr.IsVar(v.Expr)
}

// recorderOf picks the first non-nil recorder among operands, preserving
// the invariant that any Value reachable from a recorded input carries
// that recorder forward through arbitrarily long derivation chains.
func recorderOf(a, b *Value) *Recorder {
	if a != nil && a.rec != nil {
		return a.rec
	}
	if b != nil {
		return b.rec
	}
	return nil
}

func (v *Value) binOp(op string, o *Value) *Value {
	node := expr.BinOp(op, v.Expr, o.Expr)
	concrete := expr.ApplyBinOp(op, v.Concrete, o.Concrete)
	return &Value{Concrete: concrete, Expr: node, rec: recorderOf(v, o)}
}

// Arithmetic operators. Each yields a Value whose concrete part is
// computed with native int64 semantics (floor semantics for Mod/FloorDiv,
// matching expr.ApplyBinOp) and whose Expr records the operation over
// both operands' expressions, preserving argument order.
func (v *Value) Add(o *Value) *Value      { return v.binOp(expr.Add, o) }
func (v *Value) Sub(o *Value) *Value      { return v.binOp(expr.Sub, o) }
func (v *Value) Mul(o *Value) *Value      { return v.binOp(expr.Mul, o) }
func (v *Value) Mod(o *Value) *Value      { return v.binOp(expr.Mod, o) }
func (v *Value) FloorDiv(o *Value) *Value { return v.binOp(expr.FloorDiv, o) }

// Bitwise operators.
func (v *Value) And(o *Value) *Value { return v.binOp(expr.BitAnd, o) }
func (v *Value) Or(o *Value) *Value  { return v.binOp(expr.BitOr, o) }
func (v *Value) Xor(o *Value) *Value { return v.binOp(expr.BitXor, o) }
func (v *Value) Shl(o *Value) *Value { return v.binOp(expr.Shl, o) }
func (v *Value) Shr(o *Value) *Value { return v.binOp(expr.Shr, o) }

// Comparison operators. The resulting Value's Concrete is 1 or 0; its
// Bool method (and thus branch reporting) treats it the same as any
// other Value.
func (v *Value) Eq(o *Value) *Value { return v.binOp(expr.Eq, o) }
func (v *Value) Ne(o *Value) *Value { return v.binOp(expr.Ne, o) }
func (v *Value) Lt(o *Value) *Value { return v.binOp(expr.Lt, o) }
func (v *Value) Le(o *Value) *Value { return v.binOp(expr.Le, o) }
func (v *Value) Gt(o *Value) *Value { return v.binOp(expr.Gt, o) }
func (v *Value) Ge(o *Value) *Value { return v.binOp(expr.Ge, o) }

// Bool coerces v to a boolean: the truthiness of its concrete part. If a
// path recorder is reachable from v (i.e. v descends from a recorded
// input), the coercion is also reported to it. This is the sole
// mechanism by which the engine observes the subject's control flow.
func (v *Value) Bool() bool {
	b := v.Concrete != 0
	if v.rec != nil {
		v.rec.WhichBranch(b, v)
	}
	return b
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
