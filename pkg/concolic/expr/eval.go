package expr

import "fmt"

// Binding maps variable names to the concrete integers an execution or a
// solver model assigns them.
type Binding map[string]int64

// ApplyBinOp computes the concrete result of op applied to a and b using
// native Go int64 semantics, except for Mod and FloorDiv which use
// floored (not truncated) division so that a model's concrete
// re-evaluation always reproduces the branch the solver predicted,
// regardless of operand signs.
func ApplyBinOp(op string, a, b int64) int64 {
	switch op {
	case Add:
		return a + b
	case Sub:
		return a - b
	case Mul:
		return a * b
	case Mod:
		return floorMod(a, b)
	case FloorDiv:
		return floorDiv(a, b)
	case BitAnd:
		return a & b
	case BitOr:
		return a | b
	case BitXor:
		return a ^ b
	case Shl:
		return a << uint(b&63)
	case Shr:
		return a >> uint(b&63)
	case Eq:
		return boolToInt(a == b)
	case Ne:
		return boolToInt(a != b)
	case Lt:
		return boolToInt(a < b)
	case Le:
		return boolToInt(a <= b)
	case Gt:
		return boolToInt(a > b)
	case Ge:
		return boolToInt(a >= b)
	default:
		panic(fmt.Sprintf("expr: unknown operator %q", op))
	}
}

// floorDiv implements Python-style floor division: the quotient is
// rounded toward negative infinity rather than toward zero.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod implements Python-style modulus: the result always carries
// the sign of the divisor.
func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}

// Eval concretely evaluates n under binding, panicking if n references a
// variable absent from binding; callers are expected to have already
// bound every variable in the expression (the SMT backends bind every
// free variable before evaluating).
func Eval(n *Node, binding Binding) int64 {
	if n == nil {
		panic("expr: Eval on nil node")
	}
	switch n.Kind {
	case KindVar:
		v, ok := binding[n.Name]
		if !ok {
			panic(fmt.Sprintf("expr: unbound variable %q", n.Name))
		}
		return v
	case KindConst:
		return n.Const
	case KindOp:
		a := Eval(n.Children[0], binding)
		b := Eval(n.Children[1], binding)
		return ApplyBinOp(n.Op, a, b)
	default:
		panic("expr: invalid node kind")
	}
}

// Truthy reports whether the concrete integer n represents true under
// the host's truthy/falsy convention (nonzero is true).
func Truthy(n int64) bool {
	return n != 0
}
