// Package expr implements the immutable expression DAG shared by the
// symbolic value layer and the SMT adapter: input variables, integer
// literals, and a closed set of arithmetic/bitwise/comparison operators.
//
// Nodes are built once and shared freely; structural equality never
// relies on pointer identity, so the same logical expression produced by
// two different executions compares equal.
package expr

import (
	"fmt"
	"strings"
)

// Kind distinguishes the three node shapes a concolic expression can take.
type Kind int

const (
	// KindVar identifies an input variable, addressed by name.
	KindVar Kind = iota
	// KindConst identifies an integer literal (booleans are encoded 0/1).
	KindConst
	// KindOp identifies an operator applied to an ordered list of children.
	KindOp
)

// Operator symbols. The set is closed: engine, evaluator, and SMT
// translation all switch exhaustively over these strings.
const (
	Add      = "+"
	Sub      = "-"
	Mul      = "*"
	Mod      = "%"
	FloorDiv = "//"
	BitAnd   = "&"
	BitOr    = "|"
	BitXor   = "^"
	Shl      = "<<"
	Shr      = ">>"
	Eq       = "=="
	Ne       = "!="
	Lt       = "<"
	Le       = "<="
	Gt       = ">"
	Ge       = ">="
)

// Node is one element of the expression DAG. It is treated as immutable
// once constructed; callers must not mutate Children in place.
type Node struct {
	Kind     Kind
	Name     string  // valid when Kind == KindVar
	Const    int64   // valid when Kind == KindConst
	Op       string  // valid when Kind == KindOp
	Children []*Node // valid when Kind == KindOp, always len 2 for this operator set
}

// Var builds an input-variable leaf.
func Var(name string) *Node {
	return &Node{Kind: KindVar, Name: name}
}

// ConstInt builds an integer literal leaf.
func ConstInt(v int64) *Node {
	return &Node{Kind: KindConst, Const: v}
}

// ConstBool builds a boolean literal, encoded as the integers 1 (true) or
// 0 (false) so it composes with arithmetic the same way the host
// language's own truthy/falsy integers do.
func ConstBool(v bool) *Node {
	return ConstInt(boolToInt(v))
}

// BinOp builds a two-child operator node. op must be one of the constants
// above; BinOp panics on an unrecognized operator since that indicates a
// programming error in the symbolic value layer, not bad input.
func BinOp(op string, lhs, rhs *Node) *Node {
	if !isKnownOp(op) {
		panic(fmt.Sprintf("expr: unknown operator %q", op))
	}
	return &Node{Kind: KindOp, Op: op, Children: []*Node{lhs, rhs}}
}

func isKnownOp(op string) bool {
	switch op {
	case Add, Sub, Mul, Mod, FloorDiv, BitAnd, BitOr, BitXor, Shl, Shr, Eq, Ne, Lt, Le, Gt, Ge:
		return true
	}
	return false
}

// IsVar reports whether n is a bare input-variable node, i.e. a symbolic
// value that has not yet been combined with any operator.
func IsVar(n *Node) bool {
	return n != nil && n.Kind == KindVar
}

// Equal performs structural equality: operator, arity, and child
// structure recursively; variables compare by name; constants by value.
// Root-node identity is ignored entirely.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindVar:
		return a.Name == b.Name
	case KindConst:
		return a.Const == b.Const
	case KindOp:
		if a.Op != b.Op || len(a.Children) != len(b.Children) {
			return false
		}
		for i := range a.Children {
			if !Equal(a.Children[i], b.Children[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Vars returns the distinct variable names referenced anywhere in n, in
// first-encounter order.
func Vars(n *Node) []string {
	seen := map[string]bool{}
	var order []string
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		switch n.Kind {
		case KindVar:
			if !seen[n.Name] {
				seen[n.Name] = true
				order = append(order, n.Name)
			}
		case KindOp:
			for _, c := range n.Children {
				walk(c)
			}
		}
	}
	walk(n)
	return order
}

// String renders n using bare variable names (no concrete binding),
// e.g. "(== (+ x, 1), y)". Used for logging and error messages; DOT
// labels use Render, which additionally annotates variables with a
// concrete binding.
func (n *Node) String() string {
	return render(n, nil)
}

// Render renders n as DOT label text: "(op child1, child2, …)" for
// operators, "name#concrete" for variables when a binding is supplied,
// and the literal's decimal form for constants.
func Render(n *Node, binding map[string]int64) string {
	return render(n, binding)
}

func render(n *Node, binding map[string]int64) string {
	if n == nil {
		return "<nil>"
	}
	switch n.Kind {
	case KindVar:
		if binding == nil {
			return n.Name
		}
		if v, ok := binding[n.Name]; ok {
			return fmt.Sprintf("%s#%d", n.Name, v)
		}
		return n.Name
	case KindConst:
		return fmt.Sprintf("%d", n.Const)
	case KindOp:
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = render(c, binding)
		}
		return fmt.Sprintf("(%s %s)", n.Op, strings.Join(parts, ", "))
	default:
		return "<invalid>"
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
