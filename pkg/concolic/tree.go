package concolic

import "github.com/gitrdm/concolite/pkg/concolic/expr"

// Node is one node of the constraint tree: a prefix tree of the branch
// predicates observed across every execution of one exploration session.
// The root has neither parent nor predicate; every other node represents
// one observed branch outcome.
type Node struct {
	ID        int
	Parent    *Node
	Predicate *expr.Predicate // nil only at the root
	Children  []*Node

	// Processed is true iff a concrete execution has been shown to
	// traverse this node.
	Processed bool

	// SkipReason is non-nil when the engine dequeued this node but chose
	// not to replay it. Wraps ErrUnsatisfiable or ErrStaleModel; check
	// with errors.Is.
	SkipReason error

	// enqueued guards against the worklist ever holding the same node
	// twice (invariant: no duplicates).
	enqueued bool

	// Inputs is the input-name -> Value snapshot captured at the moment
	// this node was enqueued. It is meaningful only for nodes that have
	// been enqueued but not yet explored.
	Inputs map[string]*Value

	// Binding is the concrete value of every input at the moment this
	// node was first observed. DOT labels read it to annotate every
	// variable as name#concrete.
	Binding map[string]int64
}

// IsRoot reports whether n is the constraint tree's root.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// findChild returns the existing child whose predicate is structurally
// equal to pred, or nil if none exists yet.
func (n *Node) findChild(pred expr.Predicate) *Node {
	for _, c := range n.Children {
		if c.Predicate != nil && c.Predicate.Equal(pred) {
			return c
		}
	}
	return nil
}

// findOrAppendChild returns the existing child matching pred, or appends
// and returns a freshly allocated one, assigning it the next stable id.
func (n *Node) findOrAppendChild(pred expr.Predicate, nextID *int) *Node {
	if existing := n.findChild(pred); existing != nil {
		return existing
	}
	predCopy := pred
	child := &Node{ID: *nextID, Parent: n, Predicate: &predCopy}
	*nextID++
	n.Children = append(n.Children, child)
	return child
}

// PathPredicates returns the sequence of predicates from the root down
// to and including n, in root-to-node order. The root itself contributes
// nothing (it has no predicate).
func (n *Node) PathPredicates() []expr.Predicate {
	var rev []expr.Predicate
	for cur := n; cur != nil && cur.Predicate != nil; cur = cur.Parent {
		rev = append(rev, *cur.Predicate)
	}
	path := make([]expr.Predicate, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path
}

// Coverage reports condition coverage over the tree: each child
// contributes one distinct condition keyed by structural equality of its
// predicate (never its string form, which need not be injective over
// structurally distinct expressions); Covered counts the processed
// ones.
type Coverage struct {
	Covered int
	Total   int
}

// Percent returns Covered/Total*100, defined as 100.0 when Total is 0.
func (c Coverage) Percent() float64 {
	if c.Total == 0 {
		return 100.0
	}
	return float64(c.Covered) / float64(c.Total) * 100.0
}

// ConditionCoverage performs a depth-first traversal of the tree rooted
// at root, deduplicating conditions by structural predicate equality
// wherever they recur across the tree.
func ConditionCoverage(root *Node) Coverage {
	type seenEntry struct {
		pred      expr.Predicate
		processed bool
	}
	var seen []seenEntry

	find := func(p expr.Predicate) int {
		for i, e := range seen {
			if e.pred.Equal(p) {
				return i
			}
		}
		return -1
	}

	var walk func(n *Node)
	walk = func(n *Node) {
		for _, c := range n.Children {
			if c.Predicate == nil {
				continue
			}
			if i := find(*c.Predicate); i >= 0 {
				if c.Processed {
					seen[i].processed = true
				}
			} else {
				seen = append(seen, seenEntry{pred: *c.Predicate, processed: c.Processed})
			}
			walk(c)
		}
	}
	walk(root)

	cov := Coverage{Total: len(seen)}
	for _, e := range seen {
		if e.processed {
			cov.Covered++
		}
	}
	return cov
}
