package concolic

import (
	"fmt"
	"io"
)

// WriteDOT renders the constraint tree rooted at root as a Graphviz DOT
// digraph: one "C{id}" node per tree node labelled with its predicate
// (or "root"), and one edge per parent/child link. Output is
// deterministic for a given tree, so repeated runs with the same seed
// and budget produce byte-identical graphs.
func WriteDOT(w io.Writer, root *Node) error {
	if _, err := fmt.Fprintln(w, "digraph constraints {"); err != nil {
		return err
	}
	if err := writeDOTNode(w, root); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

func writeDOTNode(w io.Writer, n *Node) error {
	label := "root"
	if n.Predicate != nil {
		label = n.Predicate.Label(n.Binding)
	}
	if _, err := fmt.Fprintf(w, "  C%d [label=%q];\n", n.ID, label); err != nil {
		return err
	}
	for _, c := range n.Children {
		if _, err := fmt.Fprintf(w, "  C%d -> C%d;\n", n.ID, c.ID); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := writeDOTNode(w, c); err != nil {
			return err
		}
	}
	return nil
}
