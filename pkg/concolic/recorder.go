package concolic

import "github.com/gitrdm/concolite/pkg/concolic/expr"

// Recorder observes the boolean decisions a single exploration session's
// subject makes and grows a constraint tree from them, enqueuing the
// unexplored opposite sibling of every branch it first sees.
//
// A Recorder is owned by one Engine instance, never installed as
// process-wide state: every Value produced from that Engine's inputs
// carries a pointer to it through however many operators it passes
// through (see recorderOf in value.go). Multiple Engines, and therefore
// multiple concurrent exploration sessions as run by package batch,
// operate independently without sharing mutable state.
type Recorder struct {
	Root    *Node
	current *Node
	nextID  int

	// expectedPath is diagnostic metadata only. The recorder does not
	// enforce that replay follows it; the solver model does.
	expectedPath []expr.Predicate

	// enqueue is supplied by the Engine at construction; it appends a
	// newly-discovered, unexplored node to the engine's FIFO worklist.
	enqueue func(*Node)

	// snapshotInputs is supplied by the Engine; it returns the mapping of
	// input name to Value as of right now, used to populate a freshly
	// enqueued node's Inputs.
	snapshotInputs func() map[string]*Value
}

// NewRecorder constructs a Recorder rooted at an empty tree. enqueue and
// snapshotInputs are supplied by the owning Engine.
func NewRecorder(enqueue func(*Node), snapshotInputs func() map[string]*Value) *Recorder {
	root := &Node{ID: 0}
	return &Recorder{
		Root:           root,
		current:        root,
		nextID:         1,
		enqueue:        enqueue,
		snapshotInputs: snapshotInputs,
	}
}

// Reset rewinds the current pointer to the root before a fresh execution.
// expectedPath, when non-nil, is the sequence of predicates from root to
// the node the engine is attempting to reach this run; it is stored only
// for diagnostic purposes.
func (r *Recorder) Reset(expectedPath []expr.Predicate) {
	r.current = r.Root
	r.expectedPath = expectedPath
}

// WhichBranch is called by Value.Bool with the polarity the subject's
// branch actually took and the Value whose coercion triggered it. It
// materializes both siblings under the current node, enqueues the
// unprocessed one with a snapshot of the current inputs, marks the
// taken one processed, and advances the current pointer. Both siblings
// also capture the inputs' concrete values on first observation, so a
// DOT rendering can annotate every variable with its binding.
func (r *Recorder) WhichBranch(taken bool, governing *Value) {
	takenPred := expr.Predicate{Expr: governing.Expr, Polarity: taken}
	oppPred := takenPred.Negate()

	takenNode := r.current.findOrAppendChild(takenPred, &r.nextID)
	oppNode := r.current.findOrAppendChild(oppPred, &r.nextID)

	snap := r.snapshotInputs()
	binding := bindingOf(snap)
	if takenNode.Binding == nil {
		takenNode.Binding = binding
	}
	if oppNode.Binding == nil {
		oppNode.Binding = binding
	}

	if !oppNode.Processed && !oppNode.enqueued {
		oppNode.Inputs = snap
		oppNode.enqueued = true
		r.enqueue(oppNode)
	}

	takenNode.Processed = true
	r.current = takenNode
}

// bindingOf projects an input snapshot down to the concrete values DOT
// labels annotate variables with.
func bindingOf(snap map[string]*Value) map[string]int64 {
	if len(snap) == 0 {
		return nil
	}
	binding := make(map[string]int64, len(snap))
	for name, v := range snap {
		binding[name] = v.Concrete
	}
	return binding
}
