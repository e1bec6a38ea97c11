package concolic

import (
	"github.com/gitrdm/concolite/pkg/concolic/expr"
	"github.com/gitrdm/concolite/pkg/concolic/smt"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// InvocationAdapter is the narrow interface the engine uses to reach the
// external subject loader: enumerate input names, create a symbolic
// value for a name with an optional concrete override, and invoke the
// subject with a named-input mapping. Package subject provides the
// registry-backed implementation.
type InvocationAdapter interface {
	// GetNames returns the ordered list of input names the subject
	// declares.
	GetNames() []string

	// CreateArgumentValue builds a fresh input Value for name, owned by
	// rec. override, when non-nil, replaces the subject's declared seed.
	CreateArgumentValue(rec *Recorder, name string, override *int64) *Value

	// CallFunction invokes the subject with the given named-input
	// mapping and returns its result.
	CallFunction(args map[string]*Value) interface{}
}

// Execution is one recorded run of the subject: the concrete inputs it
// was given and the value it returned.
type Execution struct {
	Inputs []NamedInput
	Return interface{}
}

// NamedInput is one (name, concrete value) pair captured from an
// execution's input mapping, in the adapter's declared order.
type NamedInput struct {
	Name  string
	Value int64
}

// Result is the engine's output after exploration halts: every execution
// performed, in order, and the final constraint tree (for coverage and
// DOT rendering).
type Result struct {
	Executions []Execution
	Tree       *Node

	// Err wraps ErrBudgetExhausted when the iteration budget ran out
	// with the worklist still non-empty; nil otherwise. It is
	// informational only (Explore's own returned error is unaffected by
	// it) and is checked with errors.Is.
	Err error
}

// Config bundles the engine's tunable parameters.
type Config struct {
	// MaxIters bounds the total number of executions, the initial seed
	// run included: a budget of N yields at most N runs of the subject.
	// Defaults to 5, matching the CLI's -m default.
	MaxIters int

	// Solver is the SMT backend asked to flip pending branches. Defaults
	// to smt.NewEnumerativeSolver(0), the CLI's z3 backend, when nil.
	Solver smt.Adapter

	// Log receives one structured entry per engine decision. Defaults to
	// logrus.StandardLogger() when nil.
	Log *logrus.Logger

	// OnIteration, when non-nil, is invoked after every execution with
	// the 1-based execution count and the constraint tree as of that
	// moment. The CLI uses it to render one DOT graph per iteration.
	OnIteration func(iteration int, tree *Node)
}

// Engine orchestrates one exploration session: seed run, then
// dequeue-solve-replay until the worklist empties or the iteration
// budget is reached.
type Engine struct {
	adapter  InvocationAdapter
	cfg      Config
	recorder *Recorder
	worklist []*Node
}

// NewEngine constructs an Engine bound to adapter, applying zero-value
// defaults in cfg.
func NewEngine(adapter InvocationAdapter, cfg Config) *Engine {
	if cfg.MaxIters <= 0 {
		cfg.MaxIters = 5
	}
	if cfg.Solver == nil {
		cfg.Solver = smt.NewEnumerativeSolver(0)
	}
	if cfg.Log == nil {
		cfg.Log = logrus.StandardLogger()
	}
	return &Engine{adapter: adapter, cfg: cfg}
}

// Explore runs the exploration loop and returns the accumulated
// Result. It never returns an error for solver no-model, stale-model,
// or budget-exhausted outcomes, since those are normal terminations; a
// non-nil error indicates a configuration problem (for example an
// adapter that declares zero input names).
func (e *Engine) Explore() (*Result, error) {
	names := e.adapter.GetNames()
	if len(names) == 0 {
		return nil, errors.Wrap(ErrEntryNotFound, "adapter declares no input names")
	}

	inputs := map[string]*Value{}
	e.recorder = NewRecorder(e.enqueue, func() map[string]*Value {
		snap := make(map[string]*Value, len(inputs))
		for k, v := range inputs {
			snap[k] = v
		}
		return snap
	})
	for _, name := range names {
		inputs[name] = e.adapter.CreateArgumentValue(e.recorder, name, nil)
	}

	result := &Result{Tree: e.recorder.Root}

	// The seed run spends the first unit of the execution budget.
	iteration := 1
	exec := e.runOnce(inputs, nil)
	result.Executions = append(result.Executions, exec)
	e.notifyIteration(iteration)

	for len(e.worklist) > 0 && iteration < e.cfg.MaxIters {
		selected := e.popWorklist()
		if selected.Processed {
			e.cfg.Log.WithField("node_id", selected.ID).Debug("concolic: skip already-satisfied branch")
			continue
		}

		path := selected.PathPredicates()
		asserts := path[:len(path)-1]
		query := path[len(path)-1]

		model, ok := e.cfg.Solver.FindCounterexample(asserts, query)
		if !ok {
			selected.SkipReason = errors.Wrapf(ErrUnsatisfiable, "node %d", selected.ID)
			e.cfg.Log.WithField("node_id", selected.ID).WithField("verdict", "unsat").Debug("concolic: branch has no model")
			continue
		}
		if modelMatchesCurrent(model, selected.Inputs) {
			selected.SkipReason = errors.Wrapf(ErrStaleModel, "node %d", selected.ID)
			e.cfg.Log.WithField("node_id", selected.ID).WithField("verdict", "stale").Debug("concolic: solver model did not change any input")
			continue
		}
		selected.Processed = true

		nextInputs := make(map[string]*Value, len(selected.Inputs))
		for name, v := range selected.Inputs {
			nextInputs[name] = v
		}
		for name, concrete := range model {
			c := concrete
			nextInputs[name] = e.adapter.CreateArgumentValue(e.recorder, name, &c)
		}

		inputs = nextInputs
		exec := e.runOnce(inputs, path)
		result.Executions = append(result.Executions, exec)
		iteration++
		e.notifyIteration(iteration)

		e.cfg.Log.WithFields(logrus.Fields{
			"iteration":    iteration,
			"node_id":      selected.ID,
			"verdict":      "sat",
			"coverage_pct": ConditionCoverage(e.recorder.Root).Percent(),
		}).Info("concolic: replayed branch")
	}

	if len(e.worklist) > 0 && iteration >= e.cfg.MaxIters {
		result.Err = errors.Wrapf(ErrBudgetExhausted, "%d of %d iterations used, %d branches left pending", iteration, e.cfg.MaxIters, len(e.worklist))
	}

	return result, nil
}

// runOnce resets the recorder, invokes the subject, and records a
// subject panic as the execution's result rather than propagating it.
func (e *Engine) runOnce(inputs map[string]*Value, expectedPath []expr.Predicate) Execution {
	e.recorder.Reset(expectedPath)

	ret := e.invokeSubject(inputs)

	named := make([]NamedInput, 0, len(inputs))
	for _, name := range e.adapter.GetNames() {
		if v, ok := inputs[name]; ok {
			named = append(named, NamedInput{Name: name, Value: v.Concrete})
		}
	}
	return Execution{Inputs: named, Return: ret}
}

func (e *Engine) invokeSubject(inputs map[string]*Value) (result interface{}) {
	defer func() {
		if r := recover(); r != nil {
			e.cfg.Log.WithField("panic", r).Warn("concolic: subject panicked; recording as result")
			result = SubjectPanic{Value: r}
		}
	}()
	return e.adapter.CallFunction(inputs)
}

func (e *Engine) notifyIteration(iteration int) {
	if e.cfg.OnIteration != nil {
		e.cfg.OnIteration(iteration, e.recorder.Root)
	}
}

func (e *Engine) enqueue(n *Node) {
	e.worklist = append(e.worklist, n)
}

func (e *Engine) popWorklist() *Node {
	n := e.worklist[0]
	e.worklist = e.worklist[1:]
	return n
}

// modelMatchesCurrent reports whether every variable the solver assigned
// already equals the concrete value it has in current: replaying with
// identical inputs would simply revisit the same branch.
func modelMatchesCurrent(model smt.Model, current map[string]*Value) bool {
	for name, want := range model {
		have, ok := current[name]
		if !ok || have.Concrete != want {
			return false
		}
	}
	return true
}
