package concolic

import "github.com/pkg/errors"

// Sentinel errors for the engine's failure modes. Configuration errors
// are fatal at startup and returned directly from Explore; the rest
// describe why one branch was skipped and are attached to that branch's
// Node.SkipReason (or, for a budget exhaustion, to Result.Err) so a
// caller can recover them with errors.Is instead of string-matching a
// log line.
//
// There is no separate ErrSolverTimeout: smt.Adapter's FindCounterexample
// collapses unsat, solver timeout, and internal solver error into one
// ok=false return by design (see smt.Adapter's doc comment); the engine
// has no signal that would let it tell those three apart, so
// ErrUnsatisfiable covers all of them.
var (
	// ErrUnsatisfiable marks a Node skipped because the SMT adapter found
	// no input assignment that flips it (or timed out, or failed
	// internally; smt.Adapter reports all three identically).
	ErrUnsatisfiable = errors.New("concolic: branch is unsatisfiable")

	// ErrStaleModel marks a Node skipped because the solver's model left
	// every input unchanged from the current run. Replaying it would
	// revisit the same branch and livelock the engine.
	ErrStaleModel = errors.New("concolic: solver model did not change any input")

	// ErrBudgetExhausted marks normal termination when the iteration
	// budget is reached with a non-empty worklist. It is informational,
	// not a failure: Explore still returns a nil error, and attaches this
	// (wrapped) to Result.Err instead.
	ErrBudgetExhausted = errors.New("concolic: iteration budget exhausted")

	// ErrUnknownSolver is a configuration error raised when a CLI/loader
	// caller names a solver backend that isn't registered.
	ErrUnknownSolver = errors.New("concolic: unknown solver backend")

	// ErrEntryNotFound is a configuration error raised when the named
	// subject isn't present in the registry.
	ErrEntryNotFound = errors.New("concolic: entry point not found")
)

// SubjectPanic is the sentinel return value the engine substitutes for
// an iteration's result when the subject function panics. The engine
// treats it as a legitimate, recorded result and continues exploring.
type SubjectPanic struct {
	Value interface{}
}

func (p SubjectPanic) Error() string {
	return errors.Errorf("concolic: subject panicked: %v", p.Value).Error()
}
