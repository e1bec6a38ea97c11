// Package batch runs several independent exploration sessions
// concurrently using the adapted dynamic worker pool from
// internal/parallel. Each session owns its own Engine, Recorder, and
// worklist; the pool only schedules which goroutine runs which session,
// so no state is ever shared between them.
package batch

import (
	"context"
	"sync"

	"github.com/gitrdm/concolite/internal/parallel"
	"github.com/gitrdm/concolite/pkg/concolic"
	"github.com/gitrdm/concolite/pkg/concolic/subject"
)

// Job names one registered subject and the engine configuration to
// explore it with.
type Job struct {
	SubjectName string
	Config      concolic.Config
}

// Outcome pairs a Job's subject name with its exploration Result, or the
// error that kept it from running at all (an unregistered subject name
// or an adapter misconfiguration, never a subject panic, which the
// engine itself records as a result).
type Outcome struct {
	SubjectName string
	Result      *concolic.Result
	Err         error
}

// Runner drives a batch of Jobs through a parallel.WorkerPool.
type Runner struct {
	pool *parallel.WorkerPool
}

// NewRunner constructs a Runner backed by a dynamically scaling pool of
// up to maxWorkers goroutines. maxWorkers <= 0 defaults to the number of
// CPU cores (see parallel.NewWorkerPool).
func NewRunner(maxWorkers int) *Runner {
	return &Runner{pool: parallel.NewWorkerPool(maxWorkers)}
}

// Run submits every job to the pool and blocks until all have completed,
// returning one Outcome per job in the same order jobs was given.
func (r *Runner) Run(ctx context.Context, jobs []Job) []Outcome {
	outcomes := make([]Outcome, len(jobs))
	var wg sync.WaitGroup

	for i, job := range jobs {
		i, job := i, job
		wg.Add(1)
		err := r.pool.Submit(ctx, func() {
			defer wg.Done()
			outcomes[i] = runJob(job)
		})
		if err != nil {
			wg.Done()
			outcomes[i] = Outcome{SubjectName: job.SubjectName, Err: err}
		}
	}

	wg.Wait()
	return outcomes
}

// Shutdown releases the Runner's worker pool. It must be called exactly
// once, after the last Run call returns.
func (r *Runner) Shutdown() {
	r.pool.Shutdown()
}

// Stats exposes the pool's accumulated ExecutionStats for reporting.
func (r *Runner) Stats() *parallel.ExecutionStats {
	return r.pool.GetStats()
}

func runJob(job Job) Outcome {
	s, ok := subject.Lookup(job.SubjectName)
	if !ok {
		return Outcome{SubjectName: job.SubjectName, Err: concolic.ErrEntryNotFound}
	}
	adapter := subject.NewAdapter(s)
	engine := concolic.NewEngine(adapter, job.Config)
	result, err := engine.Explore()
	return Outcome{SubjectName: job.SubjectName, Result: result, Err: err}
}
