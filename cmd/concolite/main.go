// Command concolite drives one or more registered subjects through
// concolic exploration from the command line, optionally rendering the
// resulting constraint tree as a DOT graph.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/gitrdm/concolite/internal/subjects"
	"github.com/gitrdm/concolite/pkg/concolic"
	"github.com/gitrdm/concolite/pkg/concolic/batch"
	"github.com/gitrdm/concolite/pkg/concolic/smt"
	"github.com/gitrdm/concolite/pkg/concolic/subject"
	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	fs := flag.NewFlagSet("concolite", flag.ContinueOnError)

	var (
		start    = fs.String("s", "", "name of the registered subject to explore")
		maxIters = fs.Int("m", 5, "maximum number of executions, the seed run included")
		graph    = fs.Bool("g", false, "write a DOT graph of the constraint tree after every iteration")
		folder   = fs.String("f", "logs", "output folder for DOT graphs")
		solver   = fs.String("solver", "z3", "solver backend: z3 or cvc")
		batchArg = fs.String("batch", "", "comma-separated subject names to explore concurrently")
		logFile  = fs.String("l", "", "log file; defaults to stderr")
	)
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	log := logrus.New()
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "concolite: opening log file: %v\n", err)
			return 1
		}
		defer f.Close()
		log.SetOutput(f)
	}

	solverFor := func() (smt.Adapter, error) {
		switch *solver {
		case "z3":
			return smt.NewEnumerativeSolver(0), nil
		case "cvc":
			return smt.NewPropagatingSolver(0), nil
		default:
			return nil, concolic.ErrUnknownSolver
		}
	}

	if *batchArg != "" {
		names := strings.Split(*batchArg, ",")
		for i := range names {
			names[i] = strings.TrimSpace(names[i])
		}
		return runBatch(log, names, *maxIters, solverFor)
	}

	if *start == "" {
		fmt.Fprintln(os.Stderr, "concolite: -s is required unless -batch is given")
		fs.Usage()
		return 2
	}

	return runSingle(log, *start, *maxIters, *graph, *folder, solverFor)
}

func runSingle(log *logrus.Logger, name string, maxIters int, graph bool, folder string, solverFor func() (smt.Adapter, error)) int {
	s, ok := subject.Lookup(name)
	if !ok {
		log.WithField("subject", name).Error("concolite: entry point not found")
		return 1
	}

	solver, err := solverFor()
	if err != nil {
		log.WithError(err).Error("concolite: solver configuration error")
		return 1
	}

	cfg := concolic.Config{
		MaxIters: maxIters,
		Solver:   solver,
		Log:      log,
	}
	if graph {
		if err := os.MkdirAll(folder, 0o755); err != nil {
			log.WithError(err).Error("concolite: creating graph folder")
			return 1
		}
		cfg.OnIteration = func(iteration int, tree *concolic.Node) {
			if err := writeGraph(folder, name, iteration, tree); err != nil {
				log.WithError(err).WithField("iteration", iteration).Warn("concolite: failed to write DOT graph")
			}
		}
	}

	adapter := subject.NewAdapter(s)
	engine := concolic.NewEngine(adapter, cfg)

	result, err := engine.Explore()
	if err != nil {
		log.WithError(err).Error("concolite: exploration failed")
		return 1
	}

	log.WithFields(logrus.Fields{
		"subject":    name,
		"executions": len(result.Executions),
		"coverage":   concolic.ConditionCoverage(result.Tree).Percent(),
	}).Info("concolite: exploration complete")

	for i, exec := range result.Executions {
		log.WithFields(logrus.Fields{
			"iteration": i,
			"inputs":    exec.Inputs,
			"return":    fmt.Sprintf("%v", exec.Return),
		}).Info("concolite: execution")
	}

	return 0
}

func runBatch(log *logrus.Logger, names []string, maxIters int, solverFor func() (smt.Adapter, error)) int {
	if len(names) == 0 {
		log.Error("concolite: -batch given with no subject names")
		return 1
	}

	jobs := make([]batch.Job, len(names))
	for i, name := range names {
		solver, err := solverFor()
		if err != nil {
			log.WithError(err).Error("concolite: solver configuration error")
			return 1
		}
		jobs[i] = batch.Job{
			SubjectName: name,
			Config:      concolic.Config{MaxIters: maxIters, Solver: solver, Log: log},
		}
	}

	runner := batch.NewRunner(0)
	defer runner.Shutdown()

	outcomes := runner.Run(context.Background(), jobs)

	exitCode := 0
	for _, o := range outcomes {
		if o.Err != nil {
			log.WithFields(logrus.Fields{"subject": o.SubjectName}).WithError(o.Err).Error("concolite: subject exploration failed")
			exitCode = 1
			continue
		}
		log.WithFields(logrus.Fields{
			"subject":    o.SubjectName,
			"executions": len(o.Result.Executions),
			"coverage":   concolic.ConditionCoverage(o.Result.Tree).Percent(),
		}).Info("concolite: exploration complete")
	}

	log.Info(runner.Stats().String())
	return exitCode
}

// writeGraph renders the constraint tree as of one iteration to
// <folder>/<name>_<iteration>.dot.
func writeGraph(folder, name string, iteration int, tree *concolic.Node) error {
	path := filepath.Join(folder, fmt.Sprintf("%s_%d.dot", name, iteration))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return concolic.WriteDOT(f, tree)
}
