// Package strategy contains the solving algorithms and the runtime registry
// through which callers select them by name.
package strategy

import (
	"context"
	"time"

	"conflictsched/internal/problem"
	"conflictsched/internal/solution"
)

// Termination classifies how a run ended. All values are normal outcomes,
// never errors.
type Termination string

const (
	// TerminationCompleted marks a single-pass run that placed every job.
	TerminationCompleted Termination = "completed"
	// TerminationConverged marks a search that ran out of improving moves.
	TerminationConverged Termination = "converged"
	// TerminationBudget marks a search stopped by its iteration or time budget.
	TerminationBudget Termination = "budget"
)

// Strategy consumes a shared read-only instance and produces an owned
// solution state. Implementations must keep all mutable state (including
// their random source) inside a single Solve call so parallel runs never
// interfere.
type Strategy interface {
	Solve(ctx context.Context, instance *problem.Instance) (Result, error)
	Name() string
}

// Result carries the best state a run produced together with its provenance.
type Result struct {
	State       *solution.State
	Cost        int64
	Feasible    bool
	Iterations  int
	Duration    time.Duration
	Termination Termination
	Meta        map[string]any
}

// Report converts the result into the external solution report.
func (result Result) Report(strategy string, seed int64) solution.Report {
	return result.State.Report(strategy, seed, result.Iterations)
}
