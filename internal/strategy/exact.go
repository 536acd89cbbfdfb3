package strategy

import (
	"context"
	"slices"
	"time"

	"conflictsched/internal/mip"
	"conflictsched/internal/problem"
	"conflictsched/internal/solution"
)

func init() {
	Register("exact", newExact)
}

const defaultExactTimeLimit = 60 * time.Second

// exact delegates the whole instance to an external MIP solver and lifts the
// returned assignment back into a solution state. It is only useful on
// instances small enough to afford it, either standalone or as a bound for
// the heuristics.
type exact struct {
	cfg    Config
	solver mip.Solver
}

func newExact(cfg Config) (Strategy, error) {
	available := mip.Available()

	name := cfg.Solver
	if name == "" {
		if len(available) == 0 {
			return nil, &FeatureUnavailableError{Feature: "exact", Detail: "no mip solver binary on PATH"}
		}
		name = available[0]
	} else if !slices.Contains(available, name) {
		return nil, &FeatureUnavailableError{Feature: "exact", Detail: "solver " + name + " not on PATH"}
	}

	solver, err := mip.NewSolver(name)
	if err != nil {
		return nil, &FeatureUnavailableError{Feature: "exact", Detail: err.Error()}
	}
	return &exact{cfg: cfg, solver: solver}, nil
}

func (e *exact) Name() string {
	return "exact"
}

func (e *exact) Solve(_ context.Context, instance *problem.Instance) (Result, error) {
	start := time.Now()

	timeLimit := e.cfg.TimeBudget
	if timeLimit <= 0 {
		timeLimit = defaultExactTimeLimit
	}

	outcome, err := e.solver.Solve(mip.Build(instance), timeLimit)
	if err != nil {
		return Result{}, err
	}

	meta := map[string]any{
		"status": outcome.Status.String(),
		"bound":  outcome.Bound,
	}

	switch outcome.Status {
	case mip.StatusInfeasible:
		return Result{}, &InfeasibleError{Job: -1}
	case mip.StatusTimedOut:
		// Non-fatal: report the empty partial result with whatever bound
		// the solver proved before the limit.
		return Result{
			State:       solution.NewState(instance, e.cfg.costFunc()),
			Feasible:    false,
			Duration:    time.Since(start),
			Termination: TerminationBudget,
			Meta:        meta,
		}, nil
	}

	state := solution.NewState(instance, e.cfg.costFunc())
	for job, slot := range outcome.Assignment {
		if err := state.Assign(job, slot); err != nil {
			return Result{}, err
		}
	}
	if err := state.Validate(); err != nil {
		return Result{}, err
	}

	termination := TerminationCompleted
	if outcome.Status == mip.StatusFeasible {
		termination = TerminationBudget
	}

	return Result{
		State:       state,
		Cost:        state.Cost(),
		Feasible:    true,
		Duration:    time.Since(start),
		Termination: termination,
		Meta:        meta,
	}, nil
}
