package strategy

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"conflictsched/internal/problem"
)

// Run names one portfolio entry: a registered strategy plus its options.
type Run struct {
	Strategy string
	Options  Config
}

// RunResult pairs a run with what it produced. Err is set when the run
// failed to build or solve; Result is only meaningful when Err is nil.
type RunResult struct {
	Run    Run
	Result Result
	Err    error
}

// Portfolio executes several runs concurrently over one shared instance and
// reduces them to the minimum-cost feasible result. Every run owns its own
// state and random source, so the only shared data is the immutable
// instance.
type Portfolio struct {
	// Workers bounds the number of concurrently executing runs. Zero means
	// one worker per CPU core.
	Workers int
}

// Solve runs the portfolio and returns the best feasible result together
// with every per-run outcome. It fails only when no run produced a feasible
// state.
func (portfolio Portfolio) Solve(ctx context.Context, instance *problem.Instance, runs []Run) (Result, []RunResult, error) {
	workers := portfolio.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(runs) {
		workers = len(runs)
	}

	results := make([]RunResult, len(runs))
	tasks := make(chan int)

	var wg sync.WaitGroup
	for worker := 0; worker < workers; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range tasks {
				results[index] = execute(ctx, instance, runs[index])
			}
		}()
	}

	for index := range runs {
		tasks <- index
	}
	close(tasks)
	wg.Wait()

	best, ok := reduce(results)
	if !ok {
		return Result{}, results, fmt.Errorf("no run produced a feasible solution")
	}
	return best, results, nil
}

func execute(ctx context.Context, instance *problem.Instance, run Run) RunResult {
	if err := ctx.Err(); err != nil {
		return RunResult{Run: run, Err: err}
	}

	solver, err := New(run.Strategy, run.Options)
	if err != nil {
		return RunResult{Run: run, Err: err}
	}

	result, err := solver.Solve(ctx, instance)
	return RunResult{Run: run, Result: result, Err: err}
}

// reduce selects the minimum-cost feasible result, breaking ties on strategy
// name and then seed so the reduction is deterministic regardless of
// completion order.
func reduce(results []RunResult) (Result, bool) {
	var best RunResult
	found := false

	for _, candidate := range results {
		if candidate.Err != nil || !candidate.Result.Feasible {
			continue
		}
		if !found || betterRun(candidate, best) {
			best = candidate
			found = true
		}
	}
	return best.Result, found
}

func betterRun(candidate, best RunResult) bool {
	if candidate.Result.Cost != best.Result.Cost {
		return candidate.Result.Cost < best.Result.Cost
	}
	if candidate.Run.Strategy != best.Run.Strategy {
		return candidate.Run.Strategy < best.Run.Strategy
	}
	return candidate.Run.Options.Seed < best.Run.Options.Seed
}
