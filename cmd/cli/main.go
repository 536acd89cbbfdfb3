package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"conflictsched/internal/problem"
	"conflictsched/internal/strategy"
)

var (
	instanceFile string
	strategies   string
	seed         int64
	restarts     int
	iterations   int
	timeBudget   time.Duration
	ordering     string
	cost         string
	accept       float64
	solver       string
	workers      int
)

func main() {
	flag.StringVar(&instanceFile, "instance", "", "path to the instance JSON file")
	flag.StringVar(&strategies, "strategies", "greedy,localsearch", "comma-separated strategy names")
	flag.Int64Var(&seed, "seed", 0, "base seed; restart i uses seed+i")
	flag.IntVar(&restarts, "restarts", 1, "randomized restarts per strategy")
	flag.IntVar(&iterations, "iterations", 20000, "iteration budget per run")
	flag.DurationVar(&timeBudget, "time", 0, "wall-clock budget per run (0 = unbounded)")
	flag.StringVar(&ordering, "ordering", "demand", "constructive ordering policy: demand, degree or random")
	flag.StringVar(&cost, "cost", "slots", "objective: slots or maxload")
	flag.Float64Var(&accept, "accept", 0.05, "probability of accepting a non-improving move")
	flag.StringVar(&solver, "solver", "", "mip backend for the exact strategy (cbc or glpk, empty = auto)")
	flag.IntVar(&workers, "workers", 0, "concurrent runs (0 = one per core)")
	flag.Parse()

	if instanceFile == "" {
		log.Fatalf("missing -instance; registered strategies: %v", strings.Join(strategy.Names(), ", "))
	}

	instance, err := problem.InstanceFromJSON(instanceFile)
	if err != nil {
		log.Fatalf("cannot load instance: %v", err)
	}

	names := lo.Map(strings.Split(strategies, ","), func(name string, _ int) string {
		return strings.TrimSpace(name)
	})

	runs := buildRuns(names)
	if len(runs) == 0 {
		log.Fatal("no runs configured")
	}

	portfolio := strategy.Portfolio{Workers: workers}
	best, all, err := portfolio.Solve(context.Background(), instance, runs)

	for _, outcome := range all {
		if outcome.Err != nil {
			fmt.Printf("%v (seed %v): %v\n", outcome.Run.Strategy, outcome.Run.Options.Seed, outcome.Err)
			continue
		}
		fmt.Printf("%v (seed %v): cost %v, feasible %v, %v iterations, %v, %v\n",
			outcome.Run.Strategy,
			outcome.Run.Options.Seed,
			outcome.Result.Cost,
			outcome.Result.Feasible,
			outcome.Result.Iterations,
			outcome.Result.Termination,
			outcome.Result.Duration.Round(time.Millisecond),
		)
	}

	if err != nil {
		log.Fatal(err)
	}

	if err := best.State.Validate(); err != nil {
		log.Fatalf("best result failed validation: %v", err)
	}

	fmt.Printf("\nbest cost: %v\n", best.Cost)
	jobs := lo.Keys(bestAssignment(best))
	slices.Sort(jobs)
	for _, job := range jobs {
		slot, _ := best.State.SlotOf(job)
		fmt.Printf("job %v -> slot %v\n", job, slot)
	}
}

func buildRuns(names []string) []strategy.Run {
	runs := make([]strategy.Run, 0, len(names)*restarts)

	for _, name := range names {
		count := restarts
		if name == "greedy" && ordering != "random" || name == "exact" {
			count = 1 // deterministic: extra restarts would repeat the same run
		}
		for i := 0; i < count; i++ {
			cfg := strategy.DefaultConfig()
			cfg.Seed = seed + int64(i)
			cfg.IterationBudget = iterations
			cfg.TimeBudget = timeBudget
			cfg.OrderingPolicy = strategy.OrderingPolicy(ordering)
			cfg.AcceptNonImproving = accept
			cfg.Cost = cost
			cfg.Solver = solver
			runs = append(runs, strategy.Run{Strategy: name, Options: cfg})
		}
	}
	return runs
}

func bestAssignment(best strategy.Result) map[int]int {
	report := best.State.Report("", 0, 0)
	return report.Assignment
}
