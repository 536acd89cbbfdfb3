package strategy

import (
	"context"
	"slices"
	"time"

	"github.com/oleiade/lane/v2"

	"conflictsched/internal/problem"
	"conflictsched/internal/solution"
)

func init() {
	Register("greedy", newGreedy)
}

// greedy builds an initial feasible state in one pass: jobs are ordered by
// the configured policy and each one goes into the fullest already-used slot
// that admits it, falling back to opening the next unused slot.
type greedy struct {
	cfg Config
}

func newGreedy(cfg Config) (Strategy, error) {
	return &greedy{cfg: cfg}, nil
}

func (g *greedy) Name() string {
	return "greedy"
}

func (g *greedy) Solve(_ context.Context, instance *problem.Instance) (Result, error) {
	start := time.Now()

	state, err := construct(g.cfg, instance)
	if err != nil {
		return Result{}, err
	}

	return Result{
		State:       state,
		Cost:        state.Cost(),
		Feasible:    state.Feasible(),
		Iterations:  instance.JobCount(),
		Duration:    time.Since(start),
		Termination: TerminationCompleted,
		Meta: map[string]any{
			"seed":     g.cfg.Seed,
			"ordering": string(g.cfg.OrderingPolicy),
		},
	}, nil
}

// construct runs the constructive pass shared by the greedy strategy and the
// local-search improver. It fails with *InfeasibleError when a job fits no
// slot of the universe, which no amount of searching can repair.
func construct(cfg Config, instance *problem.Instance) (*solution.State, error) {
	state := solution.NewState(instance, cfg.costFunc())

	jobs := orderJobs(cfg, instance)
	slots := instance.Slots()

	// Fullest-first queue over the slots touched so far. Untouched slots are
	// pulled in lazily so a fresh slot is only considered once no used slot
	// admits the job.
	used := lane.NewMaxPriorityQueue[int, int64]()
	nextFresh := 0

	for _, job := range jobs {
		assigned := false
		stash := make([]int, 0, 8)

		for {
			slot, _, ok := used.Pop()
			if !ok {
				break
			}
			if err := state.Assign(job.ID, slot); err == nil {
				assigned = true
				stash = append(stash, slot)
				break
			}
			stash = append(stash, slot)
		}
		for _, slot := range stash {
			used.Push(slot, state.Load(slot))
		}

		for !assigned && nextFresh < len(slots) {
			slot := slots[nextFresh].ID
			nextFresh++
			if err := state.Assign(job.ID, slot); err == nil {
				assigned = true
			}
			// Keep the slot around either way: a later, smaller job may
			// still fit a slot this one could not use.
			used.Push(slot, state.Load(slot))
		}

		if !assigned {
			return nil, &InfeasibleError{Job: job.ID}
		}
	}

	return state, nil
}

func orderJobs(cfg Config, instance *problem.Instance) []problem.Job {
	jobs := slices.Clone(instance.Jobs())

	switch cfg.OrderingPolicy {
	case OrderRandom:
		rng := cfg.rng()
		rng.Shuffle(len(jobs), func(i, j int) {
			jobs[i], jobs[j] = jobs[j], jobs[i]
		})
	case OrderConflictDegree:
		slices.SortFunc(jobs, func(a, b problem.Job) int {
			if diff := instance.ConflictDegree(b.ID) - instance.ConflictDegree(a.ID); diff != 0 {
				return diff
			}
			if a.Demand != b.Demand {
				if a.Demand > b.Demand {
					return -1
				}
				return 1
			}
			return a.ID - b.ID
		})
	default: // OrderDemandDesc
		slices.SortFunc(jobs, func(a, b problem.Job) int {
			if a.Demand != b.Demand {
				if a.Demand > b.Demand {
					return -1
				}
				return 1
			}
			return a.ID - b.ID
		})
	}

	return jobs
}
