package strategy

import (
	"context"
	"math/rand"
	"slices"
	"time"

	"conflictsched/internal/problem"
	"conflictsched/internal/solution"
)

func init() {
	Register("localsearch", newLocalSearch)
}

// localSearch improves a constructive state through randomized neighborhood
// moves (reassign, swap, slot-merge). The current state may transiently pass
// through worse or infeasible assignments; the best-known snapshot only ever
// holds a feasible state.
type localSearch struct {
	cfg Config
}

func newLocalSearch(cfg Config) (Strategy, error) {
	return &localSearch{cfg: cfg}, nil
}

func (search *localSearch) Name() string {
	return "localsearch"
}

// move records a single job relocation so a rejected neighbor can be undone
// exactly.
type move struct {
	job  int
	from int
	to   int
}

func (search *localSearch) Solve(ctx context.Context, instance *problem.Instance) (Result, error) {
	start := time.Now()
	rng := search.cfg.rng()

	current, err := construct(search.cfg, instance)
	if err != nil {
		return Result{}, err
	}
	current.Feasible()
	currentCost := current.Cost()

	best := current.Clone()
	bestCost := currentCost
	bestTouched := 0
	bestLastJob := -1

	var deadline time.Time
	if search.cfg.TimeBudget > 0 {
		deadline = start.Add(search.cfg.TimeBudget)
	}

	termination := TerminationConverged
	sinceImprovement := 0
	iterations := 0

	for iterations = 0; iterations < search.cfg.IterationBudget; iterations++ {
		if ctx.Err() != nil || (!deadline.IsZero() && time.Now().After(deadline)) {
			termination = TerminationBudget
			break
		}
		if sinceImprovement >= search.cfg.ConvergeAfter {
			termination = TerminationConverged
			break
		}

		moves, ok := search.propose(current, rng)
		if !ok {
			sinceImprovement++
			continue
		}

		applied := make([]move, 0, len(moves))
		for _, m := range moves {
			current.Place(m.job, m.to)
			applied = append(applied, m)
		}

		feasible := current.Feasible()
		cost := current.Cost()

		accept := feasible && (cost <= currentCost ||
			rng.Float64() < search.cfg.AcceptNonImproving)

		if !accept {
			for i := len(applied) - 1; i >= 0; i-- {
				current.Place(applied[i].job, applied[i].from)
			}
			current.Feasible()
			sinceImprovement++
			continue
		}

		if cost < currentCost {
			sinceImprovement = 0
		} else {
			sinceImprovement++
		}
		currentCost = cost

		touched := touchedSlots(applied)
		lastJob := applied[len(applied)-1].job

		if feasible && betterSnapshot(cost, touched, lastJob, bestCost, bestTouched, bestLastJob) {
			best = current.Clone()
			bestCost = cost
			bestTouched = touched
			bestLastJob = lastJob
		}
	}
	if iterations >= search.cfg.IterationBudget {
		termination = TerminationBudget
	}

	return Result{
		State:       best,
		Cost:        bestCost,
		Feasible:    best.Validate() == nil,
		Iterations:  iterations,
		Duration:    time.Since(start),
		Termination: termination,
		Meta: map[string]any{
			"seed":               search.cfg.Seed,
			"ordering":           string(search.cfg.OrderingPolicy),
			"acceptNonImproving": search.cfg.AcceptNonImproving,
		},
	}, nil
}

// betterSnapshot orders candidate snapshots: strictly lower cost wins, then
// fewer touched slots, then the lower id of the last moved job. The rule is
// deterministic so equal seeds reproduce equal best-known states.
func betterSnapshot(cost int64, touched, lastJob int, bestCost int64, bestTouched, bestLastJob int) bool {
	if cost != bestCost {
		return cost < bestCost
	}
	if touched != bestTouched {
		return touched < bestTouched
	}
	return bestLastJob >= 0 && lastJob < bestLastJob
}

func touchedSlots(moves []move) int {
	slots := make(map[int]struct{}, len(moves)*2)
	for _, m := range moves {
		slots[m.from] = struct{}{}
		slots[m.to] = struct{}{}
	}
	return len(slots)
}

// propose draws one neighborhood move. Source slots are drawn weighted by
// load so the search keeps pressure on full or conflicted slots.
func (search *localSearch) propose(state *solution.State, rng *rand.Rand) ([]move, bool) {
	slots := state.UsedSlots()
	if len(slots) == 0 {
		return nil, false
	}
	slices.Sort(slots)

	switch draw := rng.Intn(10); {
	case draw < 5:
		return search.proposeReassign(state, rng, slots)
	case draw < 8:
		return search.proposeSwap(state, rng, slots)
	default:
		return search.proposeMerge(state, slots)
	}
}

func (search *localSearch) proposeReassign(state *solution.State, rng *rand.Rand, slots []int) ([]move, bool) {
	universe := state.Instance().Slots()
	if len(universe) < 2 {
		return nil, false
	}

	from, ok := pickWeighted(rng, slots, state.Load)
	if !ok {
		return nil, false
	}
	job, ok := pickMember(state, rng, from)
	if !ok {
		return nil, false
	}

	to := universe[rng.Intn(len(universe))].ID
	if to == from {
		return nil, false
	}
	return []move{{job: job, from: from, to: to}}, true
}

func (search *localSearch) proposeSwap(state *solution.State, rng *rand.Rand, slots []int) ([]move, bool) {
	if len(slots) < 2 {
		return nil, false
	}

	first, ok := pickWeighted(rng, slots, state.Load)
	if !ok {
		return nil, false
	}
	second := slots[rng.Intn(len(slots))]
	if second == first {
		return nil, false
	}

	a, okA := pickMember(state, rng, first)
	b, okB := pickMember(state, rng, second)
	if !okA || !okB {
		return nil, false
	}

	return []move{
		{job: a, from: first, to: second},
		{job: b, from: second, to: first},
	}, true
}

func pickMember(state *solution.State, rng *rand.Rand, slot int) (int, bool) {
	members := state.JobsIn(slot).ToSlice()
	if len(members) == 0 {
		return 0, false
	}
	slices.Sort(members)
	return members[rng.Intn(len(members))], true
}
