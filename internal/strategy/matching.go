package strategy

import (
	"slices"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"

	"conflictsched/internal/solution"
)

// proposeMerge tries to empty the least-loaded used slot by redistributing
// its jobs over the remaining used slots, one job per receiving slot. The
// redistribution is a largest matching between evicted jobs and admitting
// slots; the move is proposed only when the matching covers every evicted
// job, so a successful merge always drops the slot count by one.
func (search *localSearch) proposeMerge(state *solution.State, slots []int) ([]move, bool) {
	if len(slots) < 2 {
		return nil, false
	}

	source := slices.MinFunc(slots, func(a, b int) int {
		if state.Load(a) != state.Load(b) {
			if state.Load(a) < state.Load(b) {
				return -1
			}
			return 1
		}
		return a - b
	})

	evicted := state.JobsIn(source).ToSlice()
	slices.Sort(evicted)
	targets := lo.Filter(slots, func(slot int, _ int) bool { return slot != source })
	if len(evicted) > len(targets) {
		return nil, false
	}

	admits := func(jobAny any, slotAny any) (bool, error) {
		job := jobAny.(int)
		slot := slotAny.(int)

		instance := state.Instance()
		if state.Load(slot)+instance.Demand(job) > instance.Capacity(slot) {
			return false, nil
		}
		conflicts := instance.Conflicts(job)
		for other := range state.JobsIn(slot).Iter() {
			if conflicts.Contains(other) {
				return false, nil
			}
		}
		return true, nil
	}

	jobsAny := lo.Map(evicted, func(job int, _ int) any { return job })
	targetsAny := lo.Map(targets, func(slot int, _ int) any { return slot })

	graph, err := bipartitegraph.NewBipartiteGraph(jobsAny, targetsAny, admits)
	if err != nil {
		return nil, false
	}

	matching := graph.LargestMatching()
	if len(matching) < len(evicted) {
		return nil, false
	}

	moves := make([]move, 0, len(evicted))
	for _, edge := range matching {
		jobIndex, targetIndex := edge.Node1, edge.Node2-len(evicted)
		moves = append(moves, move{
			job:  evicted[jobIndex],
			from: source,
			to:   targets[targetIndex],
		})
	}
	slices.SortFunc(moves, func(a, b move) int { return a.job - b.job })

	return moves, true
}
