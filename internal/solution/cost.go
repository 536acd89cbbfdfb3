package solution

// CostFunc evaluates a state. Results must be total-ordered: lower is
// better, equal values are resolved by the caller's tie-break rules.
type CostFunc func(*State) int64

// SlotCountCost counts distinct slots holding at least one job, the
// generalized bin count. This is the default objective.
func SlotCountCost(state *State) int64 {
	var used int64
	for _, members := range state.members {
		if members.Cardinality() > 0 {
			used++
		}
	}
	return used
}

// MaxLoadCost scores the heaviest slot, a makespan-like objective for
// instances where balancing matters more than the slot count. Slot count
// breaks ties so emptying a slot is never penalized.
func MaxLoadCost(state *State) int64 {
	var max int64
	for _, load := range state.loads {
		if load > max {
			max = load
		}
	}
	return max*int64(state.instance.SlotCount()+1) + SlotCountCost(state)
}
