package solution

import "fmt"

// Feasible reports whether the state satisfies every invariant: all jobs
// assigned, every slot within capacity and free of internal conflicts. Only
// slots mutated since the previous call are re-checked; earlier verdicts for
// untouched slots are reused.
func (state *State) Feasible() bool {
	for slot := range state.dirty.Iter() {
		if state.slotViolated(slot) {
			state.bad.Add(slot)
		} else {
			state.bad.Remove(slot)
		}
	}
	state.dirty.Clear()

	return state.bad.Cardinality() == 0 &&
		len(state.assignment) == state.instance.JobCount()
}

func (state *State) slotViolated(slot int) bool {
	if state.loads[slot] > state.instance.Capacity(slot) {
		return true
	}

	members, ok := state.members[slot]
	if !ok {
		return false
	}
	for job := range members.Iter() {
		conflicts := state.instance.Conflicts(job)
		for other := range members.Iter() {
			if other != job && conflicts.Contains(other) {
				return true
			}
		}
	}
	return false
}

// Validate rescans the whole state, cross-checking the load aggregates
// against the raw assignment. It is slower than Feasible and meant for final
// reports and tests.
func (state *State) Validate() error {
	recomputed := make(map[int]int64)
	for job, slot := range state.assignment {
		recomputed[slot] += state.instance.Demand(job)
	}

	for slot, load := range state.loads {
		if recomputed[slot] != load {
			return fmt.Errorf("slot %v: recorded load %v, actual %v", slot, load, recomputed[slot])
		}
	}
	for slot, load := range recomputed {
		if state.loads[slot] != load {
			return fmt.Errorf("slot %v: recorded load %v, actual %v", slot, state.loads[slot], load)
		}
		if load > state.instance.Capacity(slot) {
			return &ViolationError{Kind: KindCapacity, Job: -1, Slot: slot, Other: -1}
		}
	}

	for job, slot := range state.assignment {
		members, ok := state.members[slot]
		if !ok || !members.Contains(job) {
			return fmt.Errorf("job %v assigned to slot %v but missing from its membership set", job, slot)
		}
		conflicts := state.instance.Conflicts(job)
		for other := range members.Iter() {
			if other != job && conflicts.Contains(other) {
				return &ViolationError{Kind: KindConflict, Job: job, Slot: slot, Other: other}
			}
		}
	}

	if len(state.assignment) != state.instance.JobCount() {
		return fmt.Errorf("%v of %v jobs assigned", len(state.assignment), state.instance.JobCount())
	}
	return nil
}
