// Package solution holds the mutable assignment state that every solving
// strategy reads and mutates. Aggregates (per-slot load and membership) are
// maintained incrementally so feasibility checks only touch dirty slots.
package solution

import (
	mapset "github.com/deckarep/golang-set/v2"

	"conflictsched/internal/problem"
)

// State maps jobs to slots on top of a shared read-only instance. A State is
// owned by exactly one strategy run at a time.
type State struct {
	instance *problem.Instance
	costFn   CostFunc

	assignment map[int]int             // job id -> slot id
	loads      map[int]int64           // slot id -> sum of assigned demands
	members    map[int]mapset.Set[int] // slot id -> assigned job ids

	dirty mapset.Set[int] // slots mutated since the last feasibility check
	bad   mapset.Set[int] // slots known to violate capacity or conflicts
}

func NewState(instance *problem.Instance, costFn CostFunc) *State {
	if costFn == nil {
		costFn = SlotCountCost
	}
	return &State{
		instance:   instance,
		costFn:     costFn,
		assignment: make(map[int]int, instance.JobCount()),
		loads:      make(map[int]int64),
		members:    make(map[int]mapset.Set[int]),
		dirty:      mapset.NewThreadUnsafeSet[int](),
		bad:        mapset.NewThreadUnsafeSet[int](),
	}
}

func (state *State) Instance() *problem.Instance {
	return state.instance
}

// SlotOf returns the slot a job is assigned to.
func (state *State) SlotOf(job int) (int, bool) {
	slot, ok := state.assignment[job]
	return slot, ok
}

// Load returns the current load aggregate of a slot.
func (state *State) Load(slot int) int64 {
	return state.loads[slot]
}

// JobsIn returns the jobs currently assigned to a slot. The returned set is
// the live aggregate and must not be mutated by callers.
func (state *State) JobsIn(slot int) mapset.Set[int] {
	if jobs, ok := state.members[slot]; ok {
		return jobs
	}
	return mapset.NewThreadUnsafeSet[int]()
}

// AssignedCount returns the number of jobs currently assigned.
func (state *State) AssignedCount() int {
	return len(state.assignment)
}

// UsedSlots returns the ids of slots with at least one job, in no particular
// order.
func (state *State) UsedSlots() []int {
	slots := make([]int, 0, len(state.members))
	for slot, jobs := range state.members {
		if jobs.Cardinality() > 0 {
			slots = append(slots, slot)
		}
	}
	return slots
}

// Assign places a job into a slot in strict mode: the operation fails with a
// *ViolationError and leaves the state untouched if the job is already
// assigned, the slot's capacity would be exceeded, or a conflicting job
// already occupies the slot.
func (state *State) Assign(job, slot int) error {
	if current, ok := state.assignment[job]; ok {
		return &ViolationError{Kind: KindAssigned, Job: job, Slot: current, Other: -1}
	}
	if state.loads[slot]+state.instance.Demand(job) > state.instance.Capacity(slot) {
		return &ViolationError{Kind: KindCapacity, Job: job, Slot: slot, Other: -1}
	}
	if members, ok := state.members[slot]; ok {
		conflicts := state.instance.Conflicts(job)
		for other := range members.Iter() {
			if conflicts.Contains(other) {
				return &ViolationError{Kind: KindConflict, Job: job, Slot: slot, Other: other}
			}
		}
	}

	state.Place(job, slot)
	return nil
}

// Place puts a job into a slot unconditionally (permissive mode). Local
// search uses it to pass through infeasible intermediate states; the affected
// slots are marked dirty for the next feasibility check.
func (state *State) Place(job, slot int) {
	state.Unassign(job)

	state.assignment[job] = slot
	state.loads[slot] += state.instance.Demand(job)

	members, ok := state.members[slot]
	if !ok {
		members = mapset.NewThreadUnsafeSet[int]()
		state.members[slot] = members
	}
	members.Add(job)
	state.touch(slot)
}

// Unassign removes a job from its slot and restores the slot aggregates.
// Unassigning an unassigned job is a no-op.
func (state *State) Unassign(job int) {
	slot, ok := state.assignment[job]
	if !ok {
		return
	}

	delete(state.assignment, job)
	state.loads[slot] -= state.instance.Demand(job)
	if state.loads[slot] == 0 {
		delete(state.loads, slot)
	}

	members := state.members[slot]
	members.Remove(job)
	if members.Cardinality() == 0 {
		delete(state.members, slot)
	}
	state.touch(slot)
}

func (state *State) touch(slot int) {
	state.dirty.Add(slot)
}

// Cost evaluates the configured objective. Lower is better.
func (state *State) Cost() int64 {
	return state.costFn(state)
}

// Clone deep-copies the assignment and all aggregates. The instance and cost
// function are shared.
func (state *State) Clone() *State {
	clone := &State{
		instance:   state.instance,
		costFn:     state.costFn,
		assignment: make(map[int]int, len(state.assignment)),
		loads:      make(map[int]int64, len(state.loads)),
		members:    make(map[int]mapset.Set[int], len(state.members)),
		dirty:      state.dirty.Clone(),
		bad:        state.bad.Clone(),
	}
	for job, slot := range state.assignment {
		clone.assignment[job] = slot
	}
	for slot, load := range state.loads {
		clone.loads[slot] = load
	}
	for slot, members := range state.members {
		clone.members[slot] = members.Clone()
	}
	return clone
}
