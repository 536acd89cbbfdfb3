// Package problem holds the immutable instance model: jobs with resource
// demands, capacitated slots and the pairwise conflict relation between jobs.
// An Instance is validated once at construction and never mutated afterwards,
// so any number of concurrent solver runs may share it.
package problem

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// Job is a unit of work that must be placed into exactly one slot.
type Job struct {
	ID     int
	Demand int64
}

// Slot is a resource container with a finite capacity.
type Slot struct {
	ID       int
	Capacity int64
}

// Conflict forbids two jobs from sharing a slot. The relation is symmetric.
type Conflict struct {
	First  int
	Second int
}

// OpenSlots permits creating additional slots on demand (bin-packing mode).
// Every opened slot uses Capacity; Max bounds how many may be opened, where
// Max == 0 means unbounded (effectively one slot per job).
type OpenSlots struct {
	Capacity int64
	Max      int
}

type Instance struct {
	jobs  []Job  // ascending by ID
	slots []Slot // fixed slots first, then openable slots, ascending by ID

	fixedSlots int
	open       *OpenSlots

	jobIndex  map[int]int
	slotIndex map[int]int
	adjacency map[int]mapset.Set[int]
	emptySet  mapset.Set[int]
}

// NewInstance validates the input and builds the conflict-graph model.
// Openable slots receive consecutive ids above the highest fixed slot id, so
// the slot universe is fully known up front and the instance stays immutable.
func NewInstance(jobs []Job, slots []Slot, conflicts []Conflict, open *OpenSlots) (*Instance, error) {
	instance := &Instance{
		jobs:      slices.Clone(jobs),
		slots:     slices.Clone(slots),
		open:      open,
		jobIndex:  make(map[int]int, len(jobs)),
		slotIndex: make(map[int]int, len(slots)),
		adjacency: make(map[int]mapset.Set[int]),
		emptySet:  mapset.NewThreadUnsafeSet[int](),
	}

	slices.SortFunc(instance.jobs, func(a, b Job) int { return a.ID - b.ID })
	slices.SortFunc(instance.slots, func(a, b Slot) int { return a.ID - b.ID })

	for i, job := range instance.jobs {
		if job.Demand < 0 {
			return nil, invalidJob("negative demand", job.ID)
		}
		if _, ok := instance.jobIndex[job.ID]; ok {
			return nil, invalidJob("duplicate job id", job.ID)
		}
		instance.jobIndex[job.ID] = i
	}

	maxSlotID := -1
	for i, slot := range instance.slots {
		if slot.Capacity < 0 {
			return nil, invalidSlot("negative capacity", slot.ID)
		}
		if _, ok := instance.slotIndex[slot.ID]; ok {
			return nil, invalidSlot("duplicate slot id", slot.ID)
		}
		instance.slotIndex[slot.ID] = i
		if slot.ID > maxSlotID {
			maxSlotID = slot.ID
		}
	}
	instance.fixedSlots = len(instance.slots)

	if open != nil {
		if open.Capacity < 0 {
			return nil, &InvalidInstanceError{Reason: "negative open-slot capacity", Job: -1, Slot: -1}
		}
		if open.Max < 0 {
			return nil, &InvalidInstanceError{Reason: "negative open-slot bound", Job: -1, Slot: -1}
		}
		count := open.Max
		if count == 0 || count > len(instance.jobs) {
			count = len(instance.jobs)
		}
		for i := 0; i < count; i++ {
			id := maxSlotID + 1 + i
			instance.slotIndex[id] = len(instance.slots)
			instance.slots = append(instance.slots, Slot{ID: id, Capacity: open.Capacity})
		}
	}

	for _, conflict := range conflicts {
		if conflict.First == conflict.Second {
			return nil, invalidJob("self conflict", conflict.First)
		}
		for _, job := range []int{conflict.First, conflict.Second} {
			if _, ok := instance.jobIndex[job]; !ok {
				return nil, invalidJob("conflict references unknown job", job)
			}
		}
		instance.addEdge(conflict.First, conflict.Second)
		instance.addEdge(conflict.Second, conflict.First)
	}

	return instance, nil
}

func (instance *Instance) addEdge(from, to int) {
	neighbors, ok := instance.adjacency[from]
	if !ok {
		neighbors = mapset.NewThreadUnsafeSet[int]()
		instance.adjacency[from] = neighbors
	}
	neighbors.Add(to)
}

// Jobs returns every job in ascending id order.
func (instance *Instance) Jobs() []Job {
	return instance.jobs
}

// Slots returns the full slot universe (fixed slots followed by openable
// ones) in ascending id order.
func (instance *Instance) Slots() []Slot {
	return instance.slots
}

func (instance *Instance) JobCount() int {
	return len(instance.jobs)
}

// SlotCount counts the full slot universe, openable slots included.
func (instance *Instance) SlotCount() int {
	return len(instance.slots)
}

// FixedSlotCount counts only the slots declared by the instance itself.
func (instance *Instance) FixedSlotCount() int {
	return instance.fixedSlots
}

// OpenPolicy reports whether on-demand slot creation is permitted.
func (instance *Instance) OpenPolicy() bool {
	return instance.open != nil
}

func (instance *Instance) HasJob(job int) bool {
	_, ok := instance.jobIndex[job]
	return ok
}

func (instance *Instance) HasSlot(slot int) bool {
	_, ok := instance.slotIndex[slot]
	return ok
}

// Demand returns the resource demand of a job, or 0 for an unknown id.
func (instance *Instance) Demand(job int) int64 {
	index, ok := instance.jobIndex[job]
	if !ok {
		return 0
	}
	return instance.jobs[index].Demand
}

// Capacity returns the capacity of a slot, or 0 for an unknown id.
func (instance *Instance) Capacity(slot int) int64 {
	index, ok := instance.slotIndex[slot]
	if !ok {
		return 0
	}
	return instance.slots[index].Capacity
}

// Conflicts returns the set of job ids conflicting with the given job. The
// returned set is shared and must not be mutated.
func (instance *Instance) Conflicts(job int) mapset.Set[int] {
	if neighbors, ok := instance.adjacency[job]; ok {
		return neighbors
	}
	return instance.emptySet
}

// Conflicted reports whether two jobs may never share a slot.
func (instance *Instance) Conflicted(first, second int) bool {
	return instance.Conflicts(first).Contains(second)
}

// ConflictDegree returns the number of jobs conflicting with the given job.
func (instance *Instance) ConflictDegree(job int) int {
	return instance.Conflicts(job).Cardinality()
}
