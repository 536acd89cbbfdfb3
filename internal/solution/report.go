package solution

// Report is the externally consumable view of a state: the assignment, its
// quality and the provenance needed to reproduce the run.
type Report struct {
	Strategy   string
	Seed       int64
	Iterations int
	Cost       int64
	Feasible   bool
	Assignment map[int]int // job id -> slot id
}

// Report snapshots the state for external consumers.
func (state *State) Report(strategy string, seed int64, iterations int) Report {
	assignment := make(map[int]int, len(state.assignment))
	for job, slot := range state.assignment {
		assignment[job] = slot
	}
	return Report{
		Strategy:   strategy,
		Seed:       seed,
		Iterations: iterations,
		Cost:       state.Cost(),
		Feasible:   state.Validate() == nil,
		Assignment: assignment,
	}
}
