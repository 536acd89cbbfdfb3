package mip

import (
	"fmt"
	"os/exec"
	"time"
)

type Status int

const (
	// StatusOptimal marks a proven-optimal solution.
	StatusOptimal Status = iota
	// StatusFeasible marks an incumbent without an optimality proof.
	StatusFeasible
	// StatusInfeasible marks a program with no solution at all.
	StatusInfeasible
	// StatusTimedOut marks a run stopped by its time limit before finding
	// any incumbent.
	StatusTimedOut
)

func (status Status) String() string {
	switch status {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	default:
		return "timedout"
	}
}

// Outcome is the solver verdict. Assignment is populated for Optimal and
// Feasible; Bound carries the objective bound when one is known.
type Outcome struct {
	Status     Status
	Assignment map[int]int
	Bound      float64
}

// Solver submits a formulation to an external MIP solver. Implementations
// must honor the time limit and report StatusTimedOut instead of blocking.
type Solver interface {
	Solve(form *Formulation, timeLimit time.Duration) (Outcome, error)
}

// Available lists the solver backends whose binaries are present on PATH.
func Available() []string {
	available := make([]string, 0, 2)
	for _, name := range []string{"cbc", "glpk"} {
		if _, err := exec.LookPath(binaryFor(name)); err == nil {
			available = append(available, name)
		}
	}
	return available
}

func binaryFor(name string) string {
	if name == "glpk" {
		return glpsolPath
	}
	return cbcPath
}

// NewSolver builds the named backend ("cbc" or "glpk").
func NewSolver(name string) (Solver, error) {
	switch name {
	case "cbc":
		return &cbcSolver{}, nil
	case "glpk":
		return &glpkSolver{}, nil
	default:
		return nil, fmt.Errorf("unknown mip solver %q", name)
	}
}
