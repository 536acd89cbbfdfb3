// Package mip translates an instance into a mixed-integer program and
// delegates it to an external solver binary. The rest of the engine only
// sees the narrow Solver interface, never a solver SDK.
package mip

import (
	"fmt"
	"strings"

	"conflictsched/internal/problem"
)

// Formulation is the binary assignment program for an instance:
//
//	x_j_s = 1 iff job j occupies slot s
//	y_s   = 1 iff slot s holds at least one job
//
// with one assignment row per job, one capacity row per slot (which also
// links x to y) and one mutual-exclusion row per conflicting pair per slot.
// The objective minimizes the number of open slots.
type Formulation struct {
	instance *problem.Instance
}

func Build(instance *problem.Instance) *Formulation {
	return &Formulation{instance: instance}
}

func (form *Formulation) Instance() *problem.Instance {
	return form.instance
}

func xVar(job, slot int) string {
	return fmt.Sprintf("x_%d_%d", job, slot)
}

func yVar(slot int) string {
	return fmt.Sprintf("y_%d", slot)
}

// ToLP renders the formulation in CPLEX LP format, the lingua franca of cbc
// and glpsol.
func (form *Formulation) ToLP() string {
	instance := form.instance
	jobs := instance.Jobs()
	slots := instance.Slots()

	var builder strings.Builder

	builder.WriteString("Minimize\n obj:")
	for i, slot := range slots {
		if i > 0 {
			builder.WriteString(" +")
		}
		fmt.Fprintf(&builder, " %v", yVar(slot.ID))
	}
	builder.WriteString("\nSubject To\n")

	for _, job := range jobs {
		fmt.Fprintf(&builder, " assign_%d:", job.ID)
		for i, slot := range slots {
			if i > 0 {
				builder.WriteString(" +")
			}
			fmt.Fprintf(&builder, " %v", xVar(job.ID, slot.ID))
		}
		builder.WriteString(" = 1\n")
	}

	for _, slot := range slots {
		fmt.Fprintf(&builder, " cap_%d:", slot.ID)
		for i, job := range jobs {
			if i > 0 {
				builder.WriteString(" +")
			}
			fmt.Fprintf(&builder, " %d %v", job.Demand, xVar(job.ID, slot.ID))
		}
		fmt.Fprintf(&builder, " - %d %v <= 0\n", slot.Capacity, yVar(slot.ID))
	}

	for _, job := range jobs {
		for other := range instance.Conflicts(job.ID).Iter() {
			if other <= job.ID {
				continue
			}
			for _, slot := range slots {
				fmt.Fprintf(&builder, " conf_%d_%d_%d: %v + %v <= 1\n",
					job.ID, other, slot.ID, xVar(job.ID, slot.ID), xVar(other, slot.ID))
			}
		}
	}

	builder.WriteString("Binary\n")
	for _, job := range jobs {
		for _, slot := range slots {
			fmt.Fprintf(&builder, " %v\n", xVar(job.ID, slot.ID))
		}
	}
	for _, slot := range slots {
		fmt.Fprintf(&builder, " %v\n", yVar(slot.ID))
	}
	builder.WriteString("End\n")

	return builder.String()
}

// DecodeAssignment turns solver variable values back into a job -> slot map.
// Values are rounded, so 0.9999 from a tolerance-happy solver still counts
// as assigned.
func (form *Formulation) DecodeAssignment(values map[string]float64) map[int]int {
	assignment := make(map[int]int, form.instance.JobCount())
	for _, job := range form.instance.Jobs() {
		for _, slot := range form.instance.Slots() {
			if values[xVar(job.ID, slot.ID)] > 0.5 {
				assignment[job.ID] = slot.ID
				break
			}
		}
	}
	return assignment
}
