package solution

import "fmt"

type ViolationKind int

const (
	// KindCapacity marks an assignment that would exceed the slot capacity.
	KindCapacity ViolationKind = iota
	// KindConflict marks an assignment next to a conflicting job.
	KindConflict
	// KindAssigned marks an assignment of an already-assigned job.
	KindAssigned
)

// ViolationError reports a rejected strict-mode assignment. Other carries the
// conflicting job id for KindConflict and -1 otherwise.
type ViolationError struct {
	Kind  ViolationKind
	Job   int
	Slot  int
	Other int
}

func (err *ViolationError) Error() string {
	switch err.Kind {
	case KindCapacity:
		return fmt.Sprintf("job %v does not fit into slot %v: capacity exceeded", err.Job, err.Slot)
	case KindConflict:
		return fmt.Sprintf("job %v conflicts with job %v in slot %v", err.Job, err.Other, err.Slot)
	default:
		return fmt.Sprintf("job %v is already assigned to slot %v", err.Job, err.Slot)
	}
}
