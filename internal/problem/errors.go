package problem

import "fmt"

// InvalidInstanceError reports malformed or inconsistent instance input.
// Job and Slot identify the offending ids; -1 marks a side not involved.
type InvalidInstanceError struct {
	Reason string
	Job    int
	Slot   int
}

func (err *InvalidInstanceError) Error() string {
	switch {
	case err.Job >= 0 && err.Slot >= 0:
		return fmt.Sprintf("invalid instance: %v (job %v, slot %v)", err.Reason, err.Job, err.Slot)
	case err.Job >= 0:
		return fmt.Sprintf("invalid instance: %v (job %v)", err.Reason, err.Job)
	case err.Slot >= 0:
		return fmt.Sprintf("invalid instance: %v (slot %v)", err.Reason, err.Slot)
	default:
		return fmt.Sprintf("invalid instance: %v", err.Reason)
	}
}

func invalidJob(reason string, job int) *InvalidInstanceError {
	return &InvalidInstanceError{Reason: reason, Job: job, Slot: -1}
}

func invalidSlot(reason string, slot int) *InvalidInstanceError {
	return &InvalidInstanceError{Reason: reason, Job: -1, Slot: slot}
}
