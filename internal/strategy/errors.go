package strategy

import "fmt"

// InfeasibleError reports that a job cannot be placed into any slot under the
// instance constraints, even with every openable slot available. It is a
// property of the input, not a transient fault.
type InfeasibleError struct {
	Job int
}

func (err *InfeasibleError) Error() string {
	if err.Job < 0 {
		return "instance is infeasible"
	}
	return fmt.Sprintf("job %v cannot be placed into any slot", err.Job)
}

// UnknownStrategyError reports a request for a strategy name that was never
// registered.
type UnknownStrategyError struct {
	Name string
}

func (err *UnknownStrategyError) Error() string {
	return fmt.Sprintf("unknown strategy %q", err.Name)
}

// FeatureUnavailableError reports a request for a capability this process
// cannot provide, such as the exact strategy without a solver binary.
type FeatureUnavailableError struct {
	Feature string
	Detail  string
}

func (err *FeatureUnavailableError) Error() string {
	if err.Detail == "" {
		return fmt.Sprintf("feature %q is unavailable", err.Feature)
	}
	return fmt.Sprintf("feature %q is unavailable: %v", err.Feature, err.Detail)
}
