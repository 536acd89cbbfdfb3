package problem

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
)

type JobInput struct {
	ID     int   `mapstructure:"id"`
	Demand int64 `mapstructure:"demand"`
}

type SlotInput struct {
	ID       int   `mapstructure:"id"`
	Capacity int64 `mapstructure:"capacity"`
}

type OpenSlotsInput struct {
	Capacity int64 `mapstructure:"capacity"`
	Max      int   `mapstructure:"max"`
}

// InstanceInput is the on-disk representation of an instance. Conflicts are
// listed as job-id pairs.
type InstanceInput struct {
	Jobs      []JobInput      `mapstructure:"jobs"`
	Slots     []SlotInput     `mapstructure:"slots"`
	Conflicts [][]int         `mapstructure:"conflicts"`
	OpenSlots *OpenSlotsInput `mapstructure:"openSlots"`
}

// ToInstance validates the input record and builds the instance model.
func (input InstanceInput) ToInstance() (*Instance, error) {
	for _, pair := range input.Conflicts {
		if len(pair) != 2 {
			return nil, &InvalidInstanceError{Reason: fmt.Sprintf("conflict must be a job-id pair, got %v entries", len(pair)), Job: -1, Slot: -1}
		}
	}

	jobs := lo.Map(input.Jobs, func(job JobInput, _ int) Job {
		return Job{ID: job.ID, Demand: job.Demand}
	})
	slots := lo.Map(input.Slots, func(slot SlotInput, _ int) Slot {
		return Slot{ID: slot.ID, Capacity: slot.Capacity}
	})
	conflicts := lo.Map(input.Conflicts, func(pair []int, _ int) Conflict {
		return Conflict{First: pair[0], Second: pair[1]}
	})

	var open *OpenSlots
	if input.OpenSlots != nil {
		open = &OpenSlots{Capacity: input.OpenSlots.Capacity, Max: input.OpenSlots.Max}
	}

	return NewInstance(jobs, slots, conflicts, open)
}

// InstanceFromJSON reads an instance file and builds the validated model.
func InstanceFromJSON(file string) (*Instance, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return nil, err
	}

	var input InstanceInput
	if err := mapstructure.Decode(inputJson, &input); err != nil {
		return nil, err
	}

	return input.ToInstance()
}
