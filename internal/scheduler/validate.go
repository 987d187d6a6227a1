package scheduler

import (
	"fmt"
	"math"

	"github.com/Barritosaurus/cpusched/pkg/types"
)

func validate(processes []types.Process) error {
	if len(processes) == 0 {
		return &types.ValidationError{Field: "processes", Reason: "must contain at least one process"}
	}

	seen := make(map[int64]int, len(processes))
	for i, p := range processes {
		if p.ProcessID <= 0 {
			return &types.ValidationError{Field: field(i, "id"), Reason: "must be positive"}
		}
		if j, ok := seen[p.ProcessID]; ok {
			return &types.ValidationError{
				Field:  field(i, "id"),
				Reason: fmt.Sprintf("duplicates processes[%d] (P%d)", j, p.ProcessID),
			}
		}
		seen[p.ProcessID] = i

		if p.ArrivalTime < 0 {
			return &types.ValidationError{Field: field(i, "arrival_time"), Reason: "must not be negative"}
		}
		if p.BurstDuration < 1 {
			return &types.ValidationError{Field: field(i, "burst_time"), Reason: "must be at least 1"}
		}
	}
	return validateHorizon(processes)
}

// validateHorizon rejects sets whose schedule could run past math.MaxInt64.
// No policy leaves the processor idle once every process has arrived, so
// every clock value stays within the latest arrival plus the total burst.
func validateHorizon(processes []types.Process) error {
	var latest, total int64
	for i, p := range processes {
		latest = max(latest, p.ArrivalTime)
		if p.BurstDuration > math.MaxInt64-latest-total {
			return &types.ValidationError{Field: field(i, "burst_time"), Reason: "pushes the schedule past the largest representable time"}
		}
		total += p.BurstDuration
	}
	return nil
}

func validateQuantum(quantum int64) error {
	if quantum <= 0 {
		return &types.ValidationError{Field: "quantum", Reason: "must be positive"}
	}
	return nil
}

func requirePriority(processes []types.Process) error {
	for i, p := range processes {
		if p.Priority == nil {
			return &types.MissingFieldError{Field: field(i, "priority"), Algorithm: types.PriorityNonPreemptive}
		}
	}
	return nil
}

func field(i int, name string) string {
	return fmt.Sprintf("processes[%d].%s", i, name)
}
