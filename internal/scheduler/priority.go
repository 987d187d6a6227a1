package scheduler

import (
	"github.com/Barritosaurus/cpusched/pkg/types"
)

// Priority runs the highest-priority arrived process to completion, then
// picks again. A larger Priority value is served first; equal priorities go
// to the process listed first.
func Priority(processes []types.Process) (types.Result, error) {
	if err := validate(processes); err != nil {
		return types.Result{}, err
	}
	if err := requirePriority(processes); err != nil {
		return types.Result{}, err
	}

	var (
		n        = len(processes)
		done     = make([]bool, n)
		rec      = newRecorder(processes)
		clock    int64
		finished int
	)

	for finished < n {
		idx, next := -1, int64(-1)
		for i, p := range processes {
			if done[i] {
				continue
			}
			if p.ArrivalTime > clock {
				if next < 0 || p.ArrivalTime < next {
					next = p.ArrivalTime
				}
				continue
			}
			if idx < 0 || *p.Priority > *processes[idx].Priority {
				idx = i
			}
		}

		if idx < 0 {
			clock = next
			continue
		}

		start := max(clock, processes[idx].ArrivalTime)
		clock = start + processes[idx].BurstDuration
		done[idx] = true
		finished++
		rec.complete(idx, clock)
		rec.slice(idx, start, clock)
	}

	return rec.result(types.PriorityNonPreemptive), nil
}
