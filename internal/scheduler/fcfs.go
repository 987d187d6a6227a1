package scheduler

import (
	"sort"

	"github.com/Barritosaurus/cpusched/pkg/types"
)

// FCFS runs processes to completion in arrival order. Processes arriving at
// the same tick keep their input order.
func FCFS(processes []types.Process) (types.Result, error) {
	if err := validate(processes); err != nil {
		return types.Result{}, err
	}

	order := make([]int, len(processes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return processes[order[a]].ArrivalTime < processes[order[b]].ArrivalTime
	})

	var (
		clock int64
		rec   = newRecorder(processes)
	)
	for _, i := range order {
		start := max(clock, processes[i].ArrivalTime)
		clock = start + processes[i].BurstDuration
		rec.complete(i, clock)
		rec.slice(i, start, clock)
	}

	return rec.result(types.FirstComeFirstServe), nil
}
