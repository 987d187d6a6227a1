// Package scheduler simulates uniprocessor scheduling policies over a set of
// CPU-bound processes. Every function is pure: it copies what it mutates,
// performs no I/O and returns either a complete result or an error.
package scheduler

import (
	"fmt"

	"github.com/Barritosaurus/cpusched/pkg/types"
)

// Options carries policy parameters. Quantum is only read by round-robin.
type Options struct {
	Quantum int64
}

// Run dispatches to the algorithm named by alg.
func Run(alg types.Algorithm, processes []types.Process, opts Options) (types.Result, error) {
	switch alg {
	case types.FirstComeFirstServe:
		return FCFS(processes)
	case types.RoundRobin:
		return RoundRobin(processes, opts.Quantum)
	case types.PriorityNonPreemptive:
		return Priority(processes)
	case types.ShortestRemainingTime:
		return SRTF(processes)
	}
	return types.Result{}, fmt.Errorf("%w: %q", types.ErrUnknownAlgorithm, alg)
}

// recorder accumulates one run's completion times and timeline. It only
// ever appends.
type recorder struct {
	processes  []types.Process
	completion []int64
	timeline   types.Timeline
}

func newRecorder(processes []types.Process) *recorder {
	return &recorder{
		processes:  processes,
		completion: make([]int64, len(processes)),
		timeline:   make(types.Timeline, 0, len(processes)),
	}
}

// slice appends one run of processes[idx]. Validation guarantees every
// caller passes a non-empty interval.
func (r *recorder) slice(idx int, start, stop int64) {
	if stop <= start {
		panic(fmt.Sprintf("scheduler: empty slice [%d, %d) for P%d", start, stop, r.processes[idx].ProcessID))
	}
	r.timeline = append(r.timeline, types.TimeSlice{
		PID:   r.processes[idx].ProcessID,
		Start: start,
		Stop:  stop,
	})
}

func (r *recorder) complete(idx int, at int64) {
	r.completion[idx] = at
}

func (r *recorder) result(alg types.Algorithm) types.Result {
	return types.Result{
		Algorithm:  alg,
		Completion: r.completion,
		Timeline:   r.timeline,
	}
}

func remainingTimes(processes []types.Process) []int64 {
	remaining := make([]int64, len(processes))
	for i, p := range processes {
		remaining[i] = p.BurstDuration
	}
	return remaining
}
