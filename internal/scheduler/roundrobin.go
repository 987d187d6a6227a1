package scheduler

import (
	"github.com/Barritosaurus/cpusched/pkg/types"
)

type rrState struct {
	processes []types.Process
	remaining []int64
	visited   []bool
	queue     []int
	clock     int64
}

// admit enqueues, in index order, every process that has arrived by the
// current clock and never entered the queue before.
func (s *rrState) admit() {
	for i, p := range s.processes {
		if !s.visited[i] && p.ArrivalTime <= s.clock {
			s.queue = append(s.queue, i)
			s.visited[i] = true
		}
	}
}

// idle moves the clock to the next arrival. Stepping one tick at a time
// would admit the same processes at the same tick.
func (s *rrState) idle() {
	next := int64(-1)
	for i, p := range s.processes {
		if !s.visited[i] && (next < 0 || p.ArrivalTime < next) {
			next = p.ArrivalTime
		}
	}
	if next > s.clock {
		s.clock = next
		return
	}
	s.clock++
}

// RoundRobin grants each ready process at most quantum ticks per turn.
// Processes arriving while a turn runs are queued ahead of the process
// whose turn just ended.
func RoundRobin(processes []types.Process, quantum int64) (types.Result, error) {
	if err := validate(processes); err != nil {
		return types.Result{}, err
	}
	if err := validateQuantum(quantum); err != nil {
		return types.Result{}, err
	}

	var (
		n     = len(processes)
		rec   = newRecorder(processes)
		state = &rrState{
			processes: processes,
			remaining: remainingTimes(processes),
			visited:   make([]bool, n),
			queue:     make([]int, 0, n),
		}
		finished int
	)

	for finished < n {
		state.admit()
		if len(state.queue) == 0 {
			state.idle()
			continue
		}

		idx := state.queue[0]
		state.queue = state.queue[1:]
		start := state.clock

		if state.remaining[idx] > quantum {
			state.clock += quantum
			state.remaining[idx] -= quantum
		} else {
			state.clock += state.remaining[idx]
			state.remaining[idx] = 0
			rec.complete(idx, state.clock)
			finished++
		}
		rec.slice(idx, start, state.clock)

		state.admit()
		if state.remaining[idx] > 0 {
			state.queue = append(state.queue, idx)
		}
	}

	return rec.result(types.RoundRobin), nil
}
