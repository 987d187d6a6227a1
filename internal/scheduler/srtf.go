package scheduler

import (
	"github.com/Barritosaurus/cpusched/pkg/types"
)

const none = -1

type srtfState struct {
	processes []types.Process
	remaining []int64
	current   int64
}

// pick returns the arrived, unfinished process with the least remaining
// time, breaking ties by earlier arrival and then by input order.
func (s *srtfState) pick() int {
	best := none
	for i, p := range s.processes {
		if p.ArrivalTime > s.current || s.remaining[i] == 0 {
			continue
		}
		if best == none || s.less(i, best) {
			best = i
		}
	}
	return best
}

func (s *srtfState) less(i, j int) bool {
	if s.remaining[i] != s.remaining[j] {
		return s.remaining[i] < s.remaining[j]
	}
	if s.processes[i].ArrivalTime != s.processes[j].ArrivalTime {
		return s.processes[i].ArrivalTime < s.processes[j].ArrivalTime
	}
	return i < j
}

// nextArrival is the earliest arrival strictly after the current tick.
func (s *srtfState) nextArrival() (int64, bool) {
	next, ok := int64(0), false
	for _, p := range s.processes {
		if p.ArrivalTime > s.current && (!ok || p.ArrivalTime < next) {
			next, ok = p.ArrivalTime, true
		}
	}
	return next, ok
}

// SRTF is preemptive shortest-remaining-time-first at unit-tick granularity.
//
// The running process can only lose the processor when another process
// arrives: its own remaining time shrinks while the others stand still. So
// the loop runs the chosen process straight up to the next arrival (or its
// completion) and re-picks there, which yields exactly the segments and
// completion times of a tick-by-tick simulation.
func SRTF(processes []types.Process) (types.Result, error) {
	if err := validate(processes); err != nil {
		return types.Result{}, err
	}

	var (
		n     = len(processes)
		rec   = newRecorder(processes)
		state = &srtfState{
			processes: processes,
			remaining: remainingTimes(processes),
		}
		last         = none
		segmentStart int64
		finished     int
	)

	for finished < n {
		idx := state.pick()
		if idx == none {
			next, ok := state.nextArrival()
			if !ok {
				break
			}
			state.current = next
			continue
		}

		if idx != last {
			if last != none && state.remaining[last] > 0 {
				rec.slice(last, segmentStart, state.current)
			}
			segmentStart = state.current
			last = idx
		}

		run := state.remaining[idx]
		if next, ok := state.nextArrival(); ok && next-state.current < run {
			run = next - state.current
		}
		state.remaining[idx] -= run
		state.current += run

		if state.remaining[idx] == 0 {
			rec.slice(idx, segmentStart, state.current)
			rec.complete(idx, state.current)
			finished++
			last = none
		}
	}

	return rec.result(types.ShortestRemainingTime), nil
}
