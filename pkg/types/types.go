package types

import (
	"fmt"
	"strings"
)

type (
	// Process describes one CPU-bound process handed to a scheduler.
	// Priority is nil when the process set carries no priority data.
	Process struct {
		ProcessID     int64  `json:"id" yaml:"id"`
		ArrivalTime   int64  `json:"arrival_time" yaml:"arrival_time"`
		BurstDuration int64  `json:"burst_time" yaml:"burst_time"`
		Priority      *int64 `json:"priority,omitempty" yaml:"priority,omitempty"`
	}
	// TimeSlice is one timeline entry: PID held the processor over [Start, Stop).
	TimeSlice struct {
		PID   int64 `json:"pid"`
		Start int64 `json:"start"`
		Stop  int64 `json:"stop"`
	}
)

// Prio returns a pointer to v, for filling Process.Priority.
func Prio(v int64) *int64 {
	return &v
}

func (p Process) String() string {
	prio := "-"
	if p.Priority != nil {
		prio = fmt.Sprint(*p.Priority)
	}
	return fmt.Sprintf("P%d(arrival=%d, burst=%d, priority=%s)", p.ProcessID, p.ArrivalTime, p.BurstDuration, prio)
}

// Duration is Stop - Start.
func (s TimeSlice) Duration() int64 {
	return s.Stop - s.Start
}

// Timeline is the execution log of one run, in context-switch order.
type Timeline []TimeSlice

// BusyFor sums the time pid spent on the processor.
func (tl Timeline) BusyFor(pid int64) int64 {
	var total int64
	for _, s := range tl {
		if s.PID == pid {
			total += s.Duration()
		}
	}
	return total
}

// FirstStart reports when pid first got the processor.
func (tl Timeline) FirstStart(pid int64) (int64, bool) {
	for _, s := range tl {
		if s.PID == pid {
			return s.Start, true
		}
	}
	return 0, false
}

// Busy sums the durations of all slices.
func (tl Timeline) Busy() int64 {
	var total int64
	for _, s := range tl {
		total += s.Duration()
	}
	return total
}

// Makespan is the latest Stop in the timeline, or 0 when empty.
func (tl Timeline) Makespan() int64 {
	var end int64
	for _, s := range tl {
		end = max(end, s.Stop)
	}
	return end
}

// Result is the outcome of one scheduling run. Completion is indexed like
// the input process slice.
type Result struct {
	Algorithm  Algorithm `json:"algorithm"`
	Completion []int64   `json:"completion_times"`
	Timeline   Timeline  `json:"execution_log"`
}

// Algorithm names one of the supported scheduling policies.
type Algorithm string

const (
	FirstComeFirstServe   Algorithm = "fcfs"
	RoundRobin            Algorithm = "rr"
	PriorityNonPreemptive Algorithm = "priority"
	ShortestRemainingTime Algorithm = "sjf"
)

// Algorithms lists every policy in comparison order.
func Algorithms() []Algorithm {
	return []Algorithm{FirstComeFirstServe, RoundRobin, PriorityNonPreemptive, ShortestRemainingTime}
}

// Title is the human-readable policy name.
func (a Algorithm) Title() string {
	switch a {
	case FirstComeFirstServe:
		return "First-come, first-serve"
	case RoundRobin:
		return "Round-robin"
	case PriorityNonPreemptive:
		return "Priority non-preemptive"
	case ShortestRemainingTime:
		return "SJF preemptive"
	default:
		return string(a)
	}
}

// ParseAlgorithm accepts the short names plus a few common aliases.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fcfs", "fifo":
		return FirstComeFirstServe, nil
	case "rr", "round-robin", "roundrobin":
		return RoundRobin, nil
	case "priority", "prio", "priority-np":
		return PriorityNonPreemptive, nil
	case "sjf", "srtf", "sjf-preemptive":
		return ShortestRemainingTime, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}
