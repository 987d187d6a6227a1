// Package stats derives per-process and aggregate timing figures from a
// scheduling result.
package stats

import (
	"github.com/Barritosaurus/cpusched/pkg/types"
)

// Stats holds turnaround and waiting time per process plus their means.
type Stats struct {
	Turnaround        []int64 `json:"turnaround_times"`
	Waiting           []int64 `json:"waiting_times"`
	AverageTurnaround float64 `json:"average_turnaround"`
	AverageWaiting    float64 `json:"average_waiting"`
}

// Calculate computes turnaround = completion - arrival and
// waiting = turnaround - burst for each process.
func Calculate(arrival, burst, completion []int64) (Stats, error) {
	n := len(completion)
	if n == 0 {
		return Stats{}, &types.ValidationError{Field: "completion_time", Reason: "must contain at least one process"}
	}
	if len(arrival) != n {
		return Stats{}, &types.ValidationError{Field: "arrival_time", Reason: "length does not match completion times"}
	}
	if len(burst) != n {
		return Stats{}, &types.ValidationError{Field: "burst_time", Reason: "length does not match completion times"}
	}

	var (
		s = Stats{
			Turnaround: make([]int64, n),
			Waiting:    make([]int64, n),
		}
		totalTurnaround int64
		totalWait       int64
	)
	for i := range completion {
		s.Turnaround[i] = completion[i] - arrival[i]
		s.Waiting[i] = s.Turnaround[i] - burst[i]
		totalTurnaround += s.Turnaround[i]
		totalWait += s.Waiting[i]
	}

	count := float64(n)
	s.AverageTurnaround = float64(totalTurnaround) / count
	s.AverageWaiting = float64(totalWait) / count
	return s, nil
}

// Summary extends Stats with response times and processor usage taken from
// the execution log.
type Summary struct {
	Stats
	Response        []int64 `json:"response_times"`
	AverageResponse float64 `json:"average_response"`
	Makespan        int64   `json:"makespan"`
	BusyTime        int64   `json:"busy_time"`
	IdleTime        int64   `json:"idle_time"`
	Utilization     float64 `json:"cpu_utilization"`
	Throughput      float64 `json:"throughput"`
}

// Summarize computes the Summary of res, which must have been produced for
// processes.
func Summarize(processes []types.Process, res types.Result) (Summary, error) {
	_, arrival, burst, _ := types.Columns(processes)
	base, err := Calculate(arrival, burst, res.Completion)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{
		Stats:    base,
		Response: make([]int64, len(processes)),
		Makespan: res.Timeline.Makespan(),
		BusyTime: res.Timeline.Busy(),
	}

	var totalResponse int64
	for i, p := range processes {
		first, ok := res.Timeline.FirstStart(p.ProcessID)
		if !ok {
			return Summary{}, &types.ValidationError{Field: "execution_log", Reason: "has no slice for " + p.String()}
		}
		sum.Response[i] = first - p.ArrivalTime
		totalResponse += sum.Response[i]
	}

	count := float64(len(processes))
	sum.AverageResponse = float64(totalResponse) / count
	sum.IdleTime = sum.Makespan - sum.BusyTime
	if sum.Makespan > 0 {
		sum.Utilization = float64(sum.BusyTime) / float64(sum.Makespan)
		sum.Throughput = count / float64(sum.Makespan)
	}
	return sum, nil
}
