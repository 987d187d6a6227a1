package types

// FromColumns builds process records from parallel sequences. priority may be
// nil when the set carries no priorities; otherwise it must match ids in length.
func FromColumns(ids, arrival, burst, priority []int64) ([]Process, error) {
	n := len(ids)
	if len(arrival) != n {
		return nil, &ValidationError{Field: "arrival_time", Reason: "length does not match process ids"}
	}
	if len(burst) != n {
		return nil, &ValidationError{Field: "burst_time", Reason: "length does not match process ids"}
	}
	if priority != nil && len(priority) != n {
		return nil, &ValidationError{Field: "priority", Reason: "length does not match process ids"}
	}

	processes := make([]Process, n)
	for i := range ids {
		processes[i] = Process{
			ProcessID:     ids[i],
			ArrivalTime:   arrival[i],
			BurstDuration: burst[i],
		}
		if priority != nil {
			processes[i].Priority = Prio(priority[i])
		}
	}
	return processes, nil
}

// Columns splits records back into parallel sequences. priority is nil unless
// every process has one.
func Columns(processes []Process) (ids, arrival, burst, priority []int64) {
	ids = make([]int64, len(processes))
	arrival = make([]int64, len(processes))
	burst = make([]int64, len(processes))
	priority = make([]int64, len(processes))
	for i, p := range processes {
		ids[i] = p.ProcessID
		arrival[i] = p.ArrivalTime
		burst[i] = p.BurstDuration
		if p.Priority == nil {
			priority = nil
		} else if priority != nil {
			priority[i] = *p.Priority
		}
	}
	return ids, arrival, burst, priority
}
