package workload

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Barritosaurus/cpusched/pkg/types"
)

const textHeader = "Process\tArrival\tBurst\tPriority"

// Save writes the plain-text record: the process count, a header line, then
// one P<id> arrival burst priority row per process. A missing priority is
// written as "-".
func Save(w io.Writer, processes []types.Process) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n%s\n", len(processes), textHeader)
	for _, p := range processes {
		prio := "-"
		if p.Priority != nil {
			prio = fmt.Sprint(*p.Priority)
		}
		fmt.Fprintf(bw, "P%d\t%d\t%d\t%s\n", p.ProcessID, p.ArrivalTime, p.BurstDuration, prio)
	}
	return bw.Flush()
}

// Load reads what Save writes. Blank lines are ignored and the header line
// is optional.
func Load(r io.Reader) ([]types.Process, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading process file", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrMalformed)
	}

	n, err := parseInt(lines[0])
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: first line must be the process count, got %q", ErrMalformed, lines[0])
	}
	rows := lines[1:]
	if len(rows) > 0 && strings.HasPrefix(strings.ToLower(rows[0]), "process") {
		rows = rows[1:]
	}
	if int64(len(rows)) != n {
		return nil, fmt.Errorf("%w: header says %d processes, found %d rows", ErrMalformed, n, len(rows))
	}

	processes := make([]types.Process, len(rows))
	for i, row := range rows {
		fields := strings.Fields(row)
		if len(fields) != 4 {
			return nil, fmt.Errorf("%w: row %d: want 4 fields, got %d", ErrMalformed, i+1, len(fields))
		}
		id, err := parseInt(strings.TrimPrefix(strings.TrimPrefix(fields[0], "P"), "p"))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: process id %q", ErrMalformed, i+1, fields[0])
		}
		arrival, err := parseInt(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: arrival %q", ErrMalformed, i+1, fields[1])
		}
		burst, err := parseInt(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: burst %q", ErrMalformed, i+1, fields[2])
		}
		processes[i] = types.Process{ProcessID: id, ArrivalTime: arrival, BurstDuration: burst}
		if fields[3] != "-" {
			prio, err := parseInt(fields[3])
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: priority %q", ErrMalformed, i+1, fields[3])
			}
			processes[i].Priority = types.Prio(prio)
		}
	}
	return processes, nil
}
