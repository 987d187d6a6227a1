// Package report renders scheduling results for a terminal: a Gantt line,
// a per-process timing table and a cross-algorithm ranking.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/Barritosaurus/cpusched/internal/scheduler"
	"github.com/Barritosaurus/cpusched/internal/stats"
	"github.com/Barritosaurus/cpusched/pkg/types"
)

// Schedule writes the title, Gantt line and timing table of one run.
func Schedule(w io.Writer, processes []types.Process, res types.Result, sum stats.Summary) {
	Title(w, res.Algorithm.Title())
	Gantt(w, res.Timeline)
	Table(w, processes, res, sum)
}

// Title writes title between two rules.
func Title(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), boldCyan(title))
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

type ganttCell struct {
	label string
	pid   int64
	idle  bool
	start int64
	stop  int64
}

func ganttCells(timeline types.Timeline) []ganttCell {
	cells := make([]ganttCell, 0, len(timeline))
	var clock int64
	for _, s := range timeline {
		if s.Start > clock {
			cells = append(cells, ganttCell{label: "idle", idle: true, start: clock, stop: s.Start})
		}
		cells = append(cells, ganttCell{label: fmt.Sprintf("P%d", s.PID), pid: s.PID, start: s.Start, stop: s.Stop})
		clock = s.Stop
	}
	return cells
}

// Gantt writes one cell per timeline slice, with idle gaps shown, followed by
// the boundary ticks.
func Gantt(w io.Writer, timeline types.Timeline) {
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	cells := ganttCells(timeline)

	_, _ = fmt.Fprint(w, "|")
	for _, c := range cells {
		padding := strings.Repeat(" ", max(0, (8-len(c.label))/2))
		label := dim(c.label)
		if !c.idle {
			label = pidColor(c.pid)(c.label)
		}
		_, _ = fmt.Fprint(w, padding, label, padding, "|")
	}
	_, _ = fmt.Fprintln(w)
	for i, c := range cells {
		_, _ = fmt.Fprint(w, fmt.Sprint(c.start), "\t")
		if len(cells)-1 == i {
			_, _ = fmt.Fprint(w, fmt.Sprint(c.stop))
		}
	}
	_, _ = fmt.Fprintf(w, "\n\n")
}

// Table writes the per-process timing table with averages in the footer.
func Table(w io.Writer, processes []types.Process, res types.Result, sum stats.Summary) {
	rows := make([][]string, len(processes))
	for i, p := range processes {
		prio := "-"
		if p.Priority != nil {
			prio = fmt.Sprint(*p.Priority)
		}
		rows[i] = []string{
			fmt.Sprint(p.ProcessID),
			prio,
			fmt.Sprint(p.BurstDuration),
			fmt.Sprint(p.ArrivalTime),
			fmt.Sprint(sum.Waiting[i]),
			fmt.Sprint(sum.Turnaround[i]),
			fmt.Sprint(sum.Response[i]),
			fmt.Sprint(res.Completion[i]),
		}
	}

	_, _ = fmt.Fprintln(w, "Schedule table")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Priority", "Burst", "Arrival", "Wait", "Turnaround", "Response", "Exit"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "",
		fmt.Sprintf("CPU\n%.0f%%", sum.Utilization*100),
		fmt.Sprintf("Average\n%.2f", sum.AverageWaiting),
		fmt.Sprintf("Average\n%.2f", sum.AverageTurnaround),
		fmt.Sprintf("Average\n%.2f", sum.AverageResponse),
		fmt.Sprintf("Throughput\n%.2f/t", sum.Throughput)})
	table.Render()
}

// Comparison writes the ranking table, the best algorithm and any
// algorithm that could not run.
func Comparison(w io.Writer, cmp *scheduler.Comparison) {
	Title(w, "Algorithm comparison")

	rows := make([][]string, len(cmp.Rankings))
	for i, r := range cmp.Rankings {
		name := r.Algorithm.Title()
		if r.Algorithm == types.RoundRobin {
			name = fmt.Sprintf("%s (q=%d)", name, cmp.Quantum)
		}
		rows[i] = []string{
			fmt.Sprint(i + 1),
			name,
			fmt.Sprintf("%.2f", r.Summary.AverageWaiting),
			fmt.Sprintf("%.2f", r.Summary.AverageTurnaround),
			fmt.Sprintf("%.2f", r.Summary.AverageResponse),
			fmt.Sprint(r.Summary.Makespan),
		}
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rank", "Algorithm", "Avg wait", "Avg turnaround", "Avg response", "Makespan"})
	table.AppendBulk(rows)
	table.Render()

	if best, ok := cmp.Best(); ok {
		_, _ = fmt.Fprintf(w, "%s %s (average wait %.2f)\n",
			bold("Best algorithm:"), boldGreen(best.Algorithm.Title()), best.Summary.AverageWaiting)
	}
	for _, f := range cmp.Failures {
		_, _ = fmt.Fprintf(w, "%s %s\n", red(f.Algorithm.Title()+" skipped:"), f.Err)
	}
}

// JSON writes v indented.
func JSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
