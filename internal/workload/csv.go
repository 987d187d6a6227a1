// Package workload reads, writes and generates process sets. It checks file
// structure only; whether the values make a valid schedule input is decided
// by the scheduler.
package workload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/Barritosaurus/cpusched/pkg/types"
)

var (
	ErrInvalidArgs = errors.New("invalid args")
	ErrMalformed   = errors.New("malformed process file")
)

// Open opens a process file and returns it with a func that closes it.
func Open(path string) (*os.File, func(), error) {
	if path == "" {
		return nil, nil, fmt.Errorf("%w: must give a scheduling file to process", ErrInvalidArgs)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: error opening scheduling file", err)
	}
	closeFn := func() {
		if err := f.Close(); err != nil {
			log.Printf("%v: error closing scheduling file", err)
		}
	}

	return f, closeFn, nil
}

// LoadCSV parses rows of id,burst,arrival[,priority].
func LoadCSV(r io.Reader) ([]types.Process, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading CSV", err)
	}

	processes := make([]types.Process, len(rows))
	for i, row := range rows {
		if len(row) != 3 && len(row) != 4 {
			return nil, fmt.Errorf("%w: line %d: want 3 or 4 fields, got %d", ErrMalformed, i+1, len(row))
		}
		var values [4]int64
		for j := range row {
			if values[j], err = parseInt(row[j]); err != nil {
				return nil, fmt.Errorf("%w: line %d field %d: %v", ErrMalformed, i+1, j+1, err)
			}
		}
		processes[i].ProcessID = values[0]
		processes[i].BurstDuration = values[1]
		processes[i].ArrivalTime = values[2]
		if len(row) == 4 {
			processes[i].Priority = types.Prio(values[3])
		}
	}

	return processes, nil
}

// SaveCSV writes processes in the layout LoadCSV reads. The priority column
// is written only when every process has one.
func SaveCSV(w io.Writer, processes []types.Process) error {
	_, _, _, priority := types.Columns(processes)
	cw := csv.NewWriter(w)
	for i, p := range processes {
		row := []string{fmt.Sprint(p.ProcessID), fmt.Sprint(p.BurstDuration), fmt.Sprint(p.ArrivalTime)}
		if priority != nil {
			row = append(row, fmt.Sprint(priority[i]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
}
