package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Barritosaurus/cpusched/pkg/types"
)

func TestCalculate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		arrival        []int64
		burst          []int64
		completion     []int64
		wantTurnaround []int64
		wantWaiting    []int64
		wantAveWait    float64
	}{
		{
			name:           "fcfs",
			arrival:        []int64{0, 1, 2},
			burst:          []int64{5, 3, 1},
			completion:     []int64{5, 8, 9},
			wantTurnaround: []int64{5, 7, 7},
			wantWaiting:    []int64{0, 4, 6},
			wantAveWait:    10.0 / 3.0,
		},
		{
			name:           "round-robin",
			arrival:        []int64{0, 1, 2},
			burst:          []int64{5, 3, 1},
			completion:     []int64{9, 8, 5},
			wantTurnaround: []int64{9, 7, 3},
			wantWaiting:    []int64{4, 4, 2},
			wantAveWait:    10.0 / 3.0,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Calculate(tt.arrival, tt.burst, tt.completion)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTurnaround, got.Turnaround)
			assert.Equal(t, tt.wantWaiting, got.Waiting)
			assert.InDelta(t, tt.wantAveWait, got.AverageWaiting, 1e-9)
		})
	}
}

func TestCalculateInvalid(t *testing.T) {
	t.Parallel()
	_, err := Calculate(nil, nil, nil)
	assert.ErrorIs(t, err, types.ErrValidation)

	_, err = Calculate([]int64{0}, []int64{1, 2}, []int64{3})
	assert.ErrorIs(t, err, types.ErrValidation)
	assert.Equal(t, "burst_time", types.FieldOf(err))
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	processes := []types.Process{
		{ProcessID: 1, ArrivalTime: 0, BurstDuration: 2},
		{ProcessID: 2, ArrivalTime: 4, BurstDuration: 4},
	}
	res := types.Result{
		Algorithm:  types.FirstComeFirstServe,
		Completion: []int64{2, 8},
		Timeline:   types.Timeline{{PID: 1, Start: 0, Stop: 2}, {PID: 2, Start: 4, Stop: 8}},
	}

	got, err := Summarize(processes, res)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 0}, got.Waiting)
	assert.Equal(t, []int64{0, 0}, got.Response)
	assert.Equal(t, int64(8), got.Makespan)
	assert.Equal(t, int64(6), got.BusyTime)
	assert.Equal(t, int64(2), got.IdleTime)
	assert.InDelta(t, 0.75, got.Utilization, 1e-9)
	assert.InDelta(t, 0.25, got.Throughput, 1e-9)
	assert.InDelta(t, 4.0, got.AverageTurnaround, 1e-9)
}

func TestSummarizeMissingSlice(t *testing.T) {
	t.Parallel()
	processes := []types.Process{{ProcessID: 1, BurstDuration: 2}}
	_, err := Summarize(processes, types.Result{Completion: []int64{2}})
	assert.ErrorIs(t, err, types.ErrValidation)
	assert.Equal(t, "execution_log", types.FieldOf(err))
}
