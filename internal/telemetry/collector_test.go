package telemetry

import (
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Barritosaurus/cpusched/internal/scheduler"
	"github.com/Barritosaurus/cpusched/internal/stats"
	"github.com/Barritosaurus/cpusched/pkg/types"
)

func TestObserveRun(t *testing.T) {
	t.Parallel()
	c := NewCollector(prometheus.NewRegistry())

	c.ObserveRun(types.FirstComeFirstServe, stats.Summary{Stats: stats.Stats{AverageWaiting: 2.5}}, time.Millisecond)
	c.ObserveRun(types.FirstComeFirstServe, stats.Summary{Stats: stats.Stats{AverageWaiting: 1.5}}, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.simulations.WithLabelValues("fcfs")))
	assert.Equal(t, 1.5, testutil.ToFloat64(c.avgWaiting.WithLabelValues("fcfs")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.duration))
}

func TestObserveFailure(t *testing.T) {
	t.Parallel()
	c := NewCollector(prometheus.NewRegistry())

	c.ObserveFailure(types.RoundRobin, &types.ValidationError{Field: "quantum", Reason: "must be positive"})
	c.ObserveFailure(types.PriorityNonPreemptive, &types.MissingFieldError{Field: "processes[0].priority"})
	c.ObserveFailure(types.Algorithm("lottery"), fmt.Errorf("%w: lottery", types.ErrUnknownAlgorithm))
	c.ObserveFailure(types.ShortestRemainingTime, io.EOF)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.failures.WithLabelValues("rr", "validation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.failures.WithLabelValues("priority", "missing_field")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.failures.WithLabelValues("lottery", "unknown_algorithm")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.failures.WithLabelValues("sjf", "other")))
}

func TestObserveComparisonFailure(t *testing.T) {
	t.Parallel()
	c := NewCollector(prometheus.NewRegistry())

	_, err := scheduler.Compare(nil, 2)
	require.Error(t, err)
	c.ObserveComparisonFailure(err)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.failures.WithLabelValues(AllAlgorithms, "validation")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.comparisons))
}

func TestObserveComparison(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	p := []types.Process{
		{ProcessID: 1, ArrivalTime: 0, BurstDuration: 5},
		{ProcessID: 2, ArrivalTime: 1, BurstDuration: 3},
		{ProcessID: 3, ArrivalTime: 2, BurstDuration: 1},
	}
	cmp, err := scheduler.Compare(p, 2)
	require.NoError(t, err)
	c.ObserveComparison(cmp, 4*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.comparisons))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.best.WithLabelValues("sjf")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.simulations.WithLabelValues("rr")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.failures.WithLabelValues("priority", "missing_field")))

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `cpusched_best_algorithm_total{algorithm="sjf"} 1`)
	assert.Contains(t, body, "cpusched_comparisons_total 1")
}
