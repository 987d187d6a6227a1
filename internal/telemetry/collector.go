// Package telemetry exposes Prometheus metrics about simulations served by
// the CLI and the HTTP API.
package telemetry

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Barritosaurus/cpusched/internal/scheduler"
	"github.com/Barritosaurus/cpusched/internal/stats"
	"github.com/Barritosaurus/cpusched/pkg/types"
)

// Collector records simulation outcomes.
type Collector struct {
	simulations *prometheus.CounterVec
	failures    *prometheus.CounterVec
	avgWaiting  *prometheus.GaugeVec
	duration    *prometheus.HistogramVec
	comparisons prometheus.Counter
	best        *prometheus.CounterVec
}

// NewCollector creates the metrics and registers them on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		simulations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cpusched_simulations_total",
			Help: "Total number of completed scheduling simulations",
		}, []string{"algorithm"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cpusched_simulation_failures_total",
			Help: "Total number of rejected scheduling simulations",
		}, []string{"algorithm", "kind"}),
		avgWaiting: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "cpusched_average_waiting_time",
			Help: "Average waiting time, in ticks, of the most recent simulation",
		}, []string{"algorithm"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cpusched_simulation_duration_seconds",
			Help:    "Wall-clock time spent simulating",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		}, []string{"algorithm"}),
		comparisons: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cpusched_comparisons_total",
			Help: "Total number of cross-algorithm comparisons",
		}),
		best: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cpusched_best_algorithm_total",
			Help: "Number of comparisons each algorithm won",
		}, []string{"algorithm"}),
	}

	reg.MustRegister(c.simulations, c.failures, c.avgWaiting, c.duration, c.comparisons, c.best)
	return c
}

// ObserveRun records one successful simulation.
func (c *Collector) ObserveRun(alg types.Algorithm, sum stats.Summary, elapsed time.Duration) {
	c.simulations.WithLabelValues(string(alg)).Inc()
	c.avgWaiting.WithLabelValues(string(alg)).Set(sum.AverageWaiting)
	c.duration.WithLabelValues(string(alg)).Observe(elapsed.Seconds())
}

// ObserveFailure records a simulation that returned err.
func (c *Collector) ObserveFailure(alg types.Algorithm, err error) {
	c.failures.WithLabelValues(string(alg), kindOf(err)).Inc()
}

// AllAlgorithms labels failures that rejected a whole comparison.
const AllAlgorithms = "all"

// ObserveComparisonFailure records a comparison that failed before any
// algorithm ran.
func (c *Collector) ObserveComparisonFailure(err error) {
	c.failures.WithLabelValues(AllAlgorithms, kindOf(err)).Inc()
}

// ObserveComparison records every ranked run and failure in cmp, plus the
// winner. elapsed covers the whole comparison and is split evenly.
func (c *Collector) ObserveComparison(cmp *scheduler.Comparison, elapsed time.Duration) {
	c.comparisons.Inc()
	if n := len(cmp.Rankings) + len(cmp.Failures); n > 0 {
		elapsed /= time.Duration(n)
	}
	for _, r := range cmp.Rankings {
		c.ObserveRun(r.Algorithm, r.Summary, elapsed)
	}
	for _, f := range cmp.Failures {
		c.ObserveFailure(f.Algorithm, f.Err)
	}
	if best, ok := cmp.Best(); ok {
		c.best.WithLabelValues(string(best.Algorithm)).Inc()
	}
}

func kindOf(err error) string {
	switch {
	case errors.Is(err, types.ErrValidation):
		return "validation"
	case errors.Is(err, types.ErrMissingField):
		return "missing_field"
	case errors.Is(err, types.ErrUnknownAlgorithm):
		return "unknown_algorithm"
	default:
		return "other"
	}
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
