package workload

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/Barritosaurus/cpusched/pkg/types"
)

// Params describes the distributions a synthetic process set is drawn from.
type Params struct {
	Count          int     `yaml:"count"`
	ArrivalMean    float64 `yaml:"arrival_mean"`
	ArrivalStd     float64 `yaml:"arrival_std"`
	BurstMean      float64 `yaml:"burst_mean"`
	BurstStd       float64 `yaml:"burst_std"`
	PriorityLambda float64 `yaml:"priority_lambda"`
}

func (p Params) validate() error {
	switch {
	case p.Count < 1:
		return fmt.Errorf("%w: count must be at least 1", ErrInvalidArgs)
	case p.ArrivalStd < 0 || p.BurstStd < 0:
		return fmt.Errorf("%w: standard deviations must not be negative", ErrInvalidArgs)
	case p.PriorityLambda < 0:
		return fmt.Errorf("%w: priority lambda must not be negative", ErrInvalidArgs)
	}
	return nil
}

// LoadParams reads the four-line parameter file:
//
//	n
//	arrival_mean arrival_std
//	burst_mean burst_std
//	priority_lambda
func LoadParams(r io.Reader) (Params, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return Params{}, err
	}
	if len(lines) < 4 {
		return Params{}, fmt.Errorf("%w: parameter file needs 4 lines, got %d", ErrMalformed, len(lines))
	}

	var (
		p   Params
		err error
	)
	if p.Count, err = strconv.Atoi(lines[0]); err != nil {
		return Params{}, fmt.Errorf("%w: process count %q", ErrMalformed, lines[0])
	}
	if p.ArrivalMean, p.ArrivalStd, err = floatPair(lines[1]); err != nil {
		return Params{}, fmt.Errorf("%w: arrival line: %v", ErrMalformed, err)
	}
	if p.BurstMean, p.BurstStd, err = floatPair(lines[2]); err != nil {
		return Params{}, fmt.Errorf("%w: burst line: %v", ErrMalformed, err)
	}
	if p.PriorityLambda, err = strconv.ParseFloat(lines[3], 64); err != nil {
		return Params{}, fmt.Errorf("%w: priority lambda %q", ErrMalformed, lines[3])
	}
	return p, nil
}

func floatPair(line string) (float64, float64, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, 0, fmt.Errorf("want mean and std, got %q", line)
	}
	a, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// Generate draws a process set: normally distributed arrivals (clamped at 0
// and sorted) and bursts (clamped at 1), Poisson priorities. IDs run 1..n.
func Generate(p Params, rng *rand.Rand) ([]types.Process, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	arrivals := make([]int64, p.Count)
	for i := range arrivals {
		arrivals[i] = max(0, int64(rng.NormFloat64()*p.ArrivalStd+p.ArrivalMean))
	}
	sort.Slice(arrivals, func(a, b int) bool { return arrivals[a] < arrivals[b] })

	processes := make([]types.Process, p.Count)
	for i := range processes {
		processes[i] = types.Process{
			ProcessID:     int64(i + 1),
			ArrivalTime:   arrivals[i],
			BurstDuration: max(1, int64(rng.NormFloat64()*p.BurstStd+p.BurstMean)),
			Priority:      types.Prio(poisson(rng, p.PriorityLambda)),
		}
	}
	return processes, nil
}

// poisson uses Knuth's multiplication method, fine for the small lambdas
// priorities are drawn with.
func poisson(rng *rand.Rand, lambda float64) int64 {
	if lambda <= 0 {
		return 0
	}
	limit := math.Exp(-lambda)
	var k int64
	for prod := rng.Float64(); prod > limit; prod *= rng.Float64() {
		k++
	}
	return k
}
