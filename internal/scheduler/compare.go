package scheduler

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/Barritosaurus/cpusched/internal/stats"
	"github.com/Barritosaurus/cpusched/pkg/types"
)

// DefaultQuantum is the round-robin quantum used by Compare when the caller
// supplies none.
const DefaultQuantum int64 = 2

// Ranking is one algorithm's outcome within a comparison.
type Ranking struct {
	Algorithm types.Algorithm `json:"algorithm"`
	Result    types.Result    `json:"result"`
	Summary   stats.Summary   `json:"summary"`
}

// Failure records an algorithm that could not run on the process set.
type Failure struct {
	Algorithm types.Algorithm `json:"algorithm"`
	Err       error           `json:"-"`
}

func (f Failure) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Algorithm types.Algorithm `json:"algorithm"`
		Error     string          `json:"error"`
		Field     string          `json:"field,omitempty"`
	}{f.Algorithm, f.Err.Error(), types.FieldOf(f.Err)})
}

// Comparison ranks algorithms by ascending average waiting time.
type Comparison struct {
	Quantum  int64     `json:"quantum"`
	Rankings []Ranking `json:"rankings"`
	Failures []Failure `json:"failures,omitempty"`
}

// Best is the algorithm with the lowest average waiting time.
func (c *Comparison) Best() (Ranking, bool) {
	if len(c.Rankings) == 0 {
		return Ranking{}, false
	}
	return c.Rankings[0], true
}

// Compare runs every algorithm over processes and ranks them. A structurally
// invalid process set fails the whole comparison. An algorithm that needs
// data the set lacks, such as priorities, is reported in Failures while the
// others are still ranked.
func Compare(processes []types.Process, quantum int64) (*Comparison, error) {
	if err := validate(processes); err != nil {
		return nil, err
	}
	if quantum <= 0 {
		quantum = DefaultQuantum
	}

	algorithms := types.Algorithms()
	outcomes := make([]struct {
		ranking Ranking
		err     error
	}, len(algorithms))

	var wg sync.WaitGroup
	for i, alg := range algorithms {
		wg.Add(1)
		go func(i int, alg types.Algorithm) {
			defer wg.Done()
			res, err := Run(alg, processes, Options{Quantum: quantum})
			if err != nil {
				outcomes[i].err = err
				return
			}
			sum, err := stats.Summarize(processes, res)
			if err != nil {
				outcomes[i].err = err
				return
			}
			outcomes[i].ranking = Ranking{Algorithm: alg, Result: res, Summary: sum}
		}(i, alg)
	}
	wg.Wait()

	cmp := &Comparison{Quantum: quantum}
	for i, o := range outcomes {
		if o.err != nil {
			cmp.Failures = append(cmp.Failures, Failure{Algorithm: algorithms[i], Err: o.err})
			continue
		}
		cmp.Rankings = append(cmp.Rankings, o.ranking)
	}
	sort.SliceStable(cmp.Rankings, func(a, b int) bool {
		return cmp.Rankings[a].Summary.AverageWaiting < cmp.Rankings[b].Summary.AverageWaiting
	})

	return cmp, nil
}
