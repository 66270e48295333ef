package sim

import (
	"context"
	"runtime"
	"sync"
)

// Ensemble runs many seeded spins concurrently. Run i uses seed seedStart+i.
type Ensemble struct {
	base      *Simulator
	numRuns   int
	seedStart int64
	workers   int
}

func NewEnsemble(s *Simulator, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{base: s, numRuns: numRuns, seedStart: seedStart, workers: runtime.NumCPU()}
}

// Run returns the results in seed order. A fixed set of workers pulls run
// indices from a channel. Ensemble runs keep no velocity trace, and
// observers of the base simulator are not attached to them.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	if e.numRuns <= 0 {
		return nil, nil
	}
	results := make([]*Result, e.numRuns)
	workers := max(1, min(e.workers, e.numRuns))
	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sim := New(e.base.labels, e.base.physics)
			for idx := range jobs {
				r, err := sim.Run(ctx, Config{Seed: e.seedStart + int64(idx), NoTrace: true})
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					continue
				}
				results[idx] = r
			}
		}()
	}

feed:
	for i := 0; i < e.numRuns; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary tallies where a batch of spins landed.
type Summary struct {
	Runs      int
	Counts    []int
	Winners   int
	MinTicks  int
	MaxTicks  int
	MeanTicks float64
}

func Tally(results []*Result, segments int) Summary {
	s := Summary{Counts: make([]int, segments)}
	total := 0
	for _, r := range results {
		if r == nil {
			continue
		}
		if r.Outcome.Index >= 0 && r.Outcome.Index < segments {
			s.Counts[r.Outcome.Index]++
		}
		if r.Outcome.Winner {
			s.Winners++
		}
		if s.Runs == 0 || r.Ticks < s.MinTicks {
			s.MinTicks = r.Ticks
		}
		s.MaxTicks = max(s.MaxTicks, r.Ticks)
		total += r.Ticks
		s.Runs++
	}
	if s.Runs > 0 {
		s.MeanTicks = float64(total) / float64(s.Runs)
	}
	return s
}
