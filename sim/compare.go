package sim

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ComparisonResult holds one algorithm's run over a shared process set.
type ComparisonResult struct {
	Algorithm Algorithm
	Simulator *Simulator
	Metrics   *Metrics
}

// CompareAlgorithms runs every algorithm over the same processes concurrently.
// Each run simulates private copies, so the runs cannot interfere. quantum is
// the global RR quantum. Results are returned in Algorithms order; the first
// failing run cancels the rest.
func CompareAlgorithms(ctx context.Context, processes []*Process, quantum int, maxTicks int64) ([]ComparisonResult, error) {
	sims := make([]*Simulator, len(Algorithms))
	for i, a := range Algorithms {
		cfg := NewSimConfig(a, 0, maxTicks)
		if a.TimeSliced() {
			cfg.Quantum = quantum
		}
		s, err := NewSimulator(processes, cfg)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", a, err)
		}
		sims[i] = s
	}

	results := make([]ComparisonResult, len(Algorithms))
	g, ctx := errgroup.WithContext(ctx)
	for i, s := range sims {
		i, s := i, s
		g.Go(func() error {
			m, err := s.RunContext(ctx)
			if err != nil {
				return fmt.Errorf("%v: %w", s.Config.Algorithm, err)
			}
			results[i] = ComparisonResult{Algorithm: s.Config.Algorithm, Simulator: s, Metrics: m}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
