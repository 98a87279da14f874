package sim

import "fmt"

// SimConfig groups the scheduling parameters for one simulation run.
type SimConfig struct {
	Algorithm Algorithm // FCFS, SJF, SRTF or RoundRobin
	Quantum   int       // global RR quantum; required (> 0) iff Algorithm == RoundRobin
	MaxTicks  int64     // optional tick ceiling; 0 = unbounded
}

// NewSimConfig builds a SimConfig from its parts.
func NewSimConfig(algorithm Algorithm, quantum int, maxTicks int64) SimConfig {
	return SimConfig{Algorithm: algorithm, Quantum: quantum, MaxTicks: maxTicks}
}

// Validate checks the algorithm, quantum and tick ceiling.
func (c SimConfig) Validate() error {
	if !c.Algorithm.Valid() {
		return fmt.Errorf("%w: unknown algorithm %v; valid: fcfs, sjf, srtf, rr", ErrInvalidConfiguration, c.Algorithm)
	}
	if c.Algorithm.TimeSliced() && c.Quantum <= 0 {
		return fmt.Errorf("%w: %v requires a positive quantum, got %d", ErrInvalidConfiguration, c.Algorithm, c.Quantum)
	}
	if c.Quantum < 0 {
		return fmt.Errorf("%w: quantum must be non-negative, got %d", ErrInvalidConfiguration, c.Quantum)
	}
	if c.MaxTicks < 0 {
		return fmt.Errorf("%w: max ticks must be non-negative, got %d", ErrInvalidConfiguration, c.MaxTicks)
	}
	return nil
}
