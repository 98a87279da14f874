package workload

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cpusched/cpusched/sim"
)

// GenerateProcesses synthesizes g.Count processes. The first arrives at tick 0;
// later arrivals follow the sampled inter-arrival gaps. Deterministic given
// the same spec and seed. Names are NamePrefix plus a 1-based index.
func GenerateProcesses(g *GenerateSpec, seed int64, ids sim.IDGenerator) ([]*sim.Process, error) {
	if err := validateGenerate(g); err != nil {
		return nil, err
	}
	bursts, err := NewLengthSampler(g.Burst)
	if err != nil {
		return nil, err
	}
	arrivals := NewArrivalSampler(g.Arrival)

	rng := NewPartitionedRNG(seed)
	arrivalRNG := rng.ForSubsystem(SubsystemArrival)
	burstRNG := rng.ForSubsystem(SubsystemBurst)

	prefix := g.NamePrefix
	if prefix == "" {
		prefix = "P"
	}

	processes := make([]*sim.Process, 0, g.Count)
	arrival := 0
	for i := 0; i < g.Count; i++ {
		if i > 0 {
			arrival += arrivals.SampleIAT(arrivalRNG)
		}
		p, err := sim.NewProcess(ids, fmt.Sprintf("%s%d", prefix, i+1), bursts.Sample(burstRNG), arrival, 0)
		if err != nil {
			return nil, err
		}
		processes = append(processes, p)
	}
	logrus.Debugf("Generated %d processes (seed=%d, last arrival=%d)", len(processes), seed, arrival)
	return processes, nil
}
