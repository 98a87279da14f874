package workload

import (
	"math"
	"math/rand"
)

// ArrivalSampler generates inter-arrival times in ticks.
type ArrivalSampler interface {
	// SampleIAT returns the gap to the next arrival. Zero means a simultaneous arrival.
	SampleIAT(rng *rand.Rand) int
}

// PoissonSampler generates exponentially-distributed inter-arrival times (CV=1),
// floored to whole ticks.
type PoissonSampler struct {
	ratePerTick float64
}

func (s *PoissonSampler) SampleIAT(rng *rand.Rand) int {
	return int(rng.ExpFloat64() / s.ratePerTick)
}

// ConstantArrivalSampler spaces arrivals evenly at 1/rate ticks.
type ConstantArrivalSampler struct {
	gap int
}

func (s *ConstantArrivalSampler) SampleIAT(_ *rand.Rand) int {
	return s.gap
}

// NewArrivalSampler creates an ArrivalSampler from a validated spec.
func NewArrivalSampler(spec ArrivalSpec) ArrivalSampler {
	rate := spec.Rate
	// Unvalidated specs may carry a zero rate.
	if rate < 1e-9 {
		rate = 1e-9
	}
	switch spec.Process {
	case "constant":
		return &ConstantArrivalSampler{gap: int(math.Round(1 / rate))}
	default:
		return &PoissonSampler{ratePerTick: rate}
	}
}
