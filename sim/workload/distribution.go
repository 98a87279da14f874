package workload

import (
	"fmt"
	"math"
	"math/rand"
)

// LengthSampler generates burst-time samples.
type LengthSampler interface {
	// Sample returns a positive tick count (>= 1).
	Sample(rng *rand.Rand) int
}

// GaussianSampler produces clamped Gaussian burst times.
type GaussianSampler struct {
	mean, stdDev float64
	min, max     int
}

func (s *GaussianSampler) Sample(rng *rand.Rand) int {
	if s.min == s.max {
		return max(s.min, 1)
	}
	val := rng.NormFloat64()*s.stdDev + s.mean
	clamped := math.Min(float64(s.max), math.Max(float64(s.min), val))
	result := int(math.Round(clamped))
	if result < 1 {
		return 1
	}
	return result
}

// ExponentialSampler produces exponentially-distributed burst times.
type ExponentialSampler struct {
	mean float64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) int {
	val := rng.ExpFloat64() * s.mean
	result := int(math.Round(val))
	if result < 1 {
		return 1
	}
	return result
}

// UniformSampler draws integers uniformly from [min, max].
type UniformSampler struct {
	min, max int
}

func (s *UniformSampler) Sample(rng *rand.Rand) int {
	result := s.min + rng.Intn(s.max-s.min+1)
	if result < 1 {
		return 1
	}
	return result
}

// ConstantSampler always returns the same fixed value.
type ConstantSampler struct {
	value int
}

func (s *ConstantSampler) Sample(_ *rand.Rand) int {
	if s.value < 1 {
		return 1
	}
	return s.value
}

// requireParam checks that all required keys exist in a params map.
func requireParam(params map[string]float64, keys ...string) error {
	for _, k := range keys {
		if _, ok := params[k]; !ok {
			return fmt.Errorf("distribution requires parameter %q", k)
		}
	}
	return nil
}

// NewLengthSampler creates a LengthSampler from a DistSpec.
func NewLengthSampler(spec DistSpec) (LengthSampler, error) {
	switch spec.Type {
	case "gaussian":
		if err := requireParam(spec.Params, "mean", "std_dev", "min", "max"); err != nil {
			return nil, err
		}
		s := &GaussianSampler{
			mean:   spec.Params["mean"],
			stdDev: spec.Params["std_dev"],
			min:    int(spec.Params["min"]),
			max:    int(spec.Params["max"]),
		}
		if s.min > s.max {
			return nil, fmt.Errorf("gaussian min %d exceeds max %d", s.min, s.max)
		}
		return s, nil

	case "exponential":
		if err := requireParam(spec.Params, "mean"); err != nil {
			return nil, err
		}
		if spec.Params["mean"] <= 0 {
			return nil, fmt.Errorf("exponential mean must be positive, got %f", spec.Params["mean"])
		}
		return &ExponentialSampler{mean: spec.Params["mean"]}, nil

	case "uniform":
		if err := requireParam(spec.Params, "min", "max"); err != nil {
			return nil, err
		}
		s := &UniformSampler{min: int(spec.Params["min"]), max: int(spec.Params["max"])}
		if s.min > s.max {
			return nil, fmt.Errorf("uniform min %d exceeds max %d", s.min, s.max)
		}
		return s, nil

	case "constant":
		if err := requireParam(spec.Params, "value"); err != nil {
			return nil, err
		}
		return &ConstantSampler{value: int(spec.Params["value"])}, nil

	default:
		return nil, fmt.Errorf("unknown distribution type %q", spec.Type)
	}
}
