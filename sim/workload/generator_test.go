package workload

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpusched/cpusched/sim"
)

func poissonUniform(count int) *GenerateSpec {
	return &GenerateSpec{
		Count:   count,
		Arrival: ArrivalSpec{Process: "poisson", Rate: 0.25},
		Burst:   DistSpec{Type: "uniform", Params: map[string]float64{"min": 2, "max": 8}},
	}
}

func TestGenerateProcesses_SameSeed_Identical(t *testing.T) {
	a, err := GenerateProcesses(poissonUniform(30), 42, sim.NewSequentialIDs())
	require.NoError(t, err)
	b, err := GenerateProcesses(poissonUniform(30), 42, sim.NewSequentialIDs())
	require.NoError(t, err)

	require.Len(t, a, 30)
	for i := range a {
		assert.Equal(t, *a[i], *b[i], "process %d", i)
	}
}

func TestGenerateProcesses_DifferentSeed_Differs(t *testing.T) {
	a, err := GenerateProcesses(poissonUniform(30), 1, sim.NewSequentialIDs())
	require.NoError(t, err)
	b, err := GenerateProcesses(poissonUniform(30), 2, sim.NewSequentialIDs())
	require.NoError(t, err)

	same := true
	for i := range a {
		if a[i].BurstTime != b[i].BurstTime || a[i].ArrivalTime != b[i].ArrivalTime {
			same = false
			break
		}
	}
	assert.False(t, same)
}

func TestGenerateProcesses_ArrivalsNonDecreasing_BurstsInRange(t *testing.T) {
	processes, err := GenerateProcesses(poissonUniform(50), 9, sim.NewSequentialIDs())
	require.NoError(t, err)

	assert.Equal(t, 0, processes[0].ArrivalTime)
	assert.Equal(t, "P1", processes[0].Name)
	assert.Equal(t, "P50", processes[49].Name)
	for i, p := range processes {
		assert.GreaterOrEqual(t, p.BurstTime, 2)
		assert.LessOrEqual(t, p.BurstTime, 8)
		assert.Equal(t, p.BurstTime, p.RemainingTime)
		assert.Equal(t, sim.StateNotArrived, p.State)
		if i > 0 {
			assert.GreaterOrEqual(t, p.ArrivalTime, processes[i-1].ArrivalTime)
		}
	}
}

func TestGenerateProcesses_ConstantArrival_EvenGaps(t *testing.T) {
	g := &GenerateSpec{
		Count:   4,
		Arrival: ArrivalSpec{Process: "constant", Rate: 0.25},
		Burst:   DistSpec{Type: "constant", Params: map[string]float64{"value": 1}},
	}

	processes, err := GenerateProcesses(g, 0, sim.NewSequentialIDs())

	require.NoError(t, err)
	arrivals := make([]int, len(processes))
	for i, p := range processes {
		arrivals[i] = p.ArrivalTime
	}
	assert.Equal(t, []int{0, 4, 8, 12}, arrivals)
}

func TestGenerateProcesses_Invalid(t *testing.T) {
	g := poissonUniform(0)
	_, err := GenerateProcesses(g, 1, sim.NewSequentialIDs())
	assert.True(t, errors.Is(err, sim.ErrInvalidConfiguration), "got %v", err)
}

func TestPartitionedRNG_SubsystemsIsolated(t *testing.T) {
	// GIVEN two RNGs from the same seed
	r1 := NewPartitionedRNG(5)
	r2 := NewPartitionedRNG(5)

	// WHEN only one draws from the arrival stream first
	r1.ForSubsystem(SubsystemArrival).Int63()

	// THEN the burst streams still agree
	assert.Equal(t, r2.ForSubsystem(SubsystemBurst).Int63(), r1.ForSubsystem(SubsystemBurst).Int63())
	assert.Same(t, r1.ForSubsystem(SubsystemBurst), r1.ForSubsystem(SubsystemBurst))
	assert.NotEqual(t, fnv1a64(SubsystemArrival), fnv1a64(SubsystemBurst))
}
