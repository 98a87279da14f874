package sim

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessState_Constants_HaveExpectedStringValues(t *testing.T) {
	assert.Equal(t, ProcessState("not-arrived"), StateNotArrived)
	assert.Equal(t, ProcessState("ready"), StateReady)
	assert.Equal(t, ProcessState("running"), StateRunning)
	assert.Equal(t, ProcessState("finished"), StateFinished)
}

func TestNewProcess_ValidInput_InitializesRemainingTime(t *testing.T) {
	// GIVEN valid inputs
	ids := NewSequentialIDs()

	// WHEN NewProcess is called
	p, err := NewProcess(ids, "editor", 7, 3, 0)

	// THEN remaining time equals burst and nothing has run yet
	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "editor", p.Name)
	assert.Equal(t, 7, p.BurstTime)
	assert.Equal(t, 7, p.RemainingTime)
	assert.Equal(t, 3, p.ArrivalTime)
	assert.Equal(t, StateNotArrived, p.State)
	assert.False(t, p.Started)
}

func TestNewProcess_InvalidInput_ReturnsInvalidProcessInput(t *testing.T) {
	tests := []struct {
		name    string
		pname   string
		burst   int
		arrival int
		quantum int
	}{
		{"empty name", "", 3, 0, 0},
		{"blank name", "   ", 3, 0, 0},
		{"zero burst", "A", 0, 0, 0},
		{"negative burst", "A", -2, 0, 0},
		{"negative arrival", "A", 3, -1, 0},
		{"negative quantum", "A", 3, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProcess(NewSequentialIDs(), tt.pname, tt.burst, tt.arrival, tt.quantum)
			assert.Nil(t, p)
			assert.True(t, errors.Is(err, ErrInvalidProcessInput), "got %v", err)
		})
	}
}

func TestNewProcess_InvalidInput_DoesNotConsumeID(t *testing.T) {
	// GIVEN a generator and one rejected process
	ids := NewSequentialIDs()
	_, err := NewProcess(ids, "bad", 0, 0, 0)
	require.Error(t, err)

	// WHEN a valid process is created next
	p, err := NewProcess(ids, "good", 1, 0, 0)

	// THEN it still receives the first ID
	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)
}

func TestSequentialIDs_AssignsMonotonicIDs(t *testing.T) {
	ids := NewSequentialIDs()
	assert.Equal(t, 1, ids.NextID())
	assert.Equal(t, 2, ids.NextID())
	assert.Equal(t, 3, ids.NextID())
}

func TestSequentialIDs_IndependentGenerators_DoNotShareState(t *testing.T) {
	a, b := NewSequentialIDs(), NewSequentialIDs()
	a.NextID()
	a.NextID()
	assert.Equal(t, 1, b.NextID())
}

func TestSequentialIDs_ConcurrentUse_IDsUnique(t *testing.T) {
	ids := NewSequentialIDs()
	const n = 200
	got := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got <- ids.NextID()
		}()
	}
	wg.Wait()
	close(got)

	seen := make(map[int]bool, n)
	for id := range got {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestProcess_Clone_ResetsSimulationState(t *testing.T) {
	// GIVEN a process that has partially run
	p, err := NewProcess(NewSequentialIDs(), "A", 5, 2, 3)
	require.NoError(t, err)
	p.RemainingTime = 1
	p.Started = true
	p.StartTime = 4
	p.SliceLeft = 2
	p.State = StateRunning

	// WHEN cloned
	c := p.Clone()

	// THEN identity and inputs carry over, state is reset, the source is untouched
	assert.Equal(t, p.ID, c.ID)
	assert.Equal(t, "A", c.Name)
	assert.Equal(t, 3, c.Quantum)
	assert.Equal(t, 5, c.RemainingTime)
	assert.False(t, c.Started)
	assert.Equal(t, 0, c.SliceLeft)
	assert.Equal(t, StateNotArrived, c.State)
	assert.Equal(t, 1, p.RemainingTime)
}

func TestProcess_SliceFor_PrefersOwnQuantum(t *testing.T) {
	own := &Process{Quantum: 5}
	global := &Process{}
	assert.Equal(t, 5, own.sliceFor(2))
	assert.Equal(t, 2, global.sliceFor(2))
}

func TestProcess_String_IncludesState(t *testing.T) {
	p := Process{ID: 4, Name: "db", State: StateReady}
	s := p.String()
	assert.Contains(t, s, "ready")
	assert.Contains(t, s, "db")
}
