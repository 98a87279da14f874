// Defines the Process struct that models one schedulable unit in the simulation.
// Tracks arrival, CPU demand, progress, and the timing results derived at completion.

package sim

import (
	"fmt"
	"strings"
	"sync"
)

// ProcessState represents the lifecycle state of a process.
type ProcessState string

const (
	StateNotArrived ProcessState = "not-arrived"
	StateReady      ProcessState = "ready"
	StateRunning    ProcessState = "running"
	StateFinished   ProcessState = "finished"
)

// IDGenerator hands out process identifiers. Callers own the generator, so
// independent simulations in one program never share a hidden counter.
type IDGenerator interface {
	NextID() int
}

// SequentialIDs assigns identifiers 1, 2, 3, ... in call order.
// Safe for concurrent use.
type SequentialIDs struct {
	mu     sync.Mutex
	nextID int
}

// NewSequentialIDs returns a generator whose first identifier is 1.
func NewSequentialIDs() *SequentialIDs {
	return &SequentialIDs{nextID: 1}
}

func (s *SequentialIDs) NextID() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	return id
}

// Process models a single process's lifecycle in the simulation.
// Static inputs are set at construction; the remaining fields are owned by
// the Simulator that is running it and stop changing once it is finished.
type Process struct {
	ID          int    // Stable identifier assigned at creation
	Name        string // Display name (non-empty)
	BurstTime   int    // Total CPU ticks required
	ArrivalTime int    // Tick at which the process becomes eligible to run
	Quantum     int    // Per-process RR slice override; 0 = use the global quantum

	State         ProcessState
	RemainingTime int  // CPU ticks still required
	Started       bool // Whether the process has executed at least once
	StartTime     int  // Tick of first execution (valid when Started)
	SliceLeft     int  // Ticks left in the current RR allotment (RR only)

	CompletionTime int // Tick after the last executed tick
	TurnaroundTime int // CompletionTime - ArrivalTime
	WaitingTime    int // TurnaroundTime - BurstTime
	ResponseTime   int // StartTime - ArrivalTime
}

// NewProcess validates the static inputs and creates a Process with
// RemainingTime set to burst. A quantum of 0 means "no override".
func NewProcess(ids IDGenerator, name string, burst, arrival, quantum int) (*Process, error) {
	if ids == nil {
		panic("NewProcess: ids must not be nil")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidProcessInput)
	}
	if burst <= 0 {
		return nil, fmt.Errorf("%w: process %q: burst time must be positive, got %d", ErrInvalidProcessInput, name, burst)
	}
	if arrival < 0 {
		return nil, fmt.Errorf("%w: process %q: arrival time must be non-negative, got %d", ErrInvalidProcessInput, name, arrival)
	}
	if quantum < 0 {
		return nil, fmt.Errorf("%w: process %q: quantum must be positive when set, got %d", ErrInvalidProcessInput, name, quantum)
	}
	return &Process{
		ID:            ids.NextID(),
		Name:          name,
		BurstTime:     burst,
		ArrivalTime:   arrival,
		Quantum:       quantum,
		State:         StateNotArrived,
		RemainingTime: burst,
	}, nil
}

// Clone returns a copy carrying the same identity and static inputs with all
// simulation state reset.
func (p *Process) Clone() *Process {
	return &Process{
		ID:            p.ID,
		Name:          p.Name,
		BurstTime:     p.BurstTime,
		ArrivalTime:   p.ArrivalTime,
		Quantum:       p.Quantum,
		State:         StateNotArrived,
		RemainingTime: p.BurstTime,
	}
}

// sliceFor returns the RR allotment for p: its own quantum if set, else global.
func (p *Process) sliceFor(global int) int {
	if p.Quantum > 0 {
		return p.Quantum
	}
	return global
}

func (p Process) String() string {
	return fmt.Sprintf("Process: (ID: %d, Name: %s, State: %s, Remaining: %d, Arrival: %d)", p.ID, p.Name, p.State, p.RemainingTime, p.ArrivalTime)
}
