package sim

import (
	"fmt"
	"strings"
)

// Algorithm selects one of the four CPU scheduling strategies.
// The zero value is not a valid algorithm.
type Algorithm int

const (
	FCFS Algorithm = iota + 1
	SJF
	SRTF
	RoundRobin
)

// Algorithms lists every supported algorithm in canonical order.
var Algorithms = []Algorithm{FCFS, SJF, SRTF, RoundRobin}

var algorithmNames = map[Algorithm]string{
	FCFS:       "fcfs",
	SJF:        "sjf",
	SRTF:       "srtf",
	RoundRobin: "rr",
}

// validAlgorithmNames maps accepted (lower-cased) names to algorithms.
var validAlgorithmNames = map[string]Algorithm{
	"fcfs":        FCFS,
	"sjf":         SJF,
	"srtf":        SRTF,
	"rr":          RoundRobin,
	"round-robin": RoundRobin,
}

func (a Algorithm) String() string {
	if name, ok := algorithmNames[a]; ok {
		return name
	}
	return fmt.Sprintf("algorithm(%d)", int(a))
}

// Valid reports whether a is one of the four supported algorithms.
func (a Algorithm) Valid() bool {
	_, ok := algorithmNames[a]
	return ok
}

// Preemptive reports whether selection runs every tick, even while a process
// holds the CPU. Only SRTF does.
func (a Algorithm) Preemptive() bool {
	return a == SRTF
}

// TimeSliced reports whether running processes are bounded by a quantum.
func (a Algorithm) TimeSliced() bool {
	return a == RoundRobin
}

// ParseAlgorithm resolves a case-insensitive algorithm name.
// Valid names: "fcfs", "sjf", "srtf", "rr" (alias "round-robin").
func ParseAlgorithm(name string) (Algorithm, error) {
	if a, ok := validAlgorithmNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("%w: unknown algorithm %q; valid: fcfs, sjf, srtf, rr", ErrInvalidConfiguration, name)
}

// IsValidAlgorithm returns true if name resolves to a supported algorithm.
func IsValidAlgorithm(name string) bool {
	_, err := ParseAlgorithm(name)
	return err == nil
}

// SelectionPolicy decides which process occupies the CPU for the current tick.
// Select receives the ready queue and the current running process (nil if idle)
// and returns the process to run (nil if none). Any process it takes out of
// ready, or puts back into ready, is moved by Select itself.
type SelectionPolicy interface {
	Select(ready *ReadyQueue, running *Process) *Process
}

// FCFSPolicy dispatches in arrival order and never preempts.
type FCFSPolicy struct{}

func (f *FCFSPolicy) Select(ready *ReadyQueue, running *Process) *Process {
	if running != nil {
		return running
	}
	return ready.PopFront()
}

// SJFPolicy dispatches the ready process with the smallest burst time and
// never preempts once started. Ties go to the earliest queue position.
// Warning: SJF can starve long processes under a steady stream of short ones.
type SJFPolicy struct{}

func (s *SJFPolicy) Select(ready *ReadyQueue, running *Process) *Process {
	if running != nil {
		return running
	}
	i := ready.MinBy(func(p *Process) int { return p.BurstTime })
	if i < 0 {
		return nil
	}
	return ready.RemoveAt(i)
}

// SRTFPolicy picks the process with the least remaining time among ready and
// running, every tick. Ties keep the running process; among ready processes
// the earliest queue position wins. A displaced process goes to the ready tail.
type SRTFPolicy struct{}

func (s *SRTFPolicy) Select(ready *ReadyQueue, running *Process) *Process {
	i := ready.MinBy(func(p *Process) int { return p.RemainingTime })
	if i < 0 {
		return running
	}
	if running != nil && running.RemainingTime <= ready.Items()[i].RemainingTime {
		return running
	}
	winner := ready.RemoveAt(i)
	if running != nil {
		ready.PushBack(running)
	}
	return winner
}

// RoundRobinPolicy dispatches in FIFO order and arms the dispatched process's
// slice with its own quantum, or Quantum when it has none. Slice expiry is
// enforced by the Simulator after each executed tick.
type RoundRobinPolicy struct {
	Quantum int // global quantum (> 0)
}

func (r *RoundRobinPolicy) Select(ready *ReadyQueue, running *Process) *Process {
	if running != nil {
		return running
	}
	next := ready.PopFront()
	if next != nil && next.SliceLeft <= 0 {
		next.SliceLeft = next.sliceFor(r.Quantum)
	}
	return next
}

// NewSelectionPolicy creates the SelectionPolicy for an algorithm.
// quantum is only read for RoundRobin. Panics on an invalid algorithm;
// NewSimulator validates before calling.
func NewSelectionPolicy(a Algorithm, quantum int) SelectionPolicy {
	switch a {
	case FCFS:
		return &FCFSPolicy{}
	case SJF:
		return &SJFPolicy{}
	case SRTF:
		return &SRTFPolicy{}
	case RoundRobin:
		return &RoundRobinPolicy{Quantum: quantum}
	default:
		panic(fmt.Sprintf("unhandled algorithm %v", a))
	}
}
