// sim/simulator.go
package sim

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/cpusched/cpusched/sim/trace"
)

// Simulator is the core object that holds simulation time, system state, and the tick loop.
// A Simulator is single-use and not safe for concurrent use; run independent
// simulations on independent Simulators.
type Simulator struct {
	Clock  int64
	Config SimConfig
	// Processes holds private clones of the input, sorted by arrival time.
	Processes []*Process
	// Ready holds arrived processes waiting for the CPU.
	Ready *ReadyQueue
	// Running is the process on the CPU, or nil when idle.
	Running *Process
	// Finished lists completed processes in completion order.
	Finished []*Process
	// Timeline has one entry per executed tick.
	Timeline *trace.Timeline

	policy   SelectionPolicy
	admitted int // Processes[:admitted] have been moved to Ready
}

// NewSimulator validates cfg and the process set and prepares a run over
// independent copies of processes. The caller's records are never modified.
func NewSimulator(processes []*Process, cfg SimConfig) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(processes) == 0 {
		return nil, fmt.Errorf("%w: at least one process is required", ErrInvalidConfiguration)
	}
	clones := make([]*Process, len(processes))
	for i, p := range processes {
		if p == nil {
			return nil, fmt.Errorf("%w: process[%d] is nil", ErrInvalidConfiguration, i)
		}
		clones[i] = p.Clone()
	}
	// Stable so equal arrivals keep input order.
	sort.SliceStable(clones, func(i, j int) bool {
		return clones[i].ArrivalTime < clones[j].ArrivalTime
	})

	return &Simulator{
		Clock:     0,
		Config:    cfg,
		Processes: clones,
		Ready:     &ReadyQueue{},
		Finished:  make([]*Process, 0, len(clones)),
		Timeline:  trace.NewTimeline(),
		policy:    NewSelectionPolicy(cfg.Algorithm, cfg.Quantum),
	}, nil
}

// Done reports whether every process has finished.
func (sim *Simulator) Done() bool {
	return len(sim.Finished) == len(sim.Processes)
}

// Run steps the simulation to completion and returns the aggregate metrics.
// If Config.MaxTicks is set and reached first, Run returns ErrTickLimitExceeded;
// the partial Timeline and Finished list remain readable.
func (sim *Simulator) Run() (*Metrics, error) {
	return sim.RunContext(context.Background())
}

// RunContext is Run with cancellation checked between ticks.
func (sim *Simulator) RunContext(ctx context.Context) (*Metrics, error) {
	logrus.Infof("[tick %07d] Starting %v simulation with %d processes", sim.Clock, sim.Config.Algorithm, len(sim.Processes))
	for !sim.Done() {
		if sim.Config.MaxTicks > 0 && sim.Clock >= sim.Config.MaxTicks {
			logrus.Warnf("[tick %07d] Tick limit reached with %d/%d processes finished", sim.Clock, len(sim.Finished), len(sim.Processes))
			return nil, fmt.Errorf("%w: %d ticks, %d/%d processes finished",
				ErrTickLimitExceeded, sim.Config.MaxTicks, len(sim.Finished), len(sim.Processes))
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sim.Step()
	}
	logrus.Infof("[tick %07d] Simulation ended", sim.Clock)
	return ComputeMetrics(sim.Processes)
}

// Step simulates exactly one tick: admit arrivals, select, execute one unit,
// log, then complete or slice-preempt the running process and advance the clock.
func (sim *Simulator) Step() {
	sim.admit()

	if sim.Running == nil || sim.Config.Algorithm.Preemptive() {
		prev := sim.Running
		sim.Running = sim.policy.Select(sim.Ready, sim.Running)
		if prev != nil && prev != sim.Running {
			prev.State = StateReady
			logrus.Debugf("[tick %07d] Preempted process %d (remaining=%d)", sim.Clock, prev.ID, prev.RemainingTime)
		}
		if sim.Running != nil && sim.Running != prev {
			sim.Running.State = StateRunning
			logrus.Debugf("[tick %07d] Dispatched process %d (remaining=%d)", sim.Clock, sim.Running.ID, sim.Running.RemainingTime)
		}
	}

	if p := sim.Running; p != nil {
		if !p.Started {
			p.Started = true
			p.StartTime = int(sim.Clock)
			p.ResponseTime = p.StartTime - p.ArrivalTime
		}
		p.RemainingTime--
		if sim.Config.Algorithm.TimeSliced() {
			p.SliceLeft--
		}
	}

	sim.snapshot()

	if p := sim.Running; p != nil {
		if p.RemainingTime == 0 {
			sim.complete(p)
		} else if sim.Config.Algorithm.TimeSliced() && p.SliceLeft == 0 {
			// Re-armed here; the value is unchanged by the time it is redispatched.
			p.SliceLeft = p.sliceFor(sim.Config.Quantum)
			p.State = StateReady
			sim.Ready.PushBack(p)
			sim.Running = nil
			logrus.Debugf("[tick %07d] Quantum expired for process %d (remaining=%d)", sim.Clock, p.ID, p.RemainingTime)
		}
	}

	sim.Clock++
}

// admit moves processes arriving at the current clock to the ready tail.
func (sim *Simulator) admit() {
	for sim.admitted < len(sim.Processes) {
		p := sim.Processes[sim.admitted]
		if int64(p.ArrivalTime) != sim.Clock {
			break
		}
		p.State = StateReady
		sim.Ready.PushBack(p)
		sim.admitted++
		logrus.Debugf("[tick %07d] Admitted process %d (%s)", sim.Clock, p.ID, p.Name)
	}
}

func (sim *Simulator) complete(p *Process) {
	p.CompletionTime = int(sim.Clock) + 1
	p.TurnaroundTime = p.CompletionTime - p.ArrivalTime
	p.WaitingTime = p.TurnaroundTime - p.BurstTime
	p.State = StateFinished
	sim.Finished = append(sim.Finished, p)
	sim.Running = nil
	logrus.Debugf("[tick %07d] Finished process %d: completion=%d turnaround=%d waiting=%d",
		sim.Clock, p.ID, p.CompletionTime, p.TurnaroundTime, p.WaitingTime)
}

func (sim *Simulator) snapshot() {
	entry := trace.TimelineEntry{
		Tick:     sim.Clock,
		Ready:    sim.Ready.IDs(),
		Finished: make([]int, len(sim.Finished)),
	}
	if sim.Running != nil {
		id := sim.Running.ID
		entry.Running = &id
	}
	for i, p := range sim.Finished {
		entry.Finished[i] = p.ID
	}
	sim.Timeline.Record(entry)
}
