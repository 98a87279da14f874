package sim

import (
	"testing"

	"github.com/cpusched/cpusched/sim/internal/testutil"
	"github.com/cpusched/cpusched/sim/trace"
)

// spec is a compact process description for tests: name, burst, arrival, quantum.
type spec struct {
	name    string
	burst   int
	arrival int
	quantum int
}

// mustProcesses builds processes with IDs 1..n in input order.
func mustProcesses(t *testing.T, specs ...spec) []*Process {
	t.Helper()
	ids := NewSequentialIDs()
	out := make([]*Process, len(specs))
	for i, s := range specs {
		p, err := NewProcess(ids, s.name, s.burst, s.arrival, s.quantum)
		if err != nil {
			t.Fatalf("NewProcess(%q): %v", s.name, err)
		}
		out[i] = p
	}
	return out
}

// mustRun builds and runs a simulator, failing the test on any error.
func mustRun(t *testing.T, processes []*Process, cfg SimConfig) (*Simulator, *Metrics) {
	t.Helper()
	s, err := NewSimulator(processes, cfg)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	m, err := s.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return s, m
}

// goldenProcesses converts a golden case's inputs to processes.
func goldenProcesses(t *testing.T, tc testutil.GoldenTestCase) []*Process {
	t.Helper()
	specs := make([]spec, len(tc.Processes))
	for i, p := range tc.Processes {
		specs[i] = spec{p.Name, p.BurstTime, p.ArrivalTime, p.Quantum}
	}
	return mustProcesses(t, specs...)
}

// runningNames maps the timeline's running IDs back to process names.
func runningNames(tl *trace.Timeline, processes []*Process) []string {
	names := make(map[int]string, len(processes))
	for _, p := range processes {
		names[p.ID] = p.Name
	}
	out := make([]string, 0, tl.Len())
	for _, id := range tl.RunningSequence() {
		if id < 0 {
			out = append(out, testutil.IdleMarker)
			continue
		}
		out = append(out, names[id])
	}
	return out
}

// finishedByName indexes a simulator's finished processes by name.
func finishedByName(s *Simulator) map[string]*Process {
	out := make(map[string]*Process, len(s.Finished))
	for _, p := range s.Finished {
		out[p.Name] = p
	}
	return out
}
