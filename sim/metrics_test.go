package sim

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateMean(t *testing.T) {
	assert.Equal(t, 0.0, CalculateMean([]int{}))
	assert.InDelta(t, 2.5, CalculateMean([]int{1, 2, 3, 4}), 1e-9)
	assert.InDelta(t, 1.5, CalculateMean([]float64{1, 2}), 1e-9)
	assert.InDelta(t, 7.0, CalculateMean([]int64{7}), 1e-9)
}

func TestComputeMetrics_Empty_Undefined(t *testing.T) {
	m, err := ComputeMetrics(nil)
	assert.Nil(t, m)
	assert.True(t, errors.Is(err, ErrMetricsUndefined))
}

func TestComputeMetrics_Averages(t *testing.T) {
	// GIVEN three finished processes with known timings
	processes := []*Process{
		{ID: 1, CompletionTime: 4, TurnaroundTime: 4, WaitingTime: 0, ResponseTime: 0},
		{ID: 2, CompletionTime: 9, TurnaroundTime: 8, WaitingTime: 3, ResponseTime: 1},
		{ID: 3, CompletionTime: 6, TurnaroundTime: 3, WaitingTime: 1, ResponseTime: 1},
	}

	// WHEN metrics are computed
	m, err := ComputeMetrics(processes)

	// THEN each average is the arithmetic mean
	require.NoError(t, err)
	assert.Equal(t, 3, m.Processes)
	assert.InDelta(t, 4.0/3.0, m.AvgWaiting, 1e-9)
	assert.InDelta(t, 5.0, m.AvgTurnaround, 1e-9)
	assert.InDelta(t, 2.0/3.0, m.AvgResponse, 1e-9)
	assert.Equal(t, 9, m.Makespan)
	assert.InDelta(t, 3.0/9.0, m.Throughput, 1e-9)
}

func TestProcessRecords_SortedByID(t *testing.T) {
	processes := mustProcesses(t, spec{"A", 3, 0, 0}, spec{"B", 1, 0, 0}, spec{"C", 2, 0, 0})
	s, _ := mustRun(t, processes, NewSimConfig(SJF, 0, 0))
	require.Equal(t, "B", s.Finished[0].Name)

	records := ProcessRecords(s.Finished)

	require.Len(t, records, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{records[0].Name, records[1].Name, records[2].Name})
	assert.Equal(t, 6, records[0].CompletionTime)
	assert.Equal(t, 3, records[0].WaitingTime)
}

func TestNewMetricsOutput_QuantumOnlyForRoundRobin(t *testing.T) {
	processes := mustProcesses(t, spec{"A", 2, 0, 0})

	s, m := mustRun(t, processes, NewSimConfig(FCFS, 4, 0))
	out := NewMetricsOutput(s, m, false)
	assert.Equal(t, "fcfs", out.Algorithm)
	assert.Zero(t, out.Quantum)
	assert.Nil(t, out.Timeline)

	s, m = mustRun(t, processes, NewSimConfig(RoundRobin, 4, 0))
	out = NewMetricsOutput(s, m, true)
	assert.Equal(t, "rr", out.Algorithm)
	assert.Equal(t, 4, out.Quantum)
	assert.Len(t, out.Timeline, 2)
	_, err := uuid.Parse(out.RunID)
	assert.NoError(t, err)
}

func TestMetricsOutput_SaveResults_WritesJSON(t *testing.T) {
	// GIVEN a completed run
	processes := mustProcesses(t, spec{"A", 3, 0, 0}, spec{"B", 2, 1, 0})
	s, m := mustRun(t, processes, NewSimConfig(FCFS, 0, 0))
	out := NewMetricsOutput(s, m, true)
	path := filepath.Join(t.TempDir(), "results.json")

	// WHEN saved to a file
	require.NoError(t, out.SaveResults(path))

	// THEN the document round-trips with its summary and timeline
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, out.RunID, got["run_id"])
	assert.Equal(t, "fcfs", got["algorithm"])
	assert.NotContains(t, got, "quantum")
	metrics := got["metrics"].(map[string]any)
	assert.InDelta(t, 1.0, metrics["avg_waiting"], 1e-9)
	assert.InDelta(t, 3.5, metrics["avg_turnaround"], 1e-9)
	assert.Len(t, got["processes"], 2)
	assert.Len(t, got["timeline"], 5)
	summary := got["timeline_summary"].(map[string]any)
	assert.EqualValues(t, 5, summary["total_ticks"])
}

func TestMetricsOutput_SaveResults_BadPath(t *testing.T) {
	processes := mustProcesses(t, spec{"A", 1, 0, 0})
	s, m := mustRun(t, processes, NewSimConfig(FCFS, 0, 0))

	err := NewMetricsOutput(s, m, false).SaveResults(filepath.Join(t.TempDir(), "missing", "out.json"))

	assert.Error(t, err)
}
