// Package testutil provides shared test infrastructure for the scheduling simulator.
// It consolidates golden dataset types and assertion helpers used across
// sim/ and its sub-package tests. It must not import sim/ (sim tests import it).
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// IdleMarker stands for an idle tick in GoldenTestCase.Running.
const IdleMarker = "-"

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one hand-traced scheduling scenario.
type GoldenTestCase struct {
	Name      string                  `json:"name"`
	Algorithm string                  `json:"algorithm"`
	Quantum   int                     `json:"quantum"`
	Processes []GoldenProcess         `json:"processes"`
	Running   []string                `json:"running"` // process name per tick, IdleMarker when idle
	Expected  map[string]GoldenTiming `json:"expected"`
	Metrics   GoldenMetrics           `json:"metrics"`
}

// GoldenProcess is a process input in input order.
type GoldenProcess struct {
	Name        string `json:"name"`
	BurstTime   int    `json:"burst_time"`
	ArrivalTime int    `json:"arrival_time"`
	Quantum     int    `json:"quantum"`
}

// GoldenTiming holds the expected derived fields of one process.
type GoldenTiming struct {
	CompletionTime int `json:"completion_time"`
	TurnaroundTime int `json:"turnaround_time"`
	WaitingTime    int `json:"waiting_time"`
	ResponseTime   int `json:"response_time"`
}

// GoldenMetrics represents the expected averages of a golden test case.
type GoldenMetrics struct {
	AvgWaiting    float64 `json:"avg_waiting"`
	AvgTurnaround float64 `json:"avg_turnaround"`
	AvgResponse   float64 `json:"avg_response"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
