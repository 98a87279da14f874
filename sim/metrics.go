// Tracks per-process timing results and the aggregate averages of a run.

package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cpusched/cpusched/sim/trace"
)

// Metrics aggregates the timing results of a finished simulation.
type Metrics struct {
	Processes     int     `json:"processes"`
	AvgWaiting    float64 `json:"avg_waiting"`
	AvgTurnaround float64 `json:"avg_turnaround"`
	AvgResponse   float64 `json:"avg_response"`
	Makespan      int     `json:"makespan"`   // latest completion time
	Throughput    float64 `json:"throughput"` // processes per tick over the makespan
}

type IntOrFloat64 interface {
	int | int64 | float64
}

// CalculateMean is a util function that calculates the mean of a data list.
// Returns 0 for an empty list.
func CalculateMean[T IntOrFloat64](numbers []T) float64 {
	if len(numbers) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, number := range numbers {
		sum += float64(number)
	}

	return sum / float64(len(numbers))
}

// ComputeMetrics averages waiting, turnaround and response times over all
// processes. Every process is expected to be finished.
func ComputeMetrics(processes []*Process) (*Metrics, error) {
	n := len(processes)
	if n == 0 {
		return nil, ErrMetricsUndefined
	}
	waiting := make([]int, n)
	turnaround := make([]int, n)
	response := make([]int, n)
	makespan := 0
	for i, p := range processes {
		waiting[i] = p.WaitingTime
		turnaround[i] = p.TurnaroundTime
		response[i] = p.ResponseTime
		makespan = max(makespan, p.CompletionTime)
	}
	m := &Metrics{
		Processes:     n,
		AvgWaiting:    CalculateMean(waiting),
		AvgTurnaround: CalculateMean(turnaround),
		AvgResponse:   CalculateMean(response),
		Makespan:      makespan,
	}
	if makespan > 0 {
		m.Throughput = float64(n) / float64(makespan)
	}
	return m, nil
}

// ProcessRecord is the JSON form of one finished process.
type ProcessRecord struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	ArrivalTime    int    `json:"arrival_time"`
	BurstTime      int    `json:"burst_time"`
	Quantum        int    `json:"quantum,omitempty"`
	StartTime      int    `json:"start_time"`
	CompletionTime int    `json:"completion_time"`
	TurnaroundTime int    `json:"turnaround_time"`
	WaitingTime    int    `json:"waiting_time"`
	ResponseTime   int    `json:"response_time"`
}

// MetricsOutput is the JSON document written at the end of a run.
type MetricsOutput struct {
	RunID     string                 `json:"run_id"`
	Algorithm string                 `json:"algorithm"`
	Quantum   int                    `json:"quantum,omitempty"`
	Metrics   *Metrics               `json:"metrics"`
	Summary   *trace.TimelineSummary `json:"timeline_summary"`
	Processes []ProcessRecord        `json:"processes"`
	Timeline  []trace.TimelineEntry  `json:"timeline,omitempty"`
}

// NewMetricsOutput assembles the results of a completed simulation.
// Processes are listed by ID; the full timeline is included on request.
func NewMetricsOutput(s *Simulator, m *Metrics, withTimeline bool) *MetricsOutput {
	out := &MetricsOutput{
		RunID:     uuid.New().String(),
		Algorithm: s.Config.Algorithm.String(),
		Metrics:   m,
		Summary:   trace.Summarize(s.Timeline),
		Processes: ProcessRecords(s.Finished),
	}
	if s.Config.Algorithm.TimeSliced() {
		out.Quantum = s.Config.Quantum
	}
	if withTimeline {
		out.Timeline = s.Timeline.Entries
	}
	return out
}

// ProcessRecords converts processes to records sorted by ID.
func ProcessRecords(processes []*Process) []ProcessRecord {
	records := make([]ProcessRecord, len(processes))
	for i, p := range processes {
		records[i] = ProcessRecord{
			ID:             p.ID,
			Name:           p.Name,
			ArrivalTime:    p.ArrivalTime,
			BurstTime:      p.BurstTime,
			Quantum:        p.Quantum,
			StartTime:      p.StartTime,
			CompletionTime: p.CompletionTime,
			TurnaroundTime: p.TurnaroundTime,
			WaitingTime:    p.WaitingTime,
			ResponseTime:   p.ResponseTime,
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records
}

// SaveResults writes the output as indented JSON to path, or to stdout under
// a header when path is empty.
func (o *MetricsOutput) SaveResults(path string) error {
	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	if path == "" {
		fmt.Println("=== Simulation Metrics ===")
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing results to %s: %w", path, err)
	}
	logrus.Debugf("Successfully wrote results to '%s'", path)
	return nil
}
