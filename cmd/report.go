package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/cpusched/cpusched/sim"
	"github.com/cpusched/cpusched/sim/trace"
)

func writeTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

// writeTick prints one replayed timeline entry.
func writeTick(w io.Writer, e trace.TimelineEntry, names map[int]string) error {
	running := "idle"
	if id, ok := e.RunningID(); ok {
		running = names[id]
	}
	_, err := fmt.Fprintf(w, "[tick %07d] running=%s ready=%s finished=%s\n",
		e.Tick, running, nameList(e.Ready, names), nameList(e.Finished, names))
	return err
}

func nameList(ids []int, names map[int]string) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = names[id]
	}
	return "[" + strings.Join(out, " ") + "]"
}

// writeGantt prints execution spans as a one-line chart with span boundaries below.
// Idle gaps show up as jumps between consecutive boundaries.
func writeGantt(w io.Writer, segs []trace.Segment, names map[int]string) {
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	_, _ = fmt.Fprint(w, "|")
	for _, seg := range segs {
		name := names[seg.ProcessID]
		padding := strings.Repeat(" ", max(0, (8-len(name))/2))
		_, _ = fmt.Fprint(w, padding, name, padding, "|")
	}
	_, _ = fmt.Fprintln(w)
	for i, seg := range segs {
		_, _ = fmt.Fprint(w, seg.First, "\t")
		if i == len(segs)-1 {
			_, _ = fmt.Fprint(w, seg.Last+1)
		}
	}
	_, _ = fmt.Fprintf(w, "\n\n")
}

// writeProcessTable prints one row per process with the averages in the footer.
func writeProcessTable(w io.Writer, records []sim.ProcessRecord, m *sim.Metrics) {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			strconv.Itoa(r.ID),
			r.Name,
			strconv.Itoa(r.ArrivalTime),
			strconv.Itoa(r.BurstTime),
			strconv.Itoa(r.CompletionTime),
			strconv.Itoa(r.TurnaroundTime),
			strconv.Itoa(r.WaitingTime),
			strconv.Itoa(r.ResponseTime),
		}
	}
	_, _ = fmt.Fprintln(w, "Schedule table")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Name", "Arrival", "Burst", "Completion", "Turnaround", "Waiting", "Response"})
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "",
		fmt.Sprintf("Throughput\n%.2f/t", m.Throughput),
		fmt.Sprintf("Average\n%.2f", m.AvgTurnaround),
		fmt.Sprintf("Average\n%.2f", m.AvgWaiting),
		fmt.Sprintf("Average\n%.2f", m.AvgResponse)})
	table.Render()
}

// writeComparison prints one row of averages per algorithm.
func writeComparison(w io.Writer, results []sim.ComparisonResult) {
	rows := make([][]string, len(results))
	for i, r := range results {
		summary := trace.Summarize(r.Simulator.Timeline)
		rows[i] = []string{
			r.Algorithm.String(),
			fmt.Sprintf("%.2f", r.Metrics.AvgWaiting),
			fmt.Sprintf("%.2f", r.Metrics.AvgTurnaround),
			fmt.Sprintf("%.2f", r.Metrics.AvgResponse),
			strconv.Itoa(r.Metrics.Makespan),
			strconv.Itoa(summary.ContextSwitches),
			fmt.Sprintf("%.1f%%", summary.Utilization*100),
		}
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Algorithm", "Avg Waiting", "Avg Turnaround", "Avg Response", "Makespan", "Switches", "CPU"})
	table.AppendBulk(rows)
	table.Render()
}
