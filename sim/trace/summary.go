package trace

// TimelineSummary aggregates statistics from a Timeline.
type TimelineSummary struct {
	TotalTicks      int64         `json:"total_ticks"`
	BusyTicks       int64         `json:"busy_ticks"`
	IdleTicks       int64         `json:"idle_ticks"`
	Dispatches      int           `json:"dispatches"`       // number of execution segments
	ContextSwitches int           `json:"context_switches"` // adjacent segments on different processes
	Utilization     float64       `json:"cpu_utilization"`  // BusyTicks / TotalTicks
	ExecutedTicks   map[int]int64 `json:"executed_ticks"`   // process ID → ticks on CPU
}

// Summarize computes aggregate statistics from a Timeline.
// Safe for nil or empty timelines (returns zero-value fields).
func Summarize(tl *Timeline) *TimelineSummary {
	summary := &TimelineSummary{
		ExecutedTicks: make(map[int]int64),
	}
	if tl == nil || len(tl.Entries) == 0 {
		return summary
	}

	summary.TotalTicks = int64(len(tl.Entries))
	for _, e := range tl.Entries {
		if id, ok := e.RunningID(); ok {
			summary.BusyTicks++
			summary.ExecutedTicks[id]++
		} else {
			summary.IdleTicks++
		}
	}

	segs := Segments(tl.Entries)
	summary.Dispatches = len(segs)
	for i := 1; i < len(segs); i++ {
		if segs[i].ProcessID != segs[i-1].ProcessID {
			summary.ContextSwitches++
		}
	}
	summary.Utilization = float64(summary.BusyTicks) / float64(summary.TotalTicks)

	return summary
}
