// Package trace records the tick-by-tick execution timeline of a scheduling run.
// It has no dependencies on sim/ and stores pure data types.
package trace

// TimelineEntry captures CPU and queue state for one simulated tick.
type TimelineEntry struct {
	Tick     int64 `json:"tick"`
	Running  *int  `json:"running"`      // nil when the CPU was idle
	Ready    []int `json:"ready_ids"`    // ready-queue order after selection
	Finished []int `json:"finished_ids"` // completion order before this tick's completion check
}

// Idle reports whether no process ran during the tick.
func (e TimelineEntry) Idle() bool {
	return e.Running == nil
}

// RunningID returns the ID of the process that ran, if any.
func (e TimelineEntry) RunningID() (int, bool) {
	if e.Running == nil {
		return 0, false
	}
	return *e.Running, true
}

// Timeline is an append-only log with one entry per simulated tick.
type Timeline struct {
	Entries []TimelineEntry
}

// NewTimeline creates a Timeline ready for recording.
func NewTimeline() *Timeline {
	return &Timeline{Entries: make([]TimelineEntry, 0)}
}

// Record appends an entry.
func (tl *Timeline) Record(entry TimelineEntry) {
	tl.Entries = append(tl.Entries, entry)
}

// Len returns the number of recorded ticks.
func (tl *Timeline) Len() int {
	if tl == nil {
		return 0
	}
	return len(tl.Entries)
}

// At returns the entry for the given tick.
func (tl *Timeline) At(tick int64) (TimelineEntry, bool) {
	if tl == nil || tick < 0 || tick >= int64(len(tl.Entries)) {
		return TimelineEntry{}, false
	}
	return tl.Entries[tick], true
}

// RunningSequence returns the running process per tick, with idle ticks as -1.
func (tl *Timeline) RunningSequence() []int {
	seq := make([]int, tl.Len())
	for i, e := range tl.Entries {
		if id, ok := e.RunningID(); ok {
			seq[i] = id
		} else {
			seq[i] = -1
		}
	}
	return seq
}

// Segment is a maximal run of consecutive ticks on which the same process held the CPU.
type Segment struct {
	ProcessID int   `json:"process_id"`
	First     int64 `json:"first_tick"`
	Last      int64 `json:"last_tick"` // inclusive
}

// Len returns the number of ticks covered by the segment.
func (s Segment) Len() int64 {
	return s.Last - s.First + 1
}

// Segments collapses the timeline into execution spans. Idle ticks end a span
// and are not reported.
func Segments(entries []TimelineEntry) []Segment {
	var segs []Segment
	for _, e := range entries {
		id, ok := e.RunningID()
		if !ok {
			continue
		}
		if n := len(segs); n > 0 && segs[n-1].ProcessID == id && segs[n-1].Last == e.Tick-1 {
			segs[n-1].Last = e.Tick
			continue
		}
		segs = append(segs, Segment{ProcessID: id, First: e.Tick, Last: e.Tick})
	}
	return segs
}
