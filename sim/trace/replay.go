package trace

import (
	"context"
	"time"
)

// TimeUnit is the wall-clock duration of one simulated tick in real-time mode.
const TimeUnit = 5 * time.Second

// Replay hands entries to fn in order, waiting interval between consecutive
// entries. An interval of 0 replays without delay. Replay stops at the first
// error from fn, or with ctx.Err() when ctx is cancelled between entries.
func Replay(ctx context.Context, entries []TimelineEntry, interval time.Duration, fn func(TimelineEntry) error) error {
	var timer *time.Timer
	if interval > 0 {
		timer = time.NewTimer(interval)
		defer timer.Stop()
	}
	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 && timer != nil {
			timer.Reset(interval)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}
