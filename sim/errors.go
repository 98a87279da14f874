package sim

import "errors"

// Validation failures are reported synchronously and never recovered inside
// the engine. Callers match them with errors.Is.
var (
	// ErrInvalidProcessInput reports a bad name, burst, arrival or quantum on a process.
	ErrInvalidProcessInput = errors.New("invalid process input")
	// ErrInvalidConfiguration reports a bad algorithm, quantum, tick ceiling or process set.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrMetricsUndefined reports averages requested over zero processes.
	ErrMetricsUndefined = errors.New("metrics undefined for an empty process set")
	// ErrTickLimitExceeded reports a run that hit its MaxTicks ceiling before every process finished.
	ErrTickLimitExceeded = errors.New("tick limit exceeded")
)
