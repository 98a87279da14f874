// Package sim provides the discrete-time CPU scheduling engine.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - process.go: Process lifecycle (not-arrived → ready ⇄ running → finished) and PID generation
//   - scheduler.go: the Algorithm enum and the four SelectionPolicy implementations
//   - simulator.go: the tick loop (admit, select, execute, log, complete/preempt, advance)
//
// # Architecture
//
// The engine is pacing-free and deterministic: a Simulator clones its input,
// advances one tick per Step, and records a trace.Timeline. Sub-packages:
//   - sim/trace/: timeline entries, execution segments, summaries, paced replay
//   - sim/workload/: YAML workload specs that build processes and a SimConfig,
//     including seeded synthetic process generation
//
// Results are averaged by ComputeMetrics (metrics.go) and serialized through
// MetricsOutput. CompareAlgorithms (compare.go) runs all four algorithms over
// one process set concurrently.
//
// # Key Interfaces
//
//   - SelectionPolicy: pick the process for the current tick, moving processes
//     in and out of the ReadyQueue as needed
//   - IDGenerator: caller-owned source of process identifiers
package sim
