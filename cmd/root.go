package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/cpusched/cpusched/sim"
	"github.com/cpusched/cpusched/sim/trace"
	"github.com/cpusched/cpusched/sim/workload"
)

var (
	// CLI flags shared by all commands
	workloadPath string // Path to the YAML workload file
	logLevel     string // Log verbosity level
	logFormat    string // Log output format (text or json)

	// CLI flags overriding workload settings
	algorithm string // Scheduling algorithm name
	quantum   int    // Global RR quantum
	maxTicks  int64  // Tick ceiling, 0 = unbounded
	seed      int64  // Seed for generated processes

	// CLI flags for `run` output
	realTime     bool          // Pace the timeline replay in wall-clock time
	tickInterval time.Duration // Wall-clock duration of one tick in real-time mode
	resultsPath  string        // File to write JSON results to; stdout when empty
	withTimeline bool          // Include the per-tick timeline in the JSON results
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "cpusched",
	Short: "Discrete-time CPU scheduling simulator",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(logLevel, logFormat)
	},
}

// setupLogging configures the package-level logrus logger.
func setupLogging(level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logrus.SetLevel(lvl)
	switch format {
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format %q; valid: text, json", format)
	}
	return nil
}

// loadWorkload reads the workload file and applies any explicitly set flags on top.
func loadWorkload(cmd *cobra.Command) (*workload.WorkloadSpec, error) {
	if workloadPath == "" {
		return nil, fmt.Errorf("--workload is required")
	}
	spec, err := workload.LoadWorkloadSpec(workloadPath)
	if err != nil {
		return nil, err
	}
	applyOverrides(cmd, spec)
	return spec, nil
}

// applyOverrides copies flag values into spec, but only for flags the user set.
// Unset flags never clobber values from the workload file.
func applyOverrides(cmd *cobra.Command, spec *workload.WorkloadSpec) {
	flags := cmd.Flags()
	if flags.Changed("algorithm") {
		spec.Algorithm = algorithm
	}
	if flags.Changed("quantum") {
		spec.Quantum = quantum
	}
	if flags.Changed("max-ticks") {
		spec.MaxTicks = maxTicks
	}
	if flags.Changed("seed") {
		spec.Seed = seed
	}
}

// signalContext is cancelled on interrupt so long replays stop between ticks.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// runCmd executes one simulation using the workload file and flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one scheduling simulation",
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := loadWorkload(cmd)
		if err != nil {
			logrus.Fatalf("Failed to load workload: %v", err)
		}
		ctx, cancel := signalContext()
		defer cancel()

		interval := time.Duration(0)
		if realTime {
			interval = tickInterval
		}
		if err := runSimulation(ctx, os.Stdout, spec, interval); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// runSimulation builds and runs the workload, replays its timeline to w at
// the given pacing, then prints the per-process table and saves the results.
func runSimulation(ctx context.Context, w io.Writer, spec *workload.WorkloadSpec, interval time.Duration) error {
	processes, cfg, err := spec.Build(sim.NewSequentialIDs())
	if err != nil {
		return err
	}
	s, err := sim.NewSimulator(processes, cfg)
	if err != nil {
		return err
	}

	startTime := time.Now()
	m, err := s.RunContext(ctx)
	if err != nil {
		return err
	}
	logrus.Infof("Simulated %d ticks in %v", s.Clock, time.Since(startTime))

	names := processNames(s.Processes)
	err = trace.Replay(ctx, s.Timeline.Entries, interval, func(e trace.TimelineEntry) error {
		return writeTick(w, e, names)
	})
	if err != nil {
		return err
	}

	writeTitle(w, fmt.Sprintf("%v schedule", cfg.Algorithm))
	writeGantt(w, trace.Segments(s.Timeline.Entries), names)
	writeProcessTable(w, sim.ProcessRecords(s.Finished), m)

	return sim.NewMetricsOutput(s, m, withTimeline).SaveResults(resultsPath)
}

// compareCmd runs every algorithm over the same workload
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run all scheduling algorithms over one workload and compare averages",
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := loadWorkload(cmd)
		if err != nil {
			logrus.Fatalf("Failed to load workload: %v", err)
		}
		ctx, cancel := signalContext()
		defer cancel()
		if err := runComparison(ctx, os.Stdout, spec); err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}
	},
}

// runComparison simulates the workload under every algorithm and prints one
// row per algorithm. The workload's own algorithm is ignored; its quantum
// drives the RR run.
func runComparison(ctx context.Context, w io.Writer, spec *workload.WorkloadSpec) error {
	if spec.Algorithm == "" {
		spec.Algorithm = sim.FCFS.String()
	}
	processes, cfg, err := spec.Build(sim.NewSequentialIDs())
	if err != nil {
		return err
	}
	results, err := sim.CompareAlgorithms(ctx, processes, spec.Quantum, cfg.MaxTicks)
	if err != nil {
		return err
	}
	writeTitle(w, fmt.Sprintf("Comparison over %d processes", len(processes)))
	writeComparison(w, results)
	return nil
}

// validateCmd checks a workload file and echoes it back in normalized form
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a workload file",
	Run: func(cmd *cobra.Command, args []string) {
		spec, err := loadWorkload(cmd)
		if err != nil {
			logrus.Fatalf("Failed to load workload: %v", err)
		}
		if err := validateWorkload(os.Stdout, spec); err != nil {
			logrus.Fatalf("Invalid workload: %v", err)
		}
	},
}

// validateWorkload validates spec and writes it to w as YAML.
func validateWorkload(w io.Writer, spec *workload.WorkloadSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(spec); err != nil {
		return fmt.Errorf("encoding workload: %w", err)
	}
	return enc.Close()
}

func processNames(processes []*sim.Process) map[int]string {
	names := make(map[int]string, len(processes))
	for _, p := range processes {
		names[p.ID] = p.Name
	}
	return names
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&workloadPath, "workload", "", "Path to the YAML workload file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")

	for _, c := range []*cobra.Command{runCmd, compareCmd, validateCmd} {
		c.Flags().StringVar(&algorithm, "algorithm", "", "Scheduling algorithm (fcfs, sjf, srtf, rr); overrides the workload file")
		c.Flags().IntVar(&quantum, "quantum", 0, "Global round-robin quantum in ticks; overrides the workload file")
		c.Flags().Int64Var(&maxTicks, "max-ticks", 0, "Tick ceiling, 0 for none; overrides the workload file")
		c.Flags().Int64Var(&seed, "seed", 0, "Seed for generated processes; overrides the workload file")
	}

	runCmd.Flags().BoolVar(&realTime, "real-time", false, "Replay the timeline at one tick per --tick-interval")
	runCmd.Flags().DurationVar(&tickInterval, "tick-interval", trace.TimeUnit, "Wall-clock duration of one tick with --real-time")
	runCmd.Flags().StringVar(&resultsPath, "results-path", "", "File to write JSON results to (stdout when empty)")
	runCmd.Flags().BoolVar(&withTimeline, "timeline", false, "Include the per-tick timeline in the JSON results")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(validateCmd)
}
