package workload

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cpusched/cpusched/sim"
)

// WorkloadSpec is the top-level workload configuration.
// Loaded from YAML via LoadWorkloadSpec(path).
type WorkloadSpec struct {
	Version   string        `yaml:"version"`
	Algorithm string        `yaml:"algorithm"`
	Quantum   int           `yaml:"quantum,omitempty"`   // global RR quantum
	MaxTicks  int64         `yaml:"max_ticks,omitempty"` // 0 = unbounded
	Seed      int64         `yaml:"seed,omitempty"`
	Processes []ProcessSpec `yaml:"processes,omitempty"`
	Generate  *GenerateSpec `yaml:"generate,omitempty"`
}

// ProcessSpec describes one explicitly listed process.
type ProcessSpec struct {
	Name        string `yaml:"name"`
	BurstTime   int    `yaml:"burst_time"`
	ArrivalTime int    `yaml:"arrival_time"`
	Quantum     int    `yaml:"quantum,omitempty"` // per-process RR override
}

// GenerateSpec synthesizes processes from seeded distributions.
type GenerateSpec struct {
	Count      int         `yaml:"count"`
	NamePrefix string      `yaml:"name_prefix,omitempty"` // default "P"
	Arrival    ArrivalSpec `yaml:"arrival"`
	Burst      DistSpec    `yaml:"burst_distribution"`
}

// ArrivalSpec configures the inter-arrival time process.
type ArrivalSpec struct {
	Process string  `yaml:"process"`
	Rate    float64 `yaml:"rate"` // processes per tick
}

// DistSpec parameterizes a burst-time distribution.
type DistSpec struct {
	Type   string             `yaml:"type"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

// Valid value registries.
var (
	validArrivalProcesses = map[string]bool{
		"poisson": true, "constant": true,
	}
	validDistTypes = map[string]bool{
		"gaussian": true, "exponential": true, "uniform": true, "constant": true,
	}
	validVersions = map[string]bool{
		"": true, "1": true,
	}
)

// LoadWorkloadSpec reads and parses a YAML workload specification file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadWorkloadSpec(path string) (*WorkloadSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading workload spec: %w", err)
	}
	return ParseWorkloadSpec(data)
}

// ParseWorkloadSpec parses YAML workload bytes with strict field checking.
func ParseWorkloadSpec(data []byte) (*WorkloadSpec, error) {
	var spec WorkloadSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing workload spec: %w", err)
	}
	if spec.Version == "" {
		spec.Version = "1"
	}
	return &spec, nil
}

// Validate checks that all fields in the spec are valid.
// Errors wrap sim.ErrInvalidConfiguration or sim.ErrInvalidProcessInput.
func (s *WorkloadSpec) Validate() error {
	if !validVersions[s.Version] {
		return fmt.Errorf("%w: unsupported workload version %q", sim.ErrInvalidConfiguration, s.Version)
	}
	cfg, err := s.SimConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(s.Processes) == 0 && s.Generate == nil {
		return fmt.Errorf("%w: at least one process or a generate section is required", sim.ErrInvalidConfiguration)
	}
	for i, p := range s.Processes {
		if err := validateProcess(&p, i); err != nil {
			return err
		}
	}
	if s.Generate != nil {
		if err := validateGenerate(s.Generate); err != nil {
			return err
		}
	}
	return nil
}

// SimConfig resolves the algorithm name and returns the engine configuration.
func (s *WorkloadSpec) SimConfig() (sim.SimConfig, error) {
	algo, err := sim.ParseAlgorithm(s.Algorithm)
	if err != nil {
		return sim.SimConfig{}, err
	}
	return sim.NewSimConfig(algo, s.Quantum, s.MaxTicks), nil
}

// Build validates the spec and creates its processes, listed ones first,
// drawing IDs from ids. Generated processes are deterministic given Seed.
func (s *WorkloadSpec) Build(ids sim.IDGenerator) ([]*sim.Process, sim.SimConfig, error) {
	if err := s.Validate(); err != nil {
		return nil, sim.SimConfig{}, err
	}
	cfg, err := s.SimConfig()
	if err != nil {
		return nil, sim.SimConfig{}, err
	}
	processes := make([]*sim.Process, 0, len(s.Processes))
	for _, ps := range s.Processes {
		p, err := sim.NewProcess(ids, ps.Name, ps.BurstTime, ps.ArrivalTime, ps.Quantum)
		if err != nil {
			return nil, sim.SimConfig{}, err
		}
		processes = append(processes, p)
	}
	if s.Generate != nil {
		generated, err := GenerateProcesses(s.Generate, s.Seed, ids)
		if err != nil {
			return nil, sim.SimConfig{}, err
		}
		processes = append(processes, generated...)
	}
	return processes, cfg, nil
}

func validateProcess(p *ProcessSpec, idx int) error {
	prefix := fmt.Sprintf("processes[%d]", idx)
	if p.Name == "" {
		return fmt.Errorf("%w: %s: name is required", sim.ErrInvalidProcessInput, prefix)
	}
	if p.BurstTime <= 0 {
		return fmt.Errorf("%w: %s: burst_time must be positive, got %d", sim.ErrInvalidProcessInput, prefix, p.BurstTime)
	}
	if p.ArrivalTime < 0 {
		return fmt.Errorf("%w: %s: arrival_time must be non-negative, got %d", sim.ErrInvalidProcessInput, prefix, p.ArrivalTime)
	}
	if p.Quantum < 0 {
		return fmt.Errorf("%w: %s: quantum must be positive when set, got %d", sim.ErrInvalidProcessInput, prefix, p.Quantum)
	}
	return nil
}

func validateGenerate(g *GenerateSpec) error {
	if g.Count <= 0 {
		return fmt.Errorf("%w: generate.count must be positive, got %d", sim.ErrInvalidConfiguration, g.Count)
	}
	if !validArrivalProcesses[g.Arrival.Process] {
		return fmt.Errorf("%w: generate.arrival: unknown process %q; valid: poisson, constant", sim.ErrInvalidConfiguration, g.Arrival.Process)
	}
	if err := validateFinitePositive("generate.arrival.rate", g.Arrival.Rate); err != nil {
		return err
	}
	if !validDistTypes[g.Burst.Type] {
		return fmt.Errorf("%w: generate.burst_distribution: unknown type %q; valid: gaussian, exponential, uniform, constant", sim.ErrInvalidConfiguration, g.Burst.Type)
	}
	for name, val := range g.Burst.Params {
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("%w: generate.burst_distribution.params.%s must be a finite number, got %f", sim.ErrInvalidConfiguration, name, val)
		}
	}
	if _, err := NewLengthSampler(g.Burst); err != nil {
		return fmt.Errorf("%w: generate.burst_distribution: %v", sim.ErrInvalidConfiguration, err)
	}
	return nil
}

func validateFinitePositive(name string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return fmt.Errorf("%w: %s must be a finite number, got %f", sim.ErrInvalidConfiguration, name, val)
	}
	if val <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %f", sim.ErrInvalidConfiguration, name, val)
	}
	return nil
}
