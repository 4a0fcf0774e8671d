// Package workload defines the synthetic scenarios the wallprof CLI runs to
// demonstrate profiling: named steps that burn CPU, sleep, or sample system
// state, each timed as one profiler action per iteration.
package workload

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Kind selects what a step does per iteration
type Kind string

const (
	KindBusy         Kind = "busy"          // spin the CPU for the configured duration
	KindSleep        Kind = "sleep"         // sleep for the configured duration
	KindSampleCPU    Kind = "sample-cpu"    // take one CPU usage sample
	KindSampleMemory Kind = "sample-memory" // take one virtual memory sample
)

// Step is one named unit of work in a scenario
type Step struct {
	Action   string `yaml:"action"`
	Kind     Kind   `yaml:"kind"`
	Duration string `yaml:"duration,omitempty"` // e.g. "50ms"; required for busy and sleep
	Repeat   int    `yaml:"repeat,omitempty"`   // iterations, default 1

	interval time.Duration
}

// Interval returns the parsed step duration. Zero for sampling steps.
func (s *Step) Interval() time.Duration {
	return s.interval
}

// Scenario is an ordered list of steps
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Load reads and validates a scenario from a YAML file
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}

	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Validate checks every step, applies the repeat default, and parses
// durations into their runtime form.
func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("scenario %q has no steps", s.Name)
	}

	for i := range s.Steps {
		step := &s.Steps[i]

		if step.Action == "" {
			return fmt.Errorf("step %d has no action name", i)
		}
		if step.Repeat == 0 {
			step.Repeat = 1
		}
		if step.Repeat < 0 {
			return fmt.Errorf("step %q: repeat must be positive, got %d", step.Action, step.Repeat)
		}

		switch step.Kind {
		case KindBusy, KindSleep:
			if step.Duration == "" {
				return fmt.Errorf("step %q: kind %q requires a duration", step.Action, step.Kind)
			}
			d, err := time.ParseDuration(step.Duration)
			if err != nil {
				return fmt.Errorf("step %q: invalid duration: %w", step.Action, err)
			}
			if d <= 0 {
				return fmt.Errorf("step %q: duration must be positive, got %s", step.Action, step.Duration)
			}
			step.interval = d
		case KindSampleCPU, KindSampleMemory:
			// No duration; the sample itself is the work
		default:
			return fmt.Errorf("step %q: unknown kind %q", step.Action, step.Kind)
		}
	}

	return nil
}

// Default returns the built-in scenario used when no file is given.
func Default() *Scenario {
	s := &Scenario{
		Name: "default",
		Steps: []Step{
			{Action: "parse", Kind: KindBusy, Duration: "30ms", Repeat: 3},
			{Action: "encode", Kind: KindBusy, Duration: "60ms", Repeat: 2},
			{Action: "io-wait", Kind: KindSleep, Duration: "40ms", Repeat: 2},
			{Action: "sample-cpu", Kind: KindSampleCPU},
			{Action: "sample-memory", Kind: KindSampleMemory},
		},
	}
	// The built-in scenario is well formed
	if err := s.Validate(); err != nil {
		panic(err)
	}
	return s
}
