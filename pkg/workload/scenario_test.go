package workload

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write scenario file: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeScenario(t, `
name: smoke
steps:
  - action: parse
    kind: busy
    duration: 25ms
    repeat: 3
  - action: io-wait
    kind: sleep
    duration: 10ms
  - action: sample-cpu
    kind: sample-cpu
`)

	scenario, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if scenario.Name != "smoke" {
		t.Errorf("Name = %q, want smoke", scenario.Name)
	}
	if len(scenario.Steps) != 3 {
		t.Fatalf("Steps = %d, want 3", len(scenario.Steps))
	}
	if scenario.Steps[0].Repeat != 3 {
		t.Errorf("Steps[0].Repeat = %d, want 3", scenario.Steps[0].Repeat)
	}
	if scenario.Steps[0].Interval() != 25*time.Millisecond {
		t.Errorf("Steps[0].Interval() = %v, want 25ms", scenario.Steps[0].Interval())
	}
	if scenario.Steps[1].Repeat != 1 {
		t.Errorf("Steps[1].Repeat should default to 1, got %d", scenario.Steps[1].Repeat)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "no steps",
			content: "name: empty\nsteps: []\n",
		},
		{
			name: "unknown kind",
			content: `
steps:
  - action: x
    kind: teleport
`,
		},
		{
			name: "missing duration",
			content: `
steps:
  - action: x
    kind: busy
`,
		},
		{
			name: "bad duration",
			content: `
steps:
  - action: x
    kind: sleep
    duration: five seconds
`,
		},
		{
			name: "negative repeat",
			content: `
steps:
  - action: x
    kind: sleep
    duration: 10ms
    repeat: -2
`,
		},
		{
			name: "missing action name",
			content: `
steps:
  - kind: sleep
    duration: 10ms
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Errorf("Load should reject %s", tt.name)
			}
		})
	}
}

func TestDefaultScenarioIsValid(t *testing.T) {
	scenario := Default()
	if len(scenario.Steps) == 0 {
		t.Fatal("default scenario has no steps")
	}
	for _, step := range scenario.Steps {
		if step.Repeat < 1 {
			t.Errorf("step %q: repeat = %d after validation", step.Action, step.Repeat)
		}
	}
}

func TestStepRunSleep(t *testing.T) {
	scenario := &Scenario{Steps: []Step{
		{Action: "nap", Kind: KindSleep, Duration: "5ms"},
	}}
	if err := scenario.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	start := time.Now()
	if err := scenario.Steps[0].Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 5*time.Millisecond {
		t.Errorf("sleep step returned after %v, want >= 5ms", elapsed)
	}
}
