package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/psantana5/wallprof/pkg/profile"
	"github.com/psantana5/wallprof/pkg/workload"
)

var runID string

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [scenario-file]",
	Short: "Run a workload scenario and report where time went",
	Long: `Run executes a workload scenario (a YAML list of named steps), timing every
step iteration as one profiler action, then prints the profiling report.

With no scenario file the built-in default scenario is used.

Example:
  wallprof run
  wallprof run scenario.yml --output table
  wallprof run scenario.yml --output json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScenario,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runID, "run-id", "", "identifier for this run (default: random UUID)")
}

func runScenario(cmd *cobra.Command, args []string) error {
	if runID == "" {
		runID = uuid.New().String()
	}
	log := logger.WithField("run_id", runID)

	var scenario *workload.Scenario
	if len(args) == 1 {
		loaded, err := workload.Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to load scenario: %w", err)
		}
		scenario = loaded
	} else {
		scenario = workload.Default()
	}

	log.Infof("Running scenario %q (%d steps)", scenario.Name, len(scenario.Steps))

	profiler := profile.New()
	for i := range scenario.Steps {
		step := &scenario.Steps[i]
		log.Debugf("Step %q: kind=%s repeat=%d", step.Action, step.Kind, step.Repeat)
		for iter := 0; iter < step.Repeat; iter++ {
			if err := profiler.Do(step.Action, step.Run); err != nil {
				return fmt.Errorf("step %q failed: %w", step.Action, err)
			}
		}
	}

	log.Info("Scenario completed")

	return printReport(profiler, scenario.Name)
}

func printReport(profiler *profile.Profiler, scenarioName string) error {
	switch outputFormat {
	case "json":
		return printJSONReport(profiler, scenarioName)
	case "table":
		printTableReport(profiler)
		return nil
	case "text":
		fmt.Println(profiler.Summary())
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, table or json)", outputFormat)
	}
}

func printTableReport(profiler *profile.Profiler) {
	rows, total := profiler.Report()

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Action", "Mean duration (s)", "Num calls", "Total time (s)", "Percentage %")

	totalPct := "100 %"
	if total <= 0 {
		totalPct = "n/a"
	}
	table.Append("Total", "-", "-", fmt.Sprintf("%.5g", total.Seconds()), totalPct)

	for _, r := range rows {
		pct := "n/a"
		if total > 0 {
			pct = fmt.Sprintf("%.3g %%", r.Percentage)
		}
		table.Append(
			r.Action,
			fmt.Sprintf("%.5g", r.Mean.Seconds()),
			fmt.Sprintf("%d", r.Count),
			fmt.Sprintf("%.5g", r.Total.Seconds()),
			pct,
		)
	}

	table.Render()
}

type jsonReportRow struct {
	Action       string  `json:"action"`
	MeanSeconds  float64 `json:"mean_seconds"`
	NumCalls     int     `json:"num_calls"`
	TotalSeconds float64 `json:"total_seconds"`
	Percentage   float64 `json:"percentage"`
}

type jsonReport struct {
	RunID        string          `json:"run_id"`
	Scenario     string          `json:"scenario"`
	TotalSeconds float64         `json:"total_seconds"`
	Actions      []jsonReportRow `json:"actions"`
}

func printJSONReport(profiler *profile.Profiler, scenarioName string) error {
	rows, total := profiler.Report()

	report := jsonReport{
		RunID:        runID,
		Scenario:     scenarioName,
		TotalSeconds: total.Seconds(),
		Actions:      make([]jsonReportRow, 0, len(rows)),
	}
	for _, r := range rows {
		report.Actions = append(report.Actions, jsonReportRow{
			Action:       r.Action,
			MeanSeconds:  r.Mean.Seconds(),
			NumCalls:     r.Count,
			TotalSeconds: r.Total.Seconds(),
			Percentage:   r.Percentage,
		})
	}

	output, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	fmt.Println(string(output))
	return nil
}
