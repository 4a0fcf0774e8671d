package profile

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Row is one line of the profiling report.
type Row struct {
	Action     string        `json:"action"`
	Mean       time.Duration `json:"mean_duration"`
	Count      int           `json:"num_calls"`
	Total      time.Duration `json:"total_time"`
	Percentage float64       `json:"percentage"`
}

// Report returns one row per recorded action plus the session total duration
// (now minus the session start). Rows are sorted by descending percentage;
// actions with equal percentage keep completion order. When the total is zero
// or negative (start time reset into the future) percentages are clamped to
// zero instead of dividing by zero.
func (p *Profiler) Report() ([]Row, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	total := p.now().Sub(p.startTime)

	rows := make([]Row, 0, len(p.order))
	for _, name := range p.order {
		sum := p.durations[name]
		count := p.counts[name]
		pct := 0.0
		if total > 0 {
			pct = 100 * sum.Seconds() / total.Seconds()
		}
		rows = append(rows, Row{
			Action:     name,
			Mean:       sum / time.Duration(count),
			Count:      count,
			Total:      sum,
			Percentage: pct,
		})
	}

	// Rows start in completion order, so a stable sort keeps that order
	// among equal percentages.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Percentage > rows[j].Percentage
	})

	return rows, total
}

// Summary renders the report as a table string: a header, a Total row, then
// one row per action ranked by share of total elapsed time. A session with no
// completed actions produces the header and Total row only. Summary never
// fails.
func (p *Profiler) Summary() string {
	rows, total := p.Report()

	width := len("Action")
	for _, r := range rows {
		if len(r.Action) > width {
			width = len(r.Action)
		}
	}

	row := func(action, mean, calls, totalCol, pct string) string {
		return fmt.Sprintf("\n%-*s\t|  %-15s\t|%-15s\t|  %-15s\t|  %-15s\t|",
			width, action, mean, calls, totalCol, pct)
	}

	var b strings.Builder
	b.WriteString("Profiler Report")
	b.WriteString(row("Action", "Mean duration (s)", "Num calls", "Total time (s)", "Percentage %"))

	sep := "\n" + strings.Repeat("-", b.Len())
	b.WriteString(sep)

	totalPct := "100 %"
	if total <= 0 {
		totalPct = "n/a"
	}
	b.WriteString(row("Total", "-", "-", formatSeconds(total), totalPct))
	b.WriteString(sep)

	for _, r := range rows {
		pct := "n/a"
		if total > 0 {
			pct = fmt.Sprintf("%.3g %%", r.Percentage)
		}
		b.WriteString(row(
			r.Action,
			formatSeconds(r.Mean),
			fmt.Sprintf("%d", r.Count),
			formatSeconds(r.Total),
			pct,
		))
	}

	b.WriteString("\n")
	return b.String()
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.5g", d.Seconds())
}
