// Package profile measures where wall-clock time goes inside a process.
//
// Callers mark the start and end of named actions; the profiler accumulates
// total elapsed time and call counts per action and renders a summary ranking
// actions by their share of total elapsed time since the session started.
package profile

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	// ErrAlreadyStarted is returned by Start when the action already has an
	// active timer. It signals unbalanced Start calls at the call site.
	ErrAlreadyStarted = errors.New("action already started")

	// ErrNeverStarted is returned by Stop when the action has no active
	// timer. It signals unbalanced Stop calls at the call site.
	ErrNeverStarted = errors.New("action never started")
)

// Profiler is one profiling session. It owns all timer and aggregate state;
// nothing is shared outside of it, so independent sessions can coexist and
// tests construct their own.
//
// All methods take the session lock, so a single Profiler may be shared
// between goroutines.
type Profiler struct {
	mu sync.Mutex

	// current holds actions started but not yet stopped, keyed by name.
	// At most one active timer per name.
	current map[string]time.Time

	// durations and counts accumulate per completed action. Entries are
	// created on the first completed stop and only ever grow.
	durations map[string]time.Duration
	counts    map[string]int

	// order records action names in the order their first cycle completed.
	// The report sort uses it as the tie-break key; map iteration order is
	// never relied on.
	order []string

	startTime time.Time

	// now is the clock source. time.Now carries a monotonic reading, which
	// keeps elapsed times immune to wall-clock adjustments.
	now func() time.Time
}

// New creates a profiling session starting now.
func New() *Profiler {
	p := &Profiler{
		current:   make(map[string]time.Time),
		durations: make(map[string]time.Duration),
		counts:    make(map[string]int),
		now:       time.Now,
	}
	p.startTime = p.now()
	return p
}

// Start begins timing the named action. It fails with ErrAlreadyStarted if
// the action is already being timed.
func (p *Profiler) Start(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, active := p.current[name]; active {
		return fmt.Errorf("attempted to start %q which has already started: %w", name, ErrAlreadyStarted)
	}
	p.current[name] = p.now()
	return nil
}

// Stop ends timing the named action, folds the elapsed time into its
// aggregate record, and returns the elapsed time. It fails with
// ErrNeverStarted if the action is not currently being timed.
func (p *Profiler) Stop(name string) (time.Duration, error) {
	end := p.now()

	p.mu.Lock()
	defer p.mu.Unlock()

	start, active := p.current[name]
	if !active {
		return 0, fmt.Errorf("attempted to stop %q which was never started: %w", name, ErrNeverStarted)
	}
	delete(p.current, name)

	elapsed := end.Sub(start)
	p.record(name, elapsed)
	return elapsed, nil
}

// record accumulates one completed cycle. Caller holds the lock.
func (p *Profiler) record(name string, elapsed time.Duration) {
	if _, seen := p.counts[name]; !seen {
		p.order = append(p.order, name)
	}
	p.durations[name] += elapsed
	p.counts[name]++
}

// ResetStartTime moves the session start to now. Aggregate records are kept;
// only the total-duration baseline used by Summary changes.
func (p *Profiler) ResetStartTime() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.startTime = p.now()
}

// Count returns how many completed cycles the action has.
func (p *Profiler) Count(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts[name]
}

// Total returns the accumulated duration across all completed cycles of the
// action.
func (p *Profiler) Total(name string) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.durations[name]
}

// Actions returns the recorded action names in completion order (the order
// in which each action first finished a cycle).
func (p *Profiler) Actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}
