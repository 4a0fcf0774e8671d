package workload

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Run executes one iteration of the step.
func (s *Step) Run() error {
	switch s.Kind {
	case KindBusy:
		busySpin(s.interval)
		return nil
	case KindSleep:
		time.Sleep(s.interval)
		return nil
	case KindSampleCPU:
		if _, err := cpu.Percent(0, false); err != nil {
			return fmt.Errorf("cpu sample failed: %w", err)
		}
		return nil
	case KindSampleMemory:
		if _, err := mem.VirtualMemory(); err != nil {
			return fmt.Errorf("memory sample failed: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown step kind %q", s.Kind)
	}
}

// busySpin keeps the CPU busy until the deadline. The accumulator keeps the
// loop from being optimized away.
func busySpin(d time.Duration) {
	deadline := time.Now().Add(d)
	acc := uint64(1)
	for time.Now().Before(deadline) {
		acc = acc*2862933555777941757 + 3037000493
	}
	_ = acc
}
