// Package scheduler defers assistant work by a delay. Implementations share
// the Scheduler interface so the orchestrator runs unchanged under a wall
// clock, a bubbletea loop or a manually advanced clock in tests.
package scheduler

import (
	"math/rand/v2"
	"time"
)

// Task is deferred work. Tasks run on the scheduler's logical thread.
type Task func()

// Timer is a handle to a scheduled task.
type Timer interface {
	// Stop prevents the task from running. It reports whether the call
	// stopped the task; false means it already ran or was stopped.
	Stop() bool
}

// Scheduler runs tasks after a delay.
type Scheduler interface {
	Now() time.Time
	Schedule(delay time.Duration, task Task) Timer
}

var (
	DefaultReplyDelay   = DelayPolicy{Min: time.Second, Max: 3 * time.Second}
	DefaultWelcomeDelay = DelayPolicy{Min: 500 * time.Millisecond, Max: 500 * time.Millisecond}
)

// DelayPolicy draws delays uniformly from [Min, Max].
type DelayPolicy struct {
	Min time.Duration
	Max time.Duration
}

// Draw returns a delay in [Min, Max]. Negative bounds are treated as zero
// and Max below Min collapses the range to Min.
func (p DelayPolicy) Draw(rng *rand.Rand) time.Duration {
	lo, hi := max(p.Min, 0), max(p.Max, 0)
	if hi <= lo || rng == nil {
		return lo
	}
	return lo + time.Duration(rng.Int64N(int64(hi-lo)+1))
}

// Fixed returns a policy that always yields d.
func Fixed(d time.Duration) DelayPolicy {
	return DelayPolicy{Min: d, Max: d}
}

type stoppedTimer struct{}

func (stoppedTimer) Stop() bool { return false }
