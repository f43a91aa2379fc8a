package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Epoch is the start instant of every Virtual clock.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Virtual is a manually advanced clock. Tasks run synchronously inside
// Advance and RunAll, in due-time order with ties broken by scheduling order.
type Virtual struct {
	mu    sync.Mutex
	now   time.Time
	seq   uint64
	queue []*virtualTimer
}

type virtualTimer struct {
	v    *Virtual
	due  time.Time
	seq  uint64
	task Task
	done bool
}

func NewVirtual() *Virtual {
	return &Virtual{now: Epoch}
}

func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

// Elapsed returns how far the clock has moved from Epoch.
func (v *Virtual) Elapsed() time.Duration {
	return v.Now().Sub(Epoch)
}

func (v *Virtual) Schedule(delay time.Duration, task Task) Timer {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.seq++
	t := &virtualTimer{v: v, due: v.now.Add(max(delay, 0)), seq: v.seq, task: task}
	v.queue = append(v.queue, t)
	return t
}

func (t *virtualTimer) Stop() bool {
	t.v.mu.Lock()
	defer t.v.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	t.v.removeLocked(t)
	return true
}

// Pending returns the number of tasks not yet run or stopped.
func (v *Virtual) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.queue)
}

// NextDue returns the due time of the earliest pending task.
func (v *Virtual) NextDue() (time.Time, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.queue) == 0 {
		return time.Time{}, false
	}
	v.sortLocked()
	return v.queue[0].due, true
}

// Advance moves the clock forward by d, running every task that becomes due,
// including tasks scheduled by those tasks. It returns the number run.
func (v *Virtual) Advance(d time.Duration) int {
	v.mu.Lock()
	target := v.now.Add(max(d, 0))
	v.mu.Unlock()

	ran := 0
	for {
		t := v.popDue(target, true)
		if t == nil {
			break
		}
		t.task()
		ran++
	}

	v.mu.Lock()
	if v.now.Before(target) {
		v.now = target
	}
	v.mu.Unlock()
	return ran
}

// RunAll advances the clock until no tasks remain and returns the number run.
func (v *Virtual) RunAll() int {
	ran := 0
	for {
		t := v.popDue(time.Time{}, false)
		if t == nil {
			return ran
		}
		t.task()
		ran++
	}
}

// popDue removes and returns the earliest task, moving the clock to its due
// time. With bounded set, tasks due after limit are left queued.
func (v *Virtual) popDue(limit time.Time, bounded bool) *virtualTimer {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.queue) == 0 {
		return nil
	}
	v.sortLocked()
	t := v.queue[0]
	if bounded && t.due.After(limit) {
		return nil
	}
	v.queue = v.queue[1:]
	t.done = true
	if t.due.After(v.now) {
		v.now = t.due
	}
	return t
}

// sortLocked orders the queue:
// 1. Due time: earliest first
// 2. Sequence: scheduling order
func (v *Virtual) sortLocked() {
	sort.SliceStable(v.queue, func(i, j int) bool {
		a, b := v.queue[i], v.queue[j]
		if !a.due.Equal(b.due) {
			return a.due.Before(b.due)
		}
		return a.seq < b.seq
	})
}

func (v *Virtual) removeLocked(t *virtualTimer) {
	for i, q := range v.queue {
		if q == t {
			v.queue = append(v.queue[:i], v.queue[i+1:]...)
			return
		}
	}
}
