package scheduler

import (
	"sync"
	"time"
)

// Realtime schedules tasks on the wall clock with time.AfterFunc. Every task
// runs while holding lock, which callers share with their own mutations so
// deliveries and user operations never interleave.
type Realtime struct {
	lock sync.Locker

	mu     sync.Mutex
	wg     sync.WaitGroup
	timers map[*realtimeTimer]struct{}
	closed bool
}

type realtimeTimer struct {
	r     *Realtime
	timer *time.Timer
}

// NewRealtime returns a wall-clock scheduler. A nil lock gets a private mutex.
func NewRealtime(lock sync.Locker) *Realtime {
	if lock == nil {
		lock = &sync.Mutex{}
	}
	return &Realtime{lock: lock, timers: make(map[*realtimeTimer]struct{})}
}

func (r *Realtime) Now() time.Time { return time.Now() }

func (r *Realtime) Schedule(delay time.Duration, task Task) Timer {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return stoppedTimer{}
	}

	t := &realtimeTimer{r: r}
	r.timers[t] = struct{}{}
	r.wg.Add(1)
	t.timer = time.AfterFunc(max(delay, 0), func() {
		defer r.wg.Done()
		r.mu.Lock()
		delete(r.timers, t)
		r.mu.Unlock()

		r.lock.Lock()
		defer r.lock.Unlock()
		task()
	})
	return t
}

func (t *realtimeTimer) Stop() bool {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	if _, ok := t.r.timers[t]; !ok {
		return false
	}
	if !t.timer.Stop() {
		return false
	}
	delete(t.r.timers, t)
	t.r.wg.Done()
	return true
}

// Pending returns the number of timers that have not fired.
func (r *Realtime) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.timers)
}

// Wait blocks until every scheduled task, including tasks scheduled by
// running tasks, has finished. It must not be called while holding lock.
func (r *Realtime) Wait() {
	r.wg.Wait()
}

// Close stops all pending timers and rejects further scheduling. Tasks that
// are already running finish normally. Like Wait, it must not be called
// while holding lock.
func (r *Realtime) Close() {
	r.mu.Lock()
	r.closed = true
	for t := range r.timers {
		if t.timer.Stop() {
			delete(r.timers, t)
			r.wg.Done()
		}
	}
	r.mu.Unlock()
	r.wg.Wait()
}
