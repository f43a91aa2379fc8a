package scheduler

import "time"

// Sequencer delivers tasks in the order they were scheduled even when their
// delays are drawn at random. Each due time is clamped so it is never
// earlier than the previous one, and a firing task first runs any earlier
// task still waiting, so wall-clock timer races cannot reorder delivery.
//
// Sequencer is not safe for concurrent use. Schedule calls and task
// execution must be serialized, which Virtual, the bubbletea loop and a
// Realtime sharing the caller's lock all provide.
type Sequencer struct {
	s     Scheduler
	last  time.Time
	queue []*seqEntry
}

type seqEntry struct {
	task  Task
	done  bool
	timer Timer
}

func NewSequencer(s Scheduler) *Sequencer {
	return &Sequencer{s: s}
}

func (q *Sequencer) Now() time.Time { return q.s.Now() }

// Schedule runs task no earlier than delay from now and after every task
// previously scheduled through q.
func (q *Sequencer) Schedule(delay time.Duration, task Task) Timer {
	now := q.s.Now()
	due := now.Add(max(delay, 0))
	if due.Before(q.last) {
		due = q.last
	}
	q.last = due

	e := &seqEntry{task: task}
	q.queue = append(q.queue, e)
	e.timer = q.s.Schedule(due.Sub(now), func() { q.runThrough(e) })
	return &seqTimer{q: q, e: e}
}

// Pending returns the number of tasks scheduled through q that have not run.
func (q *Sequencer) Pending() int {
	n := 0
	for _, e := range q.queue {
		if !e.done {
			n++
		}
	}
	return n
}

func (q *Sequencer) runThrough(e *seqEntry) {
	if e.done {
		return
	}
	for len(q.queue) > 0 {
		head := q.queue[0]
		q.queue = q.queue[1:]
		if head.done {
			continue
		}
		head.done = true
		head.task()
		if head == e {
			return
		}
	}
}

type seqTimer struct {
	q *Sequencer
	e *seqEntry
}

func (t *seqTimer) Stop() bool {
	if t.e.done {
		return false
	}
	t.e.done = true
	t.e.timer.Stop()
	return true
}
