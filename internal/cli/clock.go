package cli

import (
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/coach/internal/scheduler"
)

// teaClock schedules tasks as bubbletea ticks so they run inside Update.
// It is only touched from the Update goroutine.
type teaClock struct {
	now    func() time.Time
	nextID uint64
	timers map[uint64]*teaTimer
	queued []*teaTimer
}

type teaTimer struct {
	id    uint64
	delay time.Duration
	task  scheduler.Task
	clock *teaClock
}

// timerFiredMsg is delivered when a scheduled tick elapses.
type timerFiredMsg struct{ id uint64 }

// flushTimersMsg runs every pending task at once.
type flushTimersMsg struct{}

func newTeaClock() *teaClock {
	return &teaClock{now: time.Now, timers: map[uint64]*teaTimer{}}
}

func (c *teaClock) Now() time.Time { return c.now() }

func (c *teaClock) Schedule(delay time.Duration, task scheduler.Task) scheduler.Timer {
	c.nextID++
	t := &teaTimer{id: c.nextID, delay: max(delay, 0), task: task, clock: c}
	c.timers[t.id] = t
	c.queued = append(c.queued, t)
	return t
}

func (t *teaTimer) Stop() bool {
	if _, ok := t.clock.timers[t.id]; !ok {
		return false
	}
	delete(t.clock.timers, t.id)
	return true
}

// cmds returns one tick command per task scheduled since the last call.
func (c *teaClock) cmds() []tea.Cmd {
	out := make([]tea.Cmd, 0, len(c.queued))
	for _, t := range c.queued {
		id := t.id
		out = append(out, tea.Tick(t.delay, func(time.Time) tea.Msg { return timerFiredMsg{id: id} }))
	}
	c.queued = c.queued[:0]
	return out
}

// fire runs the task for id if it is still pending.
func (c *teaClock) fire(id uint64) bool {
	t, ok := c.timers[id]
	if !ok {
		return false
	}
	delete(c.timers, id)
	t.task()
	return true
}

// fireAll runs pending tasks in scheduling order, including tasks they
// schedule, and returns the number run.
func (c *teaClock) fireAll() int {
	ran := 0
	for len(c.timers) > 0 {
		ids := make([]uint64, 0, len(c.timers))
		for id := range c.timers {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		for _, id := range ids {
			if c.fire(id) {
				ran++
			}
		}
	}
	c.queued = c.queued[:0]
	return ran
}

func (c *teaClock) pending() int { return len(c.timers) }
