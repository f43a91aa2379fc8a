package scheduler

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSequencer_ClampsToFIFO(t *testing.T) {
	v := NewVirtual()
	q := NewSequencer(v)
	var ran []string

	q.Schedule(3*time.Second, func() { ran = append(ran, "slow") })
	q.Schedule(time.Second, func() { ran = append(ran, "fast") })

	v.Advance(2 * time.Second)
	assert.Empty(t, ran, "second task must wait for the first")
	assert.Equal(t, 2, q.Pending())

	v.Advance(time.Second)
	assert.Equal(t, []string{"slow", "fast"}, ran)
	assert.Zero(t, q.Pending())
}

func TestSequencer_RandomDelaysKeepOrder(t *testing.T) {
	v := NewVirtual()
	q := NewSequencer(v)
	rng := rand.New(rand.NewPCG(9, 9))
	var ran []int
	for i := range 50 {
		q.Schedule(DefaultReplyDelay.Draw(rng), func() { ran = append(ran, i) })
	}
	v.RunAll()

	want := make([]int, 50)
	for i := range want {
		want[i] = i
	}
	assert.Equal(t, want, ran)
}

// outOfOrder fires timers in reverse scheduling order.
type outOfOrder struct {
	tasks []Task
}

func (o *outOfOrder) Now() time.Time { return Epoch }

func (o *outOfOrder) Schedule(_ time.Duration, task Task) Timer {
	o.tasks = append(o.tasks, task)
	return stoppedTimer{}
}

func (o *outOfOrder) fireReversed() {
	for i := len(o.tasks) - 1; i >= 0; i-- {
		o.tasks[i]()
	}
}

func TestSequencer_RunsEarlierTasksFirstWhenTimersRace(t *testing.T) {
	base := &outOfOrder{}
	q := NewSequencer(base)
	var ran []int
	for i := range 3 {
		q.Schedule(time.Second, func() { ran = append(ran, i) })
	}
	base.fireReversed()
	assert.Equal(t, []int{0, 1, 2}, ran)
}

func TestSequencer_Stop(t *testing.T) {
	v := NewVirtual()
	q := NewSequencer(v)
	var ran []string
	q.Schedule(time.Second, func() { ran = append(ran, "a") })
	timer := q.Schedule(time.Second, func() { ran = append(ran, "b") })
	q.Schedule(time.Second, func() { ran = append(ran, "c") })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	v.RunAll()
	assert.Equal(t, []string{"a", "c"}, ran)
}
