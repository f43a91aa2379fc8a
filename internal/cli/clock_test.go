package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeaClock_CmdsReturnsNewTimersOnce(t *testing.T) {
	c := newTeaClock()
	c.Schedule(time.Second, func() {})
	c.Schedule(2*time.Second, func() {})

	assert.Len(t, c.cmds(), 2)
	assert.Empty(t, c.cmds())
	assert.Equal(t, 2, c.pending())
}

func TestTeaClock_TickDeliversTimerID(t *testing.T) {
	c := newTeaClock()
	c.Schedule(0, func() {})

	cmds := c.cmds()
	require.Len(t, cmds, 1)
	assert.Equal(t, timerFiredMsg{id: 1}, cmds[0]())
}

func TestTeaClock_FireRunsOnce(t *testing.T) {
	c := newTeaClock()
	runs := 0
	c.Schedule(time.Second, func() { runs++ })

	assert.True(t, c.fire(1))
	assert.False(t, c.fire(1))
	assert.Equal(t, 1, runs)
	assert.Zero(t, c.pending())
}

func TestTeaClock_StopPreventsRun(t *testing.T) {
	c := newTeaClock()
	ran := false
	timer := c.Schedule(time.Second, func() { ran = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	assert.False(t, c.fire(1))
	assert.False(t, ran)
}

func TestTeaClock_FireAllRunsInOrderIncludingNested(t *testing.T) {
	c := newTeaClock()
	var order []string
	c.Schedule(3*time.Second, func() {
		order = append(order, "first")
		c.Schedule(time.Second, func() { order = append(order, "nested") })
	})
	c.Schedule(time.Second, func() { order = append(order, "second") })

	assert.Equal(t, 3, c.fireAll())
	assert.Equal(t, []string{"first", "second", "nested"}, order)
	assert.Zero(t, c.pending())
	assert.Empty(t, c.cmds())
}

func TestTeaClock_NowUsesInjectedClock(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c := newTeaClock()
	c.now = func() time.Time { return at }
	assert.Equal(t, at, c.Now())
}
