package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRealtime_RunsUnderLock(t *testing.T) {
	var mu sync.Mutex
	r := NewRealtime(&mu)
	defer r.Close()

	counter := 0
	for range 10 {
		r.Schedule(time.Millisecond, func() { counter++ })
	}
	r.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, counter)
	assert.Zero(t, r.Pending())
}

func TestRealtime_WaitCoversNestedTasks(t *testing.T) {
	r := NewRealtime(nil)
	defer r.Close()

	done := false
	r.Schedule(time.Millisecond, func() {
		r.Schedule(time.Millisecond, func() { done = true })
	})
	r.Wait()
	assert.True(t, done)
}

func TestRealtime_Stop(t *testing.T) {
	r := NewRealtime(nil)
	defer r.Close()

	ran := false
	timer := r.Schedule(time.Hour, func() { ran = true })
	assert.Equal(t, 1, r.Pending())
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	r.Wait()
	assert.False(t, ran)
}

func TestRealtime_CloseStopsPendingAndRejectsNew(t *testing.T) {
	r := NewRealtime(nil)
	ran := false
	r.Schedule(time.Hour, func() { ran = true })
	r.Close()

	assert.Zero(t, r.Pending())
	timer := r.Schedule(0, func() { ran = true })
	assert.False(t, timer.Stop())
	r.Wait()
	assert.False(t, ran)
}

func TestRealtime_SequencerOrder(t *testing.T) {
	var mu sync.Mutex
	r := NewRealtime(&mu)
	defer r.Close()
	q := NewSequencer(r)

	var ran []int
	mu.Lock()
	for i := range 5 {
		q.Schedule(time.Duration(5-i)*time.Millisecond, func() { ran = append(ran, i) })
	}
	mu.Unlock()
	r.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, ran)
}
