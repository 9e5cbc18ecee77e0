package schedule

import (
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualFiresInDeadlineOrder(t *testing.T) {
	m := NewManual()
	var order []string

	m.AfterFunc(30*time.Millisecond, func() { order = append(order, "c") })
	m.AfterFunc(10*time.Millisecond, func() { order = append(order, "a") })
	m.AfterFunc(10*time.Millisecond, func() { order = append(order, "b") })

	assert.Equal(t, 2, m.Advance(20*time.Millisecond))
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 20*time.Millisecond, m.Now())
	assert.Equal(t, 1, m.Pending())

	assert.Equal(t, 1, m.Advance(10*time.Millisecond))
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestManualChainedCallbacksWithinWindow(t *testing.T) {
	m := NewManual()
	ticks := 0
	var tick func()
	tick = func() {
		ticks++
		m.AfterFunc(100*time.Millisecond, tick)
	}
	m.AfterFunc(100*time.Millisecond, tick)

	m.Advance(350 * time.Millisecond)
	assert.Equal(t, 3, ticks)
	assert.Equal(t, 1, m.Pending())
}

func TestManualStop(t *testing.T) {
	m := NewManual()
	called := false
	tok := m.AfterFunc(time.Second, func() { called = true })

	assert.True(t, tok.Stop())
	assert.False(t, tok.Stop(), "second stop reports nothing prevented")
	m.Advance(2 * time.Second)
	assert.False(t, called)
	assert.Zero(t, m.Pending())

	fired := m.AfterFunc(time.Millisecond, func() {})
	m.Advance(time.Millisecond)
	assert.False(t, fired.Stop(), "stopping a fired token is a no-op")
}

func TestManualFlushBounded(t *testing.T) {
	m := NewManual()
	count := 0
	var again func()
	again = func() {
		count++
		m.AfterFunc(time.Millisecond, again)
	}
	m.AfterFunc(time.Millisecond, again)

	m.Flush(5)
	assert.Equal(t, 5, count)
}

func TestGroupStopCancelsOutstanding(t *testing.T) {
	m := NewManual()
	g := NewGroup(m)
	calls := 0

	g.AfterFunc(10*time.Millisecond, func() { calls++ })
	g.AfterFunc(20*time.Millisecond, func() { calls++ })
	g.AfterFunc(30*time.Millisecond, func() { calls++ })
	require.Equal(t, 3, g.Len())

	m.Advance(10 * time.Millisecond)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, g.Len(), "fired token drops out")

	assert.Equal(t, 2, g.Stop())
	assert.Zero(t, g.Len())
	m.Advance(time.Second)
	assert.Equal(t, 1, calls)
}

func TestGroupTokenStop(t *testing.T) {
	m := NewManual()
	g := NewGroup(m)
	tok := g.AfterFunc(time.Second, func() { t.Fatal("stopped token ran") })

	assert.True(t, tok.Stop())
	assert.Zero(t, g.Len())
	m.Advance(2 * time.Second)
}

type captureScheduler struct {
	fns []func()
}

func (c *captureScheduler) AfterFunc(_ time.Duration, fn func()) Token {
	c.fns = append(c.fns, fn)
	return noopToken{}
}

type noopToken struct{}

func (noopToken) Stop() bool { return true }

func TestSerializeRunsUnderLock(t *testing.T) {
	var mu sync.Mutex
	m := NewManual()
	s := Serialize(m, &mu, nil)

	held := false
	s.AfterFunc(time.Millisecond, func() { held = !mu.TryLock() })
	m.Advance(time.Millisecond)
	assert.True(t, held, "callback must run while the loop lock is held")
}

func TestSerializeStoppedWhileWaitingForLock(t *testing.T) {
	var mu sync.Mutex
	inner := &captureScheduler{}
	s := Serialize(inner, &mu, nil)

	called := false
	tok := s.AfterFunc(time.Millisecond, func() { called = true })
	require.Len(t, inner.fns, 1)

	mu.Lock()
	done := make(chan struct{})
	go func() {
		inner.fns[0]()
		close(done)
	}()
	assert.True(t, tok.Stop())
	mu.Unlock()
	<-done

	assert.False(t, called)
}

func TestSerializeRecoversPanics(t *testing.T) {
	var mu sync.Mutex
	m := NewManual()
	var recovered any
	s := Serialize(m, &mu, func(r any) { recovered = r })

	s.AfterFunc(time.Millisecond, func() { panic("boom") })
	require.NotPanics(t, func() { m.Advance(time.Millisecond) })
	assert.Equal(t, "boom", recovered)
	assert.True(t, mu.TryLock(), "lock released after panic")
}

func TestClockSchedulerOnMockClock(t *testing.T) {
	mock := clock.NewMock()
	s := NewClockScheduler(mock)
	fired := make(chan struct{}, 1)

	s.AfterFunc(50*time.Millisecond, func() { fired <- struct{}{} })
	mock.Add(50 * time.Millisecond)

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("callback did not fire after advancing the mock clock")
	}

	stopped := s.AfterFunc(time.Second, func() { t.Error("stopped timer fired") })
	assert.True(t, stopped.Stop())
	mock.Add(2 * time.Second)
}
