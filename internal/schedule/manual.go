package schedule

import (
	"container/heap"
	"sync"
	"time"
)

// Manual is a virtual-time scheduler. Nothing fires until Advance moves the
// clock; callbacks then run synchronously on the caller's goroutine in
// deadline order, ties in scheduling order.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	nextSeq uint64
	timers  timerHeap
}

// NewManual returns a virtual clock at zero.
func NewManual() *Manual {
	m := &Manual{}
	heap.Init(&m.timers)
	return m
}

// AfterFunc implements Scheduler.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Token {
	if d < 0 {
		d = 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t := &manualTimer{owner: m, at: m.now + d, seq: m.nextSeq, fn: fn}
	m.nextSeq++
	heap.Push(&m.timers, t)
	return t
}

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of scheduled, not yet fired callbacks.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timers.Len()
}

// Advance moves virtual time forward by d and runs every callback due by then,
// including ones scheduled by callbacks along the way. It returns the number
// of callbacks run.
func (m *Manual) Advance(d time.Duration) int {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	fired := 0
	for {
		m.mu.Lock()
		if m.timers.Len() == 0 || m.timers[0].at > target {
			m.now = target
			m.mu.Unlock()
			return fired
		}
		t := heap.Pop(&m.timers).(*manualTimer)
		m.now = t.at
		fn := t.fn
		t.fn = nil
		m.mu.Unlock()

		// Unlocked so the callback can schedule more work.
		fn()
		fired++
	}
}

// Flush advances to the latest pending deadline, firing everything scheduled
// up to that point. Callbacks that keep rescheduling themselves (a running
// snake) are bounded by max iterations.
func (m *Manual) Flush(max int) int {
	fired := 0
	for i := 0; i < max; i++ {
		m.mu.Lock()
		if m.timers.Len() == 0 {
			m.mu.Unlock()
			return fired
		}
		next := m.timers[0].at - m.now
		m.mu.Unlock()
		fired += m.Advance(next)
	}
	return fired
}

type manualTimer struct {
	owner *Manual
	at    time.Duration
	seq   uint64
	index int
	fn    func()
}

func (t *manualTimer) Stop() bool {
	m := t.owner
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.fn == nil || t.index < 0 {
		return false
	}
	heap.Remove(&m.timers, t.index)
	t.fn = nil
	return true
}

type timerHeap []*manualTimer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*manualTimer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
