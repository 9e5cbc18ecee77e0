// Package schedule models timers as explicit scheduled callbacks with
// cancellation tokens. Engines never touch ambient timers: they receive a
// Scheduler, so tests can swap in virtual time and teardown can cancel
// everything an engine registered.
package schedule

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
)

// Token is a handle to one scheduled callback.
type Token interface {
	// Stop cancels the callback. It reports whether the call was prevented.
	Stop() bool
}

// Scheduler runs fn once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Token
}

// ClockScheduler schedules on a clock.Clock. Callbacks run on their own
// goroutine, so wrap it with Serialize before handing it to an engine.
type ClockScheduler struct {
	clock clock.Clock
}

// NewClockScheduler returns a scheduler on c, or on the wall clock when c is nil.
func NewClockScheduler(c clock.Clock) *ClockScheduler {
	if c == nil {
		c = clock.New()
	}
	return &ClockScheduler{clock: c}
}

// AfterFunc implements Scheduler.
func (s *ClockScheduler) AfterFunc(d time.Duration, fn func()) Token {
	return s.clock.AfterFunc(d, fn)
}

// Serialize wraps inner so every callback runs while holding mu, the lock that
// guards the session's engines. A token stopped under mu never runs, even if
// its timer already fired and is waiting on the lock. onPanic receives
// recovered panics; nil drops them.
func Serialize(inner Scheduler, mu sync.Locker, onPanic func(any)) Scheduler {
	return &serialized{inner: inner, mu: mu, onPanic: onPanic}
}

type serialized struct {
	inner   Scheduler
	mu      sync.Locker
	onPanic func(any)
}

type serializedToken struct {
	inner   Token
	stopped atomic.Bool
	fired   atomic.Bool
}

func (s *serialized) AfterFunc(d time.Duration, fn func()) Token {
	tok := &serializedToken{}
	tok.inner = s.inner.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if tok.stopped.Load() {
			return
		}
		tok.fired.Store(true)
		runGuarded(fn, s.onPanic)
	})
	return tok
}

func (t *serializedToken) Stop() bool {
	if !t.stopped.CompareAndSwap(false, true) {
		return false
	}
	if t.inner != nil {
		t.inner.Stop()
	}
	return !t.fired.Load()
}

func runGuarded(fn func(), onPanic func(any)) {
	defer func() {
		if r := recover(); r != nil && onPanic != nil {
			onPanic(r)
		}
	}()
	fn()
}
