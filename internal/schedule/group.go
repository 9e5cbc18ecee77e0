package schedule

import (
	"sync"
	"time"
)

// Group is a scoped set of tokens. An engine schedules through its Group and
// calls Stop on teardown or reset; fired tokens drop out on their own.
type Group struct {
	sched Scheduler

	mu     sync.Mutex
	tokens map[*groupToken]struct{}
}

// NewGroup returns an empty group scheduling on s.
func NewGroup(s Scheduler) *Group {
	return &Group{sched: s, tokens: make(map[*groupToken]struct{})}
}

type groupToken struct {
	group *Group
	inner Token
}

func (t *groupToken) Stop() bool {
	t.group.forget(t)
	return t.inner.Stop()
}

// AfterFunc implements Scheduler and tracks the token until it fires or stops.
func (g *Group) AfterFunc(d time.Duration, fn func()) Token {
	tok := &groupToken{group: g}

	g.mu.Lock()
	g.tokens[tok] = struct{}{}
	g.mu.Unlock()

	tok.inner = g.sched.AfterFunc(d, func() {
		g.forget(tok)
		fn()
	})
	return tok
}

// Stop cancels every outstanding token and returns how many calls it prevented.
func (g *Group) Stop() int {
	g.mu.Lock()
	pending := make([]*groupToken, 0, len(g.tokens))
	for tok := range g.tokens {
		pending = append(pending, tok)
	}
	clear(g.tokens)
	g.mu.Unlock()

	stopped := 0
	for _, tok := range pending {
		if tok.inner != nil && tok.inner.Stop() {
			stopped++
		}
	}
	return stopped
}

// Len returns the number of outstanding tokens.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.tokens)
}

func (g *Group) forget(t *groupToken) {
	g.mu.Lock()
	delete(g.tokens, t)
	g.mu.Unlock()
}
