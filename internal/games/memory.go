package games

import (
	"fmt"
	"time"

	"github.com/MJE43/arcadia-desktop/internal/rng"
	"github.com/MJE43/arcadia-desktop/internal/schedule"
)

// Fruits are the card faces, one pair each.
var Fruits = [...]string{"🍎", "🍌", "🍉", "🍇", "🍒", "🥝", "🍍", "🥑"}

const (
	MemoryCards = len(Fruits) * 2

	// MatchDelay and MismatchDelay keep a resolved pair on screen long
	// enough to be seen.
	MatchDelay    = 200 * time.Millisecond
	MismatchDelay = 650 * time.Millisecond
)

// CardState is the visibility of a memory card.
type CardState uint8

const (
	Hidden CardState = iota
	Flipped
	Matched
)

func (s CardState) String() string {
	switch s {
	case Flipped:
		return "flipped"
	case Matched:
		return "matched"
	default:
		return "hidden"
	}
}

// MemoryGame is the Memory Match engine.
type MemoryGame struct {
	opts   Options
	timers *schedule.Group

	deck    [MemoryCards]string
	states  [MemoryCards]CardState
	pending []int
	moves   int
	matched int
	done    bool
	closed  bool
}

// Card is one card in a MemoryState. Face is empty while the card is hidden.
type Card struct {
	Face  string `json:"face,omitempty"`
	State string `json:"state"`
}

// MemoryState is the render snapshot.
type MemoryState struct {
	Cards    []Card `json:"cards"`
	Moves    int    `json:"moves"`
	Pending  int    `json:"pending"`
	Complete bool   `json:"complete"`
	Status   string `json:"status"`
}

// NewMemoryGame returns a freshly shuffled board.
func NewMemoryGame(opts Options) *MemoryGame {
	g := &MemoryGame{opts: opts.withDefaults()}
	g.timers = schedule.NewGroup(g.opts.Scheduler)
	g.init()
	return g
}

func (g *MemoryGame) init() {
	for i, f := range Fruits {
		g.deck[2*i] = f
		g.deck[2*i+1] = f
	}
	rng.Shuffle(g.opts.Rand, len(g.deck), func(i, j int) {
		g.deck[i], g.deck[j] = g.deck[j], g.deck[i]
	})
	g.states = [MemoryCards]CardState{}
	g.pending = g.pending[:0]
	g.moves = 0
	g.matched = 0
	g.done = false
}

// ID implements Engine.
func (g *MemoryGame) ID() ID { return Memory }

// Start implements Engine.
func (g *MemoryGame) Start() {
	g.closed = false
	g.opts.OnChange()
}

// Reset implements Engine. A pending resolution is cancelled.
func (g *MemoryGame) Reset() {
	g.timers.Stop()
	g.init()
	g.closed = false
	g.opts.OnChange()
}

// Teardown implements Engine.
func (g *MemoryGame) Teardown() {
	g.closed = true
	g.timers.Stop()
}

// Moves returns the number of compared pairs.
func (g *MemoryGame) Moves() int { return g.moves }

// Face returns the identity of card i regardless of its visibility.
func (g *MemoryGame) Face(i int) string {
	if i < 0 || i >= MemoryCards {
		return ""
	}
	return g.deck[i]
}

// FlipCard turns card i face up. It reports whether the flip was accepted.
func (g *MemoryGame) FlipCard(i int) bool {
	if g.closed || i < 0 || i >= MemoryCards || g.states[i] != Hidden || len(g.pending) == 2 {
		return false
	}

	g.states[i] = Flipped
	g.pending = append(g.pending, i)
	if len(g.pending) < 2 {
		g.opts.OnChange()
		return true
	}

	g.moves++
	a, b := g.pending[0], g.pending[1]
	if g.deck[a] == g.deck[b] {
		g.timers.AfterFunc(MatchDelay, func() { g.resolve(a, b, Matched) })
	} else {
		g.timers.AfterFunc(MismatchDelay, func() { g.resolve(a, b, Hidden) })
	}
	g.opts.OnChange()
	return true
}

func (g *MemoryGame) resolve(a, b int, to CardState) {
	g.states[a] = to
	g.states[b] = to
	g.pending = g.pending[:0]
	if to == Matched {
		g.matched += 2
	}

	if g.matched == MemoryCards && !g.done {
		g.done = true
		g.opts.OnChange()
		g.opts.Reporter.RecordResult(Memory, g.moves)
		return
	}
	g.opts.OnChange()
}

// State returns the typed render snapshot.
func (g *MemoryGame) State() MemoryState {
	s := MemoryState{
		Cards:    make([]Card, MemoryCards),
		Moves:    g.moves,
		Pending:  len(g.pending),
		Complete: g.done,
	}
	for i, st := range g.states {
		s.Cards[i].State = st.String()
		if st != Hidden {
			s.Cards[i].Face = g.deck[i]
		}
	}
	if g.done {
		s.Status = fmt.Sprintf("You cleared the board in %d moves!", g.moves)
	} else {
		s.Status = fmt.Sprintf("Moves: %d", g.moves)
	}
	return s
}

// Snapshot implements Engine.
func (g *MemoryGame) Snapshot() any { return g.State() }
