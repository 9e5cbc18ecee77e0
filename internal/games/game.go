// Package games holds the minigame engines. Each engine is a single-threaded
// state machine: the session calls it from one loop, and it reaches the
// outside world only through the Options it was built with.
package games

import (
	"github.com/MJE43/arcadia-desktop/internal/rng"
	"github.com/MJE43/arcadia-desktop/internal/schedule"
)

// ID identifies a game on the leaderboard and in the shell.
type ID string

const (
	TicTacToe ID = "ttt"
	Memory    ID = "memory"
	Snake     ID = "snake"
)

// Reporter receives a game's numeric result when it reaches a terminal state.
type Reporter interface {
	RecordResult(game ID, value int)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(game ID, value int)

// RecordResult implements Reporter.
func (f ReporterFunc) RecordResult(game ID, value int) { f(game, value) }

// Engine is the contract between the session shell and a game.
type Engine interface {
	ID() ID
	// Start begins play. Timed engines start their clocks here.
	Start()
	// Reset returns the engine to its initial state and restarts it.
	Reset()
	// Teardown cancels every pending callback. The engine is inert afterwards.
	Teardown()
	// Snapshot returns a copy of the state for rendering.
	Snapshot() any
}

// Options are the collaborators injected into every engine. Zero values are
// usable: no scheduler means timed transitions never fire, no reporter drops
// results.
type Options struct {
	Scheduler schedule.Scheduler
	Rand      rng.Source
	Reporter  Reporter
	// OnChange is the render callback, invoked after every state change.
	OnChange func()
}

func (o Options) withDefaults() Options {
	if o.Scheduler == nil {
		o.Scheduler = schedule.NewManual()
	}
	if o.Rand == nil {
		o.Rand = rng.NewRandom()
	}
	if o.Reporter == nil {
		o.Reporter = ReporterFunc(func(ID, int) {})
	}
	if o.OnChange == nil {
		o.OnChange = func() {}
	}
	return o
}
