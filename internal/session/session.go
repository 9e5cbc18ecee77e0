// Package session is the shell around the minigames: it owns the single
// active engine, routes player input to it and publishes render events.
//
// Every entry point and every scheduled engine callback runs under one mutex,
// so engines see the same one-at-a-time event loop a browser would give them.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/MJE43/arcadia-desktop/internal/games"
	"github.com/MJE43/arcadia-desktop/internal/leaderboard"
	"github.com/MJE43/arcadia-desktop/internal/logging"
	"github.com/MJE43/arcadia-desktop/internal/rng"
	"github.com/MJE43/arcadia-desktop/internal/schedule"
)

// Event names published through the Emitter.
const (
	EventGameState   = "game:state"
	EventLeaderboard = "leaderboard:update"
)

// ErrUnknownGame is returned when a game ID has no engine.
var ErrUnknownGame = errors.New("unknown game")

// Emitter publishes events to the UI.
type Emitter interface {
	Emit(event string, data any)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(event string, data any)

// Emit implements Emitter.
func (f EmitterFunc) Emit(event string, data any) { f(event, data) }

// Scores is the part of the leaderboard the shell reports into.
type Scores interface {
	RecordResult(ctx context.Context, game games.ID, name string, value int) []leaderboard.Entry
	DisplayName() string
	Views() []leaderboard.View
}

var _ Scores = (*leaderboard.Board)(nil)

// Config wires a Shell.
type Config struct {
	// Scheduler drives engine timers. It is serialized with the shell lock;
	// nil means the wall clock.
	Scheduler schedule.Scheduler
	Rand      rng.Source
	Scores    Scores
	Emitter   Emitter
	Logger    *slog.Logger
	// Context is passed to leaderboard writes triggered by game results.
	Context context.Context
}

// Snapshot is the payload of EventGameState.
type Snapshot struct {
	Open  bool     `json:"open"`
	Game  games.ID `json:"game,omitempty"`
	Title string   `json:"title,omitempty"`
	State any      `json:"state,omitempty"`
}

// Shell holds at most one active engine.
type Shell struct {
	mu     sync.Mutex
	sched  schedule.Scheduler
	rand   rng.Source
	scores Scores
	emit   Emitter
	log    *slog.Logger
	ctx    context.Context

	active games.Engine
}

// New returns a shell with no game open.
func New(cfg Config) *Shell {
	s := &Shell{
		rand:   cfg.Rand,
		scores: cfg.Scores,
		emit:   cfg.Emitter,
		ctx:    cfg.Context,
	}
	if s.rand == nil {
		s.rand = rng.NewRandom()
	}
	if s.emit == nil {
		s.emit = EmitterFunc(func(string, any) {})
	}
	if s.ctx == nil {
		s.ctx = context.Background()
	}

	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}
	s.log = log.With(logging.FieldSession, uuid.NewString())

	inner := cfg.Scheduler
	if inner == nil {
		inner = schedule.NewClockScheduler(nil)
	}
	s.sched = schedule.Serialize(inner, &s.mu, func(r any) {
		logging.Error(s.log, "scheduled callback panicked", fmt.Errorf("%v", r))
	})
	return s
}

// Open tears down the active game, if any, and starts id.
func (s *Shell) Open(id games.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	spec, ok := games.GetSpec(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownGame, id)
	}

	s.closeLocked()

	var eng games.Engine
	eng, _ = games.New(id, games.Options{
		Scheduler: s.sched,
		Rand:      s.rand,
		Reporter:  games.ReporterFunc(s.report),
		OnChange:  func() { s.render(eng) },
	})
	s.active = eng
	logging.Info(s.log, "game opened", logging.FieldGame, id, "title", spec.Name)
	eng.Start()
	return nil
}

// Close tears down the active game, cancelling its timers.
func (s *Shell) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return
	}
	s.closeLocked()
	s.emit.Emit(EventGameState, Snapshot{})
}

func (s *Shell) closeLocked() {
	if s.active == nil {
		return
	}
	s.active.Teardown()
	logging.Info(s.log, "game closed", logging.FieldGame, s.active.ID())
	s.active = nil
}

// Restart resets the active game. It reports false when no game is open.
func (s *Shell) Restart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return false
	}
	logging.Debug(s.log, "game restarted", logging.FieldGame, s.active.ID())
	s.active.Reset()
	return true
}

// Help returns the how-to-play text for id, or for the active game when id
// is empty.
func (s *Shell) Help(id games.ID) (string, error) {
	if id == "" {
		s.mu.Lock()
		if s.active != nil {
			id = s.active.ID()
		}
		s.mu.Unlock()
	}
	spec, ok := games.GetSpec(id)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownGame, id)
	}
	return spec.Help, nil
}

// Active returns the open game's ID, or "" when none is open.
func (s *Shell) Active() games.ID {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return ""
	}
	return s.active.ID()
}

// State returns the current render snapshot.
func (s *Shell) State() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Shell) snapshotLocked() Snapshot {
	if s.active == nil {
		return Snapshot{}
	}
	snap := Snapshot{Open: true, Game: s.active.ID(), State: s.active.Snapshot()}
	if spec, ok := games.GetSpec(snap.Game); ok {
		snap.Title = spec.Name
	}
	return snap
}

// render runs under s.mu, from an entry point or a serialized callback.
func (s *Shell) render(eng games.Engine) {
	if eng != s.active {
		return
	}
	s.emit.Emit(EventGameState, s.snapshotLocked())
}

// report runs under s.mu when an engine reaches a terminal state.
func (s *Shell) report(game games.ID, value int) {
	if s.scores == nil {
		logging.Info(s.log, "result dropped; no leaderboard", logging.FieldGame, game, logging.FieldValue, value)
		return
	}
	s.scores.RecordResult(s.ctx, game, s.scores.DisplayName(), value)
	s.emit.Emit(EventLeaderboard, s.scores.Views())
}
