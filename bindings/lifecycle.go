package bindings

import (
	"context"
	"log/slog"
	"os"

	"github.com/benbjohnson/clock"

	"github.com/MJE43/arcadia-desktop/internal/config"
	"github.com/MJE43/arcadia-desktop/internal/leaderboard"
	"github.com/MJE43/arcadia-desktop/internal/logging"
	"github.com/MJE43/arcadia-desktop/internal/rng"
	"github.com/MJE43/arcadia-desktop/internal/schedule"
	"github.com/MJE43/arcadia-desktop/internal/session"
	"github.com/MJE43/arcadia-desktop/internal/store"
)

// App is the object bound to the Wails frontend.
type App struct {
	ctx   context.Context
	cfg   config.Config
	log   *slog.Logger
	clock clock.Clock

	kv    store.KV
	board *leaderboard.Board
	shell *session.Shell
}

func New(cfg config.Config, log *slog.Logger) *App {
	if log == nil {
		log = logging.Discard()
	}
	return &App{
		cfg:   cfg,
		log:   log.With(logging.FieldComponent, "bindings"),
		clock: clock.New(),
	}
}

// Startup is called by Wails once the window exists.
func (a *App) Startup(ctx context.Context) {
	a.start(ctx, wailsEmitter{ctx: ctx})
}

func (a *App) start(ctx context.Context, emit session.Emitter) {
	a.ctx = ctx
	a.kv = a.openStore()

	a.board = leaderboard.New(a.kv,
		leaderboard.WithLogger(a.log.With(logging.FieldComponent, "leaderboard")),
		leaderboard.WithClock(a.clock),
	)
	a.board.Load(ctx)

	src := rng.New(rng.FromSeed(a.cfg.Seed))
	a.shell = session.New(session.Config{
		Scheduler: schedule.NewClockScheduler(a.clock),
		Rand:      src,
		Scores:    a.board,
		Emitter:   emit,
		Logger:    a.log.With(logging.FieldComponent, "session"),
		Context:   ctx,
	})
	logging.Info(a.log, "arcadia ready",
		"server_seed", src.Seeds().Server,
		"client_seed", src.Seeds().Client,
		logging.FieldPlayer, a.board.DisplayName(),
	)
}

// openStore opens the SQLite file in the data directory. Any failure falls
// back to memory: scores then last for the run only.
func (a *App) openStore() store.KV {
	if !a.cfg.Persist {
		logging.Info(a.log, "persistence disabled; scores kept in memory")
		return store.NewMemoryStore()
	}

	if err := os.MkdirAll(a.cfg.DataDir, 0o755); err != nil {
		logging.Error(a.log, "data dir unavailable; scores kept in memory", err, logging.FieldPath, a.cfg.DataDir)
		return store.NewMemoryStore()
	}

	path := a.cfg.DBPath()
	db, err := store.NewSQLiteDB(path)
	if err != nil {
		logging.Error(a.log, "sqlite open failed; scores kept in memory", err, logging.FieldPath, path)
		return store.NewMemoryStore()
	}
	logging.Info(a.log, "leaderboard database opened", logging.FieldPath, path)
	return db
}

// Shutdown closes the active game and the store.
func (a *App) Shutdown(_ context.Context) {
	if a.shell != nil {
		a.shell.Close()
	}
	if a.kv != nil {
		if err := a.kv.Close(); err != nil {
			logging.Error(a.log, "store close failed", err)
		}
		a.kv = nil
	}
}
