package bindings

import (
	"errors"
	"strings"

	"github.com/MJE43/arcadia-desktop/internal/games"
	"github.com/MJE43/arcadia-desktop/internal/leaderboard"
	"github.com/MJE43/arcadia-desktop/internal/session"
)

var errNotStarted = errors.New("app not started")

// Direction is a frontend-friendly snake direction.
type Direction struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (a *App) ready() error {
	if a.shell == nil {
		return errNotStarted
	}
	return nil
}

func (a *App) GetGames() ([]games.GameSpec, error) {
	return games.ListGames(), nil
}

// OpenGame starts id, replacing any open game.
func (a *App) OpenGame(id string) (session.Snapshot, error) {
	if err := a.ready(); err != nil {
		return session.Snapshot{}, err
	}
	if err := a.shell.Open(games.ID(strings.TrimSpace(id))); err != nil {
		return session.Snapshot{}, err
	}
	return a.shell.State(), nil
}

func (a *App) CloseGame() error {
	if err := a.ready(); err != nil {
		return err
	}
	a.shell.Close()
	return nil
}

func (a *App) Restart() (bool, error) {
	if err := a.ready(); err != nil {
		return false, err
	}
	return a.shell.Restart(), nil
}

// Help returns how-to-play text; an empty id means the open game.
func (a *App) Help(id string) (string, error) {
	if err := a.ready(); err != nil {
		return "", err
	}
	return a.shell.Help(games.ID(id))
}

func (a *App) PlayMove(cell int) (bool, error) {
	if err := a.ready(); err != nil {
		return false, err
	}
	return a.shell.PlayMove(cell), nil
}

func (a *App) FlipCard(index int) (bool, error) {
	if err := a.ready(); err != nil {
		return false, err
	}
	return a.shell.FlipCard(index), nil
}

func (a *App) Steer(dir Direction) (bool, error) {
	if err := a.ready(); err != nil {
		return false, err
	}
	return a.shell.Steer(games.Point{X: dir.X, Y: dir.Y}), nil
}

func (a *App) Swipe(dx, dy float64) (bool, error) {
	if err := a.ready(); err != nil {
		return false, err
	}
	return a.shell.Swipe(dx, dy), nil
}

func (a *App) HandleKey(key string) (session.KeyResult, error) {
	if err := a.ready(); err != nil {
		return session.KeyResult{}, err
	}
	return a.shell.HandleKey(key), nil
}

func (a *App) State() (session.Snapshot, error) {
	if err := a.ready(); err != nil {
		return session.Snapshot{}, err
	}
	return a.shell.State(), nil
}

func (a *App) Leaderboard() ([]leaderboard.View, error) {
	if a.board == nil {
		return nil, errNotStarted
	}
	return a.board.Views(), nil
}

func (a *App) DisplayName() (string, error) {
	if a.board == nil {
		return "", errNotStarted
	}
	return a.board.DisplayName(), nil
}

// SetDisplayName stores name and returns the leaderboard, which the UI
// re-renders after a rename.
func (a *App) SetDisplayName(name string) ([]leaderboard.View, error) {
	if a.board == nil {
		return nil, errNotStarted
	}
	a.board.SetDisplayName(a.ctx, name)
	return a.board.Views(), nil
}
