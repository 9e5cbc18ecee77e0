package session

import "github.com/MJE43/arcadia-desktop/internal/games"

// Key names as reported by KeyboardEvent.key.
const (
	KeyEscape     = "Escape"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

var arrows = map[string]games.Point{
	KeyArrowUp:    games.Up,
	KeyArrowDown:  games.Down,
	KeyArrowLeft:  games.Left,
	KeyArrowRight: games.Right,
}

// KeyResult tells the UI what a key press did.
type KeyResult struct {
	Handled bool   `json:"handled"`
	Help    string `json:"help,omitempty"`
}

// PlayMove places a Tic-Tac-Toe mark. Ignored unless Tic-Tac-Toe is open.
func (s *Shell) PlayMove(cell int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.active.(*games.TicTacToeGame)
	return ok && g.PlayMove(cell)
}

// FlipCard turns a memory card. Ignored unless Memory Match is open.
func (s *Shell) FlipCard(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.active.(*games.MemoryGame)
	return ok && g.FlipCard(index)
}

// Steer latches a snake direction. Ignored unless Snake is open.
func (s *Shell) Steer(dir games.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.active.(*games.SnakeGame)
	return ok && g.SetDirection(dir)
}

// Swipe steers by a touch drag of (dx, dy) pixels.
func (s *Shell) Swipe(dx, dy float64) bool {
	dir, ok := games.DirectionFromSwipe(dx, dy)
	return ok && s.Steer(dir)
}

// HandleKey applies the global shortcuts: Escape or h closes the game, r
// restarts it, ? shows help and the arrow keys steer the snake.
func (s *Shell) HandleKey(key string) KeyResult {
	if s.Active() == "" {
		return KeyResult{}
	}

	switch key {
	case KeyEscape, "h", "H":
		s.Close()
		return KeyResult{Handled: true}
	case "r", "R":
		return KeyResult{Handled: s.Restart()}
	case "?", "/":
		help, err := s.Help("")
		return KeyResult{Handled: err == nil, Help: help}
	}

	if dir, ok := arrows[key]; ok {
		s.Steer(dir)
		// Arrows are swallowed while Snake is open even when the turn is
		// refused, so the page does not scroll.
		return KeyResult{Handled: s.Active() == games.Snake}
	}
	return KeyResult{}
}
