package games

// GameSpec describes a game for menus and help.
type GameSpec struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	MetricLabel string `json:"metric_label"`
	Help        string `json:"help"`
}

var specs = []GameSpec{
	{
		ID:          Snake,
		Name:        "Snake",
		MetricLabel: "score",
		Help: "Steer with the arrow keys or swipe. Each apple adds a point, grows the snake " +
			"and speeds it up. Running into a wall or your own tail ends the run.",
	},
	{
		ID:          TicTacToe,
		Name:        "Tic-Tac-Toe",
		MetricLabel: "wins",
		Help: "Two players take turns placing ❌ and ⭘. Three marks in a row, column or " +
			"diagonal wins. Press R to restart or H to return home.",
	},
	{
		ID:          Memory,
		Name:        "Memory Match",
		MetricLabel: "moves",
		Help: "Flip two cards per move to find matching fruit. Pairs that match stay " +
			"face up. Clear the board in as few moves as you can.",
	},
}

// ListGames returns the available games in menu order.
func ListGames() []GameSpec {
	out := make([]GameSpec, len(specs))
	copy(out, specs)
	return out
}

// GetSpec looks up a game by ID.
func GetSpec(id ID) (GameSpec, bool) {
	for _, s := range specs {
		if s.ID == id {
			return s, true
		}
	}
	return GameSpec{}, false
}

// New builds an engine for id. It reports false for unknown games.
func New(id ID, opts Options) (Engine, bool) {
	switch id {
	case TicTacToe:
		return NewTicTacToeGame(opts), true
	case Memory:
		return NewMemoryGame(opts), true
	case Snake:
		return NewSnakeGame(opts), true
	default:
		return nil, false
	}
}
