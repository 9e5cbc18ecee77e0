package games

// Mark is the content of a Tic-Tac-Toe cell.
type Mark uint8

const (
	Empty Mark = 0 // Empty cell
	X     Mark = 1 // First player
	O     Mark = 2 // Second player
)

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

func (m Mark) symbol() string {
	if m == O {
		return "⭘"
	}
	return "❌"
}

func (m Mark) other() Mark {
	if m == X {
		return O
	}
	return X
}

// Outcome is the Tic-Tac-Toe game status.
type Outcome uint8

const (
	InProgress Outcome = iota
	Won
	Draw
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

// winLines are the 3 rows, 3 columns and 2 diagonals of the 3x3 board.
var winLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

const tttCells = 9

// TicTacToeGame is a two-player 3x3 engine. X always opens.
type TicTacToeGame struct {
	opts    Options
	board   [tttCells]Mark
	turn    Mark
	outcome Outcome
	winner  Mark
	line    [3]int
	closed  bool
}

// TicTacToeState is the render snapshot.
type TicTacToeState struct {
	Board   [tttCells]string `json:"board"`
	Turn    string           `json:"turn"`
	Outcome string           `json:"outcome"`
	Winner  string           `json:"winner,omitempty"`
	Line    []int            `json:"line,omitempty"`
	Status  string           `json:"status"`
}

// NewTicTacToeGame returns a game at the initial state.
func NewTicTacToeGame(opts Options) *TicTacToeGame {
	g := &TicTacToeGame{opts: opts.withDefaults()}
	g.init()
	return g
}

func (g *TicTacToeGame) init() {
	g.board = [tttCells]Mark{}
	g.turn = X
	g.outcome = InProgress
	g.winner = Empty
	g.line = [3]int{}
}

// ID implements Engine.
func (g *TicTacToeGame) ID() ID { return TicTacToe }

// Start implements Engine.
func (g *TicTacToeGame) Start() {
	g.closed = false
	g.opts.OnChange()
}

// Reset implements Engine. Allowed at any time, including mid-game.
func (g *TicTacToeGame) Reset() {
	g.init()
	g.closed = false
	g.opts.OnChange()
}

// Teardown implements Engine. There are no timers; later moves are ignored.
func (g *TicTacToeGame) Teardown() { g.closed = true }

// Terminal reports whether the game is won or drawn.
func (g *TicTacToeGame) Terminal() bool { return g.outcome != InProgress }

// PlayMove places the current player's mark on cell (0-8, row-major). Moves on
// occupied cells, out of range or after the game ended are ignored; the
// result reports whether the move was taken.
func (g *TicTacToeGame) PlayMove(cell int) bool {
	if g.closed || g.Terminal() || cell < 0 || cell >= tttCells || g.board[cell] != Empty {
		return false
	}

	g.board[cell] = g.turn
	if line, ok := g.findWin(); ok {
		g.outcome = Won
		g.winner = g.turn
		g.line = line
		g.opts.OnChange()
		g.opts.Reporter.RecordResult(TicTacToe, 1)
		return true
	}

	if g.full() {
		g.outcome = Draw
		g.opts.OnChange()
		return true
	}

	g.turn = g.turn.other()
	g.opts.OnChange()
	return true
}

func (g *TicTacToeGame) findWin() ([3]int, bool) {
	for _, l := range winLines {
		a := g.board[l[0]]
		if a != Empty && a == g.board[l[1]] && a == g.board[l[2]] {
			return l, true
		}
	}
	return [3]int{}, false
}

func (g *TicTacToeGame) full() bool {
	for _, c := range g.board {
		if c == Empty {
			return false
		}
	}
	return true
}

// State returns the typed render snapshot.
func (g *TicTacToeGame) State() TicTacToeState {
	s := TicTacToeState{
		Turn:    g.turn.String(),
		Outcome: g.outcome.String(),
	}
	for i, c := range g.board {
		s.Board[i] = c.String()
	}

	switch g.outcome {
	case Won:
		s.Winner = g.winner.String()
		s.Line = []int{g.line[0], g.line[1], g.line[2]}
		s.Status = "Player " + g.winner.symbol() + " wins!"
	case Draw:
		s.Status = "Draw!"
	default:
		s.Status = "Player " + g.turn.symbol() + " to move"
	}
	return s
}

// Snapshot implements Engine.
func (g *TicTacToeGame) Snapshot() any { return g.State() }
