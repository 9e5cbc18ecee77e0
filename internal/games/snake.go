package games

import (
	"fmt"
	"math"
	"time"

	"github.com/MJE43/arcadia-desktop/internal/schedule"
)

const (
	// GridSize is the tile count per side (420px canvas, 20px cells).
	GridSize = 21

	InitialInterval = 120 * time.Millisecond
	MinInterval     = 60 * time.Millisecond
	IntervalStep    = 2 * time.Millisecond
)

// Point is a grid cell or a direction vector.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) inGrid() bool {
	return p.X >= 0 && p.Y >= 0 && p.X < GridSize && p.Y < GridSize
}

func (p Point) unit() bool {
	return abs(p.X)+abs(p.Y) == 1
}

var (
	Up    = Point{0, -1}
	Down  = Point{0, 1}
	Left  = Point{-1, 0}
	Right = Point{1, 0}

	snakeStart = Point{10, 10}
)

// DirectionFromSwipe maps a touch drag to the direction of its dominant axis.
// A zero-length drag reports false.
func DirectionFromSwipe(dx, dy float64) (Point, bool) {
	switch {
	case math.Abs(dx) > math.Abs(dy):
		if dx > 0 {
			return Right, true
		}
		return Left, true
	case dy > 0:
		return Down, true
	case dy < 0:
		return Up, true
	default:
		return Point{}, false
	}
}

// SnakeGame is the Snake engine. Ticks are chained one-shot callbacks, so a
// speed change takes effect from the next tick.
type SnakeGame struct {
	opts   Options
	timers *schedule.Group

	body     []Point // head first
	dir      Point
	apple    Point
	hasApple bool
	score    int
	alive    bool
	closed   bool
	interval time.Duration
}

// SnakeState is the render snapshot.
type SnakeState struct {
	Grid       int     `json:"grid"`
	Snake      []Point `json:"snake"`
	Direction  Point   `json:"direction"`
	Apple      *Point  `json:"apple,omitempty"`
	Score      int     `json:"score"`
	Alive      bool    `json:"alive"`
	IntervalMs int64   `json:"interval_ms"`
	ScoreText  string  `json:"score_text"`
	Status     string  `json:"status"`
}

// NewSnakeGame returns a snake at the start cell. Ticking begins on Start.
func NewSnakeGame(opts Options) *SnakeGame {
	g := &SnakeGame{opts: opts.withDefaults()}
	g.timers = schedule.NewGroup(g.opts.Scheduler)
	g.init()
	return g
}

func (g *SnakeGame) init() {
	g.body = append(g.body[:0], snakeStart)
	g.dir = Right
	g.score = 0
	g.alive = true
	g.interval = InitialInterval
	g.spawnApple()
}

// ID implements Engine.
func (g *SnakeGame) ID() ID { return Snake }

// Start implements Engine.
func (g *SnakeGame) Start() {
	g.closed = false
	if g.alive && g.timers.Len() == 0 {
		g.scheduleTick()
	}
	g.opts.OnChange()
}

// Reset implements Engine.
func (g *SnakeGame) Reset() {
	g.timers.Stop()
	g.init()
	g.closed = false
	g.scheduleTick()
	g.opts.OnChange()
}

// Teardown implements Engine.
func (g *SnakeGame) Teardown() {
	g.closed = true
	g.timers.Stop()
}

func (g *SnakeGame) scheduleTick() {
	g.timers.AfterFunc(g.interval, func() {
		g.Tick()
		if g.alive {
			g.scheduleTick()
		}
	})
}

// SetDirection latches v for the next tick. Non-unit vectors and the exact
// reverse of the current direction are ignored.
func (g *SnakeGame) SetDirection(v Point) bool {
	if g.closed || !g.alive || !v.unit() || v == (Point{-g.dir.X, -g.dir.Y}) {
		return false
	}
	g.dir = v
	return true
}

// Tick advances the snake by one cell.
func (g *SnakeGame) Tick() {
	if g.closed || !g.alive {
		return
	}

	head := g.body[0].add(g.dir)
	if !head.inGrid() || g.occupied(head) {
		g.alive = false
		g.opts.OnChange()
		g.opts.Reporter.RecordResult(Snake, g.score)
		return
	}

	g.body = append(g.body, Point{})
	copy(g.body[1:], g.body)
	g.body[0] = head

	if g.hasApple && head == g.apple {
		g.score++
		g.spawnApple()
		if g.interval > MinInterval {
			g.interval = max(g.interval-IntervalStep, MinInterval)
		}
	} else {
		g.body = g.body[:len(g.body)-1]
	}
	g.opts.OnChange()
}

func (g *SnakeGame) occupied(p Point) bool {
	for _, c := range g.body {
		if c == p {
			return true
		}
	}
	return false
}

// spawnApple picks uniformly among free cells. A full board has no apple.
func (g *SnakeGame) spawnApple() {
	free := make([]Point, 0, GridSize*GridSize-len(g.body))
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			if p := (Point{x, y}); !g.occupied(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		g.hasApple = false
		return
	}
	g.apple = free[g.opts.Rand.Intn(len(free))]
	g.hasApple = true
}

// Alive reports whether the run is still going.
func (g *SnakeGame) Alive() bool { return g.alive }

// Score returns the apples eaten this run.
func (g *SnakeGame) Score() int { return g.score }

// Interval returns the current tick interval.
func (g *SnakeGame) Interval() time.Duration { return g.interval }

// State returns the typed render snapshot.
func (g *SnakeGame) State() SnakeState {
	s := SnakeState{
		Grid:       GridSize,
		Snake:      append([]Point(nil), g.body...),
		Direction:  g.dir,
		Score:      g.score,
		Alive:      g.alive,
		IntervalMs: g.interval.Milliseconds(),
		ScoreText:  fmt.Sprintf("Score: %d", g.score),
		Status:     "Arrow keys to move",
	}
	if g.hasApple {
		a := g.apple
		s.Apple = &a
	}
	if !g.alive {
		s.Status = "Game over!"
	}
	return s
}

// Snapshot implements Engine.
func (g *SnakeGame) Snapshot() any { return g.State() }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
