package games

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MJE43/arcadia-desktop/internal/rng"
)

// pairs groups card positions by face.
func pairs(g *MemoryGame) map[string][]int {
	out := make(map[string][]int)
	for i := 0; i < MemoryCards; i++ {
		out[g.Face(i)] = append(out[g.Face(i)], i)
	}
	return out
}

// mismatch returns two positions holding different faces.
func mismatch(g *MemoryGame) (int, int) {
	for j := 1; j < MemoryCards; j++ {
		if g.Face(j) != g.Face(0) {
			return 0, j
		}
	}
	panic("deck has a single face")
}

func TestMemoryDeckHoldsEachFruitTwice(t *testing.T) {
	g := NewMemoryGame(newHarness().options())

	p := pairs(g)
	require.Len(t, p, len(Fruits))
	for _, f := range Fruits {
		assert.Len(t, p[f], 2, f)
	}
}

func TestMemoryShuffleIsSeeded(t *testing.T) {
	seeds := rng.Seeds{Server: "deck-server", Client: "deck-client"}
	a := NewMemoryGame(Options{Rand: rng.New(seeds)})
	b := NewMemoryGame(Options{Rand: rng.New(seeds)})

	for i := 0; i < MemoryCards; i++ {
		assert.Equal(t, a.Face(i), b.Face(i), "card %d", i)
	}
}

func TestMemoryMismatchRevertsAfterDelay(t *testing.T) {
	h := newHarness()
	g := NewMemoryGame(h.options())
	a, b := mismatch(g)

	require.True(t, g.FlipCard(a))
	require.True(t, g.FlipCard(b))
	assert.Equal(t, 1, g.Moves())

	// No third flip while the pair is pending.
	other := -1
	for i := 0; i < MemoryCards; i++ {
		if i != a && i != b {
			other = i
			break
		}
	}
	assert.False(t, g.FlipCard(other))

	h.clock.Advance(MismatchDelay - 1)
	s := g.State()
	assert.Equal(t, "flipped", s.Cards[a].State)
	assert.Equal(t, "flipped", s.Cards[b].State)

	h.clock.Advance(1)
	s = g.State()
	assert.Equal(t, "hidden", s.Cards[a].State)
	assert.Equal(t, "hidden", s.Cards[b].State)
	assert.Empty(t, s.Cards[a].Face)
	assert.Equal(t, 0, s.Pending)
	assert.Equal(t, 1, s.Moves)
	assert.Equal(t, "Moves: 1", s.Status)
}

func TestMemoryMatchStaysMatched(t *testing.T) {
	h := newHarness()
	g := NewMemoryGame(h.options())
	pos := pairs(g)[Fruits[0]]

	require.True(t, g.FlipCard(pos[0]))
	require.True(t, g.FlipCard(pos[1]))
	h.clock.Advance(MatchDelay)

	s := g.State()
	assert.Equal(t, "matched", s.Cards[pos[0]].State)
	assert.Equal(t, "matched", s.Cards[pos[1]].State)
	assert.Equal(t, Fruits[0], s.Cards[pos[0]].Face)

	assert.False(t, g.FlipCard(pos[0]))
	assert.False(t, g.FlipCard(pos[1]))
	assert.Equal(t, 1, g.Moves())
}

func TestMemorySameCardTwiceIgnored(t *testing.T) {
	g := NewMemoryGame(newHarness().options())

	require.True(t, g.FlipCard(3))
	assert.False(t, g.FlipCard(3))
	assert.Equal(t, 0, g.Moves())
	assert.Equal(t, 1, g.State().Pending)
}

func TestMemoryOutOfRangeIgnored(t *testing.T) {
	g := NewMemoryGame(newHarness().options())
	assert.False(t, g.FlipCard(-1))
	assert.False(t, g.FlipCard(MemoryCards))
}

func TestMemoryPerfectClearReportsMoves(t *testing.T) {
	h := newHarness()
	g := NewMemoryGame(h.options())

	for _, f := range Fruits {
		pos := pairs(g)[f]
		require.True(t, g.FlipCard(pos[0]))
		require.True(t, g.FlipCard(pos[1]))
		h.clock.Advance(MatchDelay)
	}

	s := g.State()
	assert.True(t, s.Complete)
	assert.Equal(t, len(Fruits), s.Moves)
	assert.Equal(t, "You cleared the board in 8 moves!", s.Status)
	assert.Equal(t, []result{{Memory, len(Fruits)}}, h.rec.results)
}

func TestMemoryClearWithMistakes(t *testing.T) {
	h := newHarness()
	g := NewMemoryGame(h.options())

	a, b := mismatch(g)
	g.FlipCard(a)
	g.FlipCard(b)
	h.clock.Advance(MismatchDelay)

	for _, f := range Fruits {
		pos := pairs(g)[f]
		g.FlipCard(pos[0])
		g.FlipCard(pos[1])
		h.clock.Advance(MatchDelay)
	}

	require.Len(t, h.rec.results, 1)
	assert.Equal(t, len(Fruits)+1, h.rec.results[0].value)
	assert.GreaterOrEqual(t, h.rec.results[0].value, len(Fruits))
}

func TestMemoryResetCancelsPendingResolution(t *testing.T) {
	h := newHarness()
	g := NewMemoryGame(h.options())
	a, b := mismatch(g)
	g.FlipCard(a)
	g.FlipCard(b)

	g.Reset()
	assert.Equal(t, 0, h.clock.Pending())

	h.clock.Advance(MismatchDelay)
	s := g.State()
	assert.Equal(t, 0, s.Moves)
	for i, c := range s.Cards {
		assert.Equal(t, "hidden", c.State, "card %d", i)
	}
}

func TestMemoryTeardownCancelsPendingResolution(t *testing.T) {
	h := newHarness()
	g := NewMemoryGame(h.options())
	pos := pairs(g)[Fruits[1]]
	g.FlipCard(pos[0])
	g.FlipCard(pos[1])

	g.Teardown()
	h.clock.Advance(MatchDelay)

	assert.Equal(t, "flipped", g.State().Cards[pos[0]].State)
	assert.Empty(t, h.rec.results)
}

func TestMemoryTeardownIgnoresFlips(t *testing.T) {
	h := newHarness()
	g := NewMemoryGame(h.options())
	g.Teardown()

	assert.False(t, g.FlipCard(0))
	assert.Equal(t, 0, g.State().Pending)
	assert.Equal(t, 0, h.clock.Pending())

	g.Reset()
	assert.True(t, g.FlipCard(0))
}
