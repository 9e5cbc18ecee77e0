// Package leaderboard keeps the per-game top-ten lists and the player's
// display name, persisted as JSON in a key-value store.
package leaderboard

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/benbjohnson/clock"

	"github.com/MJE43/arcadia-desktop/internal/games"
	"github.com/MJE43/arcadia-desktop/internal/logging"
	"github.com/MJE43/arcadia-desktop/internal/store"
)

const (
	// KeyNick and KeyScores are the store keys; they match what the browser
	// build kept in localStorage.
	KeyNick   = "arcadia_nick"
	KeyScores = "arcadia_scores"

	MaxEntries    = 10
	MaxNameLength = 18
	DefaultName   = "Player"
)

// Entry is one leaderboard row.
type Entry struct {
	Name  string    `json:"nick"`
	Value int       `json:"value"`
	At    time.Time `json:"at"`
}

// Order is a game's ranking direction.
type Order int

const (
	HigherIsBetter Order = iota
	LowerIsBetter
)

// OrderFor returns the fixed ranking rule for a game.
func OrderFor(id games.ID) Order {
	if id == games.Memory {
		return LowerIsBetter
	}
	return HigherIsBetter
}

func (o Order) compare(a, b Entry) int {
	if o == LowerIsBetter {
		return cmp.Compare(a.Value, b.Value)
	}
	return cmp.Compare(b.Value, a.Value)
}

// View is a rendered leaderboard section.
type View struct {
	Game    games.ID `json:"game"`
	Label   string   `json:"label"`
	Entries []Entry  `json:"entries"`
}

var views = []struct {
	id    games.ID
	label string
}{
	{games.Snake, "Snake: Highest score (bigger is better)"},
	{games.Memory, "Memory Match: Fewest moves (smaller is better)"},
	{games.TicTacToe, "Tic-Tac-Toe: Wins (more is better)"},
}

func known(id games.ID) bool {
	for _, v := range views {
		if v.id == id {
			return true
		}
	}
	return false
}

// NormalizeName trims name, substitutes DefaultName when blank and truncates
// to MaxNameLength runes.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		name = string([]rune(name)[:MaxNameLength])
	}
	return name
}

// Option configures a Board.
type Option func(*Board)

// WithLogger sets the logger used for persistence warnings.
func WithLogger(l *slog.Logger) Option {
	return func(b *Board) { b.log = l }
}

// WithClock sets the clock that stamps entries.
func WithClock(c clock.Clock) Option {
	return func(b *Board) { b.clock = c }
}

// Board is the leaderboard store. It is safe for concurrent use.
type Board struct {
	kv    store.KV
	log   *slog.Logger
	clock clock.Clock

	mu     sync.Mutex
	nick   string
	scores map[games.ID][]Entry
	// other holds lists for games this build does not know, written back
	// untouched.
	other map[string]json.RawMessage
}

// New returns an empty board over kv. Call Load to read persisted state.
func New(kv store.KV, opts ...Option) *Board {
	b := &Board{
		kv:     kv,
		clock:  clock.New(),
		scores: make(map[games.ID][]Entry),
		other:  make(map[string]json.RawMessage),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load reads the display name and scores. Missing keys leave defaults;
// unreadable or malformed values are logged and treated as empty.
func (b *Board) Load(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if nick, err := b.kv.Get(ctx, KeyNick); err == nil {
		b.nick = strings.TrimSpace(nick)
	} else if !errors.Is(err, store.ErrNotFound) {
		logging.Warn(b.log, "display name unreadable; using default", logging.FieldError, err)
	}

	clear(b.scores)
	clear(b.other)

	raw, err := b.kv.Get(ctx, KeyScores)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logging.Warn(b.log, "leaderboard unreadable; starting empty", logging.FieldError, err)
		}
		return
	}

	var byGame map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &byGame); err != nil {
		logging.Warn(b.log, "leaderboard malformed; starting empty", logging.FieldError, err)
		return
	}

	for key, list := range byGame {
		id := games.ID(key)
		if !known(id) {
			b.other[key] = list
			continue
		}
		var entries []Entry
		if err := json.Unmarshal(list, &entries); err != nil {
			logging.Warn(b.log, "leaderboard list malformed; dropping", logging.FieldGame, key, logging.FieldError, err)
			continue
		}
		b.scores[id] = rank(id, entries)
	}
	logging.Debug(b.log, "leaderboard loaded", logging.FieldCount, len(b.scores))
}

// RecordResult adds value for game under name, keeps the best MaxEntries and
// persists. It returns the game's updated list. Unknown games are ignored.
func (b *Board) RecordResult(ctx context.Context, game games.ID, name string, value int) []Entry {
	if !known(game) {
		logging.Warn(b.log, "result for unknown game ignored", logging.FieldGame, game, logging.FieldValue, value)
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	entry := Entry{Name: NormalizeName(name), Value: value, At: b.clock.Now().UTC()}
	b.scores[game] = rank(game, append(b.scores[game], entry))

	logging.Info(b.log, "result recorded",
		logging.FieldGame, game,
		logging.FieldPlayer, entry.Name,
		logging.FieldValue, value,
	)
	b.persistLocked(ctx)
	return slices.Clone(b.scores[game])
}

// rank stable-sorts entries by the game's rule and truncates.
func rank(game games.ID, entries []Entry) []Entry {
	order := OrderFor(game)
	slices.SortStableFunc(entries, order.compare)
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	return entries
}

func (b *Board) persistLocked(ctx context.Context) {
	out := make(map[string]any, len(b.scores)+len(b.other))
	for k, v := range b.other {
		out[k] = v
	}
	for id, entries := range b.scores {
		out[string(id)] = entries
	}

	payload, err := json.Marshal(out)
	if err != nil {
		logging.Error(b.log, "leaderboard encode failed", err)
		return
	}
	if err := b.kv.Set(ctx, KeyScores, string(payload)); err != nil {
		logging.Error(b.log, "leaderboard save failed; keeping in memory", err, logging.FieldKey, KeyScores)
	}
}

// Top returns a copy of a game's ranked list.
func (b *Board) Top(game games.ID) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.scores[game])
}

// Views returns every known game's list with its heading, Snake first.
func (b *Board) Views() []View {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]View, 0, len(views))
	for _, v := range views {
		entries := slices.Clone(b.scores[v.id])
		if entries == nil {
			entries = []Entry{}
		}
		out = append(out, View{Game: v.id, Label: v.label, Entries: entries})
	}
	return out
}

// DisplayName returns the name results are recorded under.
func (b *Board) DisplayName() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return NormalizeName(b.nick)
}

// SetDisplayName stores the trimmed name, or DefaultName when blank, and
// returns the name results will be recorded under.
func (b *Board) SetDisplayName(ctx context.Context, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nick = name
	if err := b.kv.Set(ctx, KeyNick, name); err != nil {
		logging.Error(b.log, "display name save failed; keeping in memory", err, logging.FieldKey, KeyNick)
	}
	return NormalizeName(name)
}
