// internal/game/engine.go
//
// Game session for a single word grid.
// Responsibilities:
//   - Create new games from a seed and a fixed set of rules.
//   - Validate and apply words; the chain is replaced only on success.
//   - Track state transitions: playing → finished (no word fits, or quit).
//
// Notes:
//   - A Game is safe for concurrent use; readers always see a whole chain.
//   - Grid contents are never stored, only derived from (Seed, Chain).

package game

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordgrid/internal/grid"
	"github.com/robalobadob/wordgrid/internal/hint"
)

// Game modes.
const (
	ModeRandom = "random"
	ModeFixed  = "fixed"
	ModeDaily  = "daily"
)

// Game holds the state of a single session.
type Game struct {
	ID        string
	Mode      string
	Seed      grid.Seed
	StartedAt time.Time

	rules    Rules
	mu       sync.RWMutex
	chain    grid.Chain
	finished bool
}

// New constructs a game with an empty chain.
func New(rules Rules, seed grid.Seed, mode string) *Game {
	if mode == "" {
		mode = ModeRandom
	}
	return &Game{
		ID:        uuid.NewString(),
		Mode:      mode,
		Seed:      seed,
		StartedAt: time.Now().UTC(),
		rules:     rules,
	}
}

// Rules returns the rules the game was created with.
func (g *Game) Rules() Rules { return g.rules }

// Play validates word placed in direction dir after the current chain.
// On success the extended chain replaces the old one and the game is marked
// finished if no further word fits. On failure nothing changes.
func (g *Game) Play(word string, dir grid.Direction) (State, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.finished {
		return g.stateLocked(), ErrGameFinished
	}
	word = strings.ToUpper(strings.TrimSpace(word))
	candidate := g.chain.With(grid.WordEntry{Word: word, Dir: dir})
	if err := g.rules.Validate(g.Seed, candidate); err != nil {
		return g.stateLocked(), err
	}
	g.chain = candidate

	if _, err := hint.Suggest(g.rules.Grid, g.Seed, g.chain, g.rules.Dict); errors.Is(err, hint.ErrNoFit) {
		g.finished = true
	}
	return g.stateLocked(), nil
}

// Hints returns suggestions for the next word. See hint.Suggest.
func (g *Game) Hints() ([]hint.Suggestion, error) {
	g.mu.RLock()
	chain := g.chain
	g.mu.RUnlock()
	return hint.Suggest(g.rules.Grid, g.Seed, chain, g.rules.Dict)
}

// Finish ends the game. Finishing twice is harmless.
func (g *Game) Finish() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.finished = true
	return g.stateLocked()
}

// State returns a consistent snapshot of the game.
func (g *Game) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.stateLocked()
}

func (g *Game) stateLocked() State {
	// The chain is only ever replaced, never appended to in place, so
	// sharing the slice with the snapshot is safe.
	s := State{
		ID:         g.ID,
		Mode:       g.Mode,
		Seed:       g.Seed,
		Chain:      g.chain,
		Score:      Score(g.chain),
		NextLetter: g.chain.NextLetter(g.Seed),
		Finished:   g.finished,
		StartedAt:  g.StartedAt,
	}
	if pl, err := grid.Place(g.rules.Grid, g.Seed, g.chain); err == nil {
		s.Placement = pl
	}
	return s
}
