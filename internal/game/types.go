// internal/game/types.go
//
// Snapshot type handed to renderers and the HTTP layer.

package game

import (
	"time"

	"github.com/robalobadob/wordgrid/internal/grid"
)

// State is an immutable view of a game at one point in time.
type State struct {
	ID         string
	Mode       string
	Seed       grid.Seed
	Chain      grid.Chain
	Score      int
	NextLetter byte // letter the next word must start with
	Finished   bool
	StartedAt  time.Time
	Placement  grid.Placement
}

// Status reports "playing" or "finished".
func (s State) Status() string {
	if s.Finished {
		return "finished"
	}
	return "playing"
}
