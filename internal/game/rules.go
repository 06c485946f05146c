// internal/game/rules.go
//
// Word-chain validation and scoring.
//
// Validation rules, checked per word from left to right, first failure wins:
//   1. Word is in the dictionary.
//   2. Word starts with the last letter of the previous word (seed letter
//      for the first word).
//   3. Word's far end stays on the grid.
// Then, across the whole chain:
//   4. No word is played twice.
//   5. No letter clashes with one already on the grid.

package game

import (
	"errors"

	"github.com/robalobadob/wordgrid/internal/grid"
	"github.com/robalobadob/wordgrid/internal/words"
)

// Rules bundles the fixed configuration a chain is validated against.
type Rules struct {
	Grid grid.Config
	Dict *words.Dictionary
}

// Validate checks a candidate chain and returns nil or the first *Violation.
// It has no side effects.
func (r Rules) Validate(seed grid.Seed, chain grid.Chain) error {
	last := seed.Letter
	pos := seed.Pos()
	for i, e := range chain {
		w := e.Word
		if !r.Dict.Contains(w) {
			return violation(ErrNotInDictionary, i, w, "%s is not in the dictionary", w)
		}
		if w[0] != last {
			return violation(ErrWrongStartLetter, i, w, "%s does not start with %c", w, last)
		}
		if !e.Dir.Valid() {
			return violation(grid.ErrBadDirection, i, w, "%s has no valid direction", w)
		}
		last = w[len(w)-1]

		// A straight word from an in-bounds start is in bounds iff its end is.
		pos = pos.Step(e.Dir, len(w)-1)
		if pos.X < 0 || pos.X >= r.Grid.Width {
			return violation(ErrOutOfBounds, i, w, "%s falls outside of the x grid", w)
		}
		if pos.Y < 0 || pos.Y >= r.Grid.Height {
			return violation(ErrOutOfBounds, i, w, "%s falls outside of the y grid", w)
		}
	}

	seen := make(map[string]int, len(chain))
	for i, e := range chain {
		if _, dup := seen[e.Word]; dup {
			return violation(ErrDuplicateWord, i, e.Word, "repeat word found: %s", e.Word)
		}
		seen[e.Word] = i
	}

	if _, err := grid.Place(r.Grid, seed, chain); err != nil {
		i, w := r.locate(seed, chain)
		switch {
		case errors.Is(err, grid.ErrClash):
			return violation(ErrClash, i, w, "%s clashes with another word", w)
		case errors.Is(err, grid.ErrOutOfBounds):
			return violation(ErrOutOfBounds, i, w, "%s falls outside of the grid", w)
		}
		return err
	}
	return nil
}

// locate finds the first word whose placement fails.
func (r Rules) locate(seed grid.Seed, chain grid.Chain) (int, string) {
	for i := range chain {
		if _, err := grid.Place(r.Grid, seed, chain[:i+1]); err != nil {
			return i, chain[i].Word
		}
	}
	return -1, ""
}

// Score is one point per letter of every word, overlaps included.
func Score(chain grid.Chain) int {
	n := 0
	for _, e := range chain {
		n += len(e.Word)
	}
	return n
}
