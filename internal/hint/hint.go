// internal/hint/hint.go
//
// Candidate word search from the current end of a chain.
//
// For each of the four directions the grid is read outward from the cursor
// (a "mask"). A dictionary word fits a direction when it is no longer than
// the mask and agrees with every letter already in it, using filler cells
// for the rest. Longer words are tried first; each word is suggested once,
// with the first direction that fits in N, S, W, E order.

package hint

import (
	"errors"
	"sort"

	"github.com/robalobadob/wordgrid/internal/grid"
	"github.com/robalobadob/wordgrid/internal/words"
)

// MaxSuggestions caps the number of suggestions returned.
const MaxSuggestions = 20

// ErrNoFit is returned when no dictionary word can be placed from the cursor.
var ErrNoFit = errors.New("hint: no words fit the available space")

// Suggestion is a word that can legally be played next and where it goes.
type Suggestion struct {
	Word string         `json:"word"`
	Dir  grid.Direction `json:"direction"`
}

// Suggest returns up to MaxSuggestions playable words for the chain.
// The chain must already be valid. Nothing passed in is modified.
func Suggest(cfg grid.Config, seed grid.Seed, chain grid.Chain, dict *words.Dictionary) ([]Suggestion, error) {
	pl, err := grid.Place(cfg, seed, chain)
	if err != nil {
		return nil, err
	}

	var masks [len(grid.HintOrder)][]byte
	for i, d := range grid.HintOrder {
		masks[i] = pl.Grid.Mask(pl.Cursor, d)
	}

	out := []Suggestion{}
	for _, w := range candidates(dict, pl.Letter, chain) {
		for i, d := range grid.HintOrder {
			if len(w) > cfg.MaxLength(pl.Cursor, d) || !overlays(w, masks[i], cfg.Filler) {
				continue
			}
			out = append(out, Suggestion{Word: w, Dir: d})
			break
		}
		if len(out) == MaxSuggestions {
			break
		}
	}
	if len(out) == 0 {
		return out, ErrNoFit
	}
	return out, nil
}

// candidates returns unplayed dictionary words starting with letter,
// longest first, ties kept in dictionary order.
func candidates(dict *words.Dictionary, letter byte, chain grid.Chain) []string {
	played := make(map[string]struct{}, len(chain))
	for _, e := range chain {
		played[e.Word] = struct{}{}
	}

	var out []string
	for _, w := range dict.Words() {
		if w[0] != letter {
			continue
		}
		if _, ok := played[w]; ok {
			continue
		}
		out = append(out, w)
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i]) > len(out[j]) })
	return out
}

// overlays reports whether word can be written over mask: every cell must be
// filler or already hold the same letter.
func overlays(word string, mask []byte, filler byte) bool {
	if len(word) > len(mask) {
		return false
	}
	for i := 0; i < len(word); i++ {
		if mask[i] != filler && mask[i] != word[i] {
			return false
		}
	}
	return true
}
