// internal/grid/types.go
//
// Core type definitions for the word grid.
// Defines:
//   - Direction: the four cardinal directions a word can run in.
//   - Point, Seed: grid coordinates and the fixed starting letter.
//   - WordEntry, Chain: the ordered list of placed words.
//   - Config: grid dimensions and filler marker for a session.

package grid

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOutOfBounds reports a letter placement outside the grid.
	ErrOutOfBounds = errors.New("grid: out of bounds")
	// ErrClash reports a placed letter disagreeing with one already on the grid.
	ErrClash = errors.New("grid: clashing letter")
	// ErrBadDirection reports an unknown direction string.
	ErrBadDirection = errors.New("grid: direction must be one of N, S, E, W")
	// ErrBadConfig reports unusable grid dimensions or filler.
	ErrBadConfig = errors.New("grid: invalid configuration")
)

// Direction is one of the four cardinal directions.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// HintOrder is the priority in which directions are tried for a candidate word.
var HintOrder = [...]Direction{North, South, West, East}

// deltas maps each direction to its unit step in (x, y). North decreases y.
var deltas = [...][2]int{
	North: {0, -1},
	South: {0, 1},
	East:  {1, 0},
	West:  {-1, 0},
}

// Delta returns the unit vector for d.
func (d Direction) Delta() (dx, dy int) {
	v := deltas[d]
	return v[0], v[1]
}

// Valid reports whether d is one of the four known directions.
func (d Direction) Valid() bool { return d >= North && d <= West }

// String returns the single-letter form used by players: N, S, E or W.
func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case South:
		return "S"
	case East:
		return "E"
	case West:
		return "W"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection accepts N/S/E/W or the full names, case-insensitive.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "N", "NORTH":
		return North, nil
	case "S", "SOUTH":
		return South, nil
	case "E", "EAST":
		return East, nil
	case "W", "WEST":
		return West, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadDirection, s)
}

// MarshalText encodes a direction as its single letter.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrBadDirection, int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Point is an (x, y) grid coordinate; x is the column, y the row.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step moves p by n cells in direction d.
func (p Point) Step(d Direction, n int) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx*n, Y: p.Y + dy*n}
}

// Seed is the fixed letter and position anchoring the first word.
type Seed struct {
	Letter byte
	X, Y   int
}

// Pos returns the seed position as a Point.
func (s Seed) Pos() Point { return Point{X: s.X, Y: s.Y} }

func (s Seed) String() string { return fmt.Sprintf("%c@(%d,%d)", s.Letter, s.X, s.Y) }

// WordEntry is a word together with the direction it was placed in.
type WordEntry struct {
	Word string    `json:"word"`
	Dir  Direction `json:"direction"`
}

// Chain is the ordered list of placed words, in play order.
type Chain []WordEntry

// With returns a new chain with e appended. The receiver is never modified.
func (c Chain) With(e WordEntry) Chain {
	out := make(Chain, len(c), len(c)+1)
	copy(out, c)
	return append(out, e)
}

// Contains reports whether word has already been played.
func (c Chain) Contains(word string) bool {
	for _, e := range c {
		if e.Word == word {
			return true
		}
	}
	return false
}

// Words returns the played words in order.
func (c Chain) Words() []string {
	out := make([]string, len(c))
	for i, e := range c {
		out[i] = e.Word
	}
	return out
}

// NextLetter returns the letter the next word must start with.
func (c Chain) NextLetter(seed Seed) byte {
	if len(c) == 0 {
		return seed.Letter
	}
	w := c[len(c)-1].Word
	if w == "" {
		return seed.Letter
	}
	return w[len(w)-1]
}

// Config holds the fixed dimensions and filler marker for a session.
type Config struct {
	Width  int
	Height int
	Filler byte
}

// DefaultConfig returns the classic 10x10 grid with '.' as filler.
func DefaultConfig() Config {
	return Config{Width: 10, Height: 10, Filler: '.'}
}

// Validate checks the dimensions are positive and the filler is not a letter.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrBadConfig, c.Width, c.Height)
	}
	if c.Filler >= 'A' && c.Filler <= 'Z' {
		return fmt.Errorf("%w: filler %q is a letter", ErrBadConfig, c.Filler)
	}
	return nil
}

// Contains reports whether p lies inside the grid.
func (c Config) Contains(p Point) bool {
	return p.X >= 0 && p.X < c.Width && p.Y >= 0 && p.Y < c.Height
}

// MaxWordLength is the longest word that could ever be placed.
func (c Config) MaxWordLength() int {
	return max(c.Width, c.Height)
}

// MaxLength returns the number of cells from p to the grid edge in direction d,
// counting p itself.
func (c Config) MaxLength(p Point, d Direction) int {
	switch d {
	case North:
		return p.Y + 1
	case South:
		return c.Height - p.Y
	case West:
		return p.X + 1
	case East:
		return c.Width - p.X
	}
	return 0
}
