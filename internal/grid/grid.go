// internal/grid/grid.go
//
// Grid model for a word chain.
// The grid is never stored: it is rebuilt from (seed, chain) on every call,
// which keeps it consistent with the chain at the cost of a few hundred cell
// writes.

package grid

import (
	"fmt"
	"strings"
)

// Grid is a row-major letter matrix indexed as g[y][x].
type Grid [][]byte

// New returns a grid of cfg's dimensions with every cell set to the filler.
func New(cfg Config) Grid {
	g := make(Grid, cfg.Height)
	for y := range g {
		row := make([]byte, cfg.Width)
		for x := range row {
			row[x] = cfg.Filler
		}
		g[y] = row
	}
	return g
}

// At returns the cell at p. p must be inside the grid.
func (g Grid) At(p Point) byte { return g[p.Y][p.X] }

func (g Grid) contains(p Point) bool {
	return p.Y >= 0 && p.Y < len(g) && p.X >= 0 && p.X < len(g[p.Y])
}

// Rows returns each row as a string, top to bottom.
func (g Grid) Rows() []string {
	out := make([]string, len(g))
	for y, row := range g {
		out[y] = string(row)
	}
	return out
}

func (g Grid) String() string { return strings.Join(g.Rows(), "\n") }

// Clone returns a deep copy of g.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for y, row := range g {
		out[y] = append([]byte(nil), row...)
	}
	return out
}

// Mask returns the cells from p (index 0) out to the grid edge in direction d.
func (g Grid) Mask(p Point, d Direction) []byte {
	var out []byte
	for q := p; g.contains(q); q = q.Step(d, 1) {
		out = append(out, g.At(q))
	}
	return out
}

// Placement is the result of laying a chain out on a grid.
type Placement struct {
	Grid   Grid
	Cursor Point // cell holding the last letter written
	Letter byte  // last letter written; the seed letter for an empty chain
}

// Place lays the seed and every word of chain onto a fresh grid.
//
// Each word starts on the cell where the previous one ended. Every letter
// after the first must land on a filler cell or on the same letter;
// otherwise Place fails with ErrClash. Stepping off the grid fails with
// ErrOutOfBounds.
func Place(cfg Config, seed Seed, chain Chain) (Placement, error) {
	g := New(cfg)
	pos := seed.Pos()
	if !cfg.Contains(pos) {
		return Placement{}, fmt.Errorf("%w: seed at (%d,%d)", ErrOutOfBounds, pos.X, pos.Y)
	}
	g[pos.Y][pos.X] = seed.Letter
	last := seed.Letter

	for _, e := range chain {
		if !e.Dir.Valid() {
			return Placement{}, fmt.Errorf("%w: %s", ErrBadDirection, e.Word)
		}
		for i := 0; i < len(e.Word); i++ {
			if !cfg.Contains(pos) {
				return Placement{}, fmt.Errorf("%w: %s at (%d,%d)", ErrOutOfBounds, e.Word, pos.X, pos.Y)
			}
			letter := e.Word[i]
			if cur := g[pos.Y][pos.X]; i > 0 && cur != cfg.Filler && cur != letter {
				return Placement{}, fmt.Errorf("%w: %s puts %c over %c at (%d,%d)",
					ErrClash, e.Word, letter, cur, pos.X, pos.Y)
			}
			g[pos.Y][pos.X] = letter
			last = letter
			if i < len(e.Word)-1 {
				pos = pos.Step(e.Dir, 1)
			}
		}
	}
	return Placement{Grid: g, Cursor: pos, Letter: last}, nil
}
