// Package seed picks the starting letter and position of a game.
package seed

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/robalobadob/wordgrid/internal/grid"
)

// ErrBadSeed is returned by Parse for malformed input.
var ErrBadSeed = errors.New("seed: want LETTER X,Y, e.g. A5,5")

var alphabet = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// Random draws a letter from letters (A–Z when empty) and a uniformly random
// cell of cfg.
func Random(cfg grid.Config, letters []byte) (grid.Seed, error) {
	var b [24]byte
	if _, err := rand.Read(b[:]); err != nil {
		return grid.Seed{}, fmt.Errorf("seed: read random: %w", err)
	}
	return FromBytes(cfg, letters, b[:]), nil
}

// FromBytes derives a seed deterministically from at least 24 bytes of
// entropy: 8 bytes each for letter, x and y.
func FromBytes(cfg grid.Config, letters []byte, b []byte) grid.Seed {
	if len(letters) == 0 {
		letters = alphabet
	}
	pick := func(i, n int) int {
		if n <= 0 || len(b) < (i+1)*8 {
			return 0
		}
		return int(binary.BigEndian.Uint64(b[i*8:(i+1)*8]) % uint64(n))
	}
	return grid.Seed{
		Letter: letters[pick(0, len(letters))],
		X:      pick(1, cfg.Width),
		Y:      pick(2, cfg.Height),
	}
}

// Parse reads a seed written as "A5,5" or "A 5 5" and checks it fits cfg.
func Parse(cfg grid.Config, s string) (grid.Seed, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 || s[0] < 'A' || s[0] > 'Z' {
		return grid.Seed{}, fmt.Errorf("%w: %q", ErrBadSeed, s)
	}
	parts := strings.FieldsFunc(s[1:], func(r rune) bool { return r == ',' || r == ' ' })
	if len(parts) != 2 {
		return grid.Seed{}, fmt.Errorf("%w: %q", ErrBadSeed, s)
	}
	x, errX := strconv.Atoi(parts[0])
	y, errY := strconv.Atoi(parts[1])
	if errX != nil || errY != nil {
		return grid.Seed{}, fmt.Errorf("%w: %q", ErrBadSeed, s)
	}
	out := grid.Seed{Letter: s[0], X: x, Y: y}
	if err := Check(cfg, out); err != nil {
		return grid.Seed{}, err
	}
	return out, nil
}

// Check verifies an externally supplied seed.
func Check(cfg grid.Config, s grid.Seed) error {
	if s.Letter < 'A' || s.Letter > 'Z' {
		return fmt.Errorf("%w: letter %q", ErrBadSeed, s.Letter)
	}
	if !cfg.Contains(s.Pos()) {
		return fmt.Errorf("%w: (%d,%d) is off a %dx%d grid", grid.ErrOutOfBounds, s.X, s.Y, cfg.Width, cfg.Height)
	}
	return nil
}
