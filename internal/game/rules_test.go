package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordgrid/internal/grid"
	"github.com/robalobadob/wordgrid/internal/words"
)

func testRules(list ...string) Rules {
	cfg := grid.DefaultConfig()
	return Rules{Grid: cfg, Dict: words.New(list, cfg.MaxWordLength())}
}

func requireViolation(t *testing.T, err error, kind error, word string) {
	t.Helper()
	require.ErrorIs(t, err, kind)
	var v *Violation
	require.True(t, errors.As(err, &v), "want *Violation, got %T", err)
	require.Equal(t, word, v.Word)
}

func TestValidate_SingleWord(t *testing.T) {
	r := testRules("APE")
	seed := grid.Seed{Letter: 'A', X: 5, Y: 5}
	chain := grid.Chain{{Word: "APE", Dir: grid.East}}

	require.NoError(t, r.Validate(seed, chain))
	require.Equal(t, 3, Score(chain))
}

func TestValidate_EmptyChain(t *testing.T) {
	require.NoError(t, testRules().Validate(grid.Seed{Letter: 'Q', X: 0, Y: 9}, nil))
}

func TestValidate_Clash(t *testing.T) {
	r := testRules("APE", "ELF")
	seed := grid.Seed{Letter: 'A', X: 5, Y: 5}
	chain := grid.Chain{{Word: "APE", Dir: grid.East}, {Word: "ELF", Dir: grid.West}}

	err := r.Validate(seed, chain)
	requireViolation(t, err, ErrClash, "ELF")
	require.Equal(t, "ELF clashes with another word", err.Error())
}

func TestValidate_OutOfBounds(t *testing.T) {
	r := testRules("AWAY")
	err := r.Validate(grid.Seed{Letter: 'A', X: 0, Y: 0}, grid.Chain{{Word: "AWAY", Dir: grid.West}})
	requireViolation(t, err, ErrOutOfBounds, "AWAY")
	require.Contains(t, err.Error(), "x grid")

	err = r.Validate(grid.Seed{Letter: 'A', X: 0, Y: 8}, grid.Chain{{Word: "AWAY", Dir: grid.South}})
	requireViolation(t, err, ErrOutOfBounds, "AWAY")
	require.Contains(t, err.Error(), "y grid")
}

func TestValidate_DuplicateWord(t *testing.T) {
	r := testRules("APE", "EPA")
	seed := grid.Seed{Letter: 'A', X: 5, Y: 5}
	chain := grid.Chain{
		{Word: "APE", Dir: grid.East},
		{Word: "EPA", Dir: grid.West},
		{Word: "APE", Dir: grid.East},
	}
	requireViolation(t, r.Validate(seed, chain), ErrDuplicateWord, "APE")
}

func TestValidate_NotInDictionary(t *testing.T) {
	r := testRules("APE")
	seed := grid.Seed{Letter: 'A', X: 5, Y: 5}
	requireViolation(t, r.Validate(seed, grid.Chain{{Word: "AXQ", Dir: grid.East}}), ErrNotInDictionary, "AXQ")
	requireViolation(t, r.Validate(seed, grid.Chain{{Word: "", Dir: grid.East}}), ErrNotInDictionary, "")
}

func TestValidate_WrongStartLetter(t *testing.T) {
	r := testRules("APE", "PEA")
	seed := grid.Seed{Letter: 'A', X: 5, Y: 5}
	chain := grid.Chain{{Word: "APE", Dir: grid.East}, {Word: "PEA", Dir: grid.South}}
	err := r.Validate(seed, chain)
	requireViolation(t, err, ErrWrongStartLetter, "PEA")
	require.Equal(t, "PEA does not start with E", err.Error())
}

func TestValidate_PriorityOrder(t *testing.T) {
	seed := grid.Seed{Letter: 'A', X: 0, Y: 0}

	// Unknown word with the wrong start letter: dictionary check comes first.
	r := testRules("BOX")
	requireViolation(t, r.Validate(seed, grid.Chain{{Word: "ZZZ", Dir: grid.West}}), ErrNotInDictionary, "ZZZ")

	// Wrong start letter and off the grid: start letter comes first.
	requireViolation(t, r.Validate(seed, grid.Chain{{Word: "BOX", Dir: grid.West}}), ErrWrongStartLetter, "BOX")

	// An earlier violation beats a later one.
	r = testRules("AWAY", "YAK")
	chain := grid.Chain{{Word: "AWAY", Dir: grid.West}, {Word: "ZZZ", Dir: grid.East}}
	requireViolation(t, r.Validate(seed, chain), ErrOutOfBounds, "AWAY")

	// ABA clashes with the H of AHA, but the repeated AHA is reported first.
	r = testRules("AHA", "ABA")
	chain = grid.Chain{
		{Word: "AHA", Dir: grid.East},
		{Word: "ABA", Dir: grid.West},
		{Word: "AHA", Dir: grid.East},
	}
	requireViolation(t, r.Validate(seed, chain), ErrDuplicateWord, "AHA")
}

func TestCode(t *testing.T) {
	r := testRules("APE", "ELF")
	seed := grid.Seed{Letter: 'A', X: 5, Y: 5}
	err := r.Validate(seed, grid.Chain{{Word: "APE", Dir: grid.East}, {Word: "ELF", Dir: grid.West}})
	require.Equal(t, "clash", Code(err))
	require.Equal(t, "not_in_dictionary", Code(r.Validate(seed, grid.Chain{{Word: "ANT", Dir: grid.East}})))
	require.Equal(t, "finished", Code(ErrGameFinished))
	require.Equal(t, "", Code(nil))
}

func TestScore_Additive(t *testing.T) {
	chain := grid.Chain{{Word: "APE"}, {Word: "EEL"}, {Word: "LAMP"}}
	require.Equal(t, 10, Score(chain))
	require.Equal(t, Score(chain[:2])+Score(chain[2:]), Score(chain))
	require.Zero(t, Score(nil))
}
