package hint

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordgrid/internal/grid"
	"github.com/robalobadob/wordgrid/internal/words"
)

func TestSuggest_EqualLengthKeepsDictionaryOrder(t *testing.T) {
	dict := words.New([]string{"APE", "ANT"}, 10)
	got, err := Suggest(grid.DefaultConfig(), grid.Seed{Letter: 'A', X: 5, Y: 5}, nil, dict)
	require.NoError(t, err)
	require.Equal(t, []Suggestion{
		{Word: "APE", Dir: grid.North},
		{Word: "ANT", Dir: grid.North},
	}, got)
}

func TestSuggest_LongestFirst(t *testing.T) {
	dict := words.New([]string{"AT", "APPLE", "ANT", "ALE", "AWAY"}, 10)
	got, err := Suggest(grid.DefaultConfig(), grid.Seed{Letter: 'A', X: 5, Y: 5}, nil, dict)
	require.NoError(t, err)

	var order []string
	for _, s := range got {
		order = append(order, s.Word)
	}
	require.Equal(t, []string{"APPLE", "AWAY", "ANT", "ALE", "AT"}, order)
}

func TestSuggest_DirectionPriority(t *testing.T) {
	// Seed on the top row: nothing longer than one letter fits north.
	dict := words.New([]string{"APE"}, 10)
	got, err := Suggest(grid.DefaultConfig(), grid.Seed{Letter: 'A', X: 5, Y: 0}, nil, dict)
	require.NoError(t, err)
	require.Equal(t, []Suggestion{{Word: "APE", Dir: grid.South}}, got)

	// Top-left corner on a grid too short to go south: west is blocked too,
	// so east is the only option.
	cfg := grid.Config{Width: 10, Height: 2, Filler: '.'}
	got, err = Suggest(cfg, grid.Seed{Letter: 'A', X: 0, Y: 0}, nil, dict)
	require.NoError(t, err)
	require.Equal(t, []Suggestion{{Word: "APE", Dir: grid.East}}, got)
}

func TestSuggest_OverlaysExistingLetters(t *testing.T) {
	cfg := grid.Config{Width: 5, Height: 4, Filler: '.'}
	seed := grid.Seed{Letter: 'C', X: 1, Y: 1}
	chain := grid.Chain{{Word: "CAT", Dir: grid.East}}
	dict := words.New([]string{"CAT", "TACO", "TOGA", "TO"}, 5)

	got, err := Suggest(cfg, seed, chain, dict)
	require.NoError(t, err)
	// TACO only fits west, running back over A and C. TOGA would put O on A.
	require.Equal(t, []Suggestion{
		{Word: "TACO", Dir: grid.West},
		{Word: "TO", Dir: grid.North},
	}, got)
}

func TestSuggest_SkipsPlayedWords(t *testing.T) {
	seed := grid.Seed{Letter: 'A', X: 5, Y: 5}
	chain := grid.Chain{{Word: "AHA", Dir: grid.South}}
	dict := words.New([]string{"AHA", "ANT"}, 10)

	got, err := Suggest(grid.DefaultConfig(), seed, chain, dict)
	require.NoError(t, err)
	// North would put N on the H of AHA.
	require.Equal(t, []Suggestion{{Word: "ANT", Dir: grid.South}}, got)
}

func TestSuggest_Cap(t *testing.T) {
	var list []string
	for c := byte('A'); c <= 'Z'; c++ {
		list = append(list, "A"+string(c))
	}
	dict := words.New(list, 10)

	got, err := Suggest(grid.DefaultConfig(), grid.Seed{Letter: 'A', X: 5, Y: 5}, nil, dict)
	require.NoError(t, err)
	require.Len(t, got, MaxSuggestions)
	require.Equal(t, "AA", got[0].Word)
	require.Equal(t, "AT", got[MaxSuggestions-1].Word)
}

func TestSuggest_NoFit(t *testing.T) {
	cfg := grid.Config{Width: 1, Height: 1, Filler: '.'}
	dict := words.New([]string{"AB", "BA"}, 1)
	got, err := Suggest(cfg, grid.Seed{Letter: 'A'}, nil, words.New([]string{"AB"}, 0))
	require.ErrorIs(t, err, ErrNoFit)
	require.Empty(t, got)

	_, err = Suggest(cfg, grid.Seed{Letter: 'A'}, nil, dict)
	require.ErrorIs(t, err, ErrNoFit)
}

func TestSuggest_DoesNotMutateChain(t *testing.T) {
	seed := grid.Seed{Letter: 'A', X: 5, Y: 5}
	chain := grid.Chain{{Word: "APE", Dir: grid.East}}
	before := append(grid.Chain(nil), chain...)

	_, _ = Suggest(grid.DefaultConfig(), seed, chain, words.New([]string{"EEL", "ELF"}, 10))
	require.Equal(t, before, chain)
}
