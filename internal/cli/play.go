package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/grid"
	"github.com/robalobadob/wordgrid/internal/hint"
)

// Options configures a terminal session.
type Options struct {
	In    io.Reader
	Out   io.Writer
	Color bool
}

// Play runs an interactive game on g until no word fits, the player quits,
// or input runs out. It returns the final state.
func Play(g *game.Game, opts Options) (game.State, error) {
	s := newStyles(opts.Color)
	in := bufio.NewScanner(opts.In)
	w := opts.Out
	filler := g.Rules().Grid.Filler

	s.instructions(w)

	for {
		st := g.State()
		fmt.Fprintln(w, s.renderGrid(st, filler))
		if st.Finished {
			fmt.Fprintf(w, "Game over! No more words fit. Final score: %d\n", st.Score)
			return st, nil
		}

		prefix := string(st.NextLetter)
		fmt.Fprintf(w, "Score: %d  Next word: %s", st.Score, prefix)
		rest, ok := readLine(in)
		if !ok {
			return g.Finish(), in.Err()
		}
		switch strings.ToUpper(rest) {
		case "Q":
			st = g.Finish()
			fmt.Fprintf(w, "Thanks for playing! Final score: %d\n", st.Score)
			return st, nil
		case "?":
			hints, err := g.Hints()
			if errors.Is(err, hint.ErrNoFit) {
				fmt.Fprintln(w, s.err.Render("Nothing fits."))
				continue
			}
			if err != nil {
				return g.Finish(), err
			}
			fmt.Fprintln(w, "Try one of these:")
			s.renderHints(w, hints)
			continue
		}

		fmt.Fprint(w, "Direction (N/S/E/W): ")
		raw, ok := readLine(in)
		if !ok {
			return g.Finish(), in.Err()
		}
		dir, err := grid.ParseDirection(raw)
		if err != nil {
			fmt.Fprintln(w, s.err.Render(fmt.Sprintf("%q is not a direction", raw)))
			continue
		}

		if _, err := g.Play(prefix+rest, dir); err != nil {
			fmt.Fprintln(w, s.err.Render(message(err)))
		}
	}
}

func readLine(sc *bufio.Scanner) (string, bool) {
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

func message(err error) string {
	var v *game.Violation
	if errors.As(err, &v) {
		return v.Error()
	}
	return "Error: " + err.Error()
}
