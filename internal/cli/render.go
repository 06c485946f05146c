// Package cli runs the word grid game in a terminal.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/grid"
	"github.com/robalobadob/wordgrid/internal/hint"
)

// Palette
var (
	colorLetter = lipgloss.Color("#2CD7C7")
	colorCursor = lipgloss.Color("#F4D03F")
	colorFiller = lipgloss.Color("#2C4A54")
	colorError  = lipgloss.Color("#E74C3C")
)

// styles holds the lipgloss styles used for output. Zero styles render text
// unchanged, which is what plain output uses.
type styles struct {
	title  lipgloss.Style
	letter lipgloss.Style
	cursor lipgloss.Style
	filler lipgloss.Style
	err    lipgloss.Style
	muted  lipgloss.Style
	box    lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		return styles{}
	}
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(colorLetter),
		letter: lipgloss.NewStyle().Bold(true).Foreground(colorLetter),
		cursor: lipgloss.NewStyle().Bold(true).Foreground(colorCursor),
		filler: lipgloss.NewStyle().Foreground(colorFiller),
		err:    lipgloss.NewStyle().Foreground(colorError),
		muted:  lipgloss.NewStyle().Foreground(colorFiller),
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorFiller).
			Padding(0, 1),
	}
}

// ColorEnabled reports whether f is a terminal and NO_COLOR is unset.
func ColorEnabled(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// renderGrid draws the grid with the cursor cell highlighted.
func (s styles) renderGrid(st game.State, filler byte) string {
	g := st.Placement.Grid
	var b strings.Builder
	for y, row := range g {
		for x, c := range row {
			cell := string(c)
			switch {
			case (grid.Point{X: x, Y: y}) == st.Placement.Cursor:
				cell = s.cursor.Render(cell)
			case c == filler:
				cell = s.filler.Render(cell)
			default:
				cell = s.letter.Render(cell)
			}
			b.WriteString(cell)
		}
		if y < len(g)-1 {
			b.WriteByte('\n')
		}
	}
	if s.box.GetBorderStyle() == (lipgloss.Border{}) {
		return b.String()
	}
	return s.box.Render(b.String())
}

func (s styles) renderHints(w io.Writer, hints []hint.Suggestion) {
	for _, h := range hints {
		fmt.Fprintf(w, "  %s %s\n", s.letter.Render(h.Word), s.muted.Render(h.Dir.String()))
	}
}

const banner = `
██     ██  ██████  ██████  ██████   ██████  ██████  ██ ██████
██     ██ ██    ██ ██   ██ ██   ██ ██       ██   ██ ██ ██   ██
██  █  ██ ██    ██ ██████  ██   ██ ██   ███ ██████  ██ ██   ██
██ ███ ██ ██    ██ ██   ██ ██   ██ ██    ██ ██   ██ ██ ██   ██
 ███ ███   ██████  ██   ██ ██████   ██████  ██   ██ ██ ██████
`

func (s styles) instructions(w io.Writer) {
	fmt.Fprintln(w, s.title.Render(banner))
	fmt.Fprintln(w, "Fill the grid with words. One point per letter in each word.")
	fmt.Fprintln(w, "Each word MUST:")
	fmt.Fprintln(w, "* Start with the last letter of the previous word")
	fmt.Fprintln(w, "* Be in the dictionary")
	fmt.Fprintln(w, "* Fit on the grid")
	fmt.Fprintln(w, "* Not clash with other letters already on the grid")
	fmt.Fprintln(w, "* Not repeat")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Here's what you can do:")
	fmt.Fprintln(w, "* Words can go North, South, East or West from the current letter")
	fmt.Fprintln(w, "* Words can overlap in any direction")
	fmt.Fprintln(w, "* Type ? for hints, Q to quit")
	fmt.Fprintln(w)
}
