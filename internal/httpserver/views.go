package httpserver

import (
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/grid"
)

type seedView struct {
	Letter string `json:"letter"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// gameView is the JSON shape of a game returned by every game endpoint.
type gameView struct {
	GameID     string     `json:"gameId"`
	Mode       string     `json:"mode"`
	Seed       seedView   `json:"seed"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
	Grid       []string   `json:"grid"`
	Cursor     grid.Point `json:"cursor"`
	NextLetter string     `json:"nextLetter"`
	Words      grid.Chain `json:"words"`
	Score      int        `json:"score"`
	Status     string     `json:"status"`
}

func (s *Server) view(st game.State) gameView {
	words := st.Chain
	if words == nil {
		words = grid.Chain{}
	}
	return gameView{
		GameID:     st.ID,
		Mode:       st.Mode,
		Seed:       seedView{Letter: string(st.Seed.Letter), X: st.Seed.X, Y: st.Seed.Y},
		Width:      s.rules.Grid.Width,
		Height:     s.rules.Grid.Height,
		Grid:       st.Placement.Grid.Rows(),
		Cursor:     st.Placement.Cursor,
		NextLetter: string(st.NextLetter),
		Words:      words,
		Score:      st.Score,
		Status:     st.Status(),
	}
}
