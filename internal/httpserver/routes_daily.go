// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes endpoints under /daily:
//   - POST /daily/new         → start today's game (creates or reuses session)
//   - POST /daily/word        → play a word in today's game
//   - POST /daily/hint        → hints for today's game
//   - POST /daily/finish      → stop playing and record the score
//   - GET  /daily/leaderboard → top 20 results for today (or ?date=YYYY-MM-DD)
//
// Everyone gets the same seed on a given date (HMAC of the date).
// Each player records one result per day (enforced by DB + in-memory session).

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/daily"
	"github.com/robalobadob/wordgrid/internal/game"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	sessions map[string]string // userID|date → game ID
	mu       sync.Mutex        // guards sessions
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	dd := &dailyServer{
		srv:      s,
		store:    daily.NewStore(s.db),
		sessions: make(map[string]string),
	}
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", dd.handleNew)
		r.Post("/word", dd.handleWord)
		r.Post("/hint", dd.handleHint)
		r.Post("/finish", dd.handleFinish)
		r.Get("/leaderboard", dd.handleLeaderboard)
	})
}

func (d *dailyServer) today() string { return daily.DateKey(d.srv.now()) }

func ownerKey(o owner) string {
	if o.userID != "" {
		return o.userID
	}
	return o.anonID
}

// newRes is returned by /daily/new.
type newRes struct {
	Date   string    `json:"date"`
	Played bool      `json:"played"`
	Game   *gameView `json:"game,omitempty"`
}

// handleNew creates or reuses today's session.
// - If the player already has a DB row for today → Played=true.
// - Otherwise create/reuse an in-memory game and return it.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	s := d.srv
	o := s.ownerOf(w, r)
	uid := ownerKey(o)
	date := d.today()

	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err != nil {
		log.Warn().Err(err).Msg("daily already played")
	} else if played {
		writeJSON(w, http.StatusOK, newRes{Date: date, Played: true})
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	defer d.mu.Unlock()
	if id, ok := d.sessions[key]; ok {
		if g, err := s.store.Get(r.Context(), id); err == nil {
			v := s.view(g.State())
			writeJSON(w, http.StatusOK, newRes{Date: date, Game: &v})
			return
		}
	}

	sd := daily.Seed(s.rules.Grid, s.cfg.DailySalt, s.now(), s.rules.Dict.StartLetters())
	g := game.New(s.rules, sd, game.ModeDaily)
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save daily game")
		writeError(w, http.StatusInternalServerError, "save_failed", "")
		return
	}
	d.sessions[key] = g.ID
	s.recordStart(r.Context(), g, o)

	v := s.view(g.State())
	writeJSON(w, http.StatusCreated, newRes{Date: date, Game: &v})
}

// session returns today's game for the caller, writing 404 if there is none.
func (d *dailyServer) session(w http.ResponseWriter, r *http.Request) (*game.Game, string, bool) {
	uid := ownerKey(d.srv.ownerOf(w, r))
	d.mu.Lock()
	id, ok := d.sessions[uid+"|"+d.today()]
	d.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "no_session", "start today's game with POST /daily/new")
		return nil, "", false
	}
	g, err := d.srv.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "no_session", "")
		return nil, "", false
	}
	return g, uid, true
}

// handleWord plays a word in today's game.
func (d *dailyServer) handleWord(w http.ResponseWriter, r *http.Request) {
	var req wordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "")
		return
	}
	g, uid, ok := d.session(w, r)
	if !ok {
		return
	}
	st, ok := d.srv.playWord(w, r, g, req)
	if !ok {
		return
	}
	if st.Finished {
		d.finish(r.Context(), st, uid, currentUser(r))
	}
	writeJSON(w, http.StatusOK, d.srv.view(st))
}

func (d *dailyServer) handleHint(w http.ResponseWriter, r *http.Request) {
	g, _, ok := d.session(w, r)
	if !ok {
		return
	}
	writeHints(w, g)
}

// handleFinish ends today's game and records the result.
func (d *dailyServer) handleFinish(w http.ResponseWriter, r *http.Request) {
	g, uid, ok := d.session(w, r)
	if !ok {
		return
	}
	st := g.Finish()
	d.finish(r.Context(), st, uid, currentUser(r))
	writeJSON(w, http.StatusOK, d.srv.view(st))
}

func (d *dailyServer) finish(ctx context.Context, st game.State, uid string, me *authUser) {
	d.srv.recordFinish(ctx, st, me)
	err := d.store.InsertResult(ctx, daily.Result{
		UserID: uid,
		Date:   daily.DateKey(st.StartedAt),
		Seed:   st.Seed.String(),
		Score:  st.Score,
		Words:  st.Chain.Words(),
	})
	if err != nil {
		log.Warn().Err(err).Str("user", uid).Msg("insert daily result")
	}
}

// handleLeaderboard returns the top 20 results for a date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = d.today()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Error().Err(err).Msg("daily leaderboard")
		writeError(w, http.StatusInternalServerError, "db_error", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "results": rows})
}
