// internal/httpserver/server.go
//
// HTTP server wiring for the word grid backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, request log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): POST /game/new, GET /game/{id},
//     POST /game/word, POST /game/hint, POST /game/finish.
//   - Daily Challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me, /games/mine.
//
// Notes:
//   - Live games are held in a store.Store; SQLite only records progress and
//     results, and write failures there never block play.
//   - Optional auth decorates requests with user context when a valid token is present;
//     routes can still run for guests.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/config"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/grid"
	"github.com/robalobadob/wordgrid/internal/hint"
	"github.com/robalobadob/wordgrid/internal/seed"
	"github.com/robalobadob/wordgrid/internal/store"
)

// Server bundles router, live game store, rules and DB handle.
type Server struct {
	r     *chi.Mux
	cfg   config.Config
	rules game.Rules
	store store.Store
	db    *sql.DB
	now   func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, rules game.Rules, st store.Store, db *sql.DB) *Server {
	s := &Server{r: chi.NewRouter(), cfg: cfg, rules: rules, store: st, db: db, now: time.Now}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordgrid","endpoints":["/health","POST /game/new","POST /game/word","POST /game/hint","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{
			"words":         s.rules.Dict.Len(),
			"maxWordLength": s.rules.Grid.MaxWordLength(),
		})
	})

	// Game endpoints: optional auth, guests can play
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/game/new", s.handleNewGame)
		r.Get("/game/{id}", s.handleGetGame)
		r.Post("/game/word", s.handleWord)
		r.Post("/game/hint", s.handleHint)
		r.Post("/game/finish", s.handleFinish)
	})

	s.mountDaily(s.r.With(s.withOptionalAuth()))
	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger writes one zerolog line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorRes is the body of every non-2xx game response.
type errorRes struct {
	Error   string    `json:"error"`
	Message string    `json:"message,omitempty"`
	Game    *gameView `json:"game,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorRes{Error: code, Message: msg})
}

// ------------------------------ GAME ---------------------------------------

// newGameReq is the payload for POST /game/new.
type newGameReq struct {
	Mode string `json:"mode"` // "random" (default) | "fixed"
	Seed string `json:"seed"` // "A5,5"; required for fixed
}

// handleNewGame creates a game and records an owner row (user or anonymous).
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	var (
		sd  grid.Seed
		err error
	)
	switch req.Mode {
	case "", game.ModeRandom:
		req.Mode = game.ModeRandom
		sd, err = seed.Random(s.rules.Grid, s.rules.Dict.StartLetters())
		if err != nil {
			log.Error().Err(err).Msg("random seed")
			writeError(w, http.StatusInternalServerError, "seed_failed", "")
			return
		}
	case game.ModeFixed:
		sd, err = seed.Parse(s.rules.Grid, req.Seed)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_seed", err.Error())
			return
		}
	default:
		writeError(w, http.StatusBadRequest, "bad_mode", "mode must be random or fixed")
		return
	}

	g := game.New(s.rules, sd, req.Mode)
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed", "")
		return
	}
	s.recordStart(r.Context(), g, s.ownerOf(w, r))
	writeJSON(w, http.StatusCreated, s.view(g.State()))
}

// handleGetGame returns the current state of a game.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	writeJSON(w, http.StatusOK, s.view(g.State()))
}

// wordReq is the payload for POST /game/word and /daily/word.
type wordReq struct {
	GameID    string `json:"gameId"`
	Word      string `json:"word"`
	Direction string `json:"direction"`
}

// handleWord validates a word against the game and applies it on success.
func (s *Server) handleWord(w http.ResponseWriter, r *http.Request) {
	var req wordReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "")
		return
	}
	g, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	st, ok := s.playWord(w, r, g, req)
	if !ok {
		return
	}
	if st.Finished {
		s.recordFinish(r.Context(), st, currentUser(r))
	}
	writeJSON(w, http.StatusOK, s.view(st))
}

// playWord applies req to g and writes the error response on failure.
func (s *Server) playWord(w http.ResponseWriter, r *http.Request, g *game.Game, req wordReq) (game.State, bool) {
	dir, err := grid.ParseDirection(req.Direction)
	if err != nil {
		writeError(w, http.StatusBadRequest, game.Code(err), err.Error())
		return game.State{}, false
	}
	st, err := g.Play(req.Word, dir)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, game.ErrGameFinished) {
			status = http.StatusConflict
		}
		v := s.view(st)
		writeJSON(w, status, errorRes{Error: game.Code(err), Message: err.Error(), Game: &v})
		return st, false
	}
	s.recordProgress(r.Context(), st)
	return st, true
}

// hintReq/Res payloads for POST /game/hint.
type hintReq struct {
	GameID string `json:"gameId"`
}
type hintRes struct {
	Hints   []hint.Suggestion `json:"hints"`
	Message string            `json:"message,omitempty"`
}

// handleHint returns up to hint.MaxSuggestions playable words.
func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	var req hintReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "")
		return
	}
	g, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	writeHints(w, g)
}

func writeHints(w http.ResponseWriter, g *game.Game) {
	hints, err := g.Hints()
	switch {
	case errors.Is(err, hint.ErrNoFit):
		writeJSON(w, http.StatusOK, hintRes{Hints: []hint.Suggestion{}, Message: "no words fit the available space"})
	case err != nil:
		log.Error().Err(err).Str("gameId", g.ID).Msg("hints")
		writeError(w, http.StatusInternalServerError, "hint_failed", "")
	default:
		writeJSON(w, http.StatusOK, hintRes{Hints: hints})
	}
}

// handleFinish ends a game (the player quits) and records the result.
func (s *Server) handleFinish(w http.ResponseWriter, r *http.Request) {
	var req hintReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "")
		return
	}
	g, err := s.store.Get(r.Context(), req.GameID)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "")
		return
	}
	st := g.Finish()
	s.recordFinish(r.Context(), st, currentUser(r))
	writeJSON(w, http.StatusOK, s.view(st))
}

// ---------------------------- persistence ----------------------------------

// owner identifies who a game row belongs to.
type owner struct {
	userID string
	anonID string
}

func (s *Server) ownerOf(w http.ResponseWriter, r *http.Request) owner {
	if me := currentUser(r); me != nil {
		return owner{userID: me.ID}
	}
	return owner{anonID: s.ensureAnonID(w, r)}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// recordStart inserts the games row. Best effort.
func (s *Server) recordStart(ctx context.Context, g *game.Game, o owner) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games (id, user_id, anonymous_id, mode, seed, status, started_at)
		 VALUES (?,?,?,?,?,?,?)`,
		g.ID, nullable(o.userID), nullable(o.anonID), g.Mode, g.Seed.String(), "playing",
		g.StartedAt.Format(time.RFC3339))
	if err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("insert game row")
	}
}

// recordProgress stores the current word count and score. Best effort.
func (s *Server) recordProgress(ctx context.Context, st game.State) {
	if _, err := s.db.ExecContext(ctx, `UPDATE games SET words=?, score=? WHERE id=?`,
		len(st.Chain), st.Score, st.ID); err != nil {
		log.Warn().Err(err).Str("gameId", st.ID).Msg("update progress")
	}
}

// recordFinish marks the game finished and, the first time only, folds the
// score into the player's stats.
func (s *Server) recordFinish(ctx context.Context, st game.State, me *authUser) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin finish")
		return
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`UPDATE games SET status='finished', finished_at=?, words=?, score=?
	                     WHERE id=? AND status='playing'`,
		s.now().UTC().Format(time.RFC3339), len(st.Chain), st.Score, st.ID)
	if err != nil {
		log.Warn().Err(err).Str("gameId", st.ID).Msg("finish game")
		return
	}
	if n, _ := res.RowsAffected(); n == 1 && me != nil {
		if err := bumpStats(tx, me.ID, st.Score); err != nil {
			log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit finish")
	}
}

// bumpStats increments games played and updates best/total score (within tx).
func bumpStats(tx *sql.Tx, userID string, score int) error {
	_, err := tx.Exec(`UPDATE users
	                   SET games_played = games_played + 1,
	                       total_score  = total_score + ?,
	                       best_score   = MAX(best_score, ?)
	                   WHERE id=?`, score, score, userID)
	return err
}
