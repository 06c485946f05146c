package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordgrid/assets"
	"github.com/robalobadob/wordgrid/internal/config"
	dbpkg "github.com/robalobadob/wordgrid/internal/db"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/store"
	"github.com/robalobadob/wordgrid/internal/words"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := dbpkg.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, dbpkg.Migrate(db, assets.Migrations()))

	cfg := config.Default()
	gcfg, err := cfg.GridConfig()
	require.NoError(t, err)
	rules := game.Rules{
		Grid: gcfg,
		Dict: words.New([]string{"APE", "ANT", "EEL", "ELF", "EPA", "LAMP"}, gcfg.MaxWordLength()),
	}
	return New(cfg, rules, store.NewMemoryStore(), db)
}

// testClient replays cookies between requests like a browser would.
type testClient struct {
	t       *testing.T
	h       http.Handler
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, h http.Handler) *testClient {
	return &testClient{t: t, h: h, cookies: map[string]*http.Cookie{}}
}

func (c *testClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func TestHealthAndNotFound(t *testing.T) {
	c := newClient(t, newTestServer(t).Router())

	rec := c.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = c.do(http.MethodGet, "/nope", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	rec = c.do(http.MethodGet, "/debug/words", nil)
	require.JSONEq(t, `{"words":6,"maxWordLength":10}`, rec.Body.String())
}

func TestGameFlow(t *testing.T) {
	s := newTestServer(t)
	c := newClient(t, s.Router())

	rec := c.do(http.MethodPost, "/game/new", map[string]string{"mode": "fixed", "seed": "A5,5"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	g := decode[gameView](t, rec)
	require.Equal(t, "A", g.Seed.Letter)
	require.Equal(t, ".....A....", g.Grid[5])
	require.Equal(t, "playing", g.Status)
	require.NotEmpty(t, c.cookies[anonCookieName])

	rec = c.do(http.MethodPost, "/game/word", wordReq{GameID: g.GameID, Word: "ape", Direction: "E"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	g = decode[gameView](t, rec)
	require.Equal(t, 3, g.Score)
	require.Equal(t, ".....APE..", g.Grid[5])
	require.Equal(t, "E", g.NextLetter)

	rec = c.do(http.MethodPost, "/game/word", wordReq{GameID: g.GameID, Word: "ELF", Direction: "W"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	e := decode[errorRes](t, rec)
	require.Equal(t, "clash", e.Error)
	require.Equal(t, "ELF clashes with another word", e.Message)
	require.NotNil(t, e.Game)
	require.Equal(t, 3, e.Game.Score)

	rec = c.do(http.MethodPost, "/game/word", wordReq{GameID: g.GameID, Word: "EEL", Direction: "up"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "bad_direction", decode[errorRes](t, rec).Error)

	rec = c.do(http.MethodPost, "/game/hint", hintReq{GameID: g.GameID})
	require.Equal(t, http.StatusOK, rec.Code)
	hints := decode[hintRes](t, rec)
	require.NotEmpty(t, hints.Hints)
	require.Equal(t, byte('E'), hints.Hints[0].Word[0])

	rec = c.do(http.MethodGet, "/game/"+g.GameID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"APE"}, decode[gameView](t, rec).Words.Words())

	rec = c.do(http.MethodPost, "/game/finish", hintReq{GameID: g.GameID})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "finished", decode[gameView](t, rec).Status)

	rec = c.do(http.MethodPost, "/game/word", wordReq{GameID: g.GameID, Word: "EEL", Direction: "S"})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "finished", decode[errorRes](t, rec).Error)

	var status string
	var score int
	require.NoError(t, s.db.QueryRow(`SELECT status, score FROM games WHERE id=?`, g.GameID).Scan(&status, &score))
	require.Equal(t, "finished", status)
	require.Equal(t, 3, score)
}

func TestNewGame_BadInput(t *testing.T) {
	c := newClient(t, newTestServer(t).Router())

	rec := c.do(http.MethodPost, "/game/new", map[string]string{"mode": "fixed", "seed": "A50,5"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "bad_seed", decode[errorRes](t, rec).Error)

	rec = c.do(http.MethodPost, "/game/new", map[string]string{"mode": "blitz"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = c.do(http.MethodPost, "/game/word", wordReq{GameID: "missing", Word: "APE", Direction: "E"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewGame_Random(t *testing.T) {
	c := newClient(t, newTestServer(t).Router())
	rec := c.do(http.MethodPost, "/game/new", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	g := decode[gameView](t, rec)
	require.Equal(t, game.ModeRandom, g.Mode)
	// Random seeds only use letters that start a dictionary word.
	require.Contains(t, []string{"A", "E", "L"}, g.Seed.Letter)
	require.Len(t, g.Grid, 10)
}

func TestHint_NoFit(t *testing.T) {
	c := newClient(t, newTestServer(t).Router())
	// Q starts no dictionary word.
	rec := c.do(http.MethodPost, "/game/new", map[string]string{"mode": "fixed", "seed": "Q0,0"})
	g := decode[gameView](t, rec)

	rec = c.do(http.MethodPost, "/game/hint", hintReq{GameID: g.GameID})
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"hints":[],"message":"no words fit the available space"}`, rec.Body.String())
}

func TestAuthAndStats(t *testing.T) {
	s := newTestServer(t)
	c := newClient(t, s.Router())

	// A guest game started before signing up is claimed by the new account.
	rec := c.do(http.MethodPost, "/game/new", map[string]string{"mode": "fixed", "seed": "A5,5"})
	guest := decode[gameView](t, rec)

	rec = c.do(http.MethodPost, "/auth/signup", credentials{Username: "wordsmith", Password: "correct horse"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotEmpty(t, c.cookies[s.cfg.CookieName])

	rec = c.do(http.MethodPost, "/auth/signup", credentials{Username: "WordSmith", Password: "correct horse"})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = c.do(http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "wordsmith", decode[authUser](t, rec).Username)

	rec = c.do(http.MethodPost, "/game/new", map[string]string{"mode": "fixed", "seed": "A5,5"})
	g := decode[gameView](t, rec)
	c.do(http.MethodPost, "/game/word", wordReq{GameID: g.GameID, Word: "APE", Direction: "E"})
	c.do(http.MethodPost, "/game/word", wordReq{GameID: g.GameID, Word: "EEL", Direction: "S"})
	c.do(http.MethodPost, "/game/finish", hintReq{GameID: g.GameID})
	// A second finish must not count the game twice.
	c.do(http.MethodPost, "/game/finish", hintReq{GameID: g.GameID})

	rec = c.do(http.MethodGet, "/stats/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[map[string]any](t, rec)
	require.EqualValues(t, 1, stats["gamesPlayed"])
	require.EqualValues(t, 6, stats["bestScore"])
	require.EqualValues(t, 6, stats["totalScore"])

	rec = c.do(http.MethodGet, "/games/mine", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	mine := decode[[]map[string]any](t, rec)
	require.Len(t, mine, 2)
	ids := []any{mine[0]["id"], mine[1]["id"]}
	require.Contains(t, ids, guest.GameID)
	require.Contains(t, ids, g.GameID)

	rec = c.do(http.MethodPost, "/auth/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = c.do(http.MethodGet, "/stats/me", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = c.do(http.MethodPost, "/auth/login", credentials{Username: "wordsmith", Password: "wrong password"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = c.do(http.MethodPost, "/auth/login", credentials{Username: "wordsmith", Password: "correct horse"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = c.do(http.MethodGet, "/stats/me", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuth_BadToken(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDailyFlow(t *testing.T) {
	c := newClient(t, newTestServer(t).Router())

	rec := c.do(http.MethodPost, "/daily/word", wordReq{Word: "APE", Direction: "E"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = c.do(http.MethodPost, "/daily/new", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	first := decode[newRes](t, rec)
	require.False(t, first.Played)
	require.NotNil(t, first.Game)
	require.Equal(t, game.ModeDaily, first.Game.Mode)

	rec = c.do(http.MethodPost, "/daily/new", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	again := decode[newRes](t, rec)
	require.Equal(t, first.Game.GameID, again.Game.GameID)

	// A second player gets the same daily seed.
	other := newClient(t, c.h)
	rec = other.do(http.MethodPost, "/daily/new", nil)
	require.Equal(t, first.Game.Seed, decode[newRes](t, rec).Game.Seed)

	rec = c.do(http.MethodPost, "/daily/hint", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = c.do(http.MethodPost, "/daily/finish", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "finished", decode[gameView](t, rec).Status)

	rec = c.do(http.MethodPost, "/daily/new", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decode[newRes](t, rec).Played)

	rec = c.do(http.MethodGet, "/daily/leaderboard?date="+first.Date, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	lb := decode[map[string]any](t, rec)
	require.Equal(t, first.Date, lb["date"])
	require.Len(t, lb["results"], 1)
}
