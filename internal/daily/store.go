package daily

import (
	"context"
	"database/sql"
	"strings"
)

// Result is one player's finished daily game.
type Result struct {
	UserID string   `json:"userId"`
	Date   string   `json:"date"`
	Seed   string   `json:"seed"`
	Score  int      `json:"score"`
	Words  []string `json:"words"`
}

// Store persists daily results in the daily_results table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether userID has a finished result for date.
func (s *Store) AlreadyPlayed(ctx context.Context, userID, date string) (bool, error) {
	var cnt int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM daily_results WHERE user_id=? AND date=?",
		userID, date,
	).Scan(&cnt)
	return cnt > 0, err
}

// InsertResult records a result. A second result for the same user and date
// is ignored.
func (s *Store) InsertResult(ctx context.Context, r Result) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(user_id, date, seed, score, words, chain)
		 VALUES(?,?,?,?,?,?)`,
		r.UserID, r.Date, r.Seed, r.Score, len(r.Words), strings.Join(r.Words, " "),
	)
	return err
}

// LBRow is one leaderboard line.
type LBRow struct {
	UserID string   `json:"userId"`
	Score  int      `json:"score"`
	Words  []string `json:"words"`
}

// Leaderboard returns the best results for date: highest score first, then
// more words, then earliest finish.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]LBRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, score, chain
		 FROM daily_results
		 WHERE date=?
		 ORDER BY score DESC, words DESC, created_at ASC
		 LIMIT ?`, date, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []LBRow{}
	for rows.Next() {
		var (
			r     LBRow
			chain string
		)
		if err := rows.Scan(&r.UserID, &r.Score, &chain); err != nil {
			return nil, err
		}
		r.Words = strings.Fields(chain)
		out = append(out, r)
	}
	return out, rows.Err()
}
