package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"time"

	"github.com/robalobadob/wordgrid/internal/grid"
	"github.com/robalobadob/wordgrid/internal/seed"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed returns the deterministic seed for a date using HMAC(salt, YYYY-MM-DD).
// Everyone playing on the same date with the same salt gets the same seed.
func Seed(cfg grid.Config, salt string, date time.Time, letters []byte) grid.Seed {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	return seed.FromBytes(cfg, letters, h.Sum(nil))
}
