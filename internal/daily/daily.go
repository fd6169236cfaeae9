// internal/daily/daily.go
//
// Word of the day.
//
// The answer for a date is HMAC-SHA256(salt, "YYYY-MM-DD") reduced modulo the
// dictionary size, so every server sharing DAILY_SALT and the word list agrees
// on it without coordination, and the answer cannot be predicted without the
// salt.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/wordle/apps/go-core/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index in [0, n) for the date.
func WordIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}

// Word returns the answer for the date from d.
func Word(date time.Time, salt string, d *words.Dictionary) words.Word {
	return d.At(WordIndex(date, salt, d.Len()))
}
