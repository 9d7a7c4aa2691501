// internal/daily/daily.go
//
// Date keys and deterministic per-day picks.
//   - DateKey / DateKeyIn: "YYYY-MM-DD" seeds for the daily puzzles.
//   - PuzzleIndex: HMAC(salt, date) % n, used when no explicit schedule exists.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

const dateLayout = "2006-01-02"

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// DateKeyIn returns YYYY-MM-DD as seen in loc. A nil loc means UTC.
func DateKeyIn(t time.Time, loc *time.Location) string {
	if loc == nil {
		return DateKey(t)
	}
	return t.In(loc).Format(dateLayout)
}

// ParseDateKey parses YYYY-MM-DD as UTC midnight.
func ParseDateKey(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

// UTCMidnight truncates t to the start of its UTC day.
func UTCMidnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// PuzzleIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func PuzzleIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}
