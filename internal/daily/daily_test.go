package daily

import (
	"testing"
	"time"
)

func TestDateKeyIn(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// 03:00 UTC on Jan 7 is still Jan 6 in New York
	ts := time.Date(2026, 1, 7, 3, 0, 0, 0, time.UTC)
	if got := DateKey(ts); got != "2026-01-07" {
		t.Errorf("DateKey = %s", got)
	}
	if got := DateKeyIn(ts, ny); got != "2026-01-06" {
		t.Errorf("DateKeyIn = %s", got)
	}
	if got := DateKeyIn(ts, nil); got != "2026-01-07" {
		t.Errorf("nil loc = %s", got)
	}
}

func TestParseDateKeyAndMidnight(t *testing.T) {
	d, err := ParseDateKey("2026-02-28")
	if err != nil {
		t.Fatal(err)
	}
	if !d.Equal(UTCMidnight(time.Date(2026, 2, 28, 23, 59, 0, 0, time.UTC))) {
		t.Errorf("got %v", d)
	}
	if _, err := ParseDateKey("02/28/2026"); err == nil {
		t.Error("expected parse error")
	}
}

func TestPuzzleIndexDeterministicAndInRange(t *testing.T) {
	day := time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)
	a := PuzzleIndex(day, "salt", 7)
	if a != PuzzleIndex(day.Add(20*time.Hour), "salt", 7) {
		t.Error("same day should map to the same index")
	}
	for i := 0; i < 60; i++ {
		if n := PuzzleIndex(day.AddDate(0, 0, i), "salt", 7); n < 0 || n >= 7 {
			t.Fatalf("index %d out of range", n)
		}
	}
	if PuzzleIndex(day, "salt", 0) != 0 {
		t.Error("empty pool should yield 0")
	}
}
