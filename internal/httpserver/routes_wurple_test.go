package httpserver

import (
	"net/http"
	"strings"
	"testing"

	"github.com/robalobadob/playseed/internal/seed"
)

// "2026-01-06|easy" selects 5B7180.
const easySolution = "5B7180"

var easyMisses = []string{"012345", "123456", "234567", "345678", "456789", "56789A"}

func TestWurpleDailyHidesSolution(t *testing.T) {
	s := newTestServer(t)
	rec, body := call(t, s, http.MethodGet, "/wurple/daily?seed=2026-01-06&mode=easy", nil)
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), easySolution) {
		t.Fatal("daily metadata leaked the solution")
	}
	if body["seed"] != "2026-01-06" || body["mode"] != "easy" || body["maxGuesses"] != float64(6) || body["played"] != false {
		t.Fatalf("body = %v", body)
	}
}

func TestWurpleDailyDefaultsSeedToToday(t *testing.T) {
	s := newTestServer(t)
	_, body := call(t, s, http.MethodGet, "/wurple/daily?mode=challenge", nil)
	if body["seed"] != "2026-01-06" || body["mode"] != "challenge" || body["maxGuesses"] != nil {
		t.Fatalf("body = %v", body)
	}
}

func TestWurpleGuessWin(t *testing.T) {
	s := newTestServer(t)
	rec, body := call(t, s, http.MethodPost, "/wurple/guess", map[string]any{
		"seed": "2026-01-06", "mode": "easy", "previousGuesses": []string{"012345"}, "guess": " 5b7180 ",
	})
	if rec.Code != 200 {
		t.Fatalf("status = %d %s", rec.Code, rec.Body)
	}
	if body["status"] != "won" || body["gameOver"] != true || body["guessCount"] != float64(2) {
		t.Fatalf("body = %v", body)
	}
	if body["normalizedGuess"] != easySolution {
		t.Fatalf("normalizedGuess = %v", body["normalizedGuess"])
	}
	if _, ok := body["solution"]; ok {
		t.Fatal("solution returned on a win")
	}
	share, _ := body["share"].(string)
	if !strings.HasPrefix(share, "Wurple 2026-01-06 (Easy) 2/6") || !strings.HasSuffix(share, "https://example.test/wurple") {
		t.Fatalf("share = %q", share)
	}
	if fb, _ := body["feedback"].([]any); len(fb) != 2 {
		t.Fatalf("feedback = %v", body["feedback"])
	}
}

func TestWurpleGuessLossRevealsSolution(t *testing.T) {
	s := newTestServer(t)
	rec, body := call(t, s, http.MethodPost, "/wurple/guess", map[string]any{
		"seed": "2026-01-06", "previousGuesses": easyMisses[:5], "guess": easyMisses[5],
	})
	if rec.Code != 200 {
		t.Fatalf("status = %d %s", rec.Code, rec.Body)
	}
	if body["status"] != "lost" || body["solution"] != easySolution {
		t.Fatalf("body = %v", body)
	}
}

func TestWurpleGuessErrors(t *testing.T) {
	s := newTestServer(t)
	cases := []struct {
		name string
		body map[string]any
		want int
	}{
		{"missing seed", map[string]any{"guess": "012345"}, http.StatusBadRequest},
		{"missing guess", map[string]any{"seed": "x"}, http.StatusBadRequest},
		{"bad format", map[string]any{"seed": "x", "guess": "GGGGGG"}, http.StatusBadRequest},
		{"duplicates in easy", map[string]any{"seed": "x", "guess": "112233"}, http.StatusBadRequest},
		{"bad history", map[string]any{"seed": "x", "previousGuesses": []string{"nope"}, "guess": "012345"}, http.StatusBadRequest},
		{"already over", map[string]any{"seed": "2026-01-06", "previousGuesses": easyMisses, "guess": "ABCDEF"}, http.StatusConflict},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec, body := call(t, s, http.MethodPost, "/wurple/guess", c.body)
			if rec.Code != c.want {
				t.Fatalf("status = %d, want %d (%v)", rec.Code, c.want, body)
			}
			if body["error"] == nil {
				t.Fatalf("no error message: %v", body)
			}
		})
	}
}

func TestWurpleChallengeAllowsDuplicatesAndTrend(t *testing.T) {
	s := newTestServer(t)
	rec, body := call(t, s, http.MethodPost, "/wurple/guess", map[string]any{
		"seed": "2026-01-06", "mode": "challenge", "previousGuesses": []string{"000000"}, "guess": "FFFFFF",
	})
	if rec.Code != 200 {
		t.Fatalf("status = %d %s", rec.Code, rec.Body)
	}
	if body["maxGuesses"] != nil || body["status"] != "playing" {
		t.Fatalf("body = %v", body)
	}
	switch body["trend"] {
	case "warmer", "colder", "same":
	default:
		t.Fatalf("trend = %v", body["trend"])
	}
	c, ok := body["closeness"].(float64)
	if !ok || c < 0 || c > 100 {
		t.Fatalf("closeness = %v", body["closeness"])
	}
}

func TestWurpleEasyOmitsCloseness(t *testing.T) {
	s := newTestServer(t)
	_, body := call(t, s, http.MethodPost, "/wurple/guess", map[string]any{
		"seed": "2026-01-06", "mode": "easy", "guess": "012345",
	})
	if _, ok := body["closeness"]; ok {
		t.Fatalf("easy mode returned closeness: %v", body)
	}
}

func TestWurpleExactGuessIsFullyClose(t *testing.T) {
	s := newTestServer(t)
	target := seed.SelectDailyHexSolution("2026-01-06|challenge", seed.Options{})
	_, body := call(t, s, http.MethodPost, "/wurple/guess", map[string]any{
		"seed": "2026-01-06", "mode": "challenge", "guess": target,
	})
	if body["status"] != "won" || body["closeness"] != float64(100) {
		t.Fatalf("body = %v", body)
	}
}

func TestWurpleTargetSVG(t *testing.T) {
	s := newTestServer(t)
	rec, _ := call(t, s, http.MethodGet, "/wurple/target?seed=2026-01-06&mode=easy", nil)
	if rec.Code != 200 {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "image/svg+xml") {
		t.Fatalf("content type = %q", ct)
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Fatal("target must not be cached")
	}
	if !strings.Contains(rec.Body.String(), `fill="#`+easySolution+`"`) {
		t.Fatalf("svg = %s", rec.Body)
	}
}

func TestWurpleResultsAndLeaderboard(t *testing.T) {
	s := newTestServer(t)
	post := func(guesses []string) (int, map[string]any) {
		rec, body := call(t, s, http.MethodPost, "/wurple/results",
			map[string]any{"seed": "2026-01-06", "mode": "easy", "guesses": guesses})
		return rec.Code, body
	}

	if code, _ := post([]string{"012345"}); code != http.StatusConflict {
		t.Fatalf("unfinished run = %d", code)
	}
	code, body := post([]string{"012345", easySolution})
	if code != 200 || body["recorded"] != true || body["guessesUsed"] != float64(2) {
		t.Fatalf("first = %d %v", code, body)
	}
	code, body = post([]string{easySolution})
	if code != 200 || body["recorded"] != false {
		t.Fatalf("second = %d %v", code, body)
	}

	rec, _ := call(t, s, http.MethodPost, "/wurple/results", map[string]any{"seed": "not-a-date", "guesses": []string{"012345"}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("non-daily seed = %d", rec.Code)
	}

	rec, body = call(t, s, http.MethodGet, "/wurple/leaderboard?mode=easy", nil)
	if rec.Code != 200 || body["date"] != "2026-01-06" {
		t.Fatalf("leaderboard = %d %v", rec.Code, body)
	}
	top, _ := body["top"].([]any)
	if len(top) != 1 {
		t.Fatalf("top = %v", top)
	}
	row := top[0].(map[string]any)
	if row["player"] != "guest" || row["guessesUsed"] != float64(2) {
		t.Fatalf("row = %v", row)
	}
	if strings.Contains(rec.Body.String(), testSession) {
		t.Fatal("leaderboard leaked a session id")
	}

	_, body = call(t, s, http.MethodGet, "/wurple/daily?seed=2026-01-06&mode=easy", nil)
	if body["played"] != true {
		t.Fatalf("played = %v", body["played"])
	}
}
