// internal/httpserver/routes_wurple.go
//
// HTTP routes for Wurple. The server keeps no game state: clients send the
// seed, mode and their previous guesses, and every request replays them.
//   - GET  /wurple/daily       → public metadata for a seed + mode
//   - POST /wurple/guess       → replay history, apply one guess, return feedback
//   - GET  /wurple/target      → the target color as an SVG swatch
//   - POST /wurple/results     → record a finished daily run (server-verified)
//   - GET  /wurple/leaderboard → top winners for a date + mode
//
// Seeds default to today's date in DAILY_TZ. The solution is only returned
// once a game is lost.

package httpserver

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/playseed/internal/daily"
	"github.com/robalobadob/playseed/internal/seed"
	"github.com/robalobadob/playseed/internal/wurple"
)

func (s *Server) mountWurple(r chi.Router) {
	r.Route("/wurple", func(r chi.Router) {
		r.Get("/daily", s.handleWurpleDaily)
		r.Post("/guess", s.handleWurpleGuess)
		r.Get("/target", s.handleWurpleTarget)
		r.Post("/results", s.handleWurpleResult)
		r.Get("/leaderboard", s.handleWurpleLeaderboard)
	})
}

// seedAndMode reads ?seed and ?mode, defaulting the seed to today.
func (s *Server) seedAndMode(r *http.Request) (string, wurple.ModeConfig) {
	q := r.URL.Query()
	key := seed.NormalizeSeed(q.Get("seed"))
	if key == "" {
		key = s.todayIn(s.cfg.DailyTZ)
	}
	return key, wurple.Preset(wurple.ModeFromString(q.Get("mode")))
}

// -----------------------------------------------------------------------------
// /wurple/daily

type wurpleDailyRes struct {
	wurple.PublicDaily
	Played bool `json:"played"`
}

func (s *Server) handleWurpleDaily(w http.ResponseWriter, r *http.Request) {
	key, cfg := s.seedAndMode(r)
	st, err := wurple.CreateInitialState(key, cfg)
	if err != nil {
		log.Error().Err(err).Str("seed", key).Msg("create wurple state")
		writeError(w, http.StatusInternalServerError, "state_failed")
		return
	}

	played, err := s.results.AlreadyPlayed(r.Context(), s.sessionID(w, r), key, string(cfg.Mode))
	if err != nil {
		log.Warn().Err(err).Str("seed", key).Msg("already played lookup")
	}
	writeJSON(w, http.StatusOK, wurpleDailyRes{PublicDaily: wurple.ToPublicDaily(key, st, cfg), Played: played})
}

// -----------------------------------------------------------------------------
// /wurple/guess

type wurpleGuessReq struct {
	Seed            string   `json:"seed"`
	Mode            string   `json:"mode"`
	PreviousGuesses []string `json:"previousGuesses"`
	Guess           string   `json:"guess"`
}

type wurpleGuessRes struct {
	Seed            string                      `json:"seed"`
	Mode            wurple.Mode                 `json:"mode"`
	GuessCount      int                         `json:"guessCount"`
	MaxGuesses      *int                        `json:"maxGuesses"`
	Status          wurple.Status               `json:"status"`
	GameOver        bool                        `json:"gameOver"`
	RulesVersion    int                         `json:"rulesVersion"`
	NormalizedGuess string                      `json:"normalizedGuess"`
	Feedback        []wurple.GuessFeedback      `json:"feedback"`
	Trend           wurple.Trend                `json:"trend,omitempty"`
	Closeness       *int                        `json:"closeness,omitempty"` // percent, last guess
	Keys            map[string]wurple.KeyStatus `json:"keys"`
	Solution        string                      `json:"solution,omitempty"`
	Share           string                      `json:"share,omitempty"`
}

// handleWurpleGuess rebuilds the game from seed + history, applies the new
// guess, and returns feedback for the whole history.
//   - 400 for a missing seed/guess, a bad history entry, or an invalid guess.
//   - 409 when the history already ends the game.
func (s *Server) handleWurpleGuess(w http.ResponseWriter, r *http.Request) {
	var req wurpleGuessReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	key := seed.NormalizeSeed(req.Seed)
	if key == "" {
		writeError(w, http.StatusBadRequest, "Missing seed")
		return
	}
	if strings.TrimSpace(req.Guess) == "" {
		writeError(w, http.StatusBadRequest, "Missing guess")
		return
	}
	cfg := wurple.Preset(wurple.ModeFromString(req.Mode))

	st, err := wurple.Replay(key, cfg, req.PreviousGuesses)
	if err != nil {
		writeError(w, http.StatusBadRequest, "previousGuesses: "+err.Error())
		return
	}
	if wurple.IsGameOver(st) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":  "game_over",
			"status": wurple.InternalResult(st).Status,
		})
		return
	}

	st, err = wurple.ApplyGuess(st, req.Guess, cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := wurple.InternalResult(st)
	history := wurple.History(st, cfg)
	out := wurpleGuessRes{
		Seed:            key,
		Mode:            cfg.Mode,
		GuessCount:      len(st.Guesses),
		MaxGuesses:      st.MaxGuesses,
		Status:          res.Status,
		GameOver:        res.Status != wurple.StatusPlaying,
		RulesVersion:    wurple.RulesVersion,
		NormalizedGuess: st.Guesses[len(st.Guesses)-1],
		Feedback:        history,
		Keys:            wurple.KeyHeatmap(history),
		Solution:        res.Solution,
	}
	if cfg.IncludeDistance {
		out.Trend = lastTrend(history)
		out.Closeness = lastCloseness(history)
	}
	if out.GameOver {
		out.Share = wurple.ShareText(wurple.ShareOptions{
			Date:    key,
			Mode:    cfg.Mode,
			Status:  res.Status,
			Max:     st.MaxGuesses,
			History: history,
			GameURL: s.cfg.GameURL,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// lastTrend compares the final two distances in history.
func lastTrend(history []wurple.GuessFeedback) wurple.Trend {
	n := len(history)
	if n == 0 || history[n-1].Distance == nil {
		return ""
	}
	var prev *float64
	if n > 1 {
		prev = history[n-2].Distance
	}
	t, _ := wurple.DistanceTrend(prev, *history[n-1].Distance)
	return t
}

// lastCloseness is the last guess's closeness to the target as a percentage.
func lastCloseness(history []wurple.GuessFeedback) *int {
	n := len(history)
	if n == 0 || history[n-1].Distance == nil {
		return nil
	}
	pct := int(math.Round(wurple.Closeness(*history[n-1].Distance) * 100))
	return &pct
}

// -----------------------------------------------------------------------------
// /wurple/target

func (s *Server) handleWurpleTarget(w http.ResponseWriter, r *http.Request) {
	key, cfg := s.seedAndMode(r)
	st, err := wurple.CreateInitialState(key, cfg)
	if err != nil {
		log.Error().Err(err).Str("seed", key).Msg("create wurple state")
		writeError(w, http.StatusInternalServerError, "state_failed")
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(wurple.TargetSVG(st.Solution)))
}

// -----------------------------------------------------------------------------
// /wurple/results

type wurpleResultReq struct {
	Seed    string   `json:"seed"`
	Mode    string   `json:"mode"`
	Guesses []string `json:"guesses"`
}

// handleWurpleResult replays a finished daily run and records it once per
// session, date and mode. Clients cannot submit a status or a guess count;
// both are derived from the replay.
func (s *Server) handleWurpleResult(w http.ResponseWriter, r *http.Request) {
	var req wurpleResultReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	key := seed.NormalizeSeed(req.Seed)
	if _, err := daily.ParseDateKey(key); err != nil {
		writeError(w, http.StatusBadRequest, "results are recorded for daily seeds (YYYY-MM-DD) only")
		return
	}
	cfg := wurple.Preset(wurple.ModeFromString(req.Mode))

	st, err := wurple.Replay(key, cfg, req.Guesses)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res := wurple.InternalResult(st)
	if res.Status == wurple.StatusPlaying {
		writeError(w, http.StatusConflict, "game_not_finished")
		return
	}

	inserted, err := s.results.InsertResult(r.Context(), daily.Result{
		SessionID:    s.sessionID(w, r),
		UserID:       userID(r),
		Date:         key,
		Mode:         string(cfg.Mode),
		RulesVersion: wurple.RulesVersion,
		GuessesUsed:  res.GuessesUsed,
		Status:       string(res.Status),
		BestDistance: bestDistance(st),
	})
	if err != nil {
		log.Error().Err(err).Str("seed", key).Str("mode", string(cfg.Mode)).Msg("insert wurple result")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	if inserted {
		s.bumpStats(r, res.Status == wurple.StatusWon)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"recorded":    inserted,
		"status":      res.Status,
		"guessesUsed": res.GuessesUsed,
	})
}

// bestDistance is the closest guess by RGB distance, or nil with no guesses.
func bestDistance(st wurple.State) *float64 {
	if len(st.Guesses) == 0 {
		return nil
	}
	best := wurple.MaxDistance
	for _, g := range st.Guesses {
		if d := wurple.Distance(st.Solution, g); d < best {
			best = d
		}
	}
	return &best
}

// -----------------------------------------------------------------------------
// /wurple/leaderboard

type wurpleLBRes struct {
	Date string        `json:"date"`
	Mode wurple.Mode   `json:"mode"`
	Top  []daily.LBRow `json:"top"`
}

// handleWurpleLeaderboard returns winners for ?date (default today) and ?mode.
func (s *Server) handleWurpleLeaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date := q.Get("date")
	if date == "" {
		date = s.todayIn(s.cfg.DailyTZ)
	}
	mode := wurple.ModeFromString(q.Get("mode"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	rows, err := s.results.Leaderboard(r.Context(), date, string(mode), limit)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("leaderboard")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, wurpleLBRes{Date: date, Mode: mode, Top: rows})
}
