// internal/httpserver/routes_hangman.go
//
// HTTP routes for Hangman. A play stores only the canonical set of guessed
// letters; every request replays it through the engine, so stored counters
// are reconciled against engine truth on each read.
//   - POST   /hangman/instances                → open today's daily or a custom instance
//   - POST   /hangman/state                    → current public state of a play
//   - POST   /hangman/guess                    → apply one letter
//   - POST   /hangman/hint-used                → mark the hint revealed (idempotent)
//   - POST   /hangman/puzzles                  → create a custom puzzle + instance
//   - POST   /hangman/puzzles/{puzzleId}/save  → bookmark a puzzle
//   - DELETE /hangman/puzzles/{puzzleId}/save  → remove the bookmark
//   - GET    /hangman/saved                    → list bookmarks
//
// The phrase never leaves the server. One session's requests for one
// instance are serialized by a keyed lock.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/playseed/internal/daily"
	"github.com/robalobadob/playseed/internal/hangman"
	"github.com/robalobadob/playseed/internal/puzzles"
	"github.com/robalobadob/playseed/internal/store"
)

func (s *Server) mountHangman(r chi.Router) {
	r.Route("/hangman", func(r chi.Router) {
		r.Post("/instances", s.handleHangmanInstance)
		r.Post("/state", s.handleHangmanState)
		r.Post("/guess", s.handleHangmanGuess)
		r.Post("/hint-used", s.handleHangmanHintUsed)
		r.Post("/puzzles", s.handleHangmanCreatePuzzle)
		r.Post("/puzzles/{puzzleId}/save", s.handleHangmanSave)
		r.Delete("/puzzles/{puzzleId}/save", s.handleHangmanUnsave)
		r.Get("/saved", s.handleHangmanSaved)
	})
}

func (s *Server) hangmanConfig() hangman.Config {
	return hangman.Config{MaxWrong: s.cfg.HangmanMaxWrong}
}

// instanceRes describes an instance without its phrase.
type instanceRes struct {
	InstanceID string  `json:"instanceId"`
	Mode       string  `json:"mode"`
	Date       string  `json:"date"`
	Hint       *string `json:"hint"`
	Category   *string `json:"category"`
}

func toInstanceRes(in puzzles.Instance) instanceRes {
	return instanceRes{
		InstanceID: in.ID,
		Mode:       in.Mode,
		Date:       in.Date,
		Hint:       nullString(in.Puzzle.Hint),
		Category:   nullString(in.Puzzle.Category),
	}
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// playRes is the public state of a play plus attempt-level fields.
type playRes struct {
	hangman.PublicState
	Keys       map[string]hangman.KeyState `json:"keys"`
	HintUsed   bool                        `json:"hintUsed"`
	HintUsedAt *time.Time                  `json:"hintUsedAt"`
}

func toPlayRes(st hangman.State, p *store.Play) playRes {
	return playRes{
		PublicState: hangman.ToPublicState(st),
		Keys:        hangman.KeyboardState(st),
		HintUsed:    p.HintUsed,
		HintUsedAt:  p.HintUsedAt,
	}
}

// -----------------------------------------------------------------------------
// /hangman/instances

type instanceReq struct {
	Mode     string `json:"mode"`
	PuzzleID string `json:"puzzleId"`
}

// handleHangmanInstance opens today's (UTC) daily instance, or a fresh
// custom instance of puzzleId when mode is "custom".
func (s *Server) handleHangmanInstance(w http.ResponseWriter, r *http.Request) {
	var req instanceReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Mode != puzzles.ModeCustom {
		date := daily.DateKey(s.now())
		in, err := s.puzzles.EnsureDailyInstance(r.Context(), date)
		switch {
		case errors.Is(err, puzzles.ErrNoDailyPuzzle):
			writeJSON(w, http.StatusNotFound, map[string]string{
				"error": "No daily puzzle scheduled for this date.",
				"date":  date,
			})
			return
		case err != nil:
			log.Error().Err(err).Str("date", date).Msg("ensure daily instance")
			writeError(w, http.StatusInternalServerError, "create-instance failed")
			return
		}
		writeJSON(w, http.StatusOK, toInstanceRes(in))
		return
	}

	if req.PuzzleID == "" {
		writeError(w, http.StatusBadRequest, "puzzleId is required for custom instances")
		return
	}
	in, err := s.puzzles.CreateCustomInstance(r.Context(), req.PuzzleID)
	switch {
	case errors.Is(err, puzzles.ErrNotFound):
		writeError(w, http.StatusNotFound, "Puzzle not found")
		return
	case err != nil:
		log.Error().Err(err).Str("puzzleId", req.PuzzleID).Msg("create custom instance")
		writeError(w, http.StatusInternalServerError, "create-instance failed")
		return
	}
	writeJSON(w, http.StatusOK, toInstanceRes(in))
}

// -----------------------------------------------------------------------------
// play loading

// loadedPlay is an instance, the session's play, and the replayed state.
type loadedPlay struct {
	instance puzzles.Instance
	play     *store.Play
	state    hangman.State
}

// loadPlay fetches the instance and the session's play (creating it), replays
// the stored letters, and rewrites the play when its counters drifted.
// Callers must hold the play lock.
func (s *Server) loadPlay(ctx context.Context, instanceID, sessionID, uid string) (*loadedPlay, error) {
	in, err := s.puzzles.GetInstance(ctx, instanceID)
	if err != nil {
		return nil, err
	}
	p, err := s.plays.GetOrCreate(ctx, in.ID, sessionID)
	if err != nil {
		return nil, err
	}

	letters := hangman.CanonicalGuessed(p.Guessed)
	st := hangman.Replay(in.Puzzle.Phrase, s.hangmanConfig(), letters)

	canonical := strings.Join(st.Guessed, "")
	drifted := p.Guessed != canonical || p.WrongGuesses != st.WrongGuesses || p.Status != string(st.Status)
	if uid != "" && p.UserID == "" {
		p.UserID = uid
		drifted = true
	}
	if drifted {
		p.Guessed, p.WrongGuesses, p.Status = canonical, st.WrongGuesses, string(st.Status)
		if err := s.plays.Save(ctx, p); err != nil {
			log.Warn().Err(err).Str("instanceId", in.ID).Msg("reconcile play")
		}
	}
	return &loadedPlay{instance: in, play: p, state: st}, nil
}

func (s *Server) playLockKey(instanceID, sessionID string) string {
	return instanceID + "|" + sessionID
}

// writeLoadError maps loadPlay failures to responses.
func writeLoadError(w http.ResponseWriter, err error, instanceID string) {
	if errors.Is(err, puzzles.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Instance not found")
		return
	}
	log.Error().Err(err).Str("instanceId", instanceID).Msg("load play")
	writeError(w, http.StatusInternalServerError, "load failed")
}

// -----------------------------------------------------------------------------
// /hangman/state

type instanceIDReq struct {
	InstanceID string `json:"instanceId"`
}

type stateRes struct {
	instanceRes
	Play playRes `json:"play"`
}

func (s *Server) handleHangmanState(w http.ResponseWriter, r *http.Request) {
	var req instanceIDReq
	if err := decodeJSON(r, &req); err != nil || req.InstanceID == "" {
		writeError(w, http.StatusBadRequest, "instanceId is required")
		return
	}
	sid := s.sessionID(w, r)

	unlock := s.locks.Lock(s.playLockKey(req.InstanceID, sid))
	lp, err := s.loadPlay(r.Context(), req.InstanceID, sid, userID(r))
	unlock()
	if err != nil {
		writeLoadError(w, err, req.InstanceID)
		return
	}

	writeJSON(w, http.StatusOK, stateRes{
		instanceRes: toInstanceRes(lp.instance),
		Play:        toPlayRes(lp.state, lp.play),
	})
}

// -----------------------------------------------------------------------------
// /hangman/guess

type hangmanGuessReq struct {
	InstanceID string `json:"instanceId"`
	Letter     string `json:"letter"`
	Guess      string `json:"guess"` // accepted alias of letter
}

type guessRes struct {
	InstanceID string  `json:"instanceId"`
	Play       playRes `json:"play"`
}

// handleHangmanGuess applies one letter. A finished game or an already
// guessed letter leaves the play unchanged and returns the current state.
func (s *Server) handleHangmanGuess(w http.ResponseWriter, r *http.Request) {
	var req hangmanGuessReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	raw := req.Letter
	if raw == "" {
		raw = req.Guess
	}
	if req.InstanceID == "" || raw == "" {
		writeError(w, http.StatusBadRequest, "instanceId and letter are required")
		return
	}
	letter := strings.ToUpper(strings.TrimSpace(raw))
	if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'Z' {
		writeError(w, http.StatusBadRequest, "Invalid letter (A–Z)")
		return
	}
	sid := s.sessionID(w, r)

	unlock := s.locks.Lock(s.playLockKey(req.InstanceID, sid))
	defer unlock()

	lp, err := s.loadPlay(r.Context(), req.InstanceID, sid, userID(r))
	if err != nil {
		writeLoadError(w, err, req.InstanceID)
		return
	}

	st := lp.state
	if !hangman.IsGameOver(st) && !strings.Contains(lp.play.Guessed, letter) {
		st = hangman.ApplyGuess(st, letter)
		lp.play.Guessed = strings.Join(st.Guessed, "")
		lp.play.WrongGuesses = st.WrongGuesses
		lp.play.Status = string(st.Status)
		if err := s.plays.Save(r.Context(), lp.play); err != nil {
			log.Error().Err(err).Str("instanceId", req.InstanceID).Msg("save play")
			writeError(w, http.StatusInternalServerError, "save_failed")
			return
		}
		if hangman.IsGameOver(st) {
			s.bumpStats(r, st.Status == hangman.StatusWon)
		}
	}

	writeJSON(w, http.StatusOK, guessRes{
		InstanceID: req.InstanceID,
		Play:       toPlayRes(st, lp.play),
	})
}

// -----------------------------------------------------------------------------
// /hangman/hint-used

// handleHangmanHintUsed marks the hint as revealed. The first timestamp wins.
func (s *Server) handleHangmanHintUsed(w http.ResponseWriter, r *http.Request) {
	var req instanceIDReq
	if err := decodeJSON(r, &req); err != nil || req.InstanceID == "" {
		writeError(w, http.StatusBadRequest, "instanceId is required")
		return
	}
	sid := s.sessionID(w, r)

	unlock := s.locks.Lock(s.playLockKey(req.InstanceID, sid))
	defer unlock()

	lp, err := s.loadPlay(r.Context(), req.InstanceID, sid, userID(r))
	if err != nil {
		writeLoadError(w, err, req.InstanceID)
		return
	}
	if !lp.play.HintUsed || lp.play.HintUsedAt == nil {
		now := s.now().UTC()
		lp.play.HintUsed = true
		if lp.play.HintUsedAt == nil {
			lp.play.HintUsedAt = &now
		}
		if err := s.plays.Save(r.Context(), lp.play); err != nil {
			log.Error().Err(err).Str("instanceId", req.InstanceID).Msg("save hint")
			writeError(w, http.StatusInternalServerError, "hint-used failed")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"hintUsed":   lp.play.HintUsed,
		"hintUsedAt": lp.play.HintUsedAt,
	})
}

// -----------------------------------------------------------------------------
// /hangman/puzzles

type createPuzzleReq struct {
	Phrase   string `json:"phrase"`
	Hint     string `json:"hint"`
	Category string `json:"category"`
}

type createPuzzleRes struct {
	PuzzleID   string  `json:"puzzleId"`
	InstanceID string  `json:"instanceId"`
	Hint       *string `json:"hint"`
	Category   *string `json:"category"`
}

// handleHangmanCreatePuzzle stores a player-made puzzle (never daily-eligible)
// and opens a custom instance so the share link is instance-based.
func (s *Server) handleHangmanCreatePuzzle(w http.ResponseWriter, r *http.Request) {
	var req createPuzzleReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	phrase := hangman.NormalizePhrase(req.Phrase)
	if err := hangman.ValidatePhrase(phrase); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.puzzles.CreatePuzzle(r.Context(), puzzles.NewPuzzle{
		Phrase:   phrase,
		Hint:     strings.TrimSpace(req.Hint),
		Category: strings.TrimSpace(req.Category),
	})
	if err != nil {
		log.Error().Err(err).Msg("create puzzle")
		writeError(w, http.StatusInternalServerError, "create puzzle failed")
		return
	}
	in, err := s.puzzles.CreateCustomInstance(r.Context(), p.ID)
	if err != nil {
		log.Error().Err(err).Str("puzzleId", p.ID).Msg("create custom instance")
		writeError(w, http.StatusInternalServerError, "create puzzle failed")
		return
	}
	writeJSON(w, http.StatusOK, createPuzzleRes{
		PuzzleID:   p.ID,
		InstanceID: in.ID,
		Hint:       nullString(p.Hint),
		Category:   nullString(p.Category),
	})
}

// -----------------------------------------------------------------------------
// saved puzzles

func (s *Server) owner(w http.ResponseWriter, r *http.Request) puzzles.Owner {
	return puzzles.Owner{SessionID: s.sessionID(w, r), UserID: userID(r)}
}

func (s *Server) handleHangmanSave(w http.ResponseWriter, r *http.Request) {
	puzzleID := chi.URLParam(r, "puzzleId")
	saved, err := s.puzzles.SavePuzzle(r.Context(), puzzleID, s.owner(w, r))
	switch {
	case errors.Is(err, puzzles.ErrNotFound):
		writeError(w, http.StatusNotFound, "Puzzle not found")
		return
	case err != nil:
		log.Error().Err(err).Str("puzzleId", puzzleID).Msg("save puzzle")
		writeError(w, http.StatusInternalServerError, "save failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "saved": saved})
}

func (s *Server) handleHangmanUnsave(w http.ResponseWriter, r *http.Request) {
	puzzleID := chi.URLParam(r, "puzzleId")
	if err := s.puzzles.UnsavePuzzle(r.Context(), puzzleID, s.owner(w, r)); err != nil {
		log.Error().Err(err).Str("puzzleId", puzzleID).Msg("unsave puzzle")
		writeError(w, http.StatusInternalServerError, "unsave failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleHangmanSaved(w http.ResponseWriter, r *http.Request) {
	list, err := s.puzzles.SavedPuzzles(r.Context(), s.owner(w, r))
	if err != nil {
		log.Error().Err(err).Msg("list saved puzzles")
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"saved": list})
}
