// internal/hangman/engine.go
//
// Core game engine for Hangman.
// Responsibilities:
//   - Create a game from a hidden phrase (normalized, uppercased).
//   - Apply single-letter guesses and track wrong guesses.
//   - Derive the masked phrase, keyboard state, and public projections.
//
// Notes:
//   - ApplyGuess is total: bad input, repeats, and late guesses come back as
//     a state with Error set, never as a Go error.
//   - Loss is checked before win, so a guess that both completes the phrase
//     and exhausts the budget loses.

package hangman

import (
	"slices"
	"strings"
)

// CreateInitialState starts a game for phrase.
// An empty phrase yields a finished, lost game carrying ErrMsgEmptyPhrase.
func CreateInitialState(phrase string, cfg Config) State {
	maxWrong := cfg.MaxWrong
	if maxWrong <= 0 {
		maxWrong = DefaultMaxWrong
	}
	st := State{
		Phrase:                NormalizePhrase(phrase),
		Status:                StatusPlaying,
		Guessed:               []string{},
		MaxWrong:              maxWrong,
		IgnoreRepeatedGuesses: !cfg.CountRepeatedGuesses,
	}
	if st.Phrase == "" {
		st.Status = StatusLost
		st.WrongGuesses = maxWrong
		st.Error = ErrMsgEmptyPhrase
	}
	return st
}

// ApplyGuess applies one raw letter and returns the next state.
func ApplyGuess(state State, rawGuess string) State {
	if IsGameOver(state) {
		state.Error = ErrMsgGameOver
		return state
	}

	letter, ok := normalizeLetter(rawGuess)
	if !ok {
		state.Error = ErrMsgInvalidGuess
		return state
	}

	if slices.Contains(state.Guessed, letter) {
		next := state
		next.LastGuess = letter
		next.Error = ErrMsgAlreadyGuessed
		if state.IgnoreRepeatedGuesses {
			return next
		}
		next.WrongGuesses++
		next.Status = nextStatus(next)
		return next
	}

	guessed := make([]string, 0, len(state.Guessed)+1)
	guessed = append(guessed, state.Guessed...)
	guessed = append(guessed, letter)
	slices.Sort(guessed)

	next := state
	next.Guessed = guessed
	next.LastGuess = letter
	next.Error = ""
	if !strings.Contains(state.Phrase, letter) {
		next.WrongGuesses++
	}
	next.Status = nextStatus(next)
	return next
}

// Replay rebuilds a game from phrase by applying letters in order.
func Replay(phrase string, cfg Config, letters []string) State {
	st := CreateInitialState(phrase, cfg)
	for _, l := range letters {
		st = ApplyGuess(st, l)
	}
	return st
}

func nextStatus(s State) Status {
	if s.WrongGuesses >= s.MaxWrong {
		return StatusLost
	}
	if IsSolved(s) {
		return StatusWon
	}
	return StatusPlaying
}

// IsGameOver reports whether the game has left the playing state.
func IsGameOver(s State) bool {
	return s.Status != StatusPlaying
}

// IsSolved reports whether every letter of the phrase has been guessed.
func IsSolved(s State) bool {
	for _, r := range s.Phrase {
		if isLetter(r) && !slices.Contains(s.Guessed, string(r)) {
			return false
		}
	}
	return true
}

// MaskedPhrase hides unguessed letters with '_'. Spaces, digits,
// punctuation and emoji are always shown. The mask has one rune per phrase rune.
func MaskedPhrase(s State) string {
	var b strings.Builder
	b.Grow(len(s.Phrase))
	for _, r := range s.Phrase {
		if isLetter(r) && !slices.Contains(s.Guessed, string(r)) {
			b.WriteByte('_')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// KeyboardState classifies A–Z for rendering. Once the game is over every
// unguessed letter is locked.
func KeyboardState(s State) map[string]KeyState {
	out := make(map[string]KeyState, 26)
	over := IsGameOver(s)
	for r := 'A'; r <= 'Z'; r++ {
		l := string(r)
		switch {
		case slices.Contains(s.Guessed, l) && strings.ContainsRune(s.Phrase, r):
			out[l] = KeyCorrect
		case slices.Contains(s.Guessed, l):
			out[l] = KeyIncorrect
		case over:
			out[l] = KeyLocked
		default:
			out[l] = KeyUnused
		}
	}
	return out
}

// GetResult projects the state for players.
func GetResult(s State) Result {
	return Result{
		Status:       s.Status,
		Masked:       MaskedPhrase(s),
		Guessed:      slices.Clone(s.Guessed),
		WrongGuesses: s.WrongGuesses,
		Remaining:    max(0, s.MaxWrong-s.WrongGuesses),
		MaxWrong:     s.MaxWrong,
		IsComplete:   s.Status != StatusPlaying,
	}
}

func normalizeLetter(raw string) (string, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if len(s) != 1 || s[0] < 'A' || s[0] > 'Z' {
		return "", false
	}
	return s, true
}

func isLetter(r rune) bool {
	return r >= 'A' && r <= 'Z'
}
