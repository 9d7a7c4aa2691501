// internal/wurple/engine.go
//
// Core game engine for Wurple (guess the hex code of a color).
// Responsibilities:
//   - Create the initial state for a seed + mode (deterministic solution).
//   - Validate and apply guesses (shape, duplicate digits per profile).
//   - Derive win/loss from the history; nothing is cached on the state.
//
// Notes:
//   - Every function is pure. Callers persist the guess history and replay it.
//   - Guessing after the game is over is a no-op here; the HTTP layer decides
//     how to report it.

package wurple

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/robalobadob/playseed/internal/seed"
)

var (
	ErrInvalidFormat       = errors.New("invalid guess: must be 6 hex characters (0-9, A-F)")
	ErrDuplicateCharacters = errors.New("invalid guess: repeated hex digits are not allowed")
	ErrInvalidSolution     = errors.New("invalid solution")
)

var hexRe = regexp.MustCompile(`^[0-9A-F]{6}$`)

// CreateInitialState builds the puzzle for seedKey under cfg.
// The hash key is "<seed>|<mode>", so one calendar date yields a different
// color per mode.
func CreateInitialState(seedKey string, cfg ModeConfig) (State, error) {
	solution := seed.SelectDailyHexSolution(seedKey+"|"+string(cfg.Mode), seed.Options{
		RequireUniqueDigits: cfg.RequireUniqueSolutionDigits,
	})
	if !hexRe.MatchString(solution) {
		return State{}, fmt.Errorf("%w: %q", ErrInvalidSolution, solution)
	}
	return State{
		Solution:   solution,
		Guesses:    []string{},
		MaxGuesses: copyLimit(cfg.MaxGuesses),
	}, nil
}

// NormalizeGuess trims and uppercases raw input.
func NormalizeGuess(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidateGuess checks a normalized guess against the profile's rules.
func ValidateGuess(guess string, cfg ModeConfig) error {
	if !hexRe.MatchString(guess) {
		return ErrInvalidFormat
	}
	if !cfg.AllowDuplicates && hasRepeats(guess) {
		return ErrDuplicateCharacters
	}
	return nil
}

// ApplyGuess validates rawGuess and returns the state with it appended.
// A finished game is returned unchanged.
func ApplyGuess(state State, rawGuess string, cfg ModeConfig) (State, error) {
	if IsGameOver(state) {
		return state, nil
	}
	guess := NormalizeGuess(rawGuess)
	if err := ValidateGuess(guess, cfg); err != nil {
		return state, err
	}

	next := make([]string, len(state.Guesses), len(state.Guesses)+1)
	copy(next, state.Guesses)
	return State{
		Solution:   state.Solution,
		Guesses:    append(next, guess),
		MaxGuesses: copyLimit(state.MaxGuesses),
	}, nil
}

// Replay rebuilds a state from seedKey by folding ApplyGuess over guesses.
// The first rejected guess aborts the replay.
func Replay(seedKey string, cfg ModeConfig, guesses []string) (State, error) {
	st, err := CreateInitialState(seedKey, cfg)
	if err != nil {
		return State{}, err
	}
	for i, g := range guesses {
		st, err = ApplyGuess(st, g, cfg)
		if err != nil {
			return st, fmt.Errorf("guess %d: %w", i+1, err)
		}
	}
	return st, nil
}

// IsWin reports whether the latest guess is the solution.
func IsWin(state State) bool {
	if len(state.Guesses) == 0 {
		return false
	}
	return NormalizeGuess(state.Guesses[len(state.Guesses)-1]) == state.Solution
}

// IsGameOver reports a win, or exhaustion of a bounded guess budget.
// Unbounded games only end by winning.
func IsGameOver(state State) bool {
	if IsWin(state) {
		return true
	}
	return state.MaxGuesses != nil && len(state.Guesses) >= *state.MaxGuesses
}

// InternalResult summarizes the state. The solution is revealed only on loss.
func InternalResult(state State) Result {
	used := len(state.Guesses)
	switch {
	case !IsGameOver(state):
		return Result{Status: StatusPlaying, GuessesUsed: used}
	case IsWin(state):
		return Result{Status: StatusWon, GuessesUsed: used}
	default:
		return Result{Status: StatusLost, GuessesUsed: used, Solution: state.Solution}
	}
}

func hasRepeats(s string) bool {
	b := []byte(s)
	slices.Sort(b)
	return len(slices.Compact(b)) != len(s)
}

func copyLimit(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
