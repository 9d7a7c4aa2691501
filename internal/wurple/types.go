// internal/wurple/types.go
//
// Core type definitions for the Wurple engine.
// Defines:
//   - Mode / ModeConfig: rule profiles ("easy", "challenge").
//   - State: the hidden solution plus the append-only guess history.
//   - TileStatus / GuessFeedback: per-guess feedback returned to players.
//   - Result: outcome summary; carries the solution only once the game is lost.

package wurple

// Mode names a rule profile.
type Mode string

const (
	ModeEasy      Mode = "easy"
	ModeChallenge Mode = "challenge"
)

// Status is the coarse game state.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// TileStatus is the evaluation of one guessed character.
//   - "correct": right digit, right position.
//   - "present": digit occurs elsewhere among the unmatched solution digits.
//   - "absent":  no unmatched occurrence left.
type TileStatus string

const (
	TileCorrect TileStatus = "correct"
	TilePresent TileStatus = "present"
	TileAbsent  TileStatus = "absent"
)

// ModeConfig bundles the rule toggles of a profile.
// A nil MaxGuesses means unbounded.
type ModeConfig struct {
	Mode                        Mode `json:"mode"`
	MaxGuesses                  *int `json:"maxGuesses"`
	AllowDuplicates             bool `json:"allowDuplicates"`
	IncludeTiles                bool `json:"includeTiles"`
	IncludeDistance             bool `json:"includeDistance"`
	RequireUniqueSolutionDigits bool `json:"requireUniqueSolutionDigits"`
}

// State is one puzzle in progress. It is treated as an immutable value:
// ApplyGuess returns a new State and never touches the old Guesses slice.
type State struct {
	Solution   string   `json:"-"`          // 6 uppercase hex digits, server only
	Guesses    []string `json:"guesses"`    // normalized, oldest first
	MaxGuesses *int     `json:"maxGuesses"` // nil = unbounded
}

// GuessFeedback is what a player sees for one guess.
type GuessFeedback struct {
	Guess    string       `json:"guess"`
	Tiles    []TileStatus `json:"tiles,omitempty"`
	Distance *float64     `json:"distance,omitempty"`
}

// Result summarizes a game. Solution is only populated when Status is lost.
type Result struct {
	Status      Status `json:"status"`
	GuessesUsed int    `json:"guessesUsed"`
	Solution    string `json:"solution,omitempty"`
}
