// internal/hangman/types.go
//
// Core type definitions for the Hangman engine.
// Defines:
//   - Config: wrong-guess budget and repeated-guess policy.
//   - State: hidden phrase plus guessed letters (server only).
//   - Result / PublicState: what a player is allowed to see.

package hangman

// Status is the coarse game state. Transitions are one-way:
// playing → won or playing → lost.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Soft error markers set on State.Error. The engine never returns a Go error.
const (
	ErrMsgEmptyPhrase    = "Empty phrase"
	ErrMsgGameOver       = "Game over"
	ErrMsgInvalidGuess   = "Invalid guess (A–Z only)"
	ErrMsgAlreadyGuessed = "Already guessed"
)

// DefaultMaxWrong is the wrong-guess budget used when Config leaves it zero.
const DefaultMaxWrong = 6

// Config tunes a new game.
type Config struct {
	MaxWrong int
	// CountRepeatedGuesses makes a repeated letter cost a wrong guess.
	// The zero value ignores repeats.
	CountRepeatedGuesses bool
}

// State is one game. Phrase must never leave the server while playing.
type State struct {
	Phrase                string   `json:"-"`
	Status                Status   `json:"status"`
	Guessed               []string `json:"guessed"` // A–Z, sorted
	WrongGuesses          int      `json:"wrongGuesses"`
	MaxWrong              int      `json:"maxWrong"`
	IgnoreRepeatedGuesses bool     `json:"ignoreRepeatedGuesses"`
	LastGuess             string   `json:"lastGuess,omitempty"`
	Error                 string   `json:"error,omitempty"`
}

// Result is the player-facing summary of a state.
type Result struct {
	Status       Status   `json:"status"`
	Masked       string   `json:"masked"`
	Guessed      []string `json:"guessed"`
	WrongGuesses int      `json:"wrongGuesses"`
	Remaining    int      `json:"remaining"`
	MaxWrong     int      `json:"maxWrong"`
	IsComplete   bool     `json:"isComplete"`
}

// PublicState extends Result with letter buckets computed against the phrase.
type PublicState struct {
	Result
	CorrectLetters []string `json:"correctLetters"`
	WrongLetters   []string `json:"wrongLetters"`
}

// KeyState is the keyboard rendering of one letter.
type KeyState string

const (
	KeyUnused    KeyState = "unused"
	KeyCorrect   KeyState = "correct"
	KeyIncorrect KeyState = "incorrect"
	KeyLocked    KeyState = "locked"
)
