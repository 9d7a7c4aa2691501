// internal/hangman/phrase.go
//
// Phrase handling for user-created puzzles.
//   - NormalizePhrase: the form a phrase is stored and played in.
//   - ValidatePhrase: required, capped length, at least one A–Z letter.

package hangman

import (
	"errors"
	"strings"
	"unicode/utf16"
)

// MaxPhraseLen caps user-created phrases, in UTF-16 code units, so an emoji
// outside the BMP costs two.
const MaxPhraseLen = 80

var (
	ErrPhraseRequired = errors.New("phrase is required")
	ErrPhraseTooLong  = errors.New("phrase is too long (max 80)")
	ErrPhraseNoLetter = errors.New("phrase must include at least one letter (A–Z)")
)

// NormalizePhrase trims, collapses whitespace runs to single spaces, and
// uppercases. Digits, punctuation and emoji are kept.
func NormalizePhrase(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), " "))
}

// ValidatePhrase checks a normalized phrase before it is stored as a puzzle.
func ValidatePhrase(phrase string) error {
	switch {
	case phrase == "":
		return ErrPhraseRequired
	case len(utf16.Encode([]rune(phrase))) > MaxPhraseLen:
		return ErrPhraseTooLong
	case !strings.ContainsFunc(phrase, isLetter):
		return ErrPhraseNoLetter
	}
	return nil
}
