package hangman

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// LetterBuckets splits guessed letters by whether they occur in phrase.
// Only call this where the phrase is held; clients never see the phrase.
func LetterBuckets(phrase string, guessed []string) (correct, wrong []string) {
	p := strings.ToUpper(phrase)
	letters := lo.Compact(guessed)
	correct = lo.Filter(letters, func(l string, _ int) bool { return strings.Contains(p, l) })
	wrong = lo.Reject(letters, func(l string, _ int) bool { return strings.Contains(p, l) })
	return correct, wrong
}

// ToPublicState is the full player-facing projection, buckets included.
func ToPublicState(s State) PublicState {
	res := GetResult(s)
	correct, wrong := LetterBuckets(s.Phrase, res.Guessed)
	return PublicState{Result: res, CorrectLetters: correct, WrongLetters: wrong}
}

// CanonicalGuessed turns a stored guess string into sorted unique A–Z letters.
func CanonicalGuessed(stored string) []string {
	letters := lo.Filter(strings.Split(strings.ToUpper(stored), ""), func(l string, _ int) bool {
		return len(l) == 1 && l[0] >= 'A' && l[0] <= 'Z'
	})
	letters = lo.Uniq(letters)
	slices.Sort(letters)
	return letters
}
