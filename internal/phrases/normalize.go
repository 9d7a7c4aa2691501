package phrases

import (
	"fmt"
	"strings"
)

const (
	minLetters     = 4
	maxLetters     = 24
	maxWords       = 4
	maxApostrophes = 1
)

var curlyQuotes = strings.NewReplacer("’", "'", "‘", "'")

// Normalize uppercases raw, straightens curly apostrophes, drops anything
// other than A–Z, apostrophe and space, and collapses whitespace.
func Normalize(raw string) string {
	s := curlyQuotes.Replace(strings.ToUpper(strings.TrimSpace(raw)))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r == '\'', r == ' ':
			return r
		}
		return -1
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// IsValid applies the import rules to a normalized phrase.
func IsValid(phrase string) bool {
	n := letterCount(phrase)
	if n < minLetters || n > maxLetters {
		return false
	}
	if len(strings.Fields(phrase)) > maxWords {
		return false
	}
	return strings.Count(phrase, "'") <= maxApostrophes
}

// AutoHint builds "Category: X • N words • M letters".
func AutoHint(category, phrase string) string {
	words := len(strings.Fields(phrase))
	plural := "s"
	if words == 1 {
		plural = ""
	}
	return fmt.Sprintf("Category: %s • %d word%s • %d letters", category, words, plural, letterCount(phrase))
}

func letterCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			n++
		}
	}
	return n
}
