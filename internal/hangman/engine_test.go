package hangman

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func apply(s State, letters ...string) State {
	for _, l := range letters {
		s = ApplyGuess(s, l)
	}
	return s
}

func TestMasksLettersAndRevealsPunctuation(t *testing.T) {
	s := CreateInitialState("Hi, Bob!", Config{})
	if got := MaskedPhrase(s); got != "__, ___!" {
		t.Fatalf("masked = %q", got)
	}
	if got := GetResult(s).Masked; got != "__, ___!" {
		t.Fatalf("result masked = %q", got)
	}
}

func TestMaskKeepsRuneLength(t *testing.T) {
	s := CreateInitialState("  go   4 it 🚀 ", Config{})
	if s.Phrase != "GO 4 IT 🚀" {
		t.Fatalf("phrase = %q", s.Phrase)
	}
	s = ApplyGuess(s, "o")
	if got := MaskedPhrase(s); got != "_O 4 __ 🚀" {
		t.Fatalf("masked = %q", got)
	}
}

func TestWinsWhenAllLettersGuessed(t *testing.T) {
	s := apply(CreateInitialState("AB", Config{}), "a", "b")
	if s.Status != StatusWon {
		t.Fatalf("status = %s", s.Status)
	}
	if r := GetResult(s); !r.IsComplete || r.Remaining != DefaultMaxWrong {
		t.Fatalf("result = %+v", r)
	}
}

func TestLosesExactlyAtMaxWrong(t *testing.T) {
	s := CreateInitialState("A", Config{MaxWrong: 2})
	s = ApplyGuess(s, "x")
	if s.Status != StatusPlaying || s.WrongGuesses != 1 {
		t.Fatalf("after first wrong: %+v", s)
	}
	s = ApplyGuess(s, "y")
	if s.Status != StatusLost || s.WrongGuesses != 2 {
		t.Fatalf("after second wrong: %+v", s)
	}
	if GetResult(s).Remaining != 0 {
		t.Fatal("remaining should be 0")
	}
}

func TestRepeatedGuessIgnoredByDefault(t *testing.T) {
	s0 := CreateInitialState("ABC", Config{MaxWrong: 6})
	s1 := ApplyGuess(s0, "Z")
	if s1.WrongGuesses != 1 {
		t.Fatalf("wrong = %d", s1.WrongGuesses)
	}
	s2 := ApplyGuess(s1, "z")
	if s2.WrongGuesses != 1 || s2.Status != StatusPlaying {
		t.Fatalf("repeat changed counters: %+v", s2)
	}
	if s2.Error != ErrMsgAlreadyGuessed || s2.LastGuess != "Z" {
		t.Fatalf("repeat marker: %+v", s2)
	}
}

func TestRepeatedGuessCountedWhenConfigured(t *testing.T) {
	s := CreateInitialState("A", Config{MaxWrong: 2, CountRepeatedGuesses: true})
	if s.IgnoreRepeatedGuesses {
		t.Fatal("policy not carried onto state")
	}
	s = ApplyGuess(s, "x")
	s = ApplyGuess(s, "x")
	if s.WrongGuesses != 2 || s.Status != StatusLost {
		t.Fatalf("repeat should cost a guess and lose: %+v", s)
	}
	if !reflect.DeepEqual(s.Guessed, []string{"X"}) {
		t.Fatalf("guessed = %v", s.Guessed)
	}
}

func TestRepeatedCorrectLetterCountedWhenConfigured(t *testing.T) {
	s := CreateInitialState("AB", Config{MaxWrong: 3, CountRepeatedGuesses: true})
	s = apply(s, "a", "a")
	if s.WrongGuesses != 1 || s.Status != StatusPlaying {
		t.Fatalf("state = %+v", s)
	}
}

func TestLossTakesPriorityOverSimultaneousWin(t *testing.T) {
	// Counters restored from storage can sit at the budget edge. A guess that
	// completes the phrase from there still resolves as a loss.
	edge := State{
		Phrase:                "AB",
		Status:                StatusPlaying,
		Guessed:               []string{"A"},
		WrongGuesses:          1,
		MaxWrong:              1,
		IgnoreRepeatedGuesses: true,
	}
	s := ApplyGuess(edge, "b")
	if !IsSolved(s) {
		t.Fatal("phrase should be fully revealed")
	}
	if s.Status != StatusLost {
		t.Fatalf("status = %s, want lost", s.Status)
	}
}

func TestInvalidGuessIsSoft(t *testing.T) {
	s0 := CreateInitialState("ABC", Config{})
	for _, bad := range []string{"", "ab", "1", "é", "?", "  "} {
		s := ApplyGuess(s0, bad)
		if s.Error != ErrMsgInvalidGuess {
			t.Errorf("%q: error = %q", bad, s.Error)
		}
		if len(s.Guessed) != 0 || s.WrongGuesses != 0 || s.Status != StatusPlaying {
			t.Errorf("%q mutated state: %+v", bad, s)
		}
	}
}

func TestGuessAfterGameOverIsNoOp(t *testing.T) {
	won := apply(CreateInitialState("A", Config{}), "a")
	after := ApplyGuess(won, "b")
	if after.Status != StatusWon || len(after.Guessed) != 1 || after.Error != ErrMsgGameOver {
		t.Fatalf("state = %+v", after)
	}

	lost := apply(CreateInitialState("A", Config{MaxWrong: 1}), "z")
	after = ApplyGuess(lost, "a")
	if after.Status != StatusLost || after.Error != ErrMsgGameOver {
		t.Fatalf("state = %+v", after)
	}
}

func TestEmptyPhraseIsLost(t *testing.T) {
	s := CreateInitialState("   ", Config{MaxWrong: 4})
	if s.Status != StatusLost || s.WrongGuesses != 4 || s.Error != ErrMsgEmptyPhrase {
		t.Fatalf("state = %+v", s)
	}
}

func TestGuessedKeptSorted(t *testing.T) {
	s := apply(CreateInitialState("HELLO WORLD", Config{}), "w", "d", "h", "a")
	if !reflect.DeepEqual(s.Guessed, []string{"A", "D", "H", "W"}) {
		t.Fatalf("guessed = %v", s.Guessed)
	}
}

func TestApplyGuessDoesNotAliasInput(t *testing.T) {
	s0 := apply(CreateInitialState("HELLO", Config{}), "h")
	s0.Guessed = append(make([]string, 0, 10), s0.Guessed...)
	a := ApplyGuess(s0, "e")
	b := ApplyGuess(s0, "z")
	if !reflect.DeepEqual(a.Guessed, []string{"E", "H"}) || !reflect.DeepEqual(b.Guessed, []string{"H", "Z"}) {
		t.Fatalf("a=%v b=%v", a.Guessed, b.Guessed)
	}
	if len(s0.Guessed) != 1 {
		t.Fatalf("input mutated: %v", s0.Guessed)
	}
}

func TestStatusIsMonotonic(t *testing.T) {
	s := CreateInitialState("AB", Config{MaxWrong: 2})
	seen := []Status{s.Status}
	for _, l := range []string{"x", "a", "y", "b", "c", "d"} {
		s = ApplyGuess(s, l)
		seen = append(seen, s.Status)
	}
	for i := 1; i < len(seen); i++ {
		if seen[i-1] != StatusPlaying && seen[i] != seen[i-1] {
			t.Fatalf("status reverted: %v", seen)
		}
	}
}

func TestKeyboardState(t *testing.T) {
	s := apply(CreateInitialState("AB", Config{MaxWrong: 3}), "a", "z")
	k := KeyboardState(s)
	if k["A"] != KeyCorrect || k["Z"] != KeyIncorrect || k["B"] != KeyUnused {
		t.Fatalf("playing keyboard: A=%s Z=%s B=%s", k["A"], k["Z"], k["B"])
	}
	s = ApplyGuess(s, "b")
	k = KeyboardState(s)
	if k["A"] != KeyCorrect || k["Z"] != KeyIncorrect || k["C"] != KeyLocked {
		t.Fatalf("finished keyboard: A=%s Z=%s C=%s", k["A"], k["Z"], k["C"])
	}
	if len(k) != 26 {
		t.Fatalf("len = %d", len(k))
	}
}

func TestPublicProjectionHidesPhrase(t *testing.T) {
	s := apply(CreateInitialState("Secret Phrase", Config{}), "e", "q")
	b, err := json.Marshal(ToPublicState(s))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "SECRET") || strings.Contains(string(b), "PHRASE") {
		t.Fatalf("phrase leaked: %s", b)
	}
	raw, _ := json.Marshal(s)
	if strings.Contains(string(raw), "SECRET") {
		t.Fatalf("state JSON leaked phrase: %s", raw)
	}
}

func TestReplay(t *testing.T) {
	s := Replay("AB", Config{}, CanonicalGuessed("ba"))
	if s.Status != StatusWon {
		t.Fatalf("status = %s", s.Status)
	}
}
