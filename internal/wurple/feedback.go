// internal/wurple/feedback.go
//
// Per-guess feedback.
//   - Tiles use the two-pass Wordle scoring, over hex digits instead of letters.
//   - Distance is the Euclidean distance between the two colors in RGB space.

package wurple

import (
	"math"
	"strconv"
)

// MaxDistance is the distance between #000000 and #FFFFFF (~441.67).
var MaxDistance = math.Sqrt(255 * 255 * 3)

// Feedback scores guess against solution. Tiles and distance are included
// according to cfg. Both inputs are expected to be normalized 6-digit hex.
func Feedback(solution, guess string, cfg ModeConfig) GuessFeedback {
	fb := GuessFeedback{Guess: guess}
	if cfg.IncludeTiles {
		fb.Tiles = ScoreTiles(solution, guess)
	}
	if cfg.IncludeDistance {
		d := Distance(solution, guess)
		fb.Distance = &d
	}
	return fb
}

// History returns feedback for every guess in state, oldest first.
func History(state State, cfg ModeConfig) []GuessFeedback {
	out := make([]GuessFeedback, 0, len(state.Guesses))
	for _, g := range state.Guesses {
		out = append(out, Feedback(state.Solution, g, cfg))
	}
	return out
}

// ScoreTiles implements the two-pass scoring.
//
// Pass 1:
//   - Mark exact matches correct.
//   - Count the solution digits that were not matched.
//
// Pass 2:
//   - For each remaining position, mark present if that digit still has an
//     unconsumed count (and consume it), otherwise absent.
//
// A guessed digit is therefore never credited more times than it occurs in
// the solution.
func ScoreTiles(solution, guess string) []TileStatus {
	n := len(guess)
	res := make([]TileStatus, n)
	var counts [256]int

	for i := 0; i < n; i++ {
		if i < len(solution) && guess[i] == solution[i] {
			res[i] = TileCorrect
		} else if i < len(solution) {
			counts[solution[i]]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == TileCorrect {
			continue
		}
		if c := guess[i]; counts[c] > 0 {
			res[i] = TilePresent
			counts[c]--
		} else {
			res[i] = TileAbsent
		}
	}
	return res
}

// Distance returns the RGB distance between two hex colors.
// Unparseable input counts as black.
func Distance(a, b string) float64 {
	ar, ag, ab := rgb(a)
	br, bg, bb := rgb(b)
	dr, dg, db := float64(ar-br), float64(ag-bg), float64(ab-bb)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// Closeness maps a distance to [0, 1], where 1 is an exact match.
func Closeness(d float64) float64 {
	d = math.Max(0, math.Min(MaxDistance, d))
	return 1 - d/MaxDistance
}

func rgb(hex string) (r, g, b int) {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v>>16) & 0xFF, int(v>>8) & 0xFF, int(v) & 0xFF
}
