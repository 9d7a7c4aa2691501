// internal/wurple/public.go
//
// Client-facing projections. Nothing here exposes the solution.
// Responsibilities:
//   - ToPublicDaily: puzzle metadata for a seed + mode.
//   - KeyHeatmap: best known status per hex key.
//   - DistanceTrend: warmer/colder between consecutive guesses.

package wurple

import "math"

// PublicDaily is the metadata a client may see for a puzzle. It never
// includes the solution.
type PublicDaily struct {
	Seed            string `json:"seed"`
	Mode            Mode   `json:"mode"`
	MaxGuesses      *int   `json:"maxGuesses"`
	AllowDuplicates bool   `json:"allowDuplicates"`
	IncludeTiles    bool   `json:"includeTiles"`
	IncludeDistance bool   `json:"includeDistance"`
	RulesVersion    int    `json:"rulesVersion"`
	GuessCount      int    `json:"guessCount"`
	IsOver          bool   `json:"isOver"`
	Status          Status `json:"status"`
}

// ToPublicDaily projects state for the daily endpoint.
func ToPublicDaily(seedKey string, state State, cfg ModeConfig) PublicDaily {
	return PublicDaily{
		Seed:            seedKey,
		Mode:            cfg.Mode,
		MaxGuesses:      copyLimit(state.MaxGuesses),
		AllowDuplicates: cfg.AllowDuplicates,
		IncludeTiles:    cfg.IncludeTiles,
		IncludeDistance: cfg.IncludeDistance,
		RulesVersion:    RulesVersion,
		GuessCount:      len(state.Guesses),
		IsOver:          IsGameOver(state),
		Status:          InternalResult(state).Status,
	}
}

// KeyStatus is the best feedback seen so far for a hex key.
type KeyStatus string

const (
	KeyUnknown KeyStatus = "unknown"
	KeyAbsent  KeyStatus = "absent"
	KeyPresent KeyStatus = "present"
	KeyCorrect KeyStatus = "correct"
)

// HexKeys lists the keyboard in display order.
const HexKeys = "0123456789ABCDEF"

func rank(s KeyStatus) int {
	switch s {
	case KeyAbsent:
		return 1
	case KeyPresent:
		return 2
	case KeyCorrect:
		return 3
	}
	return 0
}

// KeyHeatmap folds tile feedback into one status per hex key, keeping the
// best status ever seen for each key.
func KeyHeatmap(history []GuessFeedback) map[string]KeyStatus {
	out := make(map[string]KeyStatus, len(HexKeys))
	for _, k := range HexKeys {
		out[string(k)] = KeyUnknown
	}
	for _, fb := range history {
		guess := NormalizeGuess(fb.Guess)
		for i := 0; i < len(fb.Tiles) && i < len(guess) && i < 6; i++ {
			ch := string(guess[i])
			next := KeyStatus(fb.Tiles[i])
			if rank(next) > rank(out[ch]) {
				out[ch] = next
			}
		}
	}
	return out
}

// Trend describes how a guess's distance moved relative to the previous one.
type Trend string

const (
	TrendFirst   Trend = "first"
	TrendPerfect Trend = "perfect"
	TrendSame    Trend = "same"
	TrendWarmer  Trend = "warmer"
	TrendColder  Trend = "colder"
)

// trendEpsilon treats changes smaller than this as "same".
const trendEpsilon = 0.25

// DistanceTrend compares consecutive distances. prev may be nil for the
// first guess. The returned delta is always non-negative.
func DistanceTrend(prev *float64, curr float64) (Trend, float64) {
	if curr == 0 {
		return TrendPerfect, 0
	}
	if prev == nil {
		return TrendFirst, 0
	}
	delta := *prev - curr
	abs := math.Abs(delta)
	switch {
	case abs < trendEpsilon:
		return TrendSame, abs
	case delta > 0:
		return TrendWarmer, abs
	default:
		return TrendColder, abs
	}
}
