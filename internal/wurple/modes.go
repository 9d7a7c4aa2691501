// internal/wurple/modes.go
//
// Rule profiles.
// Responsibilities:
//   - Preset: fixed easy and challenge configurations.
//   - ModeFromString: lenient parsing with easy as the fallback.

package wurple

import "strings"

// RulesVersion is bumped whenever scoring or selection rules change, so
// stored results can be told apart.
const RulesVersion = 1

const easyMaxGuesses = 6

// Preset returns a fresh copy of the named profile.
// Unknown modes fall back to easy.
func Preset(m Mode) ModeConfig {
	if m == ModeChallenge {
		return ModeConfig{
			Mode:                        ModeChallenge,
			MaxGuesses:                  nil,
			AllowDuplicates:             true,
			IncludeTiles:                true,
			IncludeDistance:             true,
			RequireUniqueSolutionDigits: false,
		}
	}
	max := easyMaxGuesses
	return ModeConfig{
		Mode:                        ModeEasy,
		MaxGuesses:                  &max,
		AllowDuplicates:             false,
		IncludeTiles:                true,
		IncludeDistance:             false,
		RequireUniqueSolutionDigits: true,
	}
}

// ModeFromString parses a query/body value; anything but "challenge" is easy.
func ModeFromString(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeChallenge)) {
		return ModeChallenge
	}
	return ModeEasy
}
