// internal/seed/select.go
//
// Daily Wurple solution selection.
// Responsibilities:
//   - Derive a 6-digit hex color from a seed key, reproducibly.
//   - Keep digits distinct for easy mode; guarantee a repeat otherwise.

package seed

const hexAlphabet = "0123456789ABCDEF"

// Options controls how a daily hex solution is drawn.
type Options struct {
	// RequireUniqueDigits makes all six digits pairwise distinct.
	RequireUniqueDigits bool
}

// SelectDailyHexSolution derives a 6-character uppercase hex string from key.
//
// With unique digits the 16 hex symbols are shuffled and the first six kept.
// Otherwise six symbols are drawn independently; if that draw happens to be
// all-distinct, one position is copied over another so the result always
// contains at least one repeat.
func SelectDailyHexSolution(key string, opts Options) string {
	rand := Mulberry32(HashSeed(NormalizeSeed(key)))

	if opts.RequireUniqueDigits {
		shuffled := Shuffle([]byte(hexAlphabet), rand)
		return string(shuffled[:6])
	}

	out := make([]byte, 6)
	for i := range out {
		out[i] = hexAlphabet[int(rand()*16)]
	}
	if allDistinct(out) {
		src := int(rand() * 6)
		dst := int(rand() * 5)
		if dst >= src {
			dst++
		}
		out[dst] = out[src]
	}
	return string(out)
}

func allDistinct(b []byte) bool {
	var seen [256]bool
	for _, c := range b {
		if seen[c] {
			return false
		}
		seen[c] = true
	}
	return true
}
