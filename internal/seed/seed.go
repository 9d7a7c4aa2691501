// internal/seed/seed.go
//
// Deterministic seed handling for daily puzzles.
// Responsibilities:
//   - Hash an arbitrary string key to a 32-bit seed (FNV-1a over UTF-16 code units).
//   - Drive a Mulberry32 generator from that seed.
//   - Derive the day's 6-digit hex solution.
//
// Notes:
//   - The hash and generator are bit-exact with the browser implementation so that
//     the same key yields the same puzzle on every server and in every port.
//   - Nothing in this package does I/O or keeps state between calls.
package seed

import (
	"strings"
	"unicode/utf16"
)

const (
	fnvOffset uint32 = 2166136261
	fnvPrime  uint32 = 16777619
)

// NormalizeSeed trims surrounding whitespace from a seed key.
func NormalizeSeed(s string) string {
	return strings.TrimSpace(s)
}

// HashSeed returns the 32-bit FNV-1a hash of s.
//
// The hash runs over UTF-16 code units, not bytes, so non-ASCII keys hash
// the same way they do in JavaScript (charCodeAt).
func HashSeed(s string) uint32 {
	h := fnvOffset
	for _, c := range utf16.Encode([]rune(s)) {
		h ^= uint32(c)
		h *= fnvPrime
	}
	return h
}

// Mulberry32 returns a generator of floats in [0, 1).
// Two generators built from the same seed produce identical sequences.
func Mulberry32(seed uint32) func() float64 {
	a := seed
	return func() float64 {
		a += 0x6D2B79F5
		t := (a ^ (a >> 15)) * (a | 1)
		t ^= t + (t^(t>>7))*(t|61)
		return float64(t^(t>>14)) / 4294967296.0
	}
}

// Shuffle returns a Fisher–Yates permutation of in driven by rand.
// The input slice is left untouched.
func Shuffle[T any](in []T, rand func() float64) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := int(rand() * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
