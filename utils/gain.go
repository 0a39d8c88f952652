// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"cmp"
	"math"
)

// Clamp limits v to the inclusive range [lo, hi]. Reversed bounds are swapped.
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if lo > hi {
		lo, hi = hi, lo
	}

	return min(max(v, lo), hi)
}

// ClampIndex limits i to a valid index of a sequence of length size.
// An empty sequence clamps everything to 0.
func ClampIndex(i, size int) int {
	if size <= 0 {
		return 0
	}

	return Clamp(i, 0, size-1)
}

// DBToLinear converts decibels to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to decibels.
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// SemitonesToRatio converts a pitch offset in semitones to a playback-rate ratio.
func SemitonesToRatio(semitones float64) float64 {
	return math.Pow(2, semitones/12)
}

// CentsToRatio converts a pitch offset in cents to a playback-rate ratio.
func CentsToRatio(cents float64) float64 {
	return math.Pow(2, cents/1200)
}
