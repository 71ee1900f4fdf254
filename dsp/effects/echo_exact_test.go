//go:build !fastmath

package effects

// Tap gains come from math.Pow, so echo taps are exact.
const (
	tapTolerance     = 0
	tapGainTolerance = 1e-15
)
